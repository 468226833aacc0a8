package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
profiles {
    dir "lang-defs"
    watch true
    debounce_ms 100
}

analyzer {
    default_language "go"
    max_change_ratio 0.5
    max_growth_ratio 0.2
}

suggestions {
    exclude "keywords" "operators"
    fuzzy true
    fuzzy_threshold 0.9
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "lang-defs"), cfg.Profiles.Dir)
	assert.True(t, cfg.Profiles.Watch)
	assert.Equal(t, 100, cfg.Profiles.DebounceMs)

	assert.Equal(t, "go", cfg.Analyzer.DefaultLanguage)
	assert.InDelta(t, 0.5, cfg.Analyzer.MaxChangeRatio, 1e-9)
	assert.InDelta(t, 0.2, cfg.Analyzer.MaxGrowthRatio, 1e-9)

	assert.Equal(t, []string{"keywords", "operators"}, cfg.Suggestions.ExcludeCategories)
	assert.True(t, cfg.Suggestions.Fuzzy)
	assert.InDelta(t, 0.9, cfg.Suggestions.FuzzyThreshold, 1e-9)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
analyzer {
    default_language "javascript"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "javascript", cfg.Analyzer.DefaultLanguage)
	assert.InDelta(t, 0.4, cfg.Analyzer.MaxChangeRatio, 1e-9)
	assert.Equal(t, 250, cfg.Profiles.DebounceMs)
	assert.False(t, cfg.Suggestions.Fuzzy)
}

func TestLoadAbsoluteProfileDir(t *testing.T) {
	path := writeConfig(t, `
profiles {
    dir "/opt/lpa/profiles"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/lpa/profiles", cfg.Profiles.Dir)
}

func TestLoadMalformedConfig(t *testing.T) {
	path := writeConfig(t, `profiles { dir "unterminated`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRanges(t *testing.T) {
	cfg := Default()
	cfg.Analyzer.MaxChangeRatio = 1.5
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Analyzer.MaxGrowthRatio = -0.1
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Suggestions.FuzzyThreshold = 2
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Profiles.DebounceMs = -1
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Profiles.Dir = ""
	assert.Error(t, Validate(cfg))
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := &Config{Profiles: Profiles{Dir: "profiles"}}
	require.NoError(t, Validate(cfg))

	assert.Equal(t, 250, cfg.Profiles.DebounceMs)
	assert.Equal(t, "python", cfg.Analyzer.DefaultLanguage)
	assert.InDelta(t, 0.4, cfg.Analyzer.MaxChangeRatio, 1e-9)
	assert.InDelta(t, 0.15, cfg.Analyzer.MaxGrowthRatio, 1e-9)
	assert.InDelta(t, 0.80, cfg.Suggestions.FuzzyThreshold, 1e-9)
}
