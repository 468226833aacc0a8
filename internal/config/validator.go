package config

import (
	goerrors "errors"
	"fmt"

	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
)

// Validate checks configuration ranges and fills smart defaults for
// zero values.
func Validate(cfg *Config) error {
	if cfg.Profiles.Dir == "" {
		return lpaerrors.NewConfigError("profiles.dir", "", goerrors.New("profile directory cannot be empty"))
	}
	if cfg.Profiles.DebounceMs < 0 {
		return lpaerrors.NewConfigError("profiles.debounce_ms",
			fmt.Sprintf("%d", cfg.Profiles.DebounceMs), goerrors.New("debounce cannot be negative"))
	}
	if cfg.Profiles.DebounceMs == 0 {
		cfg.Profiles.DebounceMs = 250
	}

	if cfg.Analyzer.DefaultLanguage == "" {
		cfg.Analyzer.DefaultLanguage = "python"
	}
	if cfg.Analyzer.MaxChangeRatio < 0 || cfg.Analyzer.MaxChangeRatio > 1 {
		return lpaerrors.NewConfigError("analyzer.max_change_ratio",
			fmt.Sprintf("%v", cfg.Analyzer.MaxChangeRatio), goerrors.New("must be in [0, 1]"))
	}
	if cfg.Analyzer.MaxGrowthRatio < 0 || cfg.Analyzer.MaxGrowthRatio > 1 {
		return lpaerrors.NewConfigError("analyzer.max_growth_ratio",
			fmt.Sprintf("%v", cfg.Analyzer.MaxGrowthRatio), goerrors.New("must be in [0, 1]"))
	}
	if cfg.Analyzer.MaxChangeRatio == 0 {
		cfg.Analyzer.MaxChangeRatio = 0.4
	}
	if cfg.Analyzer.MaxGrowthRatio == 0 {
		cfg.Analyzer.MaxGrowthRatio = 0.15
	}

	if cfg.Suggestions.FuzzyThreshold < 0 || cfg.Suggestions.FuzzyThreshold > 1 {
		return lpaerrors.NewConfigError("suggestions.fuzzy_threshold",
			fmt.Sprintf("%v", cfg.Suggestions.FuzzyThreshold), goerrors.New("must be in [0, 1]"))
	}
	if cfg.Suggestions.FuzzyThreshold == 0 {
		cfg.Suggestions.FuzzyThreshold = 0.80
	}

	return nil
}
