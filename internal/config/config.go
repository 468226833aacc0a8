// Package config loads host configuration for the analyzer from a
// .lpa.kdl file. Everything has a working default; the file only
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
)

// DefaultFileName is the config file looked up next to the host.
const DefaultFileName = ".lpa.kdl"

// Config is the host-facing configuration.
type Config struct {
	Profiles    Profiles
	Analyzer    Analyzer
	Suggestions Suggestions
}

// Profiles configures where language definitions come from.
type Profiles struct {
	Dir        string
	Watch      bool
	DebounceMs int
}

// Analyzer configures analyzer construction.
type Analyzer struct {
	DefaultLanguage string
	MaxChangeRatio  float64
	MaxGrowthRatio  float64
}

// Suggestions configures suggestion generation and popup filtering.
type Suggestions struct {
	ExcludeCategories []string
	Fuzzy             bool
	FuzzyThreshold    float64
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profiles: Profiles{
			Dir:        "profiles",
			Watch:      false,
			DebounceMs: 250,
		},
		Analyzer: Analyzer{
			DefaultLanguage: "python",
			MaxChangeRatio:  0.4,
			MaxGrowthRatio:  0.15,
		},
		Suggestions: Suggestions{
			Fuzzy:          false,
			FuzzyThreshold: 0.80,
		},
	}
}

// Load reads configuration from path. A missing file yields defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, lpaerrors.NewConfigError("file", path, err)
	}

	if err := parseKDL(string(data), cfg); err != nil {
		return nil, err
	}

	// Profile dirs resolve relative to the config file.
	if cfg.Profiles.Dir != "" && !filepath.IsAbs(cfg.Profiles.Dir) {
		cfg.Profiles.Dir = filepath.Clean(filepath.Join(filepath.Dir(path), cfg.Profiles.Dir))
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseKDL(content string, cfg *Config) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return lpaerrors.NewConfigError("kdl", "", fmt.Errorf("failed to parse config: %w", err))
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "profiles":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Profiles.Dir = s
					}
				case "watch":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Profiles.Watch = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Profiles.DebounceMs = v
					}
				}
			}
		case "analyzer":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "default_language":
					if s, ok := firstStringArg(cn); ok {
						cfg.Analyzer.DefaultLanguage = s
					}
				case "max_change_ratio":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Analyzer.MaxChangeRatio = v
					}
				case "max_growth_ratio":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Analyzer.MaxGrowthRatio = v
					}
				}
			}
		case "suggestions":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "exclude":
					cfg.Suggestions.ExcludeCategories = append(cfg.Suggestions.ExcludeCategories, collectStringArgs(cn)...)
				case "fuzzy":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Suggestions.Fuzzy = b
					}
				case "fuzzy_threshold":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Suggestions.FuzzyThreshold = v
					}
				}
			}
		}
	}

	return nil
}

// Helpers over the kdl-go document model.
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
