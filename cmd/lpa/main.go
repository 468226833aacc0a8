package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lpa/internal/analyzer"
	"github.com/standardbeagle/lpa/internal/config"
	"github.com/standardbeagle/lpa/internal/debug"
	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
	"github.com/standardbeagle/lpa/internal/profile"
	"github.com/standardbeagle/lpa/internal/suggest"
)

var version = "0.3.0"

func main() {
	app := &cli.App{
		Name:                   "lpa",
		Usage:                  "Profile-driven incremental code analysis for editors",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.DefaultFileName,
			},
			&cli.StringFlag{
				Name:    "profiles",
				Aliases: []string{"p"},
				Usage:   "Language profile directory (overrides config)",
			},
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Language profile to analyze with (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write diagnostics to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.SetOutput(os.Stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			languagesCommand(),
			analyzeCommand(),
			suggestCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "lpa: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config (with flag overrides) and the profile registry.
func setup(c *cli.Context) (*config.Config, *profile.Registry, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if dir := c.String("profiles"); dir != "" {
		cfg.Profiles.Dir = dir
	}
	if lang := c.String("lang"); lang != "" {
		cfg.Analyzer.DefaultLanguage = lang
	}

	registry, diags := profile.Load(cfg.Profiles.Dir)
	reportDiags(diags)
	return cfg, registry, nil
}

func reportDiags(diags *lpaerrors.MultiError) {
	if diags == nil {
		return
	}
	for _, err := range diags.Errors {
		fmt.Fprintf(os.Stderr, "lpa: warning: %v\n", err)
	}
}

func newAnalyzer(cfg *config.Config, registry *profile.Registry) *analyzer.Analyzer {
	return analyzer.New(registry, analyzer.Options{
		Language:       cfg.Analyzer.DefaultLanguage,
		MaxChangeRatio: cfg.Analyzer.MaxChangeRatio,
		MaxGrowthRatio: cfg.Analyzer.MaxGrowthRatio,
	})
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List available language profiles",
		Action: func(c *cli.Context) error {
			_, registry, err := setup(c)
			if err != nil {
				return err
			}
			for _, name := range registry.AvailableLanguages() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze a file and print detected symbols and token spans",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "Include syntax token spans in text output",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one file argument")
			}
			cfg, registry, err := setup(c)
			if err != nil {
				return err
			}

			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if c.String("lang") == "" {
				cfg.Analyzer.DefaultLanguage = languageForFile(path, cfg.Analyzer.DefaultLanguage)
			}

			a := newAnalyzer(cfg, registry)
			a.Analyze(string(data))

			if c.Bool("json") {
				return printAnalysisJSON(a)
			}
			printAnalysisText(a, c.Bool("tokens"), string(data))
			return nil
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Print completion suggestions for a file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Filter suggestions by the word being typed",
			},
			&cli.BoolFlag{
				Name:  "fuzzy",
				Usage: "Include fuzzy matches for the prefix",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Suggestion categories to exclude (e.g. --exclude operators)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one file argument")
			}
			cfg, registry, err := setup(c)
			if err != nil {
				return err
			}

			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if c.String("lang") == "" {
				cfg.Analyzer.DefaultLanguage = languageForFile(path, cfg.Analyzer.DefaultLanguage)
			}

			a := newAnalyzer(cfg, registry)
			a.Analyze(string(data))

			exclude := cfg.Suggestions.ExcludeCategories
			if flags := c.StringSlice("exclude"); len(flags) > 0 {
				exclude = flags
			}
			suggestions := a.Suggestions(exclude)

			filter := suggest.NewFilter(c.Bool("fuzzy") || cfg.Suggestions.Fuzzy, cfg.Suggestions.FuzzyThreshold)
			for _, s := range filter.Apply(suggestions, c.String("prefix")) {
				fmt.Println(s)
			}
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-analyze a file whenever the profile directory changes",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one file argument")
			}
			cfg, registry, err := setup(c)
			if err != nil {
				return err
			}

			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if c.String("lang") == "" {
				cfg.Analyzer.DefaultLanguage = languageForFile(path, cfg.Analyzer.DefaultLanguage)
			}

			run := func(reg *profile.Registry) {
				a := newAnalyzer(cfg, reg)
				a.Analyze(string(data))
				stats := a.LastStats()
				fmt.Printf("%s: %s analysis, %d lines, %d symbols, %d tokens\n",
					path, stats.Strategy, stats.Lines, stats.Symbols, stats.Tokens)
			}
			run(registry)

			watcher, err := profile.NewWatcher(cfg.Profiles.Dir,
				time.Duration(cfg.Profiles.DebounceMs)*time.Millisecond,
				func(reg *profile.Registry, diags *lpaerrors.MultiError) {
					reportDiags(diags)
					run(reg)
				})
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			fmt.Fprintf(os.Stderr, "watching %s for profile changes (ctrl-c to stop)\n", cfg.Profiles.Dir)
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
}

// languageForFile guesses a language from the file extension, falling
// back to the configured default.
func languageForFile(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return "python"
	case ".go":
		return "go"
	case ".js", ".mjs", ".jsx":
		return "javascript"
	case ".c", ".h":
		return "c"
	default:
		return fallback
	}
}

func printAnalysisJSON(a *analyzer.Analyzer) error {
	type symbolOut struct {
		Name     string            `json:"name"`
		Kind     string            `json:"kind"`
		Scope    int               `json:"scope"`
		Line     int               `json:"line"`
		Metadata map[string]string `json:"metadata,omitempty"`
	}
	type tokenOut struct {
		Start int    `json:"start"`
		End   int    `json:"end"`
		Kind  string `json:"kind"`
	}
	out := struct {
		Language string      `json:"language"`
		Symbols  []symbolOut `json:"symbols"`
		Tokens   []tokenOut  `json:"tokens"`
	}{Language: a.Language()}

	for _, s := range a.Symbols() {
		out.Symbols = append(out.Symbols, symbolOut{
			Name: s.Name, Kind: string(s.Kind), Scope: int(s.Scope), Line: s.Line, Metadata: s.Metadata,
		})
	}
	for _, t := range a.TokenSpans() {
		out.Tokens = append(out.Tokens, tokenOut{Start: t.Start, End: t.End, Kind: t.Kind})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printAnalysisText(a *analyzer.Analyzer, withTokens bool, text string) {
	stats := a.LastStats()
	fmt.Printf("language: %s (%s analysis in %s)\n", a.Language(), stats.Strategy, stats.Duration)

	fmt.Println("symbols:")
	for _, s := range a.Symbols() {
		parent := ""
		if name, ok := s.Metadata["parent_name"]; ok {
			parent = fmt.Sprintf(" (in %s %q)", s.Metadata["parent_type"], name)
		}
		fmt.Printf("  %-20s %-20s line %-4d scope %d%s\n", s.Name, s.Kind, s.Line, s.Scope, parent)
	}

	if withTokens {
		fmt.Println("tokens:")
		for _, t := range a.TokenSpans() {
			snippet := text[t.Start:t.End]
			if len(snippet) > 30 {
				snippet = snippet[:30] + "..."
			}
			fmt.Printf("  %-12s [%d:%d] %q\n", t.Kind, t.Start, t.End, snippet)
		}
	}
}
