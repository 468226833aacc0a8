package profile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/lpa/internal/debug"
	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
)

// GenericLanguage is the name of the profile that always exists after a
// registry load and serves as the lookup fallback.
const GenericLanguage = "generic"

// Registry holds all compiled profiles, keyed by lowercase language
// name. It is built once by Load and read-only afterwards, so it can be
// shared freely across analyzers and goroutines.
type Registry struct {
	profiles map[string]*Profile
}

// genericDefinition is the synthesized fallback registered when no
// generic definition file was supplied.
var genericDefinition = Definition{
	Language:     GenericLanguage,
	Comment:      "#",
	BlockComment: []string{"", ""},
	Indent:       "    ",
	SyntaxTokens: map[string]string{
		"keyword":  `\b(if|else|for|while|do|begin|end|function|procedure|return|break|continue|true|false|null)\b`,
		"operator": `[+\-*/%&|^~<>!=]+`,
		"comment":  `#.*`,
		"string":   `"[^"]*"|'[^']*'`,
	},
	Suggestions: map[string][]string{
		"keywords":   {},
		"operators":  {},
		"builtins":   {},
		"exceptions": {},
	},
}

// minimalFallback is returned by Get when even the generic profile is
// missing. It detects nothing but satisfies every caller contract.
var minimalFallback = &Profile{
	Language:     "minimal_fallback",
	Comment:      "#",
	BlockComment: [2]string{"", ""},
	Indent:       "    ",
	Suggestions:  map[string][]string{},
}

// Load enumerates *.toml definitions under dir in sorted order,
// validates and compiles each, and registers them by lowercase language
// name (later files overwrite earlier registrations of the same name).
//
// Invalid definitions are skipped and reported through the returned
// MultiError; the load itself never fails. After Load the registry
// always contains a "generic" profile, synthesized if need be.
func Load(dir string) (*Registry, *lpaerrors.MultiError) {
	r := &Registry{profiles: make(map[string]*Profile)}
	var diags []error

	paths, err := doublestar.FilepathGlob(filepath.Join(dir, "*.toml"))
	if err != nil || len(paths) == 0 {
		if err != nil {
			diags = append(diags, lpaerrors.NewProfileError(dir, err))
		}
		debug.LogProfiles("no definitions found under %s, synthesizing generic profile", dir)
		r.profiles[GenericLanguage] = Compile(&genericDefinition)
		return r, lpaerrors.NewMultiError(diags)
	}
	sort.Strings(paths)

	type loadResult struct {
		profile *Profile
		diags   []error
		err     error
	}
	results := make([]loadResult, len(paths))

	// Parsing and pattern compilation run in parallel; registration
	// below stays in sorted path order so overwrite semantics are
	// deterministic.
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			p, pdiags, err := loadOne(path)
			results[i] = loadResult{profile: p, diags: pdiags, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, res := range results {
		if res.err != nil {
			diags = append(diags, res.err)
			debug.LogProfiles("skipping %s: %v", paths[i], res.err)
			continue
		}
		diags = append(diags, res.diags...)
		name := strings.ToLower(res.profile.Language)
		r.profiles[name] = res.profile
		debug.LogProfiles("loaded language profile: %s", name)
	}

	if _, ok := r.profiles[GenericLanguage]; !ok {
		debug.LogProfiles("generic profile missing after load, synthesizing fallback")
		r.profiles[GenericLanguage] = Compile(&genericDefinition)
	}

	return r, lpaerrors.NewMultiError(diags)
}

func loadOne(path string) (*Profile, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, lpaerrors.NewProfileError(path, err)
	}

	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, nil, lpaerrors.NewProfileError(path, err)
	}

	if err := Validate(path, &def); err != nil {
		return nil, nil, err
	}

	return Compile(&def), patternDiags(&def), nil
}

// Get returns the profile for a language name, case-insensitively. An
// unknown name resolves to the generic profile; callers never see a
// "no profile" error.
func (r *Registry) Get(language string) *Profile {
	if p, ok := r.profiles[strings.ToLower(language)]; ok {
		return p
	}
	if p, ok := r.profiles[GenericLanguage]; ok {
		debug.LogProfiles("profile for %q not found, using generic", language)
		return p
	}
	debug.LogProfiles("generic profile missing, returning minimal fallback")
	return minimalFallback
}

// AvailableLanguages returns all registered profile names, sorted.
func (r *Registry) AvailableLanguages() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
