// Package errors defines the typed errors surfaced by profile loading
// and configuration. Analysis itself never fails; bad inputs degrade to
// fewer detected tokens and symbols instead of errors.
package errors

import (
	"fmt"
	"time"
)

// ErrorType categorizes errors for diagnostics.
type ErrorType string

const (
	ErrorTypeProfile ErrorType = "profile"
	ErrorTypePattern ErrorType = "pattern"
	ErrorTypeConfig  ErrorType = "config"
)

// ProfileError reports a language definition that could not be loaded
// or validated. Loading continues past it.
type ProfileError struct {
	Type       ErrorType
	Path       string
	Language   string
	Field      string
	Underlying error
	Timestamp  time.Time
}

// NewProfileError creates a profile error for a definition file.
func NewProfileError(path string, err error) *ProfileError {
	return &ProfileError{
		Type:       ErrorTypeProfile,
		Path:       path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithField records the definition field that failed validation.
func (e *ProfileError) WithField(field string) *ProfileError {
	e.Field = field
	return e
}

// WithLanguage records the language name, when it was readable.
func (e *ProfileError) WithLanguage(language string) *ProfileError {
	e.Language = language
	return e
}

func (e *ProfileError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("profile %s invalid field %q: %v", e.Path, e.Field, e.Underlying)
	}
	return fmt.Sprintf("profile %s failed to load: %v", e.Path, e.Underlying)
}

func (e *ProfileError) Unwrap() error {
	return e.Underlying
}

// PatternError reports a single regular expression that failed to
// compile. The owning profile stays usable with that slot absent.
type PatternError struct {
	Type       ErrorType
	Language   string
	Slot       string
	Pattern    string
	Underlying error
	Timestamp  time.Time
}

// NewPatternError creates a pattern compile error.
func NewPatternError(language, slot, pattern string, err error) *PatternError {
	return &PatternError{
		Type:       ErrorTypePattern,
		Language:   language,
		Slot:       slot,
		Pattern:    pattern,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %s/%s failed to compile (%q): %v", e.Language, e.Slot, e.Pattern, e.Underlying)
}

func (e *PatternError) Unwrap() error {
	return e.Underlying
}

// ConfigError reports an invalid host configuration value.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a config error.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError aggregates per-file diagnostics from a registry load.
type MultiError struct {
	Errors []error
}

// NewMultiError creates a multi-error, dropping nil entries. Returns
// nil when nothing remains so callers can return it directly.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all aggregated errors for errors.Is/As.
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
