package errors

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileError(t *testing.T) {
	underlying := goerrors.New("boom")
	err := NewProfileError("profiles/python.toml", underlying).
		WithField("indent").
		WithLanguage("python")

	assert.Equal(t, ErrorTypeProfile, err.Type)
	assert.Contains(t, err.Error(), "profiles/python.toml")
	assert.Contains(t, err.Error(), "indent")
	assert.True(t, goerrors.Is(err, underlying))
}

func TestProfileErrorWithoutField(t *testing.T) {
	err := NewProfileError("x.toml", goerrors.New("unreadable"))
	assert.Contains(t, err.Error(), "failed to load")
}

func TestPatternError(t *testing.T) {
	underlying := goerrors.New("missing closing )")
	err := NewPatternError("python", "function", `(unclosed`, underlying)

	assert.Contains(t, err.Error(), "python/function")
	assert.Contains(t, err.Error(), "(unclosed")
	assert.True(t, goerrors.Is(err, underlying))
}

func TestConfigError(t *testing.T) {
	underlying := goerrors.New("out of range")
	err := NewConfigError("max_change_ratio", "1.5", underlying)

	assert.Contains(t, err.Error(), "max_change_ratio")
	assert.Contains(t, err.Error(), "1.5")
	assert.True(t, goerrors.Is(err, underlying))
}

func TestMultiErrorNilWhenEmpty(t *testing.T) {
	assert.Nil(t, NewMultiError(nil))
	assert.Nil(t, NewMultiError([]error{nil, nil}))
}

func TestMultiErrorAggregates(t *testing.T) {
	first := goerrors.New("first")
	second := goerrors.New("second")

	err := NewMultiError([]error{first, nil, second})
	require.NotNil(t, err)
	assert.Len(t, err.Errors, 2)
	assert.True(t, goerrors.Is(err, first))
	assert.True(t, goerrors.Is(err, second))
}

func TestMultiErrorSingleMessage(t *testing.T) {
	err := NewMultiError([]error{goerrors.New("only one")})
	assert.Equal(t, "only one", err.Error())
}
