package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "python.toml", pythonDefinition)

	reloaded := make(chan *Registry, 4)
	w, err := NewWatcher(dir, 50*time.Millisecond, func(r *Registry, _ *lpaerrors.MultiError) {
		reloaded <- r
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { require.NoError(t, w.Stop()) }()

	writeDefinition(t, dir, "ruby.toml", `
language = "ruby"
comment = "#"
indent = "  "
indent_triggers = ['\b(def|class|module|do|if)\b.*$']
dedent_triggers = ['^\s*end\b']
`)

	select {
	case r := <-reloaded:
		assert.Contains(t, r.AvailableLanguages(), "ruby")
		assert.Contains(t, r.AvailableLanguages(), "python")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after definition write")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "python.toml", pythonDefinition)

	reloads := make(chan struct{}, 16)
	w, err := NewWatcher(dir, 200*time.Millisecond, func(*Registry, *lpaerrors.MultiError) {
		reloads <- struct{}{}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { require.NoError(t, w.Stop()) }()

	for i := 0; i < 5; i++ {
		writeDefinition(t, dir, "python.toml", pythonDefinition)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-reloads:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write burst")
	}

	// The burst collapsed into a single reload.
	select {
	case <-reloads:
		t.Fatal("burst produced more than one reload")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	reloads := make(chan struct{}, 4)
	w, err := NewWatcher(dir, 50*time.Millisecond, func(*Registry, *lpaerrors.MultiError) {
		reloads <- struct{}{}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { require.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case <-reloads:
		t.Fatal("non-definition file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
