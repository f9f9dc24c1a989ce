package tempfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_RemovesAllPaths(t *testing.T) {
	dir := t.TempDir()

	var c Cleaner
	for _, name := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		c.Add(p)
	}

	c.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleaner_ToleratesMissingFiles(t *testing.T) {
	var c Cleaner
	c.Add(filepath.Join(t.TempDir(), "never-created"))
	c.Add("")
	c.Close()
	c.Close() // idempotent
}

func TestWithExtension_CopyExistsDuringFn(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "upload-123")
	require.NoError(t, os.WriteFile(src, []byte("audio bytes"), 0o644))

	var seen string
	err := WithExtension(src, ".mp3", func(path string) error {
		seen = path
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("audio bytes"), data)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, src+".mp3", seen)

	_, err = os.Stat(seen)
	assert.True(t, os.IsNotExist(err), "extension copy must be removed after fn")

	_, err = os.Stat(src)
	assert.NoError(t, err, "original must survive")
}

func TestWithExtension_CleansUpOnError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "upload-456")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	sentinel := errors.New("remote call failed")
	err := WithExtension(src, ".wav", func(path string) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = os.Stat(src + ".wav")
	assert.True(t, os.IsNotExist(err))
}

func TestWithExtension_MissingSource(t *testing.T) {
	err := WithExtension(filepath.Join(t.TempDir(), "absent"), ".mp3", func(string) error {
		t.Fatal("fn must not run when the copy fails")
		return nil
	})
	require.Error(t, err)
}
