package transcode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFFmpeg installs a fake ffmpeg script on PATH and returns the adapter
// detected against it. The script either writes its last argument (the
// output file) or exits nonzero.
func stubFFmpeg(t *testing.T, script string) *FFmpeg {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	t.Setenv("PATH", dir)
	return Detect(zerolog.Nop())
}

func TestDetect_Missing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	f := Detect(zerolog.Nop())
	assert.False(t, f.Available())

	path, ok := f.ToWAV(context.Background(), "whatever")
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestToWAV_Success(t *testing.T) {
	// Write the last argument so the output file exists.
	f := stubFFmpeg(t, `for last; do :; done; printf 'RIFF' > "$last"`)
	require.True(t, f.Available())

	src := filepath.Join(t.TempDir(), "recording")
	require.NoError(t, os.WriteFile(src, []byte("webm"), 0o644))

	out, ok := f.ToWAV(context.Background(), src)
	require.True(t, ok)
	assert.Equal(t, src+".wav", out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)
}

func TestToWAV_ToolFailure(t *testing.T) {
	f := stubFFmpeg(t, `exit 1`)
	require.True(t, f.Available())

	src := filepath.Join(t.TempDir(), "recording")
	require.NoError(t, os.WriteFile(src, []byte("webm"), 0o644))

	out, ok := f.ToWAV(context.Background(), src)
	assert.False(t, ok)
	assert.Empty(t, out)

	_, err := os.Stat(src + ".wav")
	assert.True(t, os.IsNotExist(err), "partial output must be removed")
}

func TestToWAV_NoOutputProduced(t *testing.T) {
	f := stubFFmpeg(t, `exit 0`)

	src := filepath.Join(t.TempDir(), "recording")
	require.NoError(t, os.WriteFile(src, []byte("webm"), 0o644))

	_, ok := f.ToWAV(context.Background(), src)
	assert.False(t, ok)
}
