// Package tempfile provides scoped temporary-file helpers. Orphaned temp
// files are the only resource leak possible in this server, so every acquire
// path here pairs with a guaranteed release.
package tempfile

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Cleaner collects file paths created during one request and removes them
// all when closed. Safe for use from a single request goroutine; Close is
// idempotent.
type Cleaner struct {
	mu    sync.Mutex
	paths []string
}

// Add registers a path for removal on Close.
func (c *Cleaner) Add(path string) {
	if path == "" {
		return
	}
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
}

// Close removes every registered path. Missing files are not an error.
func (c *Cleaner) Close() {
	c.mu.Lock()
	paths := c.paths
	c.paths = nil
	c.mu.Unlock()

	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// WithExtension copies src to a sibling path carrying ext, invokes fn with
// the copy, and removes the copy on every exit path. The transcription
// provider rejects files without a recognizable extension, and upload
// middleware strips extensions from temp files.
func WithExtension(src, ext string, fn func(path string) error) error {
	dst := src + ext

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("materialize %s copy: %w", ext, err)
	}
	defer os.Remove(dst)

	return fn(dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}
