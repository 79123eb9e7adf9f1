package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xraph/rotawatch/internal/fsutil"
)

// compile-time interface check
var _ Sink = (*Local)(nil)

// Local stores images in a directory on disk. Each Put is atomic.
type Local struct {
	baseDir string
}

// NewLocal creates a local sink, creating baseDir if needed.
func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", baseDir, err)
	}
	return &Local{baseDir: baseDir}, nil
}

// Name implements Sink.
func (l *Local) Name() string { return "local" }

// Path returns the file path for key.
func (l *Local) Path(key string) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(key))
}

// Put implements Sink.
func (l *Local) Put(_ context.Context, key string, data []byte, _ string) error {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	path := l.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := fsutil.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// Ping implements Sink.
func (l *Local) Ping(_ context.Context) error {
	_, err := os.Stat(l.baseDir)
	return err
}
