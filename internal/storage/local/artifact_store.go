// Package local persists run artifacts on the local filesystem. This is the
// default sink: one directory per run under the configured base directory.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"formpilot/internal/port"
)

// ArtifactStore writes artifacts to baseDir/<run id>/<name>.
type ArtifactStore struct {
	baseDir string
}

// NewArtifactStore creates the base directory if needed.
func NewArtifactStore(baseDir string) (*ArtifactStore, error) {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "formpilot")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	return &ArtifactStore{baseDir: baseDir}, nil
}

func (s *ArtifactStore) Put(ctx context.Context, input port.PutArtifactInput) (*port.PutArtifactOutput, error) {
	dir := filepath.Join(s.baseDir, input.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run dir: %w", err)
	}

	path := filepath.Join(dir, input.Name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating artifact file: %w", err)
	}
	if _, err := io.Copy(f, input.Body); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing artifact %s: %w", input.Name, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing artifact %s: %w", input.Name, err)
	}

	return &port.PutArtifactOutput{Location: path}, nil
}

// PresignedURL returns the filesystem path unchanged; local files have no
// fetchable URL form.
func (s *ArtifactStore) PresignedURL(ctx context.Context, location string, expirySeconds int64) (string, error) {
	return location, nil
}
