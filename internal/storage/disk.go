package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rijan-rayamajhi/gem-business/internal/config"
)

// DiskStore keeps objects on the local filesystem and serves them under a
// public base URL (the files route exposes BaseDir as static content).
type DiskStore struct {
	baseDir string
	baseURL string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStore{
		baseDir: cfg.BaseDir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put writes data under path and returns its public URL.
func (s *DiskStore) Put(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := s.cleanPath(path)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *DiskStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := s.cleanPath(path)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.baseDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// BaseDir returns the directory served as static content.
func (s *DiskStore) BaseDir() string {
	return s.baseDir
}

func (s *DiskStore) cleanPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return clean, nil
}
