package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportDir keeps rendered plan exports in a single directory.
type ExportDir struct {
	baseDir string
}

// NewExportDir ensures the directory exists and returns a handle.
func NewExportDir(baseDir string) (*ExportDir, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &ExportDir{baseDir: baseDir}, nil
}

// Save writes data under filename and returns the full path. Names that
// would escape the directory are rejected.
func (d *ExportDir) Save(filename string, data []byte) (string, error) {
	path, err := d.resolve(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// Prune removes files whose modification time is older than ttl and returns
// their names.
func (d *ExportDir) Prune(ttl time.Duration, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	cutoff := now.Add(-ttl)
	deleted := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return deleted, fmt.Errorf("stat export: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(d.baseDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return deleted, fmt.Errorf("delete export file: %w", err)
		}
		deleted = append(deleted, entry.Name())
	}
	return deleted, nil
}

func (d *ExportDir) resolve(filename string) (string, error) {
	clean := filepath.Base(filename)
	if clean != filename || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid export name %q", filename)
	}
	return filepath.Join(d.baseDir, clean), nil
}
