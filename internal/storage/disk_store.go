package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore saves uploaded files under a base directory with a
// timestamp-prefixed name so repeated uploads of the same filename never
// collide.
type DiskStore struct {
	basePath string
	now      func() time.Time
}

// NewDiskStore creates the base directory if missing.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{basePath: basePath, now: time.Now}, nil
}

// Save writes the file and returns its path relative to the process working
// directory, e.g. "uploads/1718000000000-plan.pdf".
func (d *DiskStore) Save(_ context.Context, filename string, r io.Reader, _ int64) (string, error) {
	name := fmt.Sprintf("%d-%s", d.now().UnixMilli(), safeFilename(filename))
	target := filepath.Join(d.basePath, name)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return target, nil
}

func safeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return name
}
