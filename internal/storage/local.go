package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalSource reads documents from one directory, without recursion.
type LocalSource struct {
	dir string
}

// NewLocalSource returns a source over dir, which must exist.
func NewLocalSource(dir string) (*LocalSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open document directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &LocalSource{dir: dir}, nil
}

// List returns the supported documents sorted by name.
func (s *LocalSource) List(_ context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{Key: entry.Name(), Name: entry.Name(), Size: info.Size()})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })
	return objects, nil
}

// Read returns the content of the document named key.
func (s *LocalSource) Read(_ context.Context, key string) ([]byte, error) {
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("invalid document key %q", key)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *LocalSource) String() string {
	return s.dir
}
