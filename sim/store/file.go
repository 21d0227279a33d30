package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// validKey restricts keys to names that are safe as file names.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileKV stores each key as a file in one directory.
// Writes go through a temp file and rename so a crash never leaves half a value.
type FileKV struct {
	dir string
}

// NewFileKV creates the directory if needed and returns a FileKV rooted there.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("file store: invalid key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

func (f *FileKV) Set(key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) Close() error { return nil }
