// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/user/imagify/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
// Every path may start with "~", which is expanded to the home directory.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// ReadFile reads the entire contents of a file.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	path, err := fs.Expand(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteFile replaces path with data, creating parent directories as needed.
// The data is written to a temporary file in the same directory and renamed
// into place, so readers and the config watcher never see a partial file.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	path, err := fs.Expand(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// MkdirAll creates a directory and all parent directories.
func (fs *FileSystem) MkdirAll(path string) error {
	path, err := fs.Expand(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0755)
}

// Exists checks if a file or directory exists.
func (fs *FileSystem) Exists(path string) (bool, error) {
	path, err := fs.Expand(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	}
	return false, err
}

// Expand resolves a leading "~" to the current user's home directory.
func (fs *FileSystem) Expand(path string) (string, error) {
	return homedir.Expand(path)
}

var _ ports.FileSystem = (*FileSystem)(nil)
