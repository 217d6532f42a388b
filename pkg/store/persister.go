package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by a Persister when no saved payload exists.
var ErrNotFound = errors.New("no persisted state found")

// Persister is a durable storage adapter for opaque state payloads. The
// store serializes Save calls through a single writer, but implementations
// must still leave the stored payload intact when a Save fails midway.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// HomeEnvVar overrides the base directory for file persistence.
const HomeEnvVar = "HOMESCREEN_HOME"

const appDirName = ".homescreen"

// FilePersister persists payloads as a JSON file under the user's home
// directory (or $HOMESCREEN_HOME when set).
type FilePersister struct {
	path string
}

// NewFilePersister creates the application directory if needed and returns
// a persister writing to the named file inside it.
func NewFilePersister(filename string) (*FilePersister, error) {
	home := os.Getenv(HomeEnvVar)
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
	}

	appDir := filepath.Join(home, appDirName)
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", appDir, err)
	}

	return &FilePersister{path: filepath.Join(appDir, filename)}, nil
}

// Path returns the backing file path.
func (p *FilePersister) Path() string {
	return p.path
}

func (p *FilePersister) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	return data, nil
}

// Save stages the payload in a temp file and renames it into place, so a
// reader never observes a partial write and concurrent saves cannot
// interleave within the file.
func (p *FilePersister) Save(ctx context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", p.path, err)
	}

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0600)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), p.path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", p.path, err)
	}
	return nil
}

func (p *FilePersister) Clear(ctx context.Context) error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", p.path, err)
	}
	return nil
}
