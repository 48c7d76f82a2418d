package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

type LocalStore struct {
	mediaRoot string
}

func NewLocalStore(mediaRoot string) *LocalStore {
	return &LocalStore{mediaRoot: mediaRoot}
}

func (s *LocalStore) Location(key string) string {
	return path.Join(toSlash(s.mediaRoot), key)
}

func (s *LocalStore) Save(_ context.Context, key string, r io.Reader) (string, error) {
	if err := os.MkdirAll(filepath.Dir(filepath.FromSlash(s.Location(key))), 0755); err != nil {
		return "", err
	}
	candidate := key
	for i := 1; i <= maxNameAttempts; i++ {
		f, err := os.OpenFile(filepath.FromSlash(s.Location(candidate)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if os.IsExist(err) {
				candidate = withSuffix(key, i)
				continue
			}
			return "", err
		}
		if _, err = io.Copy(f, r); err != nil {
			f.Close()
			_ = os.Remove(f.Name())
			return "", err
		}
		return candidate, f.Close()
	}
	return "", ErrNoAvailableName
}

func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.FromSlash(s.Location(key)))
}

// Delete ignores keys that are already gone.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.FromSlash(s.Location(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
