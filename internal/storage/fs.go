package storage

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
)

// FSStore keeps one file per key under base.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// keys may carry ':' and '|' so they are path-escaped into a single file name
func (s *FSStore) path(key string) string {
	return filepath.Join(s.base, url.PathEscape(key)+".json")
}

func (s *FSStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *FSStore) Set(_ context.Context, key string, val []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	dst := s.path(key)
	tmp, err := os.CreateTemp(s.base, ".kv-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(val); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func (s *FSStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
