package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by Load for unknown keys.
	ErrNotFound = errors.New("document not found")
	// ErrExists is returned by Save when the key is already stored and no
	// overwrite was requested. Callers treat it as a successful skip.
	ErrExists = errors.New("document already exists")
)

// Store persists raw fetched documents as plain files under a root
// directory. Keys are slash-separated relative paths; writes are
// whole-document, single-call, so an aborted run never leaves a partially
// written document behind a completed key.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Save writes content under key. An existing key is left untouched and
// reported as ErrExists unless overwrite is set; this protects
// already-downloaded history during category-subset re-runs.
func (s *Store) Save(key string, content []byte, overwrite bool) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return ErrExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize document %s: %w", key, err)
	}

	return nil
}

// Exists reports whether key is already stored, letting callers skip a
// fetch entirely on re-runs.
func (s *Store) Exists(key string) bool {
	path, err := s.path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load returns the stored content for key, or ErrNotFound.
func (s *Store) Load(key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return data, nil
}

// List returns all stored keys whose file name matches pattern (for example
// "*.html"), sorted. A missing root yields an empty list.
func (s *Store) List(pattern string) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}

		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid document key: %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
