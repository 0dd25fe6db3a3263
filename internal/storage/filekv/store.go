// Package filekv stores each key as a JSON file in a directory, using diskv.
package filekv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/dayplan/internal/storage"
)

const (
	fileSuffix = ".json"
	tempDir    = ".tmp"
)

var errBadKey = errors.New("key must be a plain file name")

type Store struct {
	path string
	d    *diskv.Diskv
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key + fileSuffix}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, fileSuffix)
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:          s.path,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		TempDir:           filepath.Join(s.path, tempDir),
		CacheSizeMax:      1024 * 1024, // 1MB
		PathPerm:          0700,
		FilePerm:          0600,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.path, tempDir), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage not initialized, run 'dayplan init' first")
		}
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.path)
	}
	if err := os.MkdirAll(filepath.Join(s.path, tempDir), 0700); err != nil {
		return fmt.Errorf("failed to prepare data directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", errBadKey, key)
	}
	return nil
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.d == nil {
		return "", false, storage.ErrNotLoaded
	}
	if err := validKey(key); err != nil {
		return "", false, err
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return string(val), true, nil
}

func (s *Store) Set(key, value string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.d.WriteString(key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in sorted order.
func (s *Store) Keys() []string {
	if s.d == nil {
		return nil
	}
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) GetConfigPath() string {
	return s.path
}
