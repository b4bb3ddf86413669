package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const dirPerms = 0o750

// Load reads and decodes the store file. A missing file surfaces as an
// error satisfying os.IsNotExist so the caller can run first-time setup.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	store, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return store, nil
}

// Save encodes the store and writes it atomically, creating the parent
// directory if needed. Readers never observe a partial document.
func Save(path string, s *Store) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return fmt.Errorf("cannot create store directory: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(Encode(s))); err != nil {
		return fmt.Errorf("cannot write store: %w", err)
	}

	return nil
}
