// Package readthrough is a file-per-key disk cache. Keys are hashed, so any
// string works as a key.
package readthrough

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New returns a cache storing files named prefix+hash in dir. Entries older
// than ttl are misses; a zero ttl never expires.
func New(dir, prefix string, ttl time.Duration) *ReadThrough {
	return &ReadThrough{dir: dir, prefix: prefix, ttl: ttl, now: time.Now}
}

type ReadThrough struct {
	dir, prefix string
	ttl         time.Duration
	now         func() time.Time
}

var ErrMiss = errors.New("cache miss")

func (rt *ReadThrough) Get(key string) ([]byte, error) {
	hash, filename := rt.hashAndFilename(key)

	info, err := os.Stat(filename)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error checking for cache file '%s': %w", hash, err)
	} else if err != nil {
		return nil, fmt.Errorf("cache miss for '%s': %w", hash, ErrMiss)
	}

	if rt.ttl > 0 && rt.now().Sub(info.ModTime()) > rt.ttl {
		return nil, fmt.Errorf("cache entry '%s' expired: %w", hash, ErrMiss)
	}

	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading cache file '%s': %w", hash, err)
	}
	return bs, nil
}

func (rt *ReadThrough) Set(key string, value []byte) error {
	hash, filename := rt.hashAndFilename(key)

	if err := os.MkdirAll(rt.dir, 0o755); err != nil {
		return fmt.Errorf("error creating cache dir '%s': %w", rt.dir, err)
	}

	// each writer gets its own temp file, so concurrent sets of one key
	// race only on the rename
	tmp, err := os.CreateTemp(rt.dir, rt.prefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file for '%s': %w", hash, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing cache file '%s': %w", hash, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing cache file '%s': %w", hash, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("error moving cache file '%s' into place: %w", hash, err)
	}
	return nil
}

func (rt *ReadThrough) hashAndFilename(key string) (string, string) {
	var hasher = sha256.New()
	hasher.Write([]byte(key))
	hash := hex.EncodeToString(hasher.Sum(nil))
	return hash, filepath.Join(rt.dir, rt.prefix+hash)
}
