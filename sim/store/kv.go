// Package store persists a move and its records on the local device behind
// a small key-value interface. Persistence is best effort: nothing in sim/
// depends on it, and malformed stored data falls back to defaults.
package store

import (
	"errors"
	"fmt"
)

// KV is the persistence port: opaque byte values under string keys.
type KV interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Close releases the backend. Safe to call more than once.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// validBackends maps accepted backend strings.
var validBackends = map[string]bool{
	BackendMemory: true,
	BackendFile:   true,
	BackendSQLite: true,
	BackendRedis:  true,
}

// IsValidBackend returns true if the given string is a recognized backend.
func IsValidBackend(name string) bool {
	return validBackends[name]
}

// Open creates the named backend. path is a directory for "file", a database
// file for "sqlite", a redis:// url for "redis" and ignored for "memory".
func Open(backend, path string) (KV, error) {
	var (
		kv  KV
		err error
	)
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		kv, err = NewFileKV(path)
	case BackendSQLite:
		kv, err = NewSQLiteKV(path)
	case BackendRedis:
		kv, err = NewRedisKV(path)
	default:
		return nil, fmt.Errorf("%w: %q; valid: memory, file, sqlite, redis", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}
