// Package kv provides the string key/value backends the snapshot store
// persists through.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend kind.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidKey is returned for keys that are empty or contain path separators.
	ErrInvalidKey = errors.New("invalid key")
)

// Backend is a persistent string key/value capability.
type Backend interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// ValidKinds returns all backend kinds.
func ValidKinds() []Kind {
	return []Kind{KindFile, KindSQLite, KindMemory}
}

// ParseKind parses a backend kind case-insensitively. The empty string means
// KindFile.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if kind == "" {
		return KindFile, nil
	}
	for _, valid := range ValidKinds() {
		if kind == valid {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, value)
}

// Open opens the backend of the given kind rooted at path. For KindFile path
// is a directory; for KindSQLite it is the database file. KindMemory ignores
// path.
func Open(kind Kind, path string) (Backend, error) {
	switch kind {
	case KindFile:
		return NewFile(path), nil
	case KindSQLite:
		return OpenSQLite(path)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
