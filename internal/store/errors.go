package store

import (
	"errors"
	"fmt"
)

// Error classifications. Every error returned by FileStore wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrRead   = errors.New("database read error")
	ErrWrite  = errors.New("database write error")
	ErrFormat = errors.New("json error")
)

func classify(kind error, path string, err error) error {
	return fmt.Errorf("%w: %s: %w", kind, path, err)
}
