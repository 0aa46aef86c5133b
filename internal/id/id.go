package id

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a random (version 4) UUID string.
func New() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return u.String(), nil
}

// Parse checks that s is a canonical UUID and returns it lower-cased.
func Parse(s string) (string, error) {
	if len(s) != 36 {
		return "", fmt.Errorf("invalid id %q: must be a 36 character uuid", s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return u.String(), nil
}
