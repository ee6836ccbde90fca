// Package storage provides the durable key-value store the client keeps its
// session token and display preferences in.
package storage

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyToken    = "token"
	KeyDarkMode = "darkMode"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage key not found")

// Storage is a durable key-value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetOr returns the stored value or fallback when the key is missing or unreadable.
func GetOr(ctx context.Context, s Storage, key, fallback string) string {
	if s == nil {
		return fallback
	}
	value, err := s.Get(ctx, key)
	if err != nil {
		return fallback
	}
	return value
}
