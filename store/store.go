// Package store holds the sentinel errors shared by the persistence backends.
package store

import "errors"

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate key")
	ErrConflict  = errors.New("store: document changed concurrently")
)
