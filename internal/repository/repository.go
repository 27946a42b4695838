// Package repository contains data access abstractions, one per entity family.
// Implementations live in subpackages (mongo, memory, postgres, sqlite) and
// contain no business logic.
package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrParentNotFound indicates a reply referenced a parent comment that does
	// not exist under the same post.
	ErrParentNotFound = errors.New("repository: parent comment not found")
)

// Pinger is a store that can answer a lightweight liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}
