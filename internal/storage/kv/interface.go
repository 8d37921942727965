// Package kv abstracts the key-value store the record table persists into.
// Three backends are provided: pebble (with optional application-level
// value compression), goleveldb, and an in-memory map for tests and
// standalone runs.
package kv

import "context"

// BatchOpType discriminates batch operations.
type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// BatchOperation is one element of an atomic batch.
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

// Iterator walks keys in ascending order. Key and Value are only valid
// until the next call to Next.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// DB is the backend contract. Implementations must be safe for concurrent
// use. Read returns ErrNotFound for missing keys; every method returns
// ErrClosed after Close.
type DB interface {
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	Batch(ctx context.Context, ops []BatchOperation) error

	// Iterator yields keys in [start, end). A nil bound is unbounded.
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)

	Close() error
}
