package kv

import "errors"

var (
	ErrNotFound       = errors.New("kv: key not found")
	ErrClosed         = errors.New("kv: database closed")
	ErrUnknownBackend = errors.New("kv: unknown backend")
)
