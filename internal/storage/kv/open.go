package kv

import "fmt"

// Options selects and tunes a backend.
type Options struct {
	// Backend is one of "pebble", "leveldb", "memory".
	Backend string

	// Path is the on-disk location; ignored by the memory backend.
	Path string

	// Compression names a value compressor for the pebble backend.
	Compression string
}

// Open builds the configured backend.
func Open(opts Options) (DB, error) {
	switch opts.Backend {
	case "pebble":
		return OpenPebble(opts.Path, opts.Compression)
	case "leveldb":
		return OpenLevelDB(opts.Path)
	case "memory":
		return OpenMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
