// Package compression provides the pluggable value compressors used by the
// pebble backend.
package compression

import "fmt"

// Compressor compresses opaque values. Decompress needs the original size
// because block formats do not carry it.
type Compressor interface {
	Name() string
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte, originalSize int) ([]byte, error)
}

// ForName resolves a configured compressor name. The empty string and
// "none" disable compression.
func ForName(name string) (Compressor, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "lz4":
		return LZ4{}, nil
	default:
		return nil, fmt.Errorf("unknown compressor %q", name)
	}
}
