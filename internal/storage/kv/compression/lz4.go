package compression

import (
	"fmt"

	"github.com/pierrec/lz4"
)

// LZ4 compresses values with lz4 block encoding.
type LZ4 struct{}

func (LZ4) Name() string { return "lz4" }

// Compress returns the lz4 block for src. A zero-length result means the
// input was incompressible; callers should store it raw.
func (LZ4) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var ht [1 << 16]int
	n, err := lz4.CompressBlock(src, dst, ht[:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return dst[:n], nil
}

func (LZ4) Decompress(src []byte, originalSize int) ([]byte, error) {
	dst := make([]byte, originalSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return dst[:n], nil
}
