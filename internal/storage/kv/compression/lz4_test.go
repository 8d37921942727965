package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZ4Roundtrip(t *testing.T) {
	src := bytes.Repeat([]byte("reverse dutch auction "), 50)

	block, err := LZ4{}.Compress(src)
	require.NoError(t, err)
	require.NotEmpty(t, block)
	assert.Less(t, len(block), len(src))

	got, err := LZ4{}.Decompress(block, len(src))
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestForName(t *testing.T) {
	c, err := ForName("lz4")
	require.NoError(t, err)
	assert.Equal(t, "lz4", c.Name())

	c, err = ForName("none")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = ForName("zstd")
	assert.Error(t, err)
}
