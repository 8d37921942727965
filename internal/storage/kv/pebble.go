package kv

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/storage/kv/compression"
)

// Values below this size are stored raw; block compression is not worth
// the flag byte and header on tiny records.
const minCompressSize = 64

// Value layout: 1 flag byte, then either the raw value (flag 0) or a
// 4-byte big-endian original length followed by the compressed block
// (flag 1).
const (
	flagRaw        = 0x00
	flagCompressed = 0x01
)

// PebbleStats is a point-in-time snapshot of backend counters.
type PebbleStats struct {
	Reads        uint64
	Writes       uint64
	BytesRead    uint64
	BytesWritten uint64
}

// pebbleDB implements DB over cockroachdb/pebble with optional
// application-level value compression.
type pebbleDB struct {
	db         *pebble.DB
	compressor compression.Compressor
	closed     atomic.Bool

	reads        atomic.Uint64
	writes       atomic.Uint64
	bytesRead    atomic.Uint64
	bytesWritten atomic.Uint64
}

// OpenPebble opens (or creates) a pebble store at path. compressorName
// selects the value compressor; "" or "none" disables it.
func OpenPebble(path, compressorName string) (DB, error) {
	comp, err := compression.ForName(compressorName)
	if err != nil {
		return nil, err
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &pebbleDB{db: db, compressor: comp}, nil
}

func (p *pebbleDB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	raw, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	value, err := p.decode(raw)
	if err != nil {
		return nil, err
	}
	p.reads.Add(1)
	p.bytesRead.Add(uint64(len(value)))
	return value, nil
}

func (p *pebbleDB) Write(ctx context.Context, key, value []byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	encoded, err := p.encode(value)
	if err != nil {
		return err
	}
	if err := p.db.Set(key, encoded, pebble.Sync); err != nil {
		return err
	}
	p.writes.Add(1)
	p.bytesWritten.Add(uint64(len(value)))
	return nil
}

func (p *pebbleDB) Delete(ctx context.Context, key []byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *pebbleDB) Batch(ctx context.Context, ops []BatchOperation) error {
	if p.closed.Load() {
		return ErrClosed
	}
	b := p.db.NewBatch()
	defer b.Close()
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			encoded, err := p.encode(op.Value)
			if err != nil {
				return err
			}
			if err := b.Set(op.Key, encoded, nil); err != nil {
				return err
			}
		case BatchDelete:
			if err := b.Delete(op.Key, nil); err != nil {
				return err
			}
		}
	}
	if err := p.db.Apply(b, pebble.Sync); err != nil {
		return err
	}
	p.writes.Add(uint64(len(ops)))
	return nil
}

func (p *pebbleDB) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	it, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return nil, err
	}
	return &pebbleIterator{it: it, parent: p}, nil
}

func (p *pebbleDB) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.db.Close()
}

// Stats returns a snapshot of the backend counters.
func (p *pebbleDB) Stats() PebbleStats {
	return PebbleStats{
		Reads:        p.reads.Load(),
		Writes:       p.writes.Load(),
		BytesRead:    p.bytesRead.Load(),
		BytesWritten: p.bytesWritten.Load(),
	}
}

func (p *pebbleDB) encode(value []byte) ([]byte, error) {
	if p.compressor != nil && len(value) >= minCompressSize {
		block, err := p.compressor.Compress(value)
		if err != nil {
			return nil, err
		}
		if len(block) > 0 && len(block)+5 < len(value)+1 {
			out := make([]byte, 5+len(block))
			out[0] = flagCompressed
			binary.BigEndian.PutUint32(out[1:5], uint32(len(value)))
			copy(out[5:], block)
			return out, nil
		}
	}
	out := make([]byte, 1+len(value))
	out[0] = flagRaw
	copy(out[1:], value)
	return out, nil
}

func (p *pebbleDB) decode(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("pebble value missing flag byte")
	}
	switch raw[0] {
	case flagRaw:
		out := make([]byte, len(raw)-1)
		copy(out, raw[1:])
		return out, nil
	case flagCompressed:
		if p.compressor == nil {
			return nil, fmt.Errorf("compressed value but no compressor configured")
		}
		if len(raw) < 5 {
			return nil, fmt.Errorf("compressed value header truncated")
		}
		size := binary.BigEndian.Uint32(raw[1:5])
		return p.compressor.Decompress(raw[5:], int(size))
	default:
		return nil, fmt.Errorf("unknown value flag 0x%02x", raw[0])
	}
}

type pebbleIterator struct {
	it      *pebble.Iterator
	parent  *pebbleDB
	started bool
	value   []byte
	err     error
}

func (i *pebbleIterator) Next() bool {
	var ok bool
	if !i.started {
		ok = i.it.First()
		i.started = true
	} else {
		ok = i.it.Next()
	}
	if !ok {
		return false
	}
	i.value, i.err = i.parent.decode(i.it.Value())
	return i.err == nil
}

func (i *pebbleIterator) Key() []byte { return i.it.Key() }

func (i *pebbleIterator) Value() []byte { return i.value }

func (i *pebbleIterator) Error() error {
	if i.err != nil {
		return i.err
	}
	return i.it.Error()
}

func (i *pebbleIterator) Close() error { return i.it.Close() }
