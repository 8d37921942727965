package kv

import (
	"bytes"
	"context"
	"sort"
	"sync"
)

// memoryDB is the map-backed DB used by tests and standalone runs.
type memoryDB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// OpenMemory returns an empty in-memory store.
func OpenMemory() DB {
	return &memoryDB{data: make(map[string][]byte)}
}

func (m *memoryDB) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	value, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *memoryDB) Write(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[string(key)] = stored
	return nil
}

func (m *memoryDB) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *memoryDB) Batch(ctx context.Context, ops []BatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			stored := make([]byte, len(op.Value))
			copy(stored, op.Value)
			m.data[string(op.Key)] = stored
		case BatchDelete:
			delete(m.data, string(op.Key))
		}
	}
	return nil
}

// Iterator snapshots the matching keys, so mutations during iteration are
// not observed.
func (m *memoryDB) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	var keys []string
	for k := range m.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	it := &memoryIterator{pos: -1}
	for _, k := range keys {
		value := make([]byte, len(m.data[k]))
		copy(value, m.data[k])
		it.keys = append(it.keys, []byte(k))
		it.values = append(it.values, value)
	}
	return it, nil
}

func (m *memoryDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type memoryIterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

func (i *memoryIterator) Next() bool {
	if i.pos+1 >= len(i.keys) {
		return false
	}
	i.pos++
	return true
}

func (i *memoryIterator) Key() []byte   { return i.keys[i.pos] }
func (i *memoryIterator) Value() []byte { return i.values[i.pos] }
func (i *memoryIterator) Error() error  { return nil }
func (i *memoryIterator) Close() error  { return nil }
