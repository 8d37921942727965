package kv

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// levelDB implements DB over syndtr/goleveldb.
type levelDB struct {
	db     *leveldb.DB
	closed atomic.Bool
}

// OpenLevelDB opens (or creates) a leveldb store at path.
func OpenLevelDB(path string) (DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	value, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (l *levelDB) Write(ctx context.Context, key, value []byte) error {
	if l.closed.Load() {
		return ErrClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *levelDB) Delete(ctx context.Context, key []byte) error {
	if l.closed.Load() {
		return ErrClosed
	}
	return l.db.Delete(key, nil)
}

func (l *levelDB) Batch(ctx context.Context, ops []BatchOperation) error {
	if l.closed.Load() {
		return ErrClosed
	}
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			batch.Put(op.Key, op.Value)
		case BatchDelete:
			batch.Delete(op.Key)
		}
	}
	return l.db.Write(batch, nil)
}

func (l *levelDB) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	it := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &levelIterator{it: it}, nil
}

func (l *levelDB) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.db.Close()
}

type levelIterator struct {
	it iterator.Iterator
}

func (i *levelIterator) Next() bool    { return i.it.Next() }
func (i *levelIterator) Key() []byte   { return i.it.Key() }
func (i *levelIterator) Value() []byte { return i.it.Value() }
func (i *levelIterator) Error() error  { return i.it.Error() }

func (i *levelIterator) Close() error {
	i.it.Release()
	return i.it.Error()
}
