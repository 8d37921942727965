// Package auctionstore persists auction records through the kv abstraction.
// Records are CBOR-encoded, keyed by big-endian identifier, and fronted by
// an LRU read cache. Terminal records are kept, never deleted.
package auctionstore

import (
	"context"
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ugorji/go/codec"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/storage/kv"
)

const defaultCacheSize = 1024

var keyPrefix = []byte("auc/")

// Store implements the registry's durable record table.
type Store struct {
	db     kv.DB
	cache  *lru.Cache[auction.ID, auction.Record]
	handle codec.CborHandle
}

// New builds a Store over db. cacheSize <= 0 selects the default. The
// Store owns db and closes it on Close.
func New(db kv.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[auction.ID, auction.Record](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// Put writes rec through to the backend and refreshes the cache.
func (s *Store) Put(rec auction.Record) error {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, &s.handle)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode auction %d: %w", rec.ID, err)
	}
	if err := s.db.Write(context.Background(), recordKey(rec.ID), buf); err != nil {
		return fmt.Errorf("write auction %d: %w", rec.ID, err)
	}
	s.cache.Add(rec.ID, rec)
	return nil
}

// Get returns the record for id, or found=false when absent.
func (s *Store) Get(id auction.ID) (rec auction.Record, found bool, err error) {
	if rec, ok := s.cache.Get(id); ok {
		return rec, true, nil
	}
	raw, err := s.db.Read(context.Background(), recordKey(id))
	if err == kv.ErrNotFound {
		return auction.Record{}, false, nil
	}
	if err != nil {
		return auction.Record{}, false, err
	}
	rec, err = s.decode(raw)
	if err != nil {
		return auction.Record{}, false, err
	}
	s.cache.Add(id, rec)
	return rec, true, nil
}

// ForEach replays every stored record in ascending identifier order.
func (s *Store) ForEach(fn func(rec auction.Record) error) error {
	it, err := s.db.Iterator(context.Background(), keyPrefix, prefixEnd(keyPrefix))
	if err != nil {
		return err
	}
	defer it.Close()
	for it.Next() {
		rec, err := s.decode(it.Value())
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return it.Error()
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) decode(raw []byte) (auction.Record, error) {
	var rec auction.Record
	dec := codec.NewDecoderBytes(raw, &s.handle)
	if err := dec.Decode(&rec); err != nil {
		return auction.Record{}, fmt.Errorf("decode auction record: %w", err)
	}
	return rec, nil
}

func recordKey(id auction.ID) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], uint64(id))
	return key
}

func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	end[len(end)-1]++
	return end
}
