// Package audit archives terminal auction outcomes in a relational
// database, queryable by auction id. Both sqlite (embedded) and postgres
// are supported; the driver is selected by configuration.
package audit

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

// ErrNotArchived is returned when no outcome is recorded for an id.
var ErrNotArchived = errors.New("audit: auction not archived")

// Outcome discriminates how a listing terminated.
type Outcome string

const (
	OutcomeSettled   Outcome = "settled"
	OutcomeCancelled Outcome = "cancelled"
)

// Entry is one archived terminal auction.
type Entry struct {
	ID         auction.ID
	Seller     ledger.AccountID
	Asset      ledger.AssetID
	Amount     uint64
	Outcome    Outcome
	Buyer      ledger.AccountID // empty for cancellations
	Price      uint64           // zero for cancellations
	RecordedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS auction_archive (
	id          BIGINT PRIMARY KEY,
	seller      TEXT NOT NULL,
	asset       TEXT NOT NULL,
	amount      BIGINT NOT NULL,
	outcome     TEXT NOT NULL,
	buyer       TEXT NOT NULL,
	price       BIGINT NOT NULL,
	recorded_at TIMESTAMP NOT NULL
)`

// Store is the relational archive.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects with the given driver ("sqlite" or "postgres") and DSN and
// ensures the schema exists.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit schema: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

// RecordSettled archives a settled listing.
func (s *Store) RecordSettled(rec auction.Record, buyer ledger.AccountID, price uint64) error {
	return s.insert(rec, OutcomeSettled, buyer, price)
}

// RecordCancelled archives a cancelled listing.
func (s *Store) RecordCancelled(rec auction.Record) error {
	return s.insert(rec, OutcomeCancelled, "", 0)
}

func (s *Store) insert(rec auction.Record, outcome Outcome, buyer ledger.AccountID, price uint64) error {
	query := s.rebind(`INSERT INTO auction_archive
		(id, seller, asset, amount, outcome, buyer, price, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	_, err := s.db.Exec(query,
		int64(rec.ID), string(rec.Seller), string(rec.Asset), int64(rec.Amount),
		string(outcome), string(buyer), int64(price), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive auction %d: %w", rec.ID, err)
	}
	return nil
}

// GetByID returns the archived outcome for id.
func (s *Store) GetByID(id auction.ID) (Entry, error) {
	query := s.rebind(`SELECT id, seller, asset, amount, outcome, buyer, price, recorded_at
		FROM auction_archive WHERE id = $1`)
	row := s.db.QueryRow(query, int64(id))

	var e Entry
	var rawID, amount, price int64
	var seller, asset, outcome, buyer string
	if err := row.Scan(&rawID, &seller, &asset, &amount, &outcome, &buyer, &price, &e.RecordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotArchived
		}
		return Entry{}, err
	}
	e.ID = auction.ID(rawID)
	e.Seller = ledger.AccountID(seller)
	e.Asset = ledger.AssetID(asset)
	e.Amount = uint64(amount)
	e.Outcome = Outcome(outcome)
	e.Buyer = ledger.AccountID(buyer)
	e.Price = uint64(price)
	return e, nil
}

// Close closes the archive connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites $N placeholders to ? for drivers that want them.
func (s *Store) rebind(query string) string {
	if s.driver == "postgres" {
		return query
	}
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if j > i+1 {
				b.WriteByte('?')
				i = j - 1
				continue
			}
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
