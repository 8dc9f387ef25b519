/*
Package sqlite provides SQLite-backed snapshot persistence for the banking
ledger.

PURPOSE:
  Stores the eight-collection snapshot document durably. Each entity is one
  row holding its canonical JSON body; a position column preserves
  collection order so a load followed by a save round-trips exactly.

KEY TABLE:
  snapshot_entities(collection, position, id, body)

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

SAVE SEMANTICS:
  SaveSnapshot replaces the stored document in one SQL transaction - the
  previous snapshot stays intact if the write fails partway.

USAGE:
  store, err := sqlite.New("./data/bank.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  snap, err := store.LoadSnapshot(ctx)

SEE ALSO:
  - bank/snapshot.go: the document shape
  - store/jsonfile: file-based persistence of the same document
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/bank-ledger/bank"
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot_entities (
			collection TEXT    NOT NULL,
			position   INTEGER NOT NULL,
			id         TEXT    NOT NULL,
			body       TEXT    NOT NULL,
			PRIMARY KEY (collection, position)
		);
		CREATE INDEX IF NOT EXISTS idx_snapshot_entities_id
			ON snapshot_entities (collection, id);
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Collection names, in document order.
const (
	colCustomers       = "customers"
	colAccounts        = "accounts"
	colCards           = "cards"
	colStatements      = "statements"
	colTransactions    = "transactions"
	colPayees          = "payees"
	colPaymentRequests = "payment_requests"
	colDisputes        = "disputes"
)

// SaveSnapshot replaces the stored document atomically.
func (s *Store) SaveSnapshot(ctx context.Context, snap *bank.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_entities`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_entities (collection, position, id, body)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	write := func(collection string, position int, id string, entity any) error {
		body, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", collection, id, err)
		}
		if _, err := stmt.ExecContext(ctx, collection, position, id, string(body)); err != nil {
			return fmt.Errorf("insert %s %s: %w", collection, id, err)
		}
		return nil
	}

	for i, e := range snap.Customers {
		if err := write(colCustomers, i, e.CustomerID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.Accounts {
		if err := write(colAccounts, i, e.AccountID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.Cards {
		if err := write(colCards, i, e.CardID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.Statements {
		if err := write(colStatements, i, e.StatementID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.Transactions {
		if err := write(colTransactions, i, e.TxID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.Payees {
		if err := write(colPayees, i, e.PayeeID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.PaymentRequests {
		if err := write(colPaymentRequests, i, e.RequestID, e); err != nil {
			return err
		}
	}
	for i, e := range snap.Disputes {
		if err := write(colDisputes, i, e.DisputeID, e); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot rebuilds the document in stored order.
func (s *Store) LoadSnapshot(ctx context.Context) (*bank.Snapshot, error) {
	snap := &bank.Snapshot{
		Customers:       []*bank.Customer{},
		Accounts:        []*bank.Account{},
		Cards:           []*bank.Card{},
		Statements:      []*bank.Statement{},
		Transactions:    []*bank.Transaction{},
		Payees:          []*bank.Payee{},
		PaymentRequests: []*bank.PaymentRequest{},
		Disputes:        []*bank.Dispute{},
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, body
		FROM snapshot_entities
		ORDER BY collection, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var collection, body string
		if err := rows.Scan(&collection, &body); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if err := appendEntity(snap, collection, []byte(body)); err != nil {
			return nil, err
		}
	}
	return snap, rows.Err()
}

func appendEntity(snap *bank.Snapshot, collection string, body []byte) error {
	unmarshal := func(v any) error {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("unmarshal %s row: %w", collection, err)
		}
		return nil
	}

	switch collection {
	case colCustomers:
		var e bank.Customer
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Customers = append(snap.Customers, &e)
	case colAccounts:
		var e bank.Account
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Accounts = append(snap.Accounts, &e)
	case colCards:
		var e bank.Card
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Cards = append(snap.Cards, &e)
	case colStatements:
		var e bank.Statement
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Statements = append(snap.Statements, &e)
	case colTransactions:
		var e bank.Transaction
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Transactions = append(snap.Transactions, &e)
	case colPayees:
		var e bank.Payee
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Payees = append(snap.Payees, &e)
	case colPaymentRequests:
		var e bank.PaymentRequest
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.PaymentRequests = append(snap.PaymentRequests, &e)
	case colDisputes:
		var e bank.Dispute
		if err := unmarshal(&e); err != nil {
			return err
		}
		snap.Disputes = append(snap.Disputes, &e)
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
	return nil
}
