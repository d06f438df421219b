package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// LinkStore is the sqlx-backed implementation of LinkStoreIface.
// Every operation runs in its own transaction.
type LinkStore struct {
	db *sqlx.DB
}

// NewLinkStore returns a LinkStore over db. The links table must exist.
func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format.
func (s *LinkStore) q(query string) string { return s.db.Rebind(query) }

// withTx runs fn in a transaction, committing when fn succeeds and rolling
// back otherwise.
func (s *LinkStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Insert stores value with zero clicks and returns its assigned id.
func (s *LinkStore) Insert(ctx context.Context, value string) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		// MySQL has no RETURNING clause.
		if s.db.DriverName() == "mysql" {
			res, err := tx.ExecContext(ctx, `INSERT INTO links (value, clicks) VALUES (?, 0)`, value)
			if err != nil {
				return err
			}
			id, err = res.LastInsertId()
			return err
		}
		return tx.QueryRowxContext(ctx,
			s.q(`INSERT INTO links (value, clicks) VALUES (?, 0) RETURNING id`), value,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert link: %w", err)
	}
	return id, nil
}

// Get returns the link with the given id, or ErrNotFound.
func (s *LinkStore) Get(ctx context.Context, id int64) (*Link, error) {
	var l Link
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &l, s.q(`SELECT id, value, clicks FROM links WHERE id = ?`), id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get link %d: %w", id, err)
	}
	return &l, nil
}

// IncrementClicks adds one to the click counter of id in a single UPDATE,
// so concurrent redirects never lose an increment.
func (s *LinkStore) IncrementClicks(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, s.q(`UPDATE links SET clicks = clicks + 1 WHERE id = ?`), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("increment clicks %d: %w", id, err)
	}
	return nil
}

// Count returns the number of stored links.
func (s *LinkStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM links`); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *LinkStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
