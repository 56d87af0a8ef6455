package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite stores entries in a local sqlite database, one row per key. It is
// the single-user alternative to the shared Postgres backend; open the
// database with the modernc.org/sqlite driver.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Init creates the vault table if it does not exist yet.
func (s *SQLite) Init(ctx context.Context) error {
	query := `
CREATE TABLE IF NOT EXISTS vault_entries (
  account TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  accessibility INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create vault table: %w", err)
	}
	return nil
}

func (s *SQLite) Add(ctx context.Context, key string, payload []byte, acc Accessibility) error {

	exists, err := s.exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	query := `INSERT INTO vault_entries (account, payload, accessibility) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, key, payload, int(acc)); err != nil {
		return backendErr("sqlite", "", err)
	}

	return nil
}

func (s *SQLite) Query(ctx context.Context, key string, wantData bool) ([]byte, error) {

	if !wantData {
		exists, err := s.exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, nil
	}

	query := `SELECT payload FROM vault_entries WHERE account = ?`
	row := s.db.QueryRowContext(ctx, query, key)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, backendErr("sqlite", "", err)
	}

	return payload, nil
}

func (s *SQLite) Update(ctx context.Context, key string, payload []byte, acc Accessibility) error {

	query := `UPDATE vault_entries SET payload = ?, accessibility = ? WHERE account = ?`
	result, err := s.db.ExecContext(ctx, query, payload, int(acc), key)
	if err != nil {
		return backendErr("sqlite", "", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return backendErr("sqlite", "", fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {

	query := `DELETE FROM vault_entries WHERE account = ?`
	result, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		return backendErr("sqlite", "", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return backendErr("sqlite", "", fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *SQLite) exists(ctx context.Context, key string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT 1 FROM vault_entries WHERE account = ?`, key)

	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, backendErr("sqlite", "", err)
	}
	return true, nil
}
