package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/lockbox/internal/vault/migrations"
)

const pgUniqueViolation = "23505"

// Postgres stores entries in a shared postgres database, one row per key.
// Use OpenPostgres + RunMigrations to prepare the connection, or wrap an
// existing *sql.DB with NewPostgres.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres opens a connection via the pgx stdlib driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func (p *Postgres) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, p.db, "."); err != nil {
		return err
	}

	return nil
}

func (p *Postgres) Add(ctx context.Context, key string, payload []byte, acc Accessibility) error {

	query := `INSERT INTO vault_entries (account, payload, accessibility) VALUES ($1, $2, $3)`
	if _, err := p.db.ExecContext(ctx, query, key, payload, int(acc)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicate
		}
		return pgBackendErr(err)
	}

	return nil
}

func (p *Postgres) Query(ctx context.Context, key string, wantData bool) ([]byte, error) {

	query := `SELECT payload FROM vault_entries WHERE account = $1`
	if !wantData {
		query = `SELECT NULL FROM vault_entries WHERE account = $1`
	}

	var payload []byte
	if err := p.db.QueryRowContext(ctx, query, key).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, pgBackendErr(err)
	}

	if !wantData {
		return nil, nil
	}
	return payload, nil
}

func (p *Postgres) Update(ctx context.Context, key string, payload []byte, acc Accessibility) error {

	query := `UPDATE vault_entries SET payload = $1, accessibility = $2, updated_at = now() WHERE account = $3`
	result, err := p.db.ExecContext(ctx, query, payload, int(acc), key)
	if err != nil {
		return pgBackendErr(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return pgBackendErr(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {

	query := `DELETE FROM vault_entries WHERE account = $1`
	result, err := p.db.ExecContext(ctx, query, key)
	if err != nil {
		return pgBackendErr(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return pgBackendErr(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// pgBackendErr preserves the SQLSTATE code when the driver reports one.
func pgBackendErr(err error) *BackendError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return backendErr("postgres", pgErr.Code, err)
	}
	return backendErr("postgres", "", err)
}
