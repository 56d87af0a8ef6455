// Package cli implements the interactive lockbox shell: a small REPL over a
// credential store backed by the configured vault.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/lockbox/internal/config"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/securestore"
	"github.com/dmitrijs2005/lockbox/internal/vault"
)

type App struct {
	config *config.Config
	store  *securestore.Store[models.Credential]
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	// closes backend resources (db handles); nil for backends without any
	cleanup func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	adapter, cleanup, err := a.openVault(ctx)
	if err != nil {
		return nil, err
	}

	a.cleanup = cleanup
	a.store = securestore.New[models.Credential](adapter)

	return a, nil
}

// openVault builds the vault adapter selected by the config.
func (a *App) openVault(ctx context.Context) (vault.Adapter, func() error, error) {
	cfg := a.config

	a.log.Info(ctx, "opening vault", "backend", cfg.Backend, "namespace", cfg.Namespace)

	switch cfg.Backend {

	case config.BackendMemory:
		return vault.NewMemory(), nil, nil

	case config.BackendKeyring:
		return vault.NewKeyring(cfg.Namespace), nil, nil

	case config.BackendFile:
		passphrase, err := GetSecret("Enter vault passphrase", a.out)
		if err != nil {
			return nil, nil, fmt.Errorf("reading passphrase: %w", err)
		}
		defer cryptox.Wipe(passphrase)

		v, err := vault.NewFile(cfg.FileVaultDir, passphrase)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file vault: %w", err)
		}
		return v, nil, nil

	case config.BackendSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite vault: %w", err)
		}
		v := vault.NewSQLite(db)
		if err := v.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return v, db.Close, nil

	case config.BackendPostgres:
		db, err := vault.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		v := vault.NewPostgres(db)
		if err := v.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		return v, db.Close, nil

	case config.BackendS3:
		v, err := vault.NewS3(ctx, vault.S3Config{
			Region:          cfg.S3Region,
			BaseEndpoint:    cfg.S3BaseEndpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.Namespace,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening s3 vault: %w", err)
		}
		return v, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown vault backend %q", cfg.Backend)
	}
}

func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}
