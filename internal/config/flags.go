package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/lockbox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string     vault backend (memory|keyring|file|sqlite|postgres|s3)
//	-n string     vault namespace / keyring service name
//	-f string     directory for the file backend
//	-s string     database file for the sqlite backend
//	-dsn string   postgres connection string
//
// os.Args is filtered to the flags handled here (flagx.FilterArgs) so the
// JSON-config flags parsed elsewhere do not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-n", "-f", "-s", "-dsn"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "vault backend")
	fs.StringVar(&cfg.Namespace, "n", cfg.Namespace, "vault namespace")
	fs.StringVar(&cfg.FileVaultDir, "f", cfg.FileVaultDir, "file vault directory")
	fs.StringVar(&cfg.SQLitePath, "s", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "postgres dsn")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
