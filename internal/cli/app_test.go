package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lockbox/internal/config"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/securestore"
	"github.com/dmitrijs2005/lockbox/internal/vault"
)

// newTestApp builds an App over an in-memory vault with scripted stdin lines
// and a captured output buffer.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	a := &App{
		config: &config.Config{Backend: config.BackendMemory},
		store:  securestore.New[models.Credential](vault.NewMemory()),
		log:    logging.NewNopLogger(),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}
	return a, out
}

func stubSecret(t *testing.T, secret string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(fd int) ([]byte, error) { return []byte(secret), nil }
}

func TestAppAddAndGet(t *testing.T) {
	// add prompts: username, url, notes (password читается через stub)
	a, out := newTestApp(t, "alice\nhttps://example.com\nwork account\n")
	stubSecret(t, "p4ss")
	ctx := context.Background()

	a.add(ctx, []string{"session"})
	assert.Contains(t, out.String(), "Saved.")

	out.Reset()
	a.get(ctx, []string{"session"})
	assert.Contains(t, out.String(), "Username: alice")
	assert.Contains(t, out.String(), "Password: p4ss")
	assert.Contains(t, out.String(), "URL: https://example.com")
	assert.Contains(t, out.String(), "Notes: work account")
}

func TestAppAdd_DuplicateReported(t *testing.T) {
	a, out := newTestApp(t, "alice\n\n\nbob\n\n\n")
	stubSecret(t, "p4ss")
	ctx := context.Background()

	a.add(ctx, []string{"session"})
	out.Reset()

	a.add(ctx, []string{"session"})
	assert.Contains(t, out.String(), "already exists")
}

func TestAppGet_Missing(t *testing.T) {
	a, out := newTestApp(t, "")
	ctx := context.Background()

	a.get(ctx, []string{"missing"})
	assert.Contains(t, out.String(), "No such entry.")
}

func TestAppDelete(t *testing.T) {
	a, out := newTestApp(t, "alice\n\n\n")
	stubSecret(t, "p4ss")
	ctx := context.Background()

	a.add(ctx, []string{"session"})
	out.Reset()

	a.delete(ctx, []string{"session"})
	assert.Contains(t, out.String(), "Deleted.")

	out.Reset()
	a.delete(ctx, []string{"session"})
	assert.Contains(t, out.String(), "No such entry.")
}

func TestAppUpsert(t *testing.T) {
	a, out := newTestApp(t, "alice\n\n\nalice\n\n\n")
	stubSecret(t, "p4ss")
	ctx := context.Background()

	// absent key: behaves like add
	a.upsert(ctx, []string{"session"})
	assert.Contains(t, out.String(), "Saved.")

	// existing key: behaves like update, no complaint about duplicates
	out.Reset()
	a.upsert(ctx, []string{"session"})
	assert.Contains(t, out.String(), "Saved.")
	assert.NotContains(t, out.String(), "already exists")
}

func TestAppKeyPromptedWhenNoArg(t *testing.T) {
	a, out := newTestApp(t, "prompted-key\n")

	key, err := a.key(nil)
	require.NoError(t, err)
	assert.Equal(t, "prompted-key", key)
	assert.Contains(t, out.String(), "Entry key")
}

func TestOpenVault_Memory(t *testing.T) {
	a, _ := newTestApp(t, "")

	adapter, cleanup, err := a.openVault(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &vault.Memory{}, adapter)
	assert.Nil(t, cleanup)
}

func TestOpenVault_UnknownBackend(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.config.Backend = "tape"

	_, _, err := a.openVault(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown vault backend")
}

func TestOpenVault_SQLite(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.config.Backend = config.BackendSQLite
	a.config.SQLitePath = ":memory:"

	adapter, cleanup, err := a.openVault(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup()

	assert.IsType(t, &vault.SQLite{}, adapter)
}
