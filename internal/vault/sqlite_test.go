package vault

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSQLiteVault(t *testing.T) *SQLite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v := NewSQLite(db)
	require.NoError(t, v.Init(context.Background()))
	return v
}

func TestSQLite_AddQuery(t *testing.T) {
	v := newSQLiteVault(t)
	ctx := context.Background()

	require.NoError(t, v.Add(ctx, "k1", []byte("v1"), AccessibleAlways))

	data, err := v.Query(ctx, "k1", true)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)

	data, err = v.Query(ctx, "k1", false)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSQLite_AddDuplicate(t *testing.T) {
	v := newSQLiteVault(t)
	ctx := context.Background()

	require.NoError(t, v.Add(ctx, "k1", []byte("v1"), AccessibleWhenUnlocked))
	require.ErrorIs(t, v.Add(ctx, "k1", []byte("v2"), AccessibleWhenUnlocked), ErrDuplicate)
}

func TestSQLite_QueryMissing(t *testing.T) {
	v := newSQLiteVault(t)

	_, err := v.Query(context.Background(), "missing", true)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = v.Query(context.Background(), "missing", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_Update(t *testing.T) {
	v := newSQLiteVault(t)
	ctx := context.Background()

	require.ErrorIs(t, v.Update(ctx, "k1", []byte("v"), AccessibleWhenUnlocked), ErrNotFound)

	require.NoError(t, v.Add(ctx, "k1", []byte("v1"), AccessibleWhenUnlocked))
	require.NoError(t, v.Update(ctx, "k1", []byte("v2"), AccessibleWhenUnlocked))

	data, err := v.Query(ctx, "k1", true)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestSQLite_Delete(t *testing.T) {
	v := newSQLiteVault(t)
	ctx := context.Background()

	require.ErrorIs(t, v.Delete(ctx, "k1"), ErrNotFound)

	require.NoError(t, v.Add(ctx, "k1", []byte("v1"), AccessibleWhenUnlocked))
	require.NoError(t, v.Delete(ctx, "k1"))

	_, err := v.Query(ctx, "k1", false)
	require.ErrorIs(t, err, ErrNotFound)
}
