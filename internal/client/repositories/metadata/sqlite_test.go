package metadata

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	r.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return r, db
}

func TestSetAndGet(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "username", "alice"))
	v, err := r.Get(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	require.NoError(t, r.Set(ctx, "username", "bob"))
	v, err = r.Get(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "bob", v)
}

func TestGet_MissingKeyIsEmpty(t *testing.T) {
	r, _ := setupRepo(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSetMany_WritesAllWithTimestamp(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string]string{"b": "2", "a": "1"}))

	for k, want := range map[string]string{"a": "1", "b": "2"} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	var updated time.Time
	require.NoError(t, db.QueryRow(`SELECT updated_at FROM metadata WHERE key = 'a'`).Scan(&updated))
	assert.True(t, updated.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestDelete_SeveralKeysAndIdempotent(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string]string{"a": "1", "b": "2", "c": "3"}))
	require.NoError(t, r.Delete(ctx, "a", "b"))
	require.NoError(t, r.Delete(ctx, "a"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	assert.Equal(t, 1, n)
	v, err := r.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestErrorsAreWrapped(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, "get metadata[k]")

	assert.ErrorContains(t, r.Set(ctx, "k", "v"), "set metadata[k]")

	assert.Error(t, r.SetMany(ctx, map[string]string{"k": "v"}))
	assert.Error(t, r.Delete(ctx, "k"))
}
