package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE u (name TEXT UNIQUE NOT NULL)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO u(name) VALUES ('a')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO u(name) VALUES ('a')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", err)))

	_, err = db.ExecContext(ctx, `INSERT INTO u(name) VALUES (NULL)`)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("db: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
