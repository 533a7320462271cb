// Package repotest opens migrated in-memory SQLite databases for
// repository and service tests.
package repotest

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/migrations"
)

var gooseMu sync.Mutex

// OpenSQLite returns a fresh in-memory database with every migration
// applied. It is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect(migrations.GooseDialect(dbx.DialectSQLite)))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.Dir(dbx.DialectSQLite)))
	return db
}
