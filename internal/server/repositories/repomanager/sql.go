package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/migrations"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/plans"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/progress"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/users"
)

// SQLRepositoryManager vends SQL repositories for one dialect and exposes
// a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db, m.dialect)
}

// Plans returns a plans.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Plans(db dbx.DBTX) plans.Repository {
	return plans.NewSQLRepository(db, m.dialect)
}

// Progress returns a progress.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Progress(db dbx.DBTX) progress.Repository {
	return progress.NewSQLRepository(db, m.dialect)
}

// Dialect reports the SQL dialect of the vended repositories.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations for the
// manager's dialect and runs them against db.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(migrations.GooseDialect(m.dialect)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, migrations.Dir(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for the given
// database/sql driver name ("sqlite" or "pgx").
func NewSQLRepositoryManager(driver string) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dbx.DialectForDriver(driver)}
}
