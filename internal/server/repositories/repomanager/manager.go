// Package repomanager vends repositories bound to a connection or
// transaction and runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/plans"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/progress"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Plans(db dbx.DBTX) plans.Repository
	Progress(db dbx.DBTX) progress.Repository
}
