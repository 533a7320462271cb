package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

const userColumns = `id, username, email, password_hash, learning_style, knowledge_level, created_at`

// SQLRepository implements Repository over a dbx.DBTX for SQLite or
// PostgreSQL.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()

	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query),
		user.ID, user.UserName, user.Email, user.PasswordHash, user.LearningStyle, user.KnowledgeLevel, user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByLogin finds a user by email when login contains '@', otherwise by
// username.
func (r *SQLRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	column := "username"
	if strings.Contains(login, "@") {
		column = "email"
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, login)
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, dbx.Rebind(r.dialect, query), arg).
		Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.LearningStyle, &u.KnowledgeLevel, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
