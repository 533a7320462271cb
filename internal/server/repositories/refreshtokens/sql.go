// Package refreshtokens provides the SQL repository for refresh tokens used
// in the server's authentication flow.
package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

// SQLRepository implements CRUD operations for refresh tokens over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts a new refresh token for userID with an expiry time of now+validity.
func (r *SQLRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), userID, token, time.Now().UTC().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Find returns the refresh token row for the given token string.
// If not found, it returns common.ErrorNotFound.
func (r *SQLRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT user_id, token, expires_at
		FROM refresh_tokens
		WHERE token = ?
	`
	refreshToken := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, dbx.Rebind(r.dialect, query), token).
		Scan(&refreshToken.UserID, &refreshToken.Token, &refreshToken.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return refreshToken, nil
}

// Delete removes a refresh token by its token string.
func (r *SQLRepository) Delete(ctx context.Context, token string) error {
	_, err := r.delete(ctx, token)
	return err
}

// Consume deletes a refresh token and reports whether this call removed it.
// Of several callers racing on the same token only one sees true.
func (r *SQLRepository) Consume(ctx context.Context, token string) (bool, error) {
	n, err := r.delete(ctx, token)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) delete(ctx context.Context, token string) (int64, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE token = ?
	`
	res, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), token)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
