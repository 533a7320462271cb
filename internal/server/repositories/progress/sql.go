package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, p *models.Progress) error {
	query := `INSERT INTO user_progress (id, user_id, plan_id, completed_hours, current_topic, progress_percentage, last_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query),
		p.ID, p.UserID, p.PlanID, p.CompletedHours, p.CurrentTopic, p.ProgressPercentage, p.LastActivity)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByPlan(ctx context.Context, planID string) (*models.Progress, error) {
	query := `SELECT id, user_id, plan_id, completed_hours, current_topic, progress_percentage, last_activity
		FROM user_progress WHERE plan_id = ?`
	p := &models.Progress{}
	err := r.db.QueryRowContext(ctx, dbx.Rebind(r.dialect, query), planID).
		Scan(&p.ID, &p.UserID, &p.PlanID, &p.CompletedHours, &p.CurrentTopic, &p.ProgressPercentage, &p.LastActivity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Update overwrites the counters of the row for p.PlanID.
func (r *SQLRepository) Update(ctx context.Context, p *models.Progress) error {
	query := `UPDATE user_progress
		SET completed_hours = ?, current_topic = ?, progress_percentage = ?, last_activity = ?
		WHERE plan_id = ?`
	res, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query),
		p.CompletedHours, p.CurrentTopic, p.ProgressPercentage, p.LastActivity, p.PlanID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) DeleteByPlan(ctx context.Context, planID string) error {
	if _, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, `DELETE FROM user_progress WHERE plan_id = ?`), planID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
