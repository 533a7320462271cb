package plans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

const planColumns = `id, user_id, subject, domain, topic_origin, total_hours, daily_hours, total_days,
	scheduled_hours, unscheduled_hours, difficulty, knowledge_level, learning_style, study_purpose,
	exam_date, start_date, schedule, resources, motivation, created_at`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, p *models.StudyPlan) error {
	schedule, err := json.Marshal(emptyIfNil(p.Schedule))
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	resources, err := json.Marshal(emptyIfNil(p.Resources))
	if err != nil {
		return fmt.Errorf("encode resources: %w", err)
	}
	motivation, err := json.Marshal(p.Motivation)
	if err != nil {
		return fmt.Errorf("encode motivation: %w", err)
	}

	query := `INSERT INTO study_plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query),
		p.ID, p.UserID, p.Subject, p.Domain, p.TopicOrigin, p.TotalHours, p.DailyHours, p.TotalDays,
		p.ScheduledHours, p.UnscheduledHours, p.Difficulty, p.KnowledgeLevel, p.LearningStyle, p.StudyPurpose,
		p.ExamDate, p.StartDate, string(schedule), string(resources), string(motivation), p.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, dbx.Rebind(r.dialect, query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// ListByUser returns the user's plans, newest first.
func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]*models.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE user_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, dbx.Rebind(r.dialect, query), userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.StudyPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a plan. Missing plans return common.ErrorNotFound.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, `DELETE FROM study_plans WHERE id = ?`), id)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (*models.StudyPlan, error) {
	var (
		p                               models.StudyPlan
		schedule, resources, motivation string
	)
	err := s.Scan(&p.ID, &p.UserID, &p.Subject, &p.Domain, &p.TopicOrigin, &p.TotalHours, &p.DailyHours, &p.TotalDays,
		&p.ScheduledHours, &p.UnscheduledHours, &p.Difficulty, &p.KnowledgeLevel, &p.LearningStyle, &p.StudyPurpose,
		&p.ExamDate, &p.StartDate, &schedule, &resources, &motivation, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(schedule), &p.Schedule); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	if err := json.Unmarshal([]byte(resources), &p.Resources); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	if err := json.Unmarshal([]byte(motivation), &p.Motivation); err != nil {
		return nil, fmt.Errorf("decode motivation: %w", err)
	}
	return &p, nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
