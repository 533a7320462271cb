// Package progress stores how far a learner is through each plan.
package progress

import (
	"context"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

// Repository keeps one progress row per plan.
type Repository interface {
	Create(ctx context.Context, p *models.Progress) error
	GetByPlan(ctx context.Context, planID string) (*models.Progress, error)
	Update(ctx context.Context, p *models.Progress) error
	DeleteByPlan(ctx context.Context, planID string) error
}
