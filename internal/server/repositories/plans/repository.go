// Package plans stores generated study plans.
package plans

import (
	"context"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

// Repository persists study plans. Schedule, resources and motivation are
// kept as JSON text.
type Repository interface {
	Create(ctx context.Context, plan *models.StudyPlan) error
	Get(ctx context.Context, id string) (*models.StudyPlan, error)
	ListByUser(ctx context.Context, userID string) ([]*models.StudyPlan, error)
	Delete(ctx context.Context, id string) error
}
