package client

import (
	"context"

	"github.com/dmitrijs2005/studyplanner/internal/client/models"
)

// Client is the study planner API as seen by the CLI.
type Client interface {
	Health(ctx context.Context) error

	Register(ctx context.Context, r models.Registration) (*models.User, error)
	Login(ctx context.Context, login, password string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*models.User, error)

	GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]models.Plan, error)
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
	DeletePlan(ctx context.Context, id string) error
	GetProgress(ctx context.Context, planID string) (*models.Progress, error)
	UpdateProgress(ctx context.Context, planID string, completedHours int) (*models.Progress, error)

	FindResources(ctx context.Context, topic, difficulty, resourceType string, limit int) ([]models.Resource, error)
	Motivate(ctx context.Context, message, subject, planID string) (*models.MotivationResult, error)
	Analyze(ctx context.Context, text string) (*models.Analysis, error)
	Summarize(ctx context.Context, filename string, data []byte, question string) (*models.Summary, error)
}

// TokenStore keeps the session tokens between calls and runs.
type TokenStore interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	SaveTokens(ctx context.Context, access, refresh string) error
}
