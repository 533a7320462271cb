package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studyplanner/internal/client/client"
	"github.com/dmitrijs2005/studyplanner/internal/client/models"
	"github.com/dmitrijs2005/studyplanner/internal/filex"
)

// StudyService wraps the planner, resource and content endpoints.
type StudyService struct {
	api            client.Client
	auth           *AuthService
	maxUploadBytes int64
}

func NewStudyService(api client.Client, auth *AuthService, maxUploadBytes int64) *StudyService {
	return &StudyService{api: api, auth: auth, maxUploadBytes: maxUploadBytes}
}

func (s *StudyService) GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.GeneratePlan(ctx, req)
}

func (s *StudyService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.ListPlans(ctx)
}

func (s *StudyService) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.GetPlan(ctx, id)
}

func (s *StudyService) DeletePlan(ctx context.Context, id string) error {
	if err := s.auth.requireSession(ctx); err != nil {
		return err
	}
	return s.api.DeletePlan(ctx, id)
}

func (s *StudyService) Progress(ctx context.Context, planID string) (*models.Progress, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.GetProgress(ctx, planID)
}

func (s *StudyService) UpdateProgress(ctx context.Context, planID string, completedHours int) (*models.Progress, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.UpdateProgress(ctx, planID, completedHours)
}

func (s *StudyService) FindResources(ctx context.Context, topic, difficulty, resourceType string, limit int) ([]models.Resource, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.FindResources(ctx, topic, difficulty, resourceType, limit)
}

func (s *StudyService) Motivate(ctx context.Context, message, subject, planID string) (*models.MotivationResult, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.Motivate(ctx, message, subject, planID)
}

func (s *StudyService) Analyze(ctx context.Context, text string) (*models.Analysis, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	return s.api.Analyze(ctx, text)
}

// SummarizeFile uploads the file at path. An empty question asks for a
// summary; otherwise the document is used to answer it.
func (s *StudyService) SummarizeFile(ctx context.Context, path, question string) (*models.Summary, error) {
	if err := s.auth.requireSession(ctx); err != nil {
		return nil, err
	}
	name, data, err := filex.ReadDocument(path, s.maxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return s.api.Summarize(ctx, name, data, question)
}
