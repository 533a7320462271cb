package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/dbx"
	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/metrics"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
	"github.com/dmitrijs2005/studyplanner/internal/server/motivation"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studyplanner/internal/server/resources"
	"github.com/dmitrijs2005/studyplanner/internal/server/schedule"
	"github.com/dmitrijs2005/studyplanner/internal/server/validation"
)

const (
	planResourceLimit = 5
	legacyDailyHours  = 2
	legacyTotalDays   = 7
	legacySummaryDays = 3

	// CompletedTopic is the current topic once every scheduled hour is done.
	CompletedTopic = "Completed"
)

// TopicSource supplies topics for subjects.
type TopicSource interface {
	Topics(ctx context.Context, subject string, n int) ([]string, string)
}

// ResourceFinder ranks learning resources.
type ResourceFinder interface {
	Find(ctx context.Context, q resources.Query) []models.Resource
}

// Coach produces motivational content.
type Coach interface {
	ForMood(userID, mood string, progress float64) models.Motivation
	Motivate(ctx context.Context, userID, input, subject string, progress float64) motivation.Result
}

// PlanRequest describes the plan a learner asks for.
type PlanRequest struct {
	Subject        string `json:"subject" validate:"required,max=200"`
	DailyHours     int    `json:"available_hours_per_day" validate:"min=1,max=24"`
	TotalDays      int    `json:"total_days" validate:"min=1,max=365"`
	KnowledgeLevel string `json:"knowledge_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	LearningStyle  string `json:"learning_style,omitempty" validate:"max=50"`
	StudyPurpose   string `json:"study_purpose,omitempty" validate:"max=200"`
	ExamDate       string `json:"exam_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TopicCount     int    `json:"topic_count,omitempty" validate:"min=0,max=50"`
}

// PlannerService is the coordinator that turns a PlanRequest into a stored
// study plan and tracks progress through it.
type PlannerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	catalog     *schedule.Catalog
	topics      TopicSource
	finder      ResourceFinder
	coach       Coach
	log         logging.Logger
	now         func() time.Time
}

func NewPlannerService(db *sql.DB, m repomanager.RepositoryManager, catalog *schedule.Catalog,
	topics TopicSource, finder ResourceFinder, coach Coach, log logging.Logger) *PlannerService {
	return &PlannerService{
		db:          db,
		repomanager: m,
		catalog:     catalog,
		topics:      topics,
		finder:      finder,
		coach:       coach,
		log:         log.With("module", "planner"),
		now:         time.Now,
	}
}

// Generate builds a plan for userID and stores it with an initial progress
// row in one transaction.
func (s *PlannerService) Generate(ctx context.Context, userID string, req PlanRequest) (*models.StudyPlan, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if req.KnowledgeLevel == "" {
		req.KnowledgeLevel = common.LevelBeginner
	}
	if req.LearningStyle == "" {
		req.LearningStyle = common.DefaultLearningStyle
	}

	start := s.today()
	days, err := daysUntilExam(start, req.ExamDate, req.TotalDays)
	if err != nil {
		return nil, err
	}

	plan, err := s.build(ctx, req.Subject, req.KnowledgeLevel, req.DailyHours, days, req.TopicCount, start)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.NewString()
	plan.UserID = userID
	plan.LearningStyle = req.LearningStyle
	plan.StudyPurpose = req.StudyPurpose
	plan.ExamDate = req.ExamDate
	plan.Resources = s.finder.Find(ctx, resources.Query{
		Subject:    req.Subject,
		Difficulty: req.KnowledgeLevel,
		Limit:      planResourceLimit,
	})
	m := s.coach.ForMood(userID, motivation.MoodMotivated, 0)
	plan.Motivation = &m
	plan.CreatedAt = s.now().UTC()

	progress := &models.Progress{
		ID:           uuid.NewString(),
		UserID:       userID,
		PlanID:       plan.ID,
		CurrentTopic: currentTopic(plan.Schedule, 0),
		LastActivity: plan.CreatedAt,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Plans(tx).Create(ctx, plan); err != nil {
			return fmt.Errorf("error saving plan: %w", err)
		}
		if err := s.repomanager.Progress(tx).Create(ctx, progress); err != nil {
			return fmt.Errorf("error saving progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PlansGenerated.WithLabelValues(plan.TopicOrigin).Inc()
	s.log.Info(ctx, "plan generated", "user_id", userID, "plan_id", plan.ID,
		"subject", plan.Subject, "origin", plan.TopicOrigin, "days", plan.TotalDays)
	return plan, nil
}

// build runs the scheduling pipeline without persisting anything.
func (s *PlannerService) build(ctx context.Context, subject, level string, dailyHours, totalDays, topicCount int, start time.Time) (*models.StudyPlan, error) {
	estimated, difficulty := schedule.DefaultEstimatedHours, schedule.DefaultDifficulty
	if sub, ok := s.catalog.Lookup(subject); ok {
		estimated = sub.EstimatedHours
		if sub.Difficulty != "" {
			difficulty = sub.Difficulty
		}
	}

	topics, origin := s.topics.Topics(ctx, subject, topicCount)
	total := schedule.AdjustHours(estimated, level)

	res, err := schedule.Allocate(schedule.Input{
		Topics:     topics,
		TotalHours: total,
		DailyHours: dailyHours,
		TotalDays:  totalDays,
		Start:      start,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	return &models.StudyPlan{
		Subject:          subject,
		Domain:           schedule.ClassifyDomain(subject),
		TopicOrigin:      origin,
		TotalHours:       total,
		DailyHours:       dailyHours,
		TotalDays:        totalDays,
		ScheduledHours:   res.ScheduledHours,
		UnscheduledHours: res.UnscheduledHours,
		Difficulty:       difficulty,
		KnowledgeLevel:   level,
		StartDate:        start.Format(schedule.DateLayout),
		Schedule:         res.Days,
		Resources:        []models.Resource{},
	}, nil
}

// List returns the user's plans, newest first.
func (s *PlannerService) List(ctx context.Context, userID string) ([]*models.StudyPlan, error) {
	return s.repomanager.Plans(s.db).ListByUser(ctx, userID)
}

// Get returns a plan owned by userID. Other users' plans are reported as
// not found.
func (s *PlannerService) Get(ctx context.Context, userID, planID string) (*models.StudyPlan, error) {
	return s.owned(ctx, s.db, userID, planID)
}

// Delete removes a plan and its progress.
func (s *PlannerService) Delete(ctx context.Context, userID, planID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.owned(ctx, tx, userID, planID); err != nil {
			return err
		}
		if err := s.repomanager.Progress(tx).DeleteByPlan(ctx, planID); err != nil {
			return err
		}
		return s.repomanager.Plans(tx).Delete(ctx, planID)
	})
}

// Progress returns the progress row of a plan owned by userID.
func (s *PlannerService) Progress(ctx context.Context, userID, planID string) (*models.Progress, error) {
	if _, err := s.owned(ctx, s.db, userID, planID); err != nil {
		return nil, err
	}
	return s.repomanager.Progress(s.db).GetByPlan(ctx, planID)
}

// UpdateProgress records completed hours, clamped to the scheduled hours.
func (s *PlannerService) UpdateProgress(ctx context.Context, userID, planID string, completedHours int) (*models.Progress, error) {
	var out *models.Progress
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		plan, err := s.owned(ctx, tx, userID, planID)
		if err != nil {
			return err
		}

		repo := s.repomanager.Progress(tx)
		p, err := repo.GetByPlan(ctx, planID)
		if err != nil {
			return err
		}

		p.CompletedHours = min(max(completedHours, 0), plan.ScheduledHours)
		p.ProgressPercentage = 0
		if plan.ScheduledHours > 0 {
			p.ProgressPercentage = float64(p.CompletedHours) / float64(plan.ScheduledHours) * 100
		}
		p.CurrentTopic = currentTopic(plan.Schedule, p.CompletedHours)
		p.LastActivity = s.now().UTC()

		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Motivate answers the learner's message. When planID is given, the
// encouragement reflects progress through that plan.
func (s *PlannerService) Motivate(ctx context.Context, userID, input, subject, planID string) (motivation.Result, error) {
	progress := 0.0
	if planID != "" {
		p, err := s.Progress(ctx, userID, planID)
		if err != nil {
			return motivation.Result{}, err
		}
		progress = p.ProgressPercentage / 100
	}
	return s.coach.Motivate(ctx, userID, input, subject, progress), nil
}

// LegacySchedule is the short beginner schedule: 2 hours a day for a week,
// summarised as the first three days.
func (s *PlannerService) LegacySchedule(ctx context.Context, subject string) ([]string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: goal is required", common.ErrorValidation)
	}
	plan, err := s.build(ctx, subject, common.LevelBeginner, legacyDailyHours, legacyTotalDays, 0, s.today())
	if err != nil {
		return nil, err
	}
	return schedule.Summary(plan.Schedule, legacySummaryDays), nil
}

func (s *PlannerService) owned(ctx context.Context, db dbx.DBTX, userID, planID string) (*models.StudyPlan, error) {
	plan, err := s.repomanager.Plans(db).Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return plan, nil
}

func (s *PlannerService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysUntilExam caps totalDays so the plan ends by the exam. Exams outside
// the window leave it unchanged.
func daysUntilExam(start time.Time, examDate string, totalDays int) (int, error) {
	if examDate == "" {
		return totalDays, nil
	}
	exam, err := time.Parse(schedule.DateLayout, examDate)
	if err != nil {
		return 0, fmt.Errorf("%w: exam_date: %v", common.ErrorValidation, err)
	}
	if exam.Before(start) {
		return totalDays, nil
	}
	until := int(exam.Sub(start).Hours() / 24)
	if until < totalDays {
		return max(until, 1), nil
	}
	return totalDays, nil
}

// currentTopic is the topic that holds hour completed+1 of the schedule.
func currentTopic(days []models.DayPlan, completed int) string {
	acc := 0
	for _, d := range days {
		for _, t := range d.Topics {
			acc += t.Hours
			if acc > completed {
				return t.Topic
			}
		}
	}
	return CompletedTopic
}
