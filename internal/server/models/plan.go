package models

import "time"

// TopicSlot is a block of hours spent on one topic within a day.
type TopicSlot struct {
	Topic string `json:"topic"`
	Hours int    `json:"hours"`
	Type  string `json:"type"`
}

// DayPlan is one calendar day of a study schedule.
type DayPlan struct {
	Day    int         `json:"day"`
	Date   string      `json:"date"`
	Hours  int         `json:"hours"`
	Topics []TopicSlot `json:"topics"`
	Goals  []string    `json:"goals"`
}

// StudyPlan is a generated, persisted schedule for one subject.
type StudyPlan struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Subject          string      `json:"subject"`
	Domain           string      `json:"domain"`
	TopicOrigin      string      `json:"topic_origin"`
	TotalHours       int         `json:"total_hours"`
	DailyHours       int         `json:"daily_hours"`
	TotalDays        int         `json:"total_days"`
	ScheduledHours   int         `json:"scheduled_hours"`
	UnscheduledHours int         `json:"unscheduled_hours"`
	Difficulty       string      `json:"difficulty"`
	KnowledgeLevel   string      `json:"knowledge_level"`
	LearningStyle    string      `json:"learning_style"`
	StudyPurpose     string      `json:"study_purpose,omitempty"`
	ExamDate         string      `json:"exam_date,omitempty"`
	StartDate        string      `json:"start_date"`
	Schedule         []DayPlan   `json:"schedule"`
	Resources        []Resource  `json:"resources"`
	Motivation       *Motivation `json:"motivation,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Progress tracks how far a user is through a plan.
type Progress struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	PlanID             string    `json:"plan_id"`
	CompletedHours     int       `json:"completed_hours"`
	CurrentTopic       string    `json:"current_topic"`
	ProgressPercentage float64   `json:"progress_percentage"`
	LastActivity       time.Time `json:"last_activity"`
}
