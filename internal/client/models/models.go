// Package models holds the client-side view of API payloads.
package models

import "time"

type User struct {
	ID             string    `json:"id"`
	UserName       string    `json:"username"`
	Email          string    `json:"email"`
	LearningStyle  string    `json:"learning_style"`
	KnowledgeLevel string    `json:"knowledge_level"`
	CreatedAt      time.Time `json:"created_at"`
}

type Registration struct {
	UserName       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	LearningStyle  string `json:"learning_style,omitempty"`
	KnowledgeLevel string `json:"knowledge_level,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	User         *User  `json:"user,omitempty"`
}

type PlanRequest struct {
	Subject        string `json:"subject"`
	DailyHours     int    `json:"available_hours_per_day"`
	TotalDays      int    `json:"total_days"`
	KnowledgeLevel string `json:"knowledge_level,omitempty"`
	LearningStyle  string `json:"learning_style,omitempty"`
	StudyPurpose   string `json:"study_purpose,omitempty"`
	ExamDate       string `json:"exam_date,omitempty"`
	TopicCount     int    `json:"topic_count,omitempty"`
}

type TopicSlot struct {
	Topic string `json:"topic"`
	Hours int    `json:"hours"`
}

type DayPlan struct {
	Day    int         `json:"day"`
	Date   string      `json:"date"`
	Hours  int         `json:"hours"`
	Topics []TopicSlot `json:"topics"`
	Goals  []string    `json:"goals"`
}

type Resource struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Difficulty   string  `json:"difficulty"`
	ResourceType string  `json:"resource_type"`
	Source       string  `json:"source"`
	Score        float64 `json:"similarity_score"`
}

type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

type Motivation struct {
	Mood          string `json:"mood"`
	Quote         Quote  `json:"quote"`
	Tip           string `json:"tip"`
	Encouragement string `json:"encouragement"`
}

type Plan struct {
	ID               string      `json:"id"`
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
	ExamDate         string      `json:"exam_date"`
	StartDate        string      `json:"start_date"`
	Schedule         []DayPlan   `json:"schedule"`
	Resources        []Resource  `json:"resources"`
	Motivation       *Motivation `json:"motivation"`
	CreatedAt        time.Time   `json:"created_at"`
}

type Progress struct {
	PlanID             string    `json:"plan_id"`
	CompletedHours     int       `json:"completed_hours"`
	CurrentTopic       string    `json:"current_topic"`
	ProgressPercentage float64   `json:"progress_percentage"`
	LastActivity       time.Time `json:"last_activity"`
}

type MoodAnalysis struct {
	PrimaryMood string   `json:"primary_mood"`
	Contexts    []string `json:"contexts"`
}

type MotivationResult struct {
	MoodAnalysis MoodAnalysis `json:"mood_analysis"`
	Motivation   Motivation   `json:"motivation"`
}

type Analysis struct {
	Normalized  string   `json:"normalized"`
	Tokens      []string `json:"tokens"`
	NoStopwords []string `json:"no_stopwords"`
	Stems       []string `json:"stemmed"`
	Lemmas      []string `json:"lemmatized"`
	TokenCount  int      `json:"token_count"`
	Sentiment   struct {
		Mood     string  `json:"mood"`
		Polarity float64 `json:"polarity"`
	} `json:"sentiment"`
}

type Summary struct {
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Question    string `json:"question"`
	Summary     string `json:"summary"`
	Answer      string `json:"answer"`
	Truncated   bool   `json:"truncated"`
	StorageKey  string `json:"storage_key"`
	DownloadURL string `json:"download_url"`
}
