package models

import "time"

// Quote is a motivational quote from the library, a fallback or the AI coach.
type Quote struct {
	ID            string    `json:"id,omitempty"`
	Text          string    `json:"quote"`
	Author        string    `json:"author"`
	Category      string    `json:"category,omitempty"`
	MoodTargets   []string  `json:"mood_targets,omitempty"`
	Effectiveness float64   `json:"effectiveness,omitempty"`
	AIGenerated   bool      `json:"ai_generated,omitempty"`
	Source        string    `json:"source,omitempty"`
	GeneratedAt   time.Time `json:"-"`
}

// Quote sources.
const (
	QuoteSourceLibrary    = "library"
	QuoteSourceAI         = "ai"
	QuoteSourceFallback   = "fallback"
	QuoteSourceContextual = "contextual"
)

// Motivation is the coach's reply for a given mood and progress.
type Motivation struct {
	Mood          string `json:"mood"`
	Quote         Quote  `json:"quote"`
	Tip           string `json:"tip"`
	Encouragement string `json:"encouragement"`
	Source        string `json:"source"`
}
