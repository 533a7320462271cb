package motivation

import (
	"strings"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

var fallbackQuotes = map[string]string{
	MoodOverwhelmed:     "Take it one step at a time. Every expert was once a beginner.",
	MoodDoubtful:        "You are more capable than you think. Trust your learning journey.",
	MoodExhausted:       "Rest is part of learning. Take care of yourself first.",
	MoodProcrastinating: "The best time to start was yesterday. The second best time is now.",
	MoodMotivated:       "Your enthusiasm is your superpower. Channel it wisely!",
	MoodNeutral:         "Every moment is a fresh opportunity to learn something new.",
}

// FallbackQuote is the canned quote for a mood.
func FallbackQuote(mood string) models.Quote {
	text, ok := fallbackQuotes[mood]
	if !ok {
		mood = MoodNeutral
		text = fallbackQuotes[MoodNeutral]
	}
	return models.Quote{
		Text:          text,
		Author:        "Study Mentor",
		Category:      "fallback",
		MoodTargets:   []string{mood},
		Effectiveness: 0.6,
		Source:        models.QuoteSourceFallback,
	}
}

var contextualFallbacks = []struct {
	words  []string
	text   string
	author string
}{
	{[]string{"struggling", "difficult", "hard"}, "Every challenge is an opportunity to grow stronger. You've got this!", "Learning Coach"},
	{[]string{"overwhelmed", "too much"}, "Break it down into smaller pieces. One step at a time leads to success.", "Study Mentor"},
	{[]string{"unmotivated", "no motivation"}, "Motivation follows action. Take one small step and momentum will build.", "Progress Guide"},
	{[]string{"procrastinating", "putting off"}, "The perfect moment is now. Start imperfectly rather than not at all.", "Action Coach"},
	{[]string{"anxious", "worried", "nervous"}, "Your anxiety shows you care. Channel that energy into focused learning.", "Mindful Mentor"},
}

// ContextualFallback answers what the learner wrote when the AI coach is
// not available, falling back to the mood quote.
func ContextualFallback(input, mood string) models.Quote {
	lower := strings.ToLower(input)
	for _, f := range contextualFallbacks {
		if containsAny(lower, f.words) {
			return models.Quote{
				Text:          f.text,
				Author:        f.author,
				Category:      "contextual_fallback",
				MoodTargets:   []string{mood},
				Effectiveness: 0.7,
				Source:        models.QuoteSourceContextual,
			}
		}
	}
	return FallbackQuote(mood)
}

var (
	challengeCues = []struct {
		words []string
		label string
	}{
		{[]string{"struggling", "difficult", "hard", "stuck"}, "facing learning difficulties"},
		{[]string{"overwhelmed", "too much", "can't handle"}, "feeling overwhelmed"},
		{[]string{"unmotivated", "no motivation", "don't want"}, "lacking motivation"},
		{[]string{"procrastinating", "putting off", "avoiding"}, "struggling with procrastination"},
		{[]string{"anxious", "worried", "nervous", "scared"}, "experiencing anxiety"},
	}
	positiveCues = []struct {
		words []string
		label string
	}{
		{[]string{"excited", "eager", "looking forward"}, "showing enthusiasm"},
		{[]string{"progress", "improving", "getting better"}, "making progress"},
	}
)

// Challenges lists the difficulties the learner describes.
func Challenges(input string) []string {
	lower := strings.ToLower(input)
	var out []string
	for _, c := range challengeCues {
		if containsAny(lower, c.words) {
			out = append(out, c.label)
		}
	}
	return out
}

// Positives lists the encouraging signals in the learner's text.
func Positives(input string) []string {
	lower := strings.ToLower(input)
	var out []string
	for _, c := range positiveCues {
		if containsAny(lower, c.words) {
			out = append(out, c.label)
		}
	}
	return out
}
