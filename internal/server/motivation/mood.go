// Package motivation detects a learner's mood from free text and picks a
// motivational quote, study tip and encouragement to match.
package motivation

import (
	"sort"
	"strings"
)

// Primary moods.
const (
	MoodMotivated       = "motivated"
	MoodOverwhelmed     = "overwhelmed"
	MoodDoubtful        = "doubtful"
	MoodExhausted       = "exhausted"
	MoodProcrastinating = "procrastinating"
	MoodNeutral         = "neutral"
)

const neutralScore = 0.5

type levels struct {
	high, medium, low []string
}

var dimensions = map[string]levels{
	"energy": {
		high:   []string{"energetic", "excited", "motivated", "ready", "pumped", "active", "vibrant"},
		medium: []string{"okay", "fine", "normal", "steady", "focused"},
		low:    []string{"tired", "exhausted", "drained", "sleepy", "lethargic", "burnt out", "weary"},
	},
	"confidence": {
		high:   []string{"confident", "sure", "capable", "strong", "prepared", "ready", "skilled"},
		medium: []string{"uncertain", "questioning", "learning", "trying"},
		low:    []string{"doubt", "imposter", "fake", "inadequate", "unqualified", "lost", "confused"},
	},
	"stress": {
		high:   []string{"overwhelmed", "stressed", "panic", "anxious", "pressure", "deadline", "cramming"},
		medium: []string{"busy", "tight schedule", "concerned", "worried"},
		low:    []string{"calm", "relaxed", "peaceful", "composed", "chill"},
	},
	"motivation": {
		high:   []string{"determined", "driven", "passionate", "committed", "focused", "ambitious"},
		medium: []string{"interested", "willing", "curious", "engaging"},
		low:    []string{"unmotivated", "procrastinating", "lazy", "bored", "disinterested", "avoiding"},
	},
	"frustration": {
		high:   []string{"frustrated", "angry", "stuck", "blocked", "annoyed", "difficult", "impossible"},
		medium: []string{"challenging", "hard", "tricky", "complex"},
		low:    []string{"smooth", "easy", "flowing", "clear", "straightforward"},
	},
}

var contextPatterns = map[string][]string{
	"exam_stress":          {"exam", "test", "quiz", "assessment", "evaluation", "grade"},
	"deadline_pressure":    {"deadline", "due", "submit", "assignment", "project"},
	"learning_struggle":    {"difficult", "hard", "complex", "confusing", "stuck"},
	"progress_celebration": {"finished", "completed", "achieved", "learned", "mastered"},
	"starting_journey":     {"beginning", "start", "new", "first time", "introduction"},
}

// moodRules are checked in order before falling back to dimension scores.
var moodRules = []struct {
	mood  string
	match func(text string) bool
}{
	{MoodProcrastinating, anyOf("trouble staying motivated", "having trouble", "not motivated", "unmotivated", "lack motivation")},
	{MoodDoubtful, anyOf("struggling with", "having difficulty", "trouble understanding", "can't understand")},
	{MoodOverwhelmed, anyOf("overwhelmed", "stressed", "anxious", "pressure", "too much")},
	{MoodMotivated, func(text string) bool {
		if containsAny(text, []string{"excited", "pumped", "love", "passionate", "thrilled"}) {
			return true
		}
		return strings.Contains(text, "motivated") && !strings.Contains(text, "trouble") && !strings.Contains(text, "not")
	}},
	{MoodExhausted, anyOf("tired", "exhausted", "burnt out", "drained", "sleepy")},
	{MoodDoubtful, anyOf("struggling", "difficult", "hard", "stuck", "confused", "lost")},
	{MoodProcrastinating, anyOf("procrastinating", "avoiding", "putting off", "lazy", "unmotivated")},
}

func anyOf(words ...string) func(string) bool {
	return func(text string) bool { return containsAny(text, words) }
}

// Profile is the result of mood analysis. Scores range from 0 to 1.
type Profile struct {
	Energy      float64  `json:"energy_level"`
	Confidence  float64  `json:"confidence_level"`
	Stress      float64  `json:"stress_level"`
	Motivation  float64  `json:"motivation_level"`
	Frustration float64  `json:"frustration_level"`
	PrimaryMood string   `json:"primary_mood"`
	Contexts    []string `json:"contexts"`
}

// Analyze scores the five dimensions and decides the primary mood.
// Matching is by substring of the lowercased text.
func Analyze(text string) Profile {
	lower := strings.ToLower(text)

	p := Profile{
		Energy:      score(dimensions["energy"], lower),
		Confidence:  score(dimensions["confidence"], lower),
		Stress:      score(dimensions["stress"], lower),
		Motivation:  score(dimensions["motivation"], lower),
		Frustration: score(dimensions["frustration"], lower),
		Contexts:    detectContexts(lower),
	}
	p.PrimaryMood = primaryMood(p, lower)
	return p
}

func score(l levels, text string) float64 {
	var sum float64
	var n int
	for _, g := range []struct {
		words  []string
		weight float64
	}{{l.high, 1}, {l.medium, 0.5}, {l.low, 0}} {
		for _, w := range g.words {
			if strings.Contains(text, w) {
				sum += g.weight
				n++
			}
		}
	}
	if n == 0 {
		return neutralScore
	}
	return sum / float64(n)
}

func primaryMood(p Profile, text string) string {
	for _, rule := range moodRules {
		if rule.match(text) {
			return rule.mood
		}
	}

	switch {
	case p.Stress > 0.6 || p.Frustration > 0.6:
		return MoodOverwhelmed
	case p.Confidence < 0.4:
		return MoodDoubtful
	case p.Energy < 0.4 && p.Motivation < 0.4:
		return MoodExhausted
	case p.Motivation > 0.6 && p.Energy > 0.5:
		return MoodMotivated
	case p.Motivation < 0.4:
		return MoodProcrastinating
	default:
		return MoodNeutral
	}
}

func detectContexts(text string) []string {
	out := []string{}
	for name, patterns := range contextPatterns {
		if containsAny(text, patterns) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
