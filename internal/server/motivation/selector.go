package motivation

import (
	"math/rand/v2"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

const (
	topCandidates = 3
	aiFreshness   = 24 * time.Hour
)

var timeKeywords = map[string][]string{
	"morning":    {"start", "begin", "fresh", "new day", "energy"},
	"afternoon":  {"progress", "continue", "push through", "halfway"},
	"evening":    {"reflect", "accomplish", "complete", "wrap up"},
	"late_night": {"persistence", "dedication", "final push", "almost there"},
}

// TimeOfDay buckets the hour of now.
func TimeOfDay(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 5 && h <= 11:
		return "morning"
	case h >= 12 && h <= 16:
		return "afternoon"
	case h >= 17 && h <= 21:
		return "evening"
	default:
		return "late_night"
	}
}

// Selector picks among candidate quotes, steering away from ones a user
// has already seen. It is safe for concurrent use.
type Selector struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	usage map[string]int
}

// NewSelector uses src for the final random pick.
func NewSelector(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src), usage: map[string]int{}}
}

func usageKey(userID string, q models.Quote) string {
	return userID + "\x00" + q.Text
}

// Score rates how well q fits the profile right now.
func (s *Selector) Score(q models.Quote, p Profile, userID string, now time.Time) float64 {
	s.mu.Lock()
	used := s.usage[usageKey(userID, q)]
	s.mu.Unlock()
	return quoteScore(q, p, used, now)
}

func quoteScore(q models.Quote, p Profile, used int, now time.Time) float64 {
	var sc float64
	if slices.Contains(q.MoodTargets, p.PrimaryMood) {
		sc += 0.4
	}
	sc -= min(float64(used)*0.1, 0.3)
	sc += q.Effectiveness * 0.3
	if q.AIGenerated && !q.GeneratedAt.IsZero() && now.Sub(q.GeneratedAt) < aiFreshness {
		sc += 0.2
	}
	if containsAny(strings.ToLower(q.Text), timeKeywords[TimeOfDay(now)]) {
		sc += 0.15
	}
	return sc
}

// Select scores candidates, picks randomly among the best three and
// records the pick against userID. It returns the zero Quote when there
// are no candidates.
func (s *Selector) Select(candidates []models.Quote, p Profile, userID string, now time.Time) models.Quote {
	if len(candidates) == 0 {
		return models.Quote{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type scored struct {
		q     models.Quote
		score float64
	}
	list := make([]scored, len(candidates))
	for i, q := range candidates {
		list[i] = scored{q: q, score: quoteScore(q, p, s.usage[usageKey(userID, q)], now)}
	}
	sort.SliceStable(list, func(a, b int) bool { return list[a].score > list[b].score })

	top := min(topCandidates, len(list))
	picked := list[s.rnd.IntN(top)].q

	if userID != "" {
		s.usage[usageKey(userID, picked)]++
	}
	return picked
}
