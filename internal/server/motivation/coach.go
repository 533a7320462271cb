package motivation

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/genai"
	"github.com/dmitrijs2005/studyplanner/internal/server/metrics"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

// Result is everything the coach says in reply to the learner.
type Result struct {
	Profile    Profile           `json:"mood_analysis"`
	Sentiment  SentimentResult   `json:"sentiment"`
	Motivation models.Motivation `json:"motivation"`
}

// Coach combines mood analysis, the quote library and the AI generator.
type Coach struct {
	lib      *Library
	gen      genai.Generator
	selector *Selector
	log      logging.Logger
	now      func() time.Time
}

// NewCoach builds a Coach. A nil generator disables AI quotes.
func NewCoach(lib *Library, gen genai.Generator, selector *Selector, log logging.Logger) *Coach {
	if gen == nil {
		gen = genai.Disabled{}
	}
	if selector == nil {
		selector = NewSelector(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Coach{
		lib:      lib,
		gen:      gen,
		selector: selector,
		log:      log.With("module", "motivation"),
		now:      time.Now,
	}
}

// Motivate analyses what the learner wrote and answers with a quote, a tip
// and an encouragement for their progress (0..1).
func (c *Coach) Motivate(ctx context.Context, userID, input, subject string, progress float64) Result {
	profile := Analyze(input)
	metrics.MoodsDetected.WithLabelValues(profile.PrimaryMood).Inc()

	personal := c.personalQuote(ctx, input, subject, profile)
	candidates := append(c.lib.ForMood(profile.PrimaryMood), personal)

	return Result{
		Profile:    profile,
		Sentiment:  Sentiment(input),
		Motivation: c.compose(profile, candidates, userID, progress),
	}
}

// ForMood answers without any learner text, e.g. when a plan is created.
func (c *Coach) ForMood(userID, mood string, progress float64) models.Motivation {
	profile := Profile{PrimaryMood: mood}
	candidates := c.lib.ForMood(mood)
	if len(candidates) == 0 {
		candidates = []models.Quote{FallbackQuote(mood)}
	}
	return c.compose(profile, candidates, userID, progress)
}

func (c *Coach) compose(p Profile, candidates []models.Quote, userID string, progress float64) models.Motivation {
	q := c.selector.Select(candidates, p, userID, c.now())
	return models.Motivation{
		Mood:          p.PrimaryMood,
		Quote:         q,
		Tip:           c.lib.Tip(progress),
		Encouragement: Encouragement(progress),
		Source:        q.Source,
	}
}

func (c *Coach) personalQuote(ctx context.Context, input, subject string, p Profile) models.Quote {
	if !genai.Enabled(c.gen) {
		return ContextualFallback(input, p.PrimaryMood)
	}

	prompt := genai.MotivationPrompt(input, subject, Challenges(input), Positives(input))
	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.log.Warn(ctx, "ai quote generation failed, using fallback", "error", err)
		return ContextualFallback(input, p.PrimaryMood)
	}

	quote, author := genai.ParseQuote(text)
	return models.Quote{
		Text:          quote,
		Author:        author,
		Category:      "ai_generated",
		MoodTargets:   []string{p.PrimaryMood},
		Effectiveness: 0.9,
		AIGenerated:   true,
		Source:        models.QuoteSourceAI,
		GeneratedAt:   c.now(),
	}
}
