package motivation

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/genai"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func newTestCoach(t *testing.T, gen genai.Generator, lib *Library) *Coach {
	t.Helper()
	c := NewCoach(lib, gen, NewSelector(rand.NewPCG(7, 7)), logging.Nop{})
	c.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return c
}

func TestCoach_MotivateWithAI(t *testing.T) {
	gen := &fakeGenerator{text: `"Small steps every day add up." - Coach Kim`}
	c := newTestCoach(t, gen, &Library{Tips: []string{"tip"}})

	res := c.Motivate(context.Background(), "u1", "I feel overwhelmed", "Calculus", 0.25)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Calculus")
	assert.Equal(t, MoodOverwhelmed, res.Profile.PrimaryMood)
	assert.Equal(t, MoodOverwhelmed, res.Motivation.Mood)
	assert.Equal(t, "Small steps every day add up.", res.Motivation.Quote.Text)
	assert.Equal(t, "Coach Kim", res.Motivation.Quote.Author)
	assert.Equal(t, models.QuoteSourceAI, res.Motivation.Source)
	assert.Equal(t, "tip", res.Motivation.Tip)
	assert.Equal(t, "You're 25.0% through your journey. Keep it up!", res.Motivation.Encouragement)
}

func TestCoach_MotivateFallsBackWhenAIFails(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	c := newTestCoach(t, gen, &Library{})

	res := c.Motivate(context.Background(), "u1", "this is too hard", "Go", 0)

	assert.Equal(t, models.QuoteSourceContextual, res.Motivation.Source)
	assert.Equal(t, "Learning Coach", res.Motivation.Quote.Author)
	assert.Equal(t, "negative", res.Sentiment.Mood)
}

func TestCoach_MotivateWithoutAI(t *testing.T) {
	c := newTestCoach(t, nil, &Library{})
	res := c.Motivate(context.Background(), "u1", "hello", "Go", 0)
	assert.Equal(t, models.QuoteSourceFallback, res.Motivation.Source)
	assert.Equal(t, MoodNeutral, res.Motivation.Mood)
}

func TestCoach_ForMood(t *testing.T) {
	lib := &Library{Quotes: []models.Quote{
		{Text: "lib", MoodTargets: []string{MoodMotivated}, Source: models.QuoteSourceLibrary},
	}}
	c := newTestCoach(t, nil, lib)

	m := c.ForMood("u1", MoodMotivated, 0)
	assert.Equal(t, "lib", m.Quote.Text)
	assert.Equal(t, models.QuoteSourceLibrary, m.Source)

	m = c.ForMood("u1", MoodExhausted, 0)
	assert.Equal(t, models.QuoteSourceFallback, m.Source)
}
