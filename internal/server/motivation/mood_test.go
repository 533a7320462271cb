package motivation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_PrimaryMood(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"trouble staying motivated", "I'm having trouble staying motivated", MoodProcrastinating},
		{"struggling with subject", "I'm struggling with calculus", MoodDoubtful},
		{"overwhelmed", "I feel overwhelmed by everything", MoodOverwhelmed},
		{"excited", "I'm so excited to learn guitar!", MoodMotivated},
		{"plain motivated", "I am motivated today", MoodMotivated},
		{"tired", "I'm really tired after work", MoodExhausted},
		{"stuck", "I keep getting stuck", MoodDoubtful},
		{"putting off", "I keep putting off my reading", MoodProcrastinating},
		{"nothing matches", "hello there", MoodNeutral},
		{"case insensitive", "OVERWHELMED", MoodOverwhelmed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.text).PrimaryMood)
		})
	}
}

func TestAnalyze_Scores(t *testing.T) {
	p := Analyze("hello there")
	assert.Equal(t, neutralScore, p.Energy)
	assert.Equal(t, neutralScore, p.Stress)
	assert.Empty(t, p.Contexts)
	assert.NotNil(t, p.Contexts)

	p = Analyze("I am calm and relaxed")
	assert.Equal(t, 0.0, p.Stress)

	p = Analyze("tired but focused")
	assert.Equal(t, 0.25, p.Energy)
}

func TestAnalyze_Contexts(t *testing.T) {
	p := Analyze("The exam deadline is close and this is difficult")
	assert.Equal(t, []string{"deadline_pressure", "exam_stress", "learning_struggle"}, p.Contexts)
}

func TestSentiment(t *testing.T) {
	assert.Equal(t, SentimentResult{Mood: "positive", Polarity: 0.5, Subjectivity: 0.5}, Sentiment("I love this, it's great"))
	assert.Equal(t, SentimentResult{Mood: "negative", Polarity: -0.5, Subjectivity: 0.5}, Sentiment("This is awful and hard"))
	assert.Equal(t, SentimentResult{Mood: "neutral", Subjectivity: 0.5}, Sentiment("a table"))
}
