package motivation

import "strings"

var (
	positiveWords = []string{"good", "great", "excellent", "amazing", "love", "enjoy", "excited", "confident"}
	negativeWords = []string{"bad", "terrible", "awful", "hate", "frustrated", "overwhelmed", "difficult", "hard"}
)

// SentimentResult is a coarse polarity reading.
type SentimentResult struct {
	Mood         string  `json:"mood"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Sentiment compares counts of positive and negative words.
func Sentiment(text string) SentimentResult {
	lower := strings.ToLower(text)
	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	res := SentimentResult{Mood: "neutral", Subjectivity: 0.5}
	switch {
	case pos > neg:
		res.Mood, res.Polarity = "positive", 0.5
	case neg > pos:
		res.Mood, res.Polarity = "negative", -0.5
	}
	return res
}
