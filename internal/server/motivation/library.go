package motivation

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/studyplanner/internal/server/datasets"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

const defaultTip = "Take regular breaks to maintain focus."

// Library holds curated quotes and study tips.
type Library struct {
	Quotes []models.Quote `json:"motivational_quotes"`
	Tips   []string       `json:"study_tips"`
}

// LoadLibrary reads motivation.json from dir, or the embedded copy.
func LoadLibrary(dir string) (*Library, error) {
	lib := &Library{}
	if err := datasets.Decode(dir, datasets.Motivation, lib); err != nil {
		return nil, err
	}
	for i := range lib.Quotes {
		lib.Quotes[i].Source = models.QuoteSourceLibrary
	}
	return lib, nil
}

// ForMood returns the quotes that target mood.
func (l *Library) ForMood(mood string) []models.Quote {
	var out []models.Quote
	for _, q := range l.Quotes {
		if slices.Contains(q.MoodTargets, mood) {
			out = append(out, q)
		}
	}
	return out
}

// Tip picks a tip by progress so that learners see them in sequence.
func (l *Library) Tip(progress float64) string {
	if len(l.Tips) == 0 {
		return defaultTip
	}
	i := int(progress*float64(len(l.Tips))) % len(l.Tips)
	if i < 0 {
		i = -i
	}
	return l.Tips[i]
}

// Encouragement renders progress (0..1) as a percentage.
func Encouragement(progress float64) string {
	return fmt.Sprintf("You're %.1f%% through your journey. Keep it up!", progress*100)
}
