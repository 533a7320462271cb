// Package schedule turns a subject and a time budget into a day-by-day
// study schedule: it classifies the subject, proposes topics and spreads
// the hours across the available days.
package schedule

import (
	"strings"
	"unicode"
)

const DomainGeneric = "generic"

type domain struct {
	name     string
	keywords []string
}

// domains are scored in this order; on a tie the earlier one wins.
var domains = []domain{
	{"technology", []string{
		"programming", "coding", "software", "development", "computer", "web", "app",
		"algorithm", "database", "api", "framework", "library", "javascript", "python",
		"java", "react", "node", "html", "css", "sql", "git", "devops", "cloud",
		"artificial intelligence", "machine learning", "data science", "cybersecurity",
	}},
	{"fitness", []string{
		"fitness", "gym", "workout", "exercise", "bodybuilding", "training", "sport",
		"athletic", "muscle", "strength", "cardio", "yoga", "pilates", "crossfit",
		"running", "swimming", "cycling", "weightlifting", "powerlifting", "calisthenics",
	}},
	{"health", []string{
		"health", "medical", "wellness", "therapy", "medicine", "healthcare", "nutrition",
		"diet", "mental health", "psychology", "physiology", "anatomy", "nursing",
		"pharmacy", "rehabilitation", "public health", "epidemiology",
	}},
	{"creative", []string{
		"art", "design", "creative", "graphics", "drawing", "painting", "photography",
		"video", "film", "music", "writing", "illustration", "animation", "sculpture",
		"crafts", "pottery", "woodworking", "fashion", "interior design",
	}},
	{"culinary", []string{
		"cooking", "culinary", "baking", "chef", "food", "recipe", "kitchen", "pastry",
		"cuisine", "gastronomy", "nutrition", "bartending", "wine", "brewing",
	}},
	{"language", []string{
		"language", "spanish", "french", "german", "chinese", "japanese", "english",
		"speaking", "linguistics", "translation", "writing", "literature", "grammar",
	}},
	{"business", []string{
		"business", "management", "marketing", "finance", "entrepreneur", "sales",
		"accounting", "economics", "leadership", "strategy", "consulting", "investing",
	}},
	{"science", []string{
		"science", "physics", "chemistry", "biology", "mathematics", "math", "research",
		"laboratory", "experiment", "theory", "statistics", "engineering", "geology",
	}},
	{"music", []string{
		"music", "instrument", "piano", "guitar", "singing", "vocal", "composition",
		"theory", "performance", "band", "orchestra", "recording", "production",
	}},
	{"academic", []string{
		"study", "academic", "education", "learning", "teaching", "university", "school",
		"research", "thesis", "dissertation", "exam", "test", "curriculum",
	}},
}

// ClassifyDomain scores the subject against each domain's keywords and
// returns the best domain, or DomainGeneric when nothing matches.
func ClassifyDomain(subject string) string {
	lower := strings.ToLower(subject)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	best, bestScore := DomainGeneric, 0
	for _, d := range domains {
		score := 0
		for _, w := range words {
			if contains(d.keywords, w) {
				score += 2
				continue
			}
			for _, kw := range d.keywords {
				if strings.Contains(kw, w) || strings.Contains(w, kw) {
					score++
				}
			}
		}
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				score += 3
			}
		}
		if score > bestScore {
			best, bestScore = d.name, score
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
