package schedule

import (
	"strings"

	"github.com/dmitrijs2005/studyplanner/internal/server/datasets"
)

const (
	DefaultEstimatedHours = 20
	DefaultDifficulty     = "intermediate"
)

// Subject is a catalog entry with a curated topic list.
type Subject struct {
	Name           string   `json:"name"`
	EstimatedHours int      `json:"estimated_hours"`
	Difficulty     string   `json:"difficulty"`
	Topics         []string `json:"topics"`
}

// Catalog is a case-insensitive lookup of known subjects.
type Catalog struct {
	subjects map[string]Subject
}

// NewCatalog indexes the given subjects by lowercased name.
func NewCatalog(subjects []Subject) *Catalog {
	c := &Catalog{subjects: make(map[string]Subject, len(subjects))}
	for _, s := range subjects {
		c.subjects[catalogKey(s.Name)] = s
	}
	return c
}

// LoadCatalog reads subjects.json from dir, or the embedded copy.
func LoadCatalog(dir string) (*Catalog, error) {
	var doc struct {
		Subjects []Subject `json:"subjects"`
	}
	if err := datasets.Decode(dir, datasets.Subjects, &doc); err != nil {
		return nil, err
	}
	return NewCatalog(doc.Subjects), nil
}

// Lookup finds a subject by name ignoring case and surrounding spaces.
func (c *Catalog) Lookup(name string) (Subject, bool) {
	if c == nil {
		return Subject{}, false
	}
	s, ok := c.subjects[catalogKey(name)]
	return s, ok
}

// Len returns the number of subjects.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.subjects)
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
