// Package resources ranks learning resources for a subject with a TF-IDF
// index over the local dataset, falling back to web search.
package resources

import (
	"math"
	"sort"
	"strings"

	"github.com/dmitrijs2005/studyplanner/internal/server/datasets"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
	"github.com/dmitrijs2005/studyplanner/internal/server/textproc"
)

const (
	DefaultLimit = 3
	MaxLimit     = 20
)

// Query selects resources. Difficulty only influences ranking; ResourceType,
// when set, filters.
type Query struct {
	Subject      string
	Difficulty   string
	ResourceType string
	Limit        int
}

func (q Query) limit() int {
	switch {
	case q.Limit <= 0:
		return DefaultLimit
	case q.Limit > MaxLimit:
		return MaxLimit
	default:
		return q.Limit
	}
}

type document struct {
	vector map[string]float64
	terms  map[string]struct{}
}

// Index is an immutable TF-IDF index. It is safe for concurrent use.
type Index struct {
	resources []models.Resource
	docs      []document
	idf       map[string]float64
}

// LoadIndex indexes resources.json from dir, or the embedded copy.
func LoadIndex(dir string) (*Index, error) {
	var list []models.Resource
	if err := datasets.Decode(dir, datasets.Resources, &list); err != nil {
		return nil, err
	}
	return NewIndex(list), nil
}

// NewIndex builds the index over title, description and tags.
func NewIndex(resources []models.Resource) *Index {
	ix := &Index{
		resources: resources,
		docs:      make([]document, len(resources)),
		idf:       map[string]float64{},
	}

	tokenized := make([][]string, len(resources))
	df := map[string]int{}
	for i, r := range resources {
		tokens := terms(r.Title + " " + r.Description + " " + strings.Join(r.Tags, " "))
		tokenized[i] = tokens
		seen := map[string]struct{}{}
		for _, t := range tokens {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
		ix.docs[i].terms = seen
	}

	n := float64(len(resources))
	for t, c := range df {
		ix.idf[t] = math.Log((1+n)/(1+float64(c))) + 1
	}

	for i, tokens := range tokenized {
		ix.docs[i].vector = ix.vectorize(tokens)
	}
	return ix
}

// Len returns the number of indexed resources.
func (ix *Index) Len() int {
	return len(ix.resources)
}

// Find returns the best local matches for q, best first.
func (ix *Index) Find(q Query) []models.Resource {
	subject := strings.ToLower(strings.TrimSpace(q.Subject))
	if subject == "" || ix.Len() == 0 {
		return []models.Resource{}
	}

	queryTerms := terms(q.Subject + " " + q.Difficulty)
	qv := ix.vectorize(queryTerms)

	type hit struct {
		res     models.Resource
		cosine  float64
		overlap int
	}
	var hits []hit
	for i, r := range ix.resources {
		if !matchesSubject(r, subject) {
			continue
		}
		if q.ResourceType != "" && !strings.EqualFold(r.ResourceType, q.ResourceType) {
			continue
		}
		h := hit{res: r, cosine: dot(qv, ix.docs[i].vector)}
		for t := range uniq(queryTerms) {
			if _, ok := ix.docs[i].terms[t]; ok {
				h.overlap++
			}
		}
		hits = append(hits, h)
	}

	sort.SliceStable(hits, func(a, b int) bool {
		ha, hb := hits[a], hits[b]
		if ha.cosine != hb.cosine {
			return ha.cosine > hb.cosine
		}
		if ha.overlap != hb.overlap {
			return ha.overlap > hb.overlap
		}
		if ha.res.Rating != hb.res.Rating {
			return ha.res.Rating > hb.res.Rating
		}
		return ha.res.ID < hb.res.ID
	})

	out := make([]models.Resource, 0, min(len(hits), q.limit()))
	for _, h := range hits {
		if len(out) == q.limit() {
			break
		}
		r := h.res
		r.Score = h.cosine
		if r.Source == "" {
			r.Source = models.SourceLocal
		}
		out = append(out, r)
	}
	return out
}

func (ix *Index) vectorize(tokens []string) map[string]float64 {
	v := map[string]float64{}
	if len(tokens) == 0 {
		return v
	}
	counts := map[string]int{}
	for _, t := range tokens {
		counts[t]++
	}
	var norm float64
	for t, c := range counts {
		idf, ok := ix.idf[t]
		if !ok {
			continue
		}
		w := float64(c) / float64(len(tokens)) * idf
		v[t] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for t := range v {
		v[t] /= norm
	}
	return v
}

func matchesSubject(r models.Resource, subject string) bool {
	if strings.Contains(strings.ToLower(r.Subject), subject) || strings.Contains(strings.ToLower(r.Title), subject) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), subject) {
			return true
		}
	}
	return false
}

func terms(text string) []string {
	return textproc.RemoveStopwords(textproc.Tokenize(text))
}

func uniq(tokens []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		out[t] = struct{}{}
	}
	return out
}

func dot(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var s float64
	for t, w := range a {
		s += w * b[t]
	}
	return s
}
