// Package topics decides which topics a study plan covers.
package topics

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/genai"
	"github.com/dmitrijs2005/studyplanner/internal/server/metrics"
	"github.com/dmitrijs2005/studyplanner/internal/server/schedule"
)

// DefaultCount is how many topics are generated when a subject is not in
// the catalog.
const DefaultCount = 8

// Where the topics of a plan came from.
const (
	OriginCatalog  = "catalog"
	OriginAI       = "ai"
	OriginTemplate = "template"
)

// Source combines the subject catalog, the AI generator and the templates.
type Source struct {
	catalog *schedule.Catalog
	gen     genai.Generator
	cache   *cache.Cache
	log     logging.Logger
}

// NewSource builds a Source. AI results are cached for ttl.
func NewSource(catalog *schedule.Catalog, gen genai.Generator, ttl time.Duration, log logging.Logger) *Source {
	if gen == nil {
		gen = genai.Disabled{}
	}
	return &Source{
		catalog: catalog,
		gen:     gen,
		cache:   cache.New(ttl, 2*ttl),
		log:     log.With("module", "topics"),
	}
}

// Topics returns up to n topics for subject and their origin. Catalog
// subjects return their full topic list.
func (s *Source) Topics(ctx context.Context, subject string, n int) ([]string, string) {
	if n <= 0 {
		n = DefaultCount
	}

	if sub, ok := s.catalog.Lookup(subject); ok && len(sub.Topics) > 0 {
		return append([]string(nil), sub.Topics...), OriginCatalog
	}

	if genai.Enabled(s.gen) {
		if topics, ok := s.fromAI(ctx, subject, n); ok {
			return topics, OriginAI
		}
	}

	return schedule.GenerateTopics(subject, n), OriginTemplate
}

func (s *Source) fromAI(ctx context.Context, subject string, n int) ([]string, bool) {
	key := cacheKey(subject)

	if v, found := s.cache.Get(key); found {
		if cached := v.([]string); len(cached) >= n {
			metrics.TopicCacheLookups.WithLabelValues("hit").Inc()
			return append([]string(nil), cached[:n]...), true
		}
	}
	metrics.TopicCacheLookups.WithLabelValues("miss").Inc()

	text, err := s.gen.Generate(ctx, genai.TopicsPrompt(subject, n))
	if err != nil {
		s.log.Warn(ctx, "ai topic generation failed, using templates", "subject", subject, "error", err)
		return nil, false
	}

	topics := genai.ParseList(text)
	if len(topics) == 0 {
		s.log.Warn(ctx, "ai returned no topics, using templates", "subject", subject)
		return nil, false
	}
	if len(topics) > n {
		topics = topics[:n]
	}

	s.cache.SetDefault(key, topics)
	return append([]string(nil), topics...), true
}

// cacheKey folds case and whitespace only. Symbols stay significant so that
// "C++" and "C#" are cached apart.
func cacheKey(subject string) string {
	return strings.ToLower(strings.Join(strings.Fields(subject), " "))
}
