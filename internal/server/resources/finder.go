package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
	"github.com/dmitrijs2005/studyplanner/internal/server/websearch"
)

// Finder searches the local index first and the web second.
type Finder struct {
	index  *Index
	search websearch.Searcher
	log    logging.Logger
}

// NewFinder wires an index with an optional web searcher.
func NewFinder(index *Index, search websearch.Searcher, log logging.Logger) *Finder {
	if search == nil {
		search = websearch.Disabled{}
	}
	return &Finder{index: index, search: search, log: log.With("module", "resources")}
}

// Find returns local matches, or web results when there are none. Web
// failures are logged and yield an empty list.
func (f *Finder) Find(ctx context.Context, q Query) []models.Resource {
	if strings.TrimSpace(q.Subject) == "" {
		return []models.Resource{}
	}

	local := f.index.Find(q)
	if len(local) > 0 {
		return local
	}
	if _, disabled := f.search.(websearch.Disabled); disabled {
		return local
	}

	query := strings.TrimSpace(q.Subject + " " + q.Difficulty + " tutorial")
	results, err := f.search.Search(ctx, query, q.limit())
	if err != nil {
		f.log.Warn(ctx, "web resource search failed", "subject", q.Subject, "error", err)
		return []models.Resource{}
	}

	out := make([]models.Resource, 0, len(results))
	for i, r := range results {
		out = append(out, models.Resource{
			ID:           fmt.Sprintf("web-%d", i+1),
			Title:        r.Title,
			URL:          r.Link,
			Description:  r.Snippet,
			Subject:      q.Subject,
			Difficulty:   q.Difficulty,
			ResourceType: q.ResourceType,
			Source:       models.SourceWeb,
		})
	}
	return out
}

// Lookup is the single-result form used by the legacy endpoint: the best
// resource's title and link, or the topic and "No resources found".
func (f *Finder) Lookup(ctx context.Context, topic string) (title, link string) {
	found := f.Find(ctx, Query{Subject: topic, Limit: 1})
	if len(found) == 0 {
		return topic, "No resources found"
	}
	return found[0].Title, found[0].URL
}
