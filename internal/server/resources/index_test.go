package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

func fixture() []models.Resource {
	return []models.Resource{
		{ID: "a", Title: "Go by Example", Description: "Hands-on beginner examples", Subject: "Go", Difficulty: "beginner", ResourceType: "tutorial", Tags: []string{"go", "golang"}, Rating: 4.5},
		{ID: "b", Title: "Concurrency in Go", Description: "Advanced patterns for goroutines", Subject: "Go", Difficulty: "advanced", ResourceType: "book", Tags: []string{"go", "concurrency"}, Rating: 4.8},
		{ID: "c", Title: "A Tour of Go", Description: "Interactive beginner tour", Subject: "Go", Difficulty: "beginner", ResourceType: "tutorial", Tags: []string{"go"}, Rating: 4.9},
		{ID: "d", Title: "Calculus Made Easy", Description: "Beginner calculus", Subject: "Calculus", Difficulty: "beginner", ResourceType: "book", Tags: []string{"math"}, Rating: 4.1},
	}
}

func TestIndex_FindRanksBySimilarity(t *testing.T) {
	ix := NewIndex(fixture())

	got := ix.Find(Query{Subject: "go", Difficulty: "advanced", Limit: 3})
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID, "only the advanced resource mentions advanced")
	assert.Greater(t, got[0].Score, got[1].Score)
	for _, r := range got {
		assert.Equal(t, models.SourceLocal, r.Source)
		assert.NotEqual(t, "d", r.ID)
	}
}

func TestIndex_FindTypeFilterAndLimit(t *testing.T) {
	ix := NewIndex(fixture())

	got := ix.Find(Query{Subject: "Go", Difficulty: "beginner", ResourceType: "Tutorial"})
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "tutorial", r.ResourceType)
	}

	assert.Len(t, ix.Find(Query{Subject: "go", Limit: 1}), 1)
	assert.Len(t, ix.Find(Query{Subject: "go"}), DefaultLimit)
	assert.Len(t, ix.Find(Query{Subject: "go", Limit: 500}), 3)
}

func TestIndex_FindTieBreaksOnRatingThenID(t *testing.T) {
	ix := NewIndex([]models.Resource{
		{ID: "z", Title: "Chess", Subject: "Chess", Rating: 4.0},
		{ID: "y", Title: "Chess", Subject: "Chess", Rating: 4.5},
		{ID: "x", Title: "Chess", Subject: "Chess", Rating: 4.0},
	})

	got := ix.Find(Query{Subject: "chess", Limit: 3})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"y", "x", "z"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestIndex_FindEmpty(t *testing.T) {
	assert.Empty(t, NewIndex(nil).Find(Query{Subject: "go"}))
	assert.Empty(t, NewIndex(fixture()).Find(Query{Subject: "  "}))
	assert.Empty(t, NewIndex(fixture()).Find(Query{Subject: "astronomy"}))
}

func TestLoadIndex_Embedded(t *testing.T) {
	ix, err := LoadIndex("")
	require.NoError(t, err)
	assert.Positive(t, ix.Len())

	got := ix.Find(Query{Subject: "Python Programming", Difficulty: "beginner", Limit: 5})
	require.NotEmpty(t, got)
	assert.Equal(t, "Python Programming", got[0].Subject)
}
