package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Embedded(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Positive(t, c.Len())

	s, ok := c.Lookup("  python programming ")
	require.True(t, ok)
	assert.Equal(t, "Python Programming", s.Name)
	assert.Positive(t, s.EstimatedHours)
	assert.NotEmpty(t, s.Topics)

	_, ok = c.Lookup("Underwater Basket Weaving")
	assert.False(t, ok)
}

func TestLoadCatalog_Override(t *testing.T) {
	dir := t.TempDir()
	body := `{"subjects":[{"name":"Chess","estimated_hours":12,"difficulty":"beginner","topics":["Openings"]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subjects.json"), []byte(body), 0o600))

	c, err := LoadCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	s, ok := c.Lookup("CHESS")
	require.True(t, ok)
	assert.Equal(t, 12, s.EstimatedHours)
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup("x")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}
