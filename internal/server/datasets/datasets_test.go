package datasets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Embedded(t *testing.T) {
	for _, name := range []string{Subjects, Resources, Motivation} {
		b, err := Read("", name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, b)
	}
}

func TestRead_OverrideAndFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Subjects), []byte(`{"subjects":[]}`), 0o600))

	b, err := Read(dir, Subjects)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subjects":[]}`, string(b))

	// not present in dir, embedded copy is used
	b, err = Read(dir, Resources)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestDecode_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Motivation), []byte(`{`), 0o600))

	var v map[string]any
	assert.Error(t, Decode(dir, Motivation, &v))
}

func TestRead_Unknown(t *testing.T) {
	_, err := Read("", "absent.json")
	assert.Error(t, err)
}
