package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	good := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"server_url":"https://planner.example","request_timeout":"10s"}`), 0o600))

	t.Run("partial file keeps other values", func(t *testing.T) {
		os.Args = []string{"cli", "-config", good}
		cfg := &Config{MetadataDSN: "keep.db"}
		parseJson(cfg)

		assert.Equal(t, "https://planner.example", cfg.ServerURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "keep.db", cfg.MetadataDSN)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"cli"}
		cfg := &Config{ServerURL: "x"}
		parseJson(cfg)
		assert.Equal(t, "x", cfg.ServerURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"cli", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
