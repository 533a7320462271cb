package server

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/studyplanner/internal/server/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCHealthAddr = "127.0.0.1:0"
	c.LogFormat = "text"
	return c
}

func TestNewApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app.grpc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestNewApp_NoGRPCWhenAddressEmpty(t *testing.T) {
	c := testConfig(t)
	c.GRPCHealthAddr = ""

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })
	assert.Nil(t, app.grpc)
}

func TestNewApp_OpenError(t *testing.T) {
	old := openDB
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { openDB = old })

	_, err := NewApp(context.Background(), testConfig(t))
	assert.ErrorContains(t, err, "db open error")
}

func TestNewApp_BadDatasetsDir(t *testing.T) {
	c := testConfig(t)
	c.DatasetsDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(c.DatasetsDir, "subjects.json"), []byte("{"), 0o600))

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "subjects dataset")
}

func TestSQLDriverName(t *testing.T) {
	assert.Equal(t, "pgx", sqlDriverName("postgres"))
	assert.Equal(t, "pgx", sqlDriverName("pgx"))
	assert.Equal(t, "sqlite", sqlDriverName("sqlite"))
}
