// Package server wires configuration, storage, collaborators and services
// together and runs the REST API and the gRPC health endpoint until the
// process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/studyplanner/internal/buildinfo"
	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/config"
	"github.com/dmitrijs2005/studyplanner/internal/server/genai"
	"github.com/dmitrijs2005/studyplanner/internal/server/httpapi"
	"github.com/dmitrijs2005/studyplanner/internal/server/motivation"
	"github.com/dmitrijs2005/studyplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studyplanner/internal/server/resources"
	"github.com/dmitrijs2005/studyplanner/internal/server/schedule"
	"github.com/dmitrijs2005/studyplanner/internal/server/services"
	"github.com/dmitrijs2005/studyplanner/internal/server/storage"
	"github.com/dmitrijs2005/studyplanner/internal/server/topics"
	"github.com/dmitrijs2005/studyplanner/internal/server/websearch"

	gs "github.com/dmitrijs2005/studyplanner/internal/server/grpc"
)

// openDB is a seam for tests.
var openDB = sql.Open

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

// NewApp opens and migrates the database, loads the datasets and builds
// every service.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, os.Stdout)

	db, err := openDB(sqlDriverName(c.DatabaseDriver), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(c.DatabaseDriver)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app, err := build(ctx, c, logger, db, rm)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm *repomanager.SQLRepositoryManager) (*App, error) {
	catalog, err := schedule.LoadCatalog(c.DatasetsDir)
	if err != nil {
		return nil, fmt.Errorf("subjects dataset: %w", err)
	}
	index, err := resources.LoadIndex(c.DatasetsDir)
	if err != nil {
		return nil, fmt.Errorf("resources dataset: %w", err)
	}
	lib, err := motivation.LoadLibrary(c.DatasetsDir)
	if err != nil {
		return nil, fmt.Errorf("motivation dataset: %w", err)
	}

	gen := genai.New(genai.Config{
		APIKey:            c.AIAPIKey,
		Model:             c.AIModel,
		BaseURL:           c.AIBaseURL,
		Timeout:           c.AITimeout,
		RequestsPerSecond: c.AIRequestsPerSecond,
	}, logger)
	search := websearch.New(websearch.Config{
		APIKey:   c.SearchAPIKey,
		EngineID: c.SearchEngineID,
		BaseURL:  c.SearchBaseURL,
		Timeout:  c.AITimeout,
	}, logger)

	store, err := storage.New(ctx, storage.Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	finder := resources.NewFinder(index, search, logger)
	coach := motivation.NewCoach(lib, gen, nil, logger)

	us := services.NewUserService(db, rm, c)
	ps := services.NewPlannerService(db, rm, catalog, topics.NewSource(catalog, gen, c.AITopicCacheTTL, logger), finder, coach, logger)
	ss := services.NewSummarizerService(gen, store, logger)

	logger.Info(ctx, "datasets loaded", "subjects", catalog.Len(), "resources", index.Len(), "quotes", len(lib.Quotes),
		"ai_enabled", genai.Enabled(gen), "archive_enabled", c.S3Bucket != "")

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		http: httpapi.NewServer(c.HTTPAddr, httpapi.Options{
			Version:            buildinfo.Version,
			CORSAllowedOrigins: c.CORSAllowedOrigins,
			RateLimitPerMinute: c.RateLimitPerMinute,
			AuthRateLimit:      c.AuthRateLimit,
			MaxUploadBytes:     c.MaxUploadBytes,
		}, us, ps, ss, finder, logger),
	}
	if c.GRPCHealthAddr != "" {
		app.grpc = gs.NewGRPCServer(c.GRPCHealthAddr, logger)
	}
	return app, nil
}

// sqlDriverName maps the configured driver to a registered database/sql
// driver.
func sqlDriverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return driver
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a signal arrives or ctx is cancelled. A server that
// fails to start stops the others.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	if app.grpc != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.grpc.Run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				cancelFunc()
			}
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
