package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/studyplanner/internal/client/client"
	"github.com/dmitrijs2005/studyplanner/internal/client/config"
	"github.com/dmitrijs2005/studyplanner/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studyplanner/internal/client/services"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	auth     *services.AuthService
	study    *services.StudyService
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.MetadataDSN)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	session := services.NewSession(metadata.NewSQLiteRepository(db))
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, session)
	auth := services.NewAuthService(api, session)
	study := services.NewStudyService(api, auth, c.MaxUploadBytes)

	a := newApp(auth, study, bufio.NewReader(os.Stdin), os.Stdout)
	a.config = c
	a.db = db
	return a, nil
}

func newApp(auth *services.AuthService, study *services.StudyService, r *bufio.Reader, w io.Writer) *App {
	return &App{auth: auth, study: study, reader: r, out: w}
}

// Run restores the saved session and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	fmt.Fprintln(a.out, "Welcome to the study planner CLI (type 'help' for commands)")
	if err := a.auth.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server is not reachable: %v\n", err)
	}

	name, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	a.userName = name

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return "guest"
	}
	return a.userName
}
