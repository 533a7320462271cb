// Package httpapi exposes the planner over a JSON REST API built on chi.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/auth"
	"github.com/dmitrijs2005/studyplanner/internal/server/models"
	"github.com/dmitrijs2005/studyplanner/internal/server/motivation"
	"github.com/dmitrijs2005/studyplanner/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, r services.Registration) (*models.User, error)
	Login(ctx context.Context, login, password string) (*services.TokenPair, *models.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ParseAccessToken(token string) (*auth.Claims, error)
}

// Planner generates and tracks study plans.
type Planner interface {
	Generate(ctx context.Context, userID string, req services.PlanRequest) (*models.StudyPlan, error)
	List(ctx context.Context, userID string) ([]*models.StudyPlan, error)
	Get(ctx context.Context, userID, planID string) (*models.StudyPlan, error)
	Delete(ctx context.Context, userID, planID string) error
	Progress(ctx context.Context, userID, planID string) (*models.Progress, error)
	UpdateProgress(ctx context.Context, userID, planID string, completedHours int) (*models.Progress, error)
	Motivate(ctx context.Context, userID, input, subject, planID string) (motivation.Result, error)
	LegacySchedule(ctx context.Context, subject string) ([]string, error)
}

// Summarizer summarises uploaded documents.
type Summarizer interface {
	Summarize(ctx context.Context, userID string, doc services.Document, question string) (*services.SummaryResult, error)
}

// Options tunes the middleware stack.
type Options struct {
	Version            string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	AuthRateLimit      int
	MaxUploadBytes     int64
}

type Server struct {
	address    string
	opts       Options
	users      UserService
	planner    Planner
	summarizer Summarizer
	finder     services.ResourceFinder
	log        logging.Logger
}

func NewServer(address string, opts Options, us UserService, ps Planner, ss Summarizer, rf services.ResourceFinder, l logging.Logger) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	return &Server{
		address:    address,
		opts:       opts,
		users:      us,
		planner:    ps,
		summarizer: ss,
		finder:     rf,
		log:        l.With("module", "http_server"),
	}
}

// Router builds the full handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(prometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         86400,
	}))

	r.Get("/", s.handleRoot)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(s.opts.RateLimitPerMinute, time.Minute))

		r.Get("/health", s.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Use(rateLimit(s.opts.AuthRateLimit, time.Minute))
			r.Post("/register", s.handleRegister)
			r.Post("/token", s.handleToken)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/users/me", s.handleMe)

			r.Route("/planner", func(r chi.Router) {
				r.Post("/generate", s.handleGenerate)
				r.Get("/plans", s.handleListPlans)
				r.Get("/plans/{id}", s.handleGetPlan)
				r.Delete("/plans/{id}", s.handleDeletePlan)
				r.Get("/plans/{id}/progress", s.handleGetProgress)
				r.Post("/plans/{id}/progress", s.handleUpdateProgress)
				r.Get("/legacy", s.handleLegacy)
			})

			r.Get("/resources/find", s.handleFindResources)
			r.Post("/motivation", s.handleMotivation)
			r.Post("/text/analyze", s.handleAnalyze)
			r.Post("/summarize-document", s.handleSummarize)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, CodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error(ctx, "http shutdown", "error", err)
		}
	}()

	s.log.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
