package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/renewscope/pkg/cleanup"
	"github.com/umputun/renewscope/pkg/domain"
	"github.com/umputun/renewscope/pkg/llm"
	"github.com/umputun/renewscope/pkg/repository"
	"github.com/umputun/renewscope/pkg/trainer"
)

//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/trainer.go -pkg mocks -skip-ensure -fmt goimports . Trainer
//go:generate moq -out mocks/reviewer.go -pkg mocks -skip-ensure -fmt goimports . Reviewer
//go:generate moq -out mocks/cleaner.go -pkg mocks -skip-ensure -fmt goimports . Cleaner

const maxUploadSize = 16 * 1024 * 1024

// Server represents HTTP server instance
type Server struct {
	cfg       Config
	db        Database
	scheduler Scheduler
	trainer   Trainer
	reviewer  Reviewer
	cleaner   Cleaner
	startedAt time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Config holds server settings
type Config struct {
	Listen  string
	Timeout time.Duration
	Version string
	Debug   bool
}

// Deps are the collaborators of the server. Reviewer is nil when llm review is not configured.
type Deps struct {
	DB        Database
	Scheduler Scheduler
	Trainer   Trainer
	Reviewer  Reviewer
	Cleaner   Cleaner
}

// Database interface for server operations
type Database interface {
	ListProjects(ctx context.Context, f repository.ProjectFilter) ([]domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	CountProjects(ctx context.Context) (map[domain.ProjectType]int, error)
	ImportProjects(ctx context.Context, projects []domain.Project) (added int, err error)

	ListSources(ctx context.Context) ([]domain.Source, error)
	AddSource(ctx context.Context, src *domain.Source) (bool, error)
	SetSourceEnabled(ctx context.Context, id int64, enabled bool) error
	DeleteSource(ctx context.Context, id int64) error

	ListRejections(ctx context.Context, limit int) ([]domain.Rejection, error)
	GetRejection(ctx context.Context, id int64) (*domain.Rejection, error)
	SetRejectionReview(ctx context.Context, id int64, review string) error
	RejectionStats(ctx context.Context) (domain.RejectionStats, error)
}

// Scheduler runs batches on demand and reports progress
type Scheduler interface {
	RunNow(ctx context.Context) error
	Progress() domain.Progress
}

// Trainer ingests labelled spreadsheets
type Trainer interface {
	IngestReader(ctx context.Context, name string, r io.Reader) (trainer.Stats, error)
	Stats() trainer.Stats
}

// Reviewer gives a second opinion on rejected articles
type Reviewer interface {
	Review(ctx context.Context, rej domain.Rejection) (llm.Verdict, error)
}

// Cleaner removes irrelevant projects
type Cleaner interface {
	Run(ctx context.Context, dryRun bool) (cleanup.Result, error)
}

// New initializes a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:       cfg,
		db:        deps.DB,
		scheduler: deps.Scheduler,
		trainer:   deps.Trainer,
		reviewer:  deps.Reviewer,
		cleaner:   deps.Cleaner,
		startedAt: time.Now(),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.cfg.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.Timeout,
		WriteTimeout:      s.cfg.Timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("renewscope", "umputun", s.cfg.Version))
	s.router.Use(rest.Ping)

	if s.cfg.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(maxUploadSize))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Handle("GET /metrics", promhttp.Handler())

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{type}", s.rssHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /progress", s.progressHandler)
		r.HandleFunc("POST /run", s.runHandler)

		r.HandleFunc("GET /projects", s.listProjectsHandler)
		r.HandleFunc("GET /projects/{id}", s.getProjectHandler)
		r.HandleFunc("DELETE /projects/{id}", s.deleteProjectHandler)

		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources", s.addSourceHandler)
		r.HandleFunc("PUT /sources/{id}/{action}", s.toggleSourceHandler)
		r.HandleFunc("DELETE /sources/{id}", s.deleteSourceHandler)

		r.HandleFunc("GET /export", s.exportHandler)
		r.HandleFunc("POST /import", s.importHandler)

		r.HandleFunc("GET /training", s.trainingStatsHandler)
		r.HandleFunc("POST /training", s.trainingHandler)

		r.HandleFunc("GET /diagnostics", s.listRejectionsHandler)
		r.HandleFunc("GET /diagnostics/stats", s.rejectionStatsHandler)
		r.HandleFunc("POST /diagnostics/{id}/review", s.reviewHandler)

		r.HandleFunc("POST /cleanup", s.cleanupHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
