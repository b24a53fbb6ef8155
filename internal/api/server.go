package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lzhang-md/drivetidy/internal/auth"
	"github.com/lzhang-md/drivetidy/internal/config"
	"github.com/lzhang-md/drivetidy/internal/db"
	"github.com/lzhang-md/drivetidy/internal/httputil"
	"github.com/lzhang-md/drivetidy/internal/jobs"
	"github.com/lzhang-md/drivetidy/internal/organizer"
	"github.com/lzhang-md/drivetidy/internal/repository"
	"github.com/lzhang-md/drivetidy/internal/store"
	"github.com/lzhang-md/drivetidy/internal/version"
)

type Server struct {
	config       *config.Config
	db           *db.DB
	store        store.DirectoryStore
	organizer    *organizer.Organizer
	jobQueue     *jobs.Queue
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
	runRepo      *repository.RunRepository
	wsHub        *WSHub
	router       chi.Router
}

// NewServer wires the HTTP surface. The store and organizer may be nil
// when drive credentials are not configured; mutating endpoints then
// answer NOT_CONFIGURED instead of failing mid-run.
func NewServer(cfg *config.Config, database *db.DB, st store.DirectoryStore, org *organizer.Organizer, jobQueue *jobs.Queue, wsHub *WSHub) *Server {
	s := &Server{
		config:       cfg,
		db:           database,
		store:        st,
		organizer:    org,
		jobQueue:     jobQueue,
		userRepo:     repository.NewUserRepository(database.DB),
		settingsRepo: repository.NewSettingsRepository(database.DB),
		runRepo:      repository.NewRunRepository(database.DB),
		wsHub:        wsHub,
		router:       chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) WSHub() *WSHub {
	return s.wsHub
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))

	tokenTTL := time.Duration(s.config.TokenTTLMins) * time.Minute
	authHandler := auth.NewHandler(s.userRepo, s.config.JWTSecret, tokenTTL)
	authMW := auth.NewMiddleware(s.config.JWTSecret)

	r.Get("/health", s.handleHealth)
	r.Mount("/api/auth", authHandler.Router())
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)

		r.Post("/api/organize/movie", s.handleOrganizeMovie)
		r.Post("/api/organize/series", s.handleOrganizeSeries)
		r.Post("/api/clean", s.handleClean)
		r.Post("/api/jobs/organize", s.handleEnqueueOrganize)

		r.Get("/api/browse", s.handleBrowseRoot)
		r.Get("/api/browse/{folderID}", s.handleBrowse)

		r.Get("/api/runs", s.handleListRuns)
		r.Get("/api/runs/{id}", s.handleGetRun)

		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireAdmin)
			r.Get("/api/settings", s.handleGetSettings)
			r.Put("/api/settings", s.handleUpdateSettings)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"healthy":    true,
		"version":    version.Load().Version,
		"configured": s.organizer != nil,
	})
}

// requireOrganizer answers NOT_CONFIGURED when drive credentials are
// missing. Handlers call it before touching the store.
func (s *Server) requireOrganizer(w http.ResponseWriter) bool {
	if s.organizer == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "NOT_CONFIGURED",
			"drive credentials are not configured")
		return false
	}
	return true
}
