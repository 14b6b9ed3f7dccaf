package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/bond-desk/internal/config"
	"github.com/aristath/bond-desk/internal/database"
	"github.com/aristath/bond-desk/internal/modules/bonds"
	"github.com/aristath/bond-desk/internal/modules/snapshots"
	"github.com/aristath/bond-desk/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	DB        *database.DB
	Config    *config.Config
	Scheduler *scheduler.Scheduler
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	db     *database.DB
	cfg    *config.Config

	bondHandler     *bonds.Handler
	snapshotHandler *snapshots.Handler
	system          *SystemHandlers
}

// New creates a new HTTP server and wires the modules
func New(cfg Config) *Server {
	log := cfg.Log.With().Str("component", "server").Logger()

	bondRepo := bonds.NewRepository(cfg.DB.Conn(), cfg.Log)
	bondService := bonds.NewService(cfg.Config.SolverTolerance, cfg.Config.SolverMaxIterations, cfg.Log)
	snapshotRepo := snapshots.NewRepository(cfg.DB.Conn(), cfg.Log)
	snapshotService := snapshots.NewService(snapshotRepo, cfg.Log)

	s := &Server{
		router:          chi.NewRouter(),
		log:             log,
		db:              cfg.DB,
		cfg:             cfg.Config,
		bondHandler:     bonds.NewHandler(bondRepo, bondService, cfg.Log),
		snapshotHandler: snapshots.NewHandler(snapshotService, cfg.Log),
		system:          NewSystemHandlers(cfg.Log, cfg.DB, cfg.Scheduler),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.system.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.system.HandleStatus)
		})

		r.Route("/bonds", func(r chi.Router) {
			r.Get("/", s.bondHandler.HandleListBonds)
			r.Post("/", s.bondHandler.HandleCreateBond)

			r.Route("/{symbol}", func(r chi.Router) {
				r.Get("/", s.bondHandler.HandleGetBond)
				r.Delete("/", s.bondHandler.HandleDeleteBond)
				r.Put("/price", s.bondHandler.HandleUpdatePrice)

				r.Get("/analysis", s.bondHandler.HandleGetAnalysis)
				r.Get("/sensitivity", s.bondHandler.HandleGetSensitivity)
				r.Get("/scenarios", s.bondHandler.HandleGetScenarios)
				r.Get("/frequencies", s.bondHandler.HandleGetFrequencies)
				r.Get("/amortization", s.bondHandler.HandleGetAmortization)
				r.Get("/break-even", s.bondHandler.HandleGetBreakEven)

				r.Get("/history", s.snapshotHandler.HandleGetHistory)
				r.Get("/history/stats", s.snapshotHandler.HandleGetStats)
			})
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
