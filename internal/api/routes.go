package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/faizrashid/nazeer/internal/api/handlers"
	"github.com/faizrashid/nazeer/internal/api/middleware"
	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/retrieval/orchestrator"
	"github.com/faizrashid/nazeer/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	app          *fiber.App
	storage      storage.Storage
	logger       *observability.Logger
	metrics      *observability.Metrics
	authConfig   *middleware.AuthConfig
	orchestrator *orchestrator.Orchestrator
}

// NewServer creates a new API server. retrievalOrchestrator may be nil,
// in which case the /api/v1/qa endpoint reports the retrieval engine
// unavailable instead of panicking.
func NewServer(storage storage.Storage, logger *observability.Logger, metrics *observability.Metrics, authConfig *middleware.AuthConfig, retrievalOrchestrator *orchestrator.Orchestrator) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Nazeer API",
		ServerHeader: "Nazeer",
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	if authConfig == nil {
		authConfig = middleware.DefaultAuthConfig()
	}

	return &Server{
		app:          app,
		storage:      storage,
		logger:       logger,
		metrics:      metrics,
		authConfig:   authConfig,
		orchestrator: retrievalOrchestrator,
	}
}

// SetupRoutes configures all API routes
func (s *Server) SetupRoutes() {
	// Apply global middleware
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Metrics(s.metrics))

	// Health endpoints
	s.app.Get("/health", handlers.HealthCheck(s.storage))
	s.app.Get("/ready", handlers.ReadinessCheck(s.storage))

	// Metrics endpoint
	s.app.Get("/metrics", handlers.MetricsHandler(s.metrics))

	// API v1 routes
	api := s.app.Group("/api/v1")
	api.Use(middleware.OptionalAuth(s.authConfig, s.logger))

	// Case routes
	caseHandler := handlers.NewCaseHandler(s.storage, s.logger)
	cases := api.Group("/cases")
	cases.Get("/", caseHandler.ListCases)
	cases.Get("/:id", caseHandler.GetCase)
	cases.Post("/", caseHandler.CreateCase)
	cases.Put("/:id", caseHandler.UpdateCase)
	cases.Delete("/:id", caseHandler.DeleteCase)
	cases.Post("/search", caseHandler.SearchCases)

	// Stats routes
	statsHandler := handlers.NewStatsHandler(s.storage, s.logger)
	stats := api.Group("/stats")
	stats.Get("/", statsHandler.GetStats)
	stats.Get("/storage", statsHandler.GetStorageStats)

	// QA / retrieval routes (C1-C10 pipeline)
	qaHandler := handlers.NewQAHandler(s.orchestrator, s.logger)
	api.Post("/qa", qaHandler.Ask)

	// 404 handler
	s.app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
			"path":  c.Path(),
		})
	})
}

// GetApp returns the Fiber app
func (s *Server) GetApp() *fiber.App {
	return s.app
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
