package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qdrant/go-client/qdrant"

	"github.com/faizrashid/nazeer/internal/api"
	"github.com/faizrashid/nazeer/internal/api/middleware"
	"github.com/faizrashid/nazeer/internal/casematch"
	"github.com/faizrashid/nazeer/internal/config"
	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/queryanalysis"
	"github.com/faizrashid/nazeer/internal/retrieval/diversify"
	"github.com/faizrashid/nazeer/internal/retrieval/orchestrator"
	"github.com/faizrashid/nazeer/internal/retrieval/rerank"
	"github.com/faizrashid/nazeer/internal/retrieval/semantic"
	"github.com/faizrashid/nazeer/internal/session"
	"github.com/faizrashid/nazeer/internal/storage"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	logger.Info("Starting Nazeer API server")

	metrics := observability.NewMetrics()
	logger.Info("Metrics initialized")

	// Legacy CRUD storage (case management endpoints).
	var store storage.Storage
	switch cfg.Database.Driver {
	case "memory", "":
		store = storage.NewMemoryStorage()
		logger.Info("Using in-memory storage")
	case "sqlite":
		dbPath := cfg.Database.Database
		if dbPath == "" {
			dbPath = "nazeer.db"
		}
		store, err = storage.NewSQLiteStorage(dbPath)
		if err != nil {
			logger.Fatalf("Failed to initialize SQLite storage: %v", err)
		}
		logger.Infof("Using SQLite storage: %s", dbPath)
	case "postgres", "postgresql":
		connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Username,
			cfg.Database.Password, cfg.Database.Database, cfg.Database.SSLMode)
		store, err = storage.NewPostgresStorage(connStr)
		if err != nil {
			logger.Fatalf("Failed to initialize PostgreSQL storage: %v", err)
		}
		logger.Infof("Using PostgreSQL storage: %s@%s:%d/%s",
			cfg.Database.Username, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	default:
		logger.Fatalf("Unsupported storage driver: %s", cfg.Database.Driver)
	}

	authConfig := &middleware.AuthConfig{
		APIKeys:       make(map[string]string),
		JWTSecret:     cfg.Security.JWTSecret,
		JWTExpiration: cfg.Security.JWTExpiration,
	}
	for key, clientID := range cfg.Security.APIKeys {
		authConfig.APIKeys[key] = clientID
	}
	logger.Info("Authentication configured")

	orch := buildOrchestrator(cfg, logger)

	server := api.NewServer(store, logger, metrics, authConfig, orch)
	server.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Infof("Starting HTTP server on %s", serverAddr)
		if err := server.Start(serverAddr); err != nil {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(); err != nil {
		logger.Errorf("HTTP server forced to shutdown: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Errorf("Failed to close storage: %v", err)
	}

	logger.Info("Server exited")
	<-ctx.Done()
}

// buildOrchestrator wires C4, C6, C7, C8, C9, C10 and the session binder
// into the Retrieval Orchestrator behind the HTTP /api/v1/qa route. The
// retrieval-core stores (KB chunks, statutes, sessions) are process-local
// in-memory stores: no postgres/sqlite adapter exists for them yet, so a
// restart loses the KB/session state even when the legacy case store is
// postgres-backed. cmd/nazeer-ingest populates the same in-process store
// when run in the same process; a standalone deployment shares them over
// the vector index and a future persistent KBChunkStore.
func buildOrchestrator(cfg *config.Config, logger *observability.Logger) *orchestrator.Orchestrator {
	cases := storage.NewMemoryCaseReadStore()
	chunks := storage.NewMemoryKBChunkStore()
	sessions := storage.NewMemorySessionStore()

	var index semantic.VectorIndex
	if cfg.Retrieval.VectorIndexDriver == "qdrant" {
		client, err := qdrant.NewClient(&qdrant.Config{
			Host: cfg.Retrieval.QdrantHost,
			Port: cfg.Retrieval.QdrantPort,
		})
		if err != nil {
			logger.Errorf("failed to connect to qdrant, falling back to db-backed retrieval: %v", err)
		} else {
			idx, err := semantic.NewQdrantIndex(context.Background(), &semantic.QdrantIndexConfig{
				Client:           client,
				CollectionName:   cfg.Retrieval.QdrantCollection,
				InitializeSchema: true,
			})
			if err != nil {
				logger.Errorf("failed to initialize qdrant collection, falling back to db-backed retrieval: %v", err)
			} else {
				index = idx
				logger.Infof("Using qdrant vector index: %s:%d/%s", cfg.Retrieval.QdrantHost, cfg.Retrieval.QdrantPort, cfg.Retrieval.QdrantCollection)
			}
		}
	}

	cacheDir := cfg.Retrieval.EmbeddingCacheDir
	if cacheDir == "" {
		cacheDir = "data/embedding-cache"
	}
	embedCache, err := semantic.NewEmbeddingCache(cacheDir)
	if err != nil {
		logger.Fatalf("failed to initialize embedding cache at %s: %v", cacheDir, err)
	}

	encoder := semantic.NewLocalEncoder()
	retriever := semantic.New(encoder, embedCache, index, chunks, cases, logger)

	rerankCfg := rerank.DefaultConfig()
	if cfg.Retrieval.SemanticWeight > 0 {
		rerankCfg.SemanticWeight = cfg.Retrieval.SemanticWeight
	}
	if cfg.Retrieval.RerankTopK > 0 {
		rerankCfg.TopK = cfg.Retrieval.RerankTopK
	}
	reranker := rerank.NewReranker(rerank.NewLocalCrossEncoder(), rerankCfg)

	filter := diversify.NewWithThreshold(cfg.Retrieval.DiversityThreshold)
	binder := session.NewBinder(sessions)

	return orchestrator.New(
		queryanalysis.NewAnalyzer(),
		casematch.NewMatcher(cases),
		retriever,
		reranker,
		filter,
		binder,
		cases,
		logger,
	)
}
