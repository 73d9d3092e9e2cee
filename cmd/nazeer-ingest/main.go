package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/faizrashid/nazeer/internal/chunk"
	"github.com/faizrashid/nazeer/internal/config"
	"github.com/faizrashid/nazeer/internal/events"
	"github.com/faizrashid/nazeer/internal/ingest"
	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/queue"
	"github.com/faizrashid/nazeer/internal/retrieval/semantic"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/internal/worker"
)

// nazeer-ingest drains ingestion jobs off the queue and runs them through
// the Knowledge Ingestor (C3), with a worker pool pulling from the same
// queue abstraction the HTTP API's job types share.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	logger.Info("Starting Nazeer Ingest worker")

	metrics := observability.NewMetrics()

	cases := storage.NewMemoryCaseReadStore()
	chunks := storage.NewMemoryKBChunkStore()
	procLog := storage.NewMemoryProcessingLogStore()

	var q queue.Queue
	switch cfg.Queue.Driver {
	case "memory", "":
		q = queue.NewMemoryQueue()
		logger.Info("Using in-memory queue")
	case "nats":
		q, err = queue.NewNATSQueue(&queue.NATSQueueConfig{
			URL:        cfg.Queue.URL,
			Stream:     "NAZEER_INGEST",
			Consumer:   "nazeer-ingest",
			MaxRetries: cfg.Queue.MaxRetries,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize NATS queue: %v", err)
		}
		logger.Infof("Using NATS queue: %s", cfg.Queue.URL)
	case "redis":
		redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		q, err = queue.NewRedisQueue(&queue.RedisQueueConfig{
			Addr:       redisAddr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			Stream:     "nazeer:ingest",
			Group:      "nazeer-ingest-workers",
			Consumer:   "worker-1",
			MaxRetries: cfg.Queue.MaxRetries,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize Redis queue: %v", err)
		}
		logger.Infof("Using Redis queue: %s", redisAddr)
	default:
		logger.Fatalf("Unsupported queue driver: %s", cfg.Queue.Driver)
	}
	defer q.Close()

	bus := events.NewBus(256)
	bus.Start(context.Background())
	defer bus.Stop()
	bus.SubscribeAll(func(ctx context.Context, event *events.Event) error {
		logger.WithField("event_type", string(event.Type)).Infof("event: %+v", event.Data)
		return nil
	})

	ingestor := ingest.NewIngestor(cases, chunks, procLog, chunk.NewChunker(chunk.DefaultConfig()), logger)

	var index semantic.VectorIndex
	if cfg.Retrieval.VectorIndexDriver == "qdrant" {
		client, err := qdrant.NewClient(&qdrant.Config{
			Host: cfg.Retrieval.QdrantHost,
			Port: cfg.Retrieval.QdrantPort,
		})
		if err != nil {
			logger.Fatalf("failed to connect to qdrant: %v", err)
		}
		idx, err := semantic.NewQdrantIndex(context.Background(), &semantic.QdrantIndexConfig{
			Client:           client,
			CollectionName:   cfg.Retrieval.QdrantCollection,
			InitializeSchema: true,
		})
		if err != nil {
			logger.Fatalf("failed to initialize qdrant collection: %v", err)
		}
		index = idx
		logger.Infof("Indexing into qdrant: %s:%d/%s", cfg.Retrieval.QdrantHost, cfg.Retrieval.QdrantPort, cfg.Retrieval.QdrantCollection)
	}

	cacheDir := cfg.Retrieval.EmbeddingCacheDir
	if cacheDir == "" {
		cacheDir = "data/embedding-cache"
	}
	embedCache, err := semantic.NewEmbeddingCache(cacheDir)
	if err != nil {
		logger.Fatalf("failed to initialize embedding cache at %s: %v", cacheDir, err)
	}
	retriever := semantic.New(semantic.NewLocalEncoder(), embedCache, index, chunks, cases, logger)
	ingestor = ingestor.WithIndexer(retriever)

	handler := func(ctx context.Context, job *queue.Job) error {
		if job.Type != queue.JobTypeIngest {
			return fmt.Errorf("nazeer-ingest: unsupported job type %q", job.Type)
		}
		caseID, _ := job.Payload["case_id"].(string)
		if caseID == "" {
			return fmt.Errorf("nazeer-ingest: job %s missing case_id payload", job.ID)
		}
		force, _ := job.Payload["force"].(bool)

		result, err := ingestor.ProcessCaseForQA(ctx, caseID, force)
		if err != nil {
			bus.Publish(events.NewEvent(events.EventJobFailed, "nazeer-ingest", map[string]interface{}{
				"job_id": job.ID, "case_id": caseID, "error": err.Error(),
			}))
			return err
		}
		logger.WithField("case_id", caseID).Infof("ingested %d chunks (skipped=%v)", result.ChunksWritten, result.Skipped)
		bus.Publish(events.NewEvent(events.EventJobCompleted, "nazeer-ingest", map[string]interface{}{
			"job_id": job.ID, "case_id": caseID, "chunks_written": result.ChunksWritten, "skipped": result.Skipped,
		}))
		return nil
	}

	workerCount := cfg.Worker.Count
	if workerCount <= 0 {
		workerCount = 4
	}
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   workerCount,
		JobTimeout:    cfg.Worker.JobTimeout,
		ShutdownGrace: cfg.Worker.ShutdownGrace,
	}, q, handler)

	if err := pool.Start(workerCount); err != nil {
		logger.Fatalf("Failed to start worker pool: %v", err)
	}
	logger.Infof("Worker pool started with %d workers", workerCount)

	if cfg.Observability.MetricsEnabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsAddr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
		go func() {
			logger.Infof("Starting metrics server on %s", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Errorf("Metrics server error: %v", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan
	logger.Infof("Received shutdown signal: %s", sig.String())

	if err := pool.Stop(30 * time.Second); err != nil {
		logger.Errorf("Error during worker pool shutdown: %v", err)
	} else {
		logger.Info("Worker pool stopped gracefully")
	}

	logger.Info("Nazeer Ingest shutdown complete")
}
