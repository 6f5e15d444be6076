package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"contentgate/internal/config"
	"contentgate/internal/handler"
	"contentgate/internal/middleware"
	"contentgate/internal/ratelimit"
	"contentgate/internal/repository/postgres"
	postgresContent "contentgate/internal/repository/postgres/content"
	"contentgate/internal/service/render"
	"contentgate/internal/service/trust"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// How often idle limiter keys are dropped.
const pruneInterval = 5 * time.Minute

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, teed to a log file when LOG_DIR is set
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		out = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(cfg.Debug, out)
	slog.SetDefault(logger) // Set as default logger

	policy, err := cfg.ResolvePolicy()
	if err != nil {
		log.Fatalf("Invalid trust policy: %v", err)
	}

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"image_hosts", policy.ImageHosts,
		"file_host", policy.FileHost,
		"rate_limit_max_attempts", policy.RateLimit.MaxAttempts,
		"rate_limit_window", policy.RateLimit.Window().String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Services
	gateway := trust.New(policy, logger)
	limiter := ratelimit.New(
		ratelimit.WithMaxAttempts(policy.RateLimit.MaxAttempts),
		ratelimit.WithWindow(policy.RateLimit.Window()),
	)
	go pruneLimiter(ctx, limiter, logger)

	// Handlers
	trustHandler := handler.NewTrustHandler(gateway, logger)
	contactHandler := handler.NewContactHandler(limiter, cfg.TrustProxy, logger)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Trust gateway routes share one token bucket
	throttle := middleware.Throttle(middleware.NewAPILimiter(cfg.APIRequestsPerSecond, cfg.APIBurst), logger)
	mux.Handle("POST /api/trust/image-url", throttle(http.HandlerFunc(trustHandler.ImageURL)))
	mux.Handle("POST /api/trust/file-url", throttle(http.HandlerFunc(trustHandler.FileURL)))
	mux.Handle("POST /api/trust/html", throttle(http.HandlerFunc(trustHandler.SanitizeHTML)))
	mux.Handle("POST /api/trust/text", throttle(http.HandlerFunc(trustHandler.SanitizeText)))
	mux.Handle("POST /api/trust/link", throttle(http.HandlerFunc(trustHandler.SanitizeLink)))

	// Contact form
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)

	// Document routes need the content mirror
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		repoConfig := &postgres.RepositoryConfig{
			DB:     pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		docRepo := postgresContent.NewDocumentRepository(repoConfig)
		renderService := render.NewDocumentService(docRepo, gateway, logger)
		docHandler := handler.NewDocumentHandler(renderService, logger)

		mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
		mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	} else {
		logger.Warn("DATABASE_URL not set, document routes disabled")
	}

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Logging → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID()(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Retry-After", middleware.RequestIDHeader},
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

func pruneLimiter(ctx context.Context, limiter *ratelimit.SlidingWindow, logger *slog.Logger) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Prune(); removed > 0 {
				logger.Debug("rate limiter pruned", "removed", removed, "tracked", limiter.Len())
			}
		}
	}
}
