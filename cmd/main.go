/*
Package main is the entry point for the BushNoor storefront server.

It is responsible for loading configuration, initializing the global logging system,
wiring the application services (persistence, catalog, sessions, cart, quota,
stylist, storage), setting up the HTTP server, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bushnoor/internal/app/cart"
	"bushnoor/internal/app/catalog"
	"bushnoor/internal/app/db"
	"bushnoor/internal/app/identity"
	"bushnoor/internal/app/kvstore"
	"bushnoor/internal/app/quota"
	"bushnoor/internal/app/storage"
	"bushnoor/internal/app/stylist"
	"bushnoor/internal/app/visitor"
	"bushnoor/internal/configs"
	"bushnoor/internal/handler"
	"bushnoor/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("postgres", cfg.DatabaseDSN != "").
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Key-value persistence: Postgres when a DSN is configured, otherwise the
	// in-memory store (development only; LoadConfig enforces this).
	var kv kvstore.Store
	var pool *pgxpool.Pool
	if cfg.DatabaseDSN != "" {
		pool, err = db.NewPool(cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to connect to the database")
		}
		defer pool.Close()
		kv = kvstore.NewPostgres(pool)
	} else {
		logx.Warn("DATABASE_URL not set, using in-memory storage. Carts and counters reset on restart.")
		kv = kvstore.NewMemory()
	}

	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage service")
	}

	stylistClient, err := stylist.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logx.Fatal(err, "Failed to initialize stylist client")
	}

	deps := &handler.AppDeps{
		Config:   cfg,
		Sessions: identity.NewSessions(),
		Cart:     cart.NewStore(kv),
		Quota:    quota.NewTracker(kv),
		Catalog:  catalog.New(),
		Visits:   visitor.NewLog(kv),
		Stylist:  stylistClient,
		Storage:  storageService,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("BushNoor Storefront Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
