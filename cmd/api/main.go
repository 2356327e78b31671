// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"mediawatch/internal/adapter/notify"
	"mediawatch/internal/adapter/source"
	"mediawatch/internal/adapter/storage"
	"mediawatch/internal/config"
	"mediawatch/internal/logging"
	"mediawatch/internal/metrics"
	"mediawatch/internal/server"
	"mediawatch/internal/service/alerting"
	"mediawatch/internal/service/forecast"
	"mediawatch/internal/service/ingest"
	"mediawatch/internal/service/sentiment"
)

func main() {
	// Load .env if present; real deployments set environment variables
	_ = godotenv.Load()

	logger := logging.NewWithService("mediawatch-api")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to NATS")
	}
	defer natsConn.Close()

	coreMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Initialize storage adapters
	postStore := storage.NewPostStore(db)
	ruleStore := storage.NewRuleStore(db)

	// Initialize notification channels
	notifier := notify.NewFanOut(
		logger,
		notify.NewEventBus(natsConn, cfg.NATS.AlertsSubject),
		notify.NewEmail(cfg.SMTP),
		notify.NewWebhook(cfg.Webhook),
	)

	// Initialize analytics services
	classifier := sentiment.NewClassifier(cfg.Sentiment, logger)
	predictor := forecast.NewPredictor(cfg.Forecast, postStore, logger, coreMetrics)
	evaluator := alerting.NewEvaluator(cfg.Alerting, postStore, ruleStore, notifier, logger, coreMetrics)

	// Initialize ingestion sources
	sources := []ingest.Source{source.NewSimulator()}
	if cfg.Twitter.BearerToken != "" && cfg.Twitter.Query != "" {
		sources = append(sources, source.NewTwitter(cfg.Twitter.BearerToken, cfg.Twitter.Query))
	}

	engine := ingest.NewEngine(cfg.Ingest, sources, postStore, classifier, evaluator, logger, coreMetrics)

	// Start the ingestion engine
	if err := engine.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to start ingestion engine")
	}

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		logger,
		natsConn,
		cfg.NATS.AlertsSubject,
		classifier,
		predictor,
		evaluator,
		engine,
		postStore,
		ruleStore,
		cfg.Sentiment.RetrainBatchSize,
	)

	// Start HTTP server
	go func() {
		logger.WithFields(logging.Fields{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		}).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	logger.Info("Shutting down services")

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}

	// Stop ingestion engine
	if err := engine.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Ingestion engine shutdown error")
	}

	logger.Info("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger logging.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
