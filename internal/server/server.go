// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/forecast"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/domain/sentiment"
	"mediawatch/internal/logging"
	"mediawatch/internal/server/handlers"
	"mediawatch/internal/service/alerting"
	"mediawatch/internal/service/ingest"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	logger logging.Logger,
	natsConn *nats.Conn,
	alertsSubject string,
	classifier sentiment.Classifier,
	predictor forecast.Predictor,
	evaluator *alerting.Evaluator,
	engine *ingest.Engine,
	posts monitor.PostStore,
	rules monitor.RuleStore,
	retrainBatchSize int,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	sentimentHandler := handlers.NewSentimentHandler(classifier, posts, retrainBatchSize, logger)
	forecastHandler := handlers.NewForecastHandler(predictor, logger)
	alertHandler := handlers.NewAlertHandler(evaluator, rules, logger)
	ingestHandler := handlers.NewIngestHandler(engine, logger)
	dashboardHandler := handlers.NewDashboardHandler(posts, logger)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Sentiment API
			r.Route("/sentiment", func(r chi.Router) {
				r.Post("/classify", sentimentHandler.Classify)
				r.Post("/retrain", sentimentHandler.Retrain)
			})

			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/forecast", forecastHandler.Forecast)
			})

			// Alerts API
			r.Route("/alerts", func(r chi.Router) {
				r.Post("/evaluate", alertHandler.Evaluate)
				r.Get("/rules", alertHandler.ListRules)
			})

			// Ingestion API
			r.Route("/ingest", func(r chi.Router) {
				r.Post("/run", ingestHandler.Run)
			})

			// Dashboard API
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.Stats)
				r.Get("/timeseries", dashboardHandler.TimeSeries)
			})
		})
	})

	// Live alert feed
	router.Get("/ws/alerts", handlers.AlertFeedHandler(natsConn, alertsSubject, logger))

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: server,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
