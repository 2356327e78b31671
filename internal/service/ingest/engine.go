// internal/service/ingest/engine.go

package ingest

import (
	"context"
	"sync"
	"time"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/domain/sentiment"
	"mediawatch/internal/logging"
	"mediawatch/internal/metrics"
)

// Source provides batches of raw posts from a monitored platform. Fetched
// posts carry content and attribution but no category or sentiment; the
// engine fills those in before storage.
type Source interface {
	// Name returns the source name
	Name() string

	// Fetch returns up to limit new posts
	Fetch(ctx context.Context, limit int) ([]monitor.Post, error)
}

// Evaluator runs one alert evaluation pass after a crawl cycle
type Evaluator interface {
	Evaluate(ctx context.Context) ([]monitor.AlertEvent, error)
}

// Engine drives the ingestion pipeline: fetch posts from each source,
// categorize, classify sentiment, store, then evaluate alert rules once
// per cycle.
type Engine struct {
	cfg        config.IngestConfig
	sources    []Source
	store      monitor.PostStore
	classifier sentiment.Classifier
	evaluator  Evaluator
	logger     logging.Logger
	metrics    *metrics.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an ingestion engine
func NewEngine(
	cfg config.IngestConfig,
	sources []Source,
	store monitor.PostStore,
	classifier sentiment.Classifier,
	evaluator Evaluator,
	logger logging.Logger,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		cfg:        cfg,
		sources:    sources,
		store:      store,
		classifier: classifier,
		evaluator:  evaluator,
		logger:     logger,
		metrics:    m,
	}
}

// Start begins periodic crawl cycles until Stop is called
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ticker := time.NewTicker(e.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if _, err := e.RunCycle(runCtx); err != nil {
					e.logger.WithError(err).Error("Crawl cycle failed")
				}
			}
		}
	}()

	e.logger.WithField("interval", e.cfg.Interval.String()).Info("Ingestion engine started")
	return nil
}

// Stop halts periodic crawling and waits for an in-flight cycle to finish
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunCycle executes one crawl cycle and returns the number of posts
// stored. A failing source or post never aborts the rest of the batch.
func (e *Engine) RunCycle(ctx context.Context) (int, error) {
	stored := 0

	for _, source := range e.sources {
		posts, err := source.Fetch(ctx, e.cfg.MaxPostsPerCycle)
		if err != nil {
			e.logger.WithError(err).WithField("source", source.Name()).Warn("Source fetch failed")
			continue
		}

		for _, post := range posts {
			if post.Content == "" {
				continue
			}

			post.Category = Categorize(post.Content)
			result := e.classifier.Classify(ctx, post.Content)
			post.Sentiment = result.Label
			post.SentimentScore = result.Score
			post.Processed = true
			if post.CreatedAt.IsZero() {
				post.CreatedAt = time.Now().UTC()
			}

			if err := e.store.Append(ctx, post); err != nil {
				e.logger.WithError(err).WithFields(logging.Fields{
					"source":  source.Name(),
					"post_id": post.ID,
				}).Warn("Failed to store post")
				continue
			}

			stored++
			if e.metrics != nil {
				e.metrics.PostsIngested.Inc()
				e.metrics.Classifications.WithLabelValues(string(result.Label)).Inc()
			}
		}
	}

	if _, err := e.evaluator.Evaluate(ctx); err != nil {
		e.logger.WithError(err).Error("Alert evaluation failed")
	}

	if stored > 0 {
		e.logger.WithField("posts", stored).Info("Crawl cycle completed")
	}

	return stored, nil
}
