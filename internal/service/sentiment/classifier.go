// internal/service/sentiment/classifier.go

package sentiment

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
	domain "mediawatch/internal/domain/sentiment"
	"mediawatch/internal/logging"
)

// Classifier wraps the trainable naive Bayes model with the lexical scorer
// as fallback. Classify never returns an error: any model problem routes
// the call through the lexicon instead.
type Classifier struct {
	cfg     config.SentimentConfig
	logger  logging.Logger
	lexicon Lexicon

	// model is the active model pointer. Predictions read it exactly once
	// per call; Retrain replaces it with a single atomic store, so an
	// in-flight prediction always runs against one model version.
	model    atomic.Pointer[bayesModel]
	initOnce sync.Once

	// retrainMu serializes concurrent Retrain calls. It does not cover
	// Classify.
	retrainMu sync.Mutex
}

// NewClassifier creates a classifier. The model is not loaded or trained
// until the first call that needs it.
func NewClassifier(cfg config.SentimentConfig, logger logging.Logger) *Classifier {
	return &Classifier{
		cfg:     cfg,
		logger:  logger,
		lexicon: NewLexicon(),
	}
}

// Classify scores a single text. The trained model is consulted when
// available; otherwise the lexical scorer decides.
func (c *Classifier) Classify(ctx context.Context, text string) domain.Result {
	model := c.activeModel()
	if model == nil {
		return c.lexicon.Score(text)
	}

	p, err := model.probabilityPositive(text)
	if err != nil {
		return c.lexicon.Score(text)
	}

	label := monitor.SentimentNegative
	score := -p
	if p >= 0.5 {
		label = monitor.SentimentPositive
		score = p
	}

	margin := math.Abs(p - 0.5)
	if margin <= 0.1 {
		label = monitor.SentimentNeutral
		score = 0
	}

	return domain.Result{
		Label:     label,
		Score:     round2(score),
		Confident: margin > 0.2,
	}
}

// Retrain refits the model from already-labeled posts and swaps it in. The
// seed corpus is mixed back in so both classes stay represented even when
// the batch is one-sided. Neutral posts carry no binary signal and are
// skipped.
func (c *Classifier) Retrain(ctx context.Context, posts []monitor.Post) error {
	c.retrainMu.Lock()
	defer c.retrainMu.Unlock()

	labeled := 0
	examples := append([]trainingExample{}, seedCorpus...)
	for _, post := range posts {
		switch post.Sentiment {
		case monitor.SentimentPositive:
			examples = append(examples, trainingExample{Text: post.Content, Positive: true})
		case monitor.SentimentNegative:
			examples = append(examples, trainingExample{Text: post.Content, Positive: false})
		default:
			continue
		}
		labeled++
	}

	if len(posts) < c.cfg.MinRetrainPosts {
		return fmt.Errorf("retrain requires at least %d posts, got %d", c.cfg.MinRetrainPosts, len(posts))
	}

	model, err := fitModel(examples)
	if err != nil {
		return fmt.Errorf("fitting model: %w", err)
	}

	c.model.Store(model)
	c.logger.WithFields(logging.Fields{
		"labeled_posts": labeled,
		"vocab_size":    model.VocabSize,
	}).Info("Sentiment model retrained")

	if err := saveModel(model, c.cfg.ModelPath); err != nil {
		// The swap already happened; persistence only matters for the
		// next process start.
		c.logger.WithError(err).Warn("Failed to persist retrained sentiment model")
	}

	return nil
}

// activeModel returns the current model, initializing it on first use.
// Initialization prefers a previously persisted model and trains from the
// seed corpus when none exists. A nil return means the lexicon handles the
// call.
func (c *Classifier) activeModel() *bayesModel {
	c.initOnce.Do(func() {
		if model, err := loadModel(c.cfg.ModelPath); err == nil {
			c.model.Store(model)
			c.logger.WithField("path", c.cfg.ModelPath).Info("Sentiment model loaded")
			return
		}

		model, err := fitModel(seedCorpus)
		if err != nil {
			c.logger.WithError(err).Warn("Sentiment model bootstrap failed, using lexical fallback")
			return
		}

		c.model.Store(model)
		c.logger.Info("Sentiment model trained from seed corpus")

		if err := saveModel(model, c.cfg.ModelPath); err != nil {
			c.logger.WithError(err).Warn("Failed to persist sentiment model")
		}
	})

	return c.model.Load()
}
