package sentiment

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
)

func testConfig(t *testing.T) config.SentimentConfig {
	t.Helper()
	return config.SentimentConfig{
		ModelPath:        filepath.Join(t.TempDir(), "model.json"),
		MinRetrainPosts:  10,
		RetrainBatchSize: 1000,
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(testConfig(t), logging.New())
	ctx := context.Background()

	text := "a great product, really happy with the result"
	first := c.Classify(ctx, text)
	second := c.Classify(ctx, text)

	assert.Equal(t, first, second)
}

func TestClassifySeedSentiment(t *testing.T) {
	c := NewClassifier(testConfig(t), logging.New())
	ctx := context.Background()

	positive := c.Classify(ctx, "very happy with this great excellent result")
	assert.Equal(t, monitor.SentimentPositive, positive.Label)
	assert.Greater(t, positive.Score, 0.0)

	negative := c.Classify(ctx, "terrible experience, a disappointed failure")
	assert.Equal(t, monitor.SentimentNegative, negative.Label)
	assert.Less(t, negative.Score, 0.0)
}

func TestClassifyScoreRange(t *testing.T) {
	c := NewClassifier(testConfig(t), logging.New())
	ctx := context.Background()

	for _, text := range []string{
		"happy great success",
		"terrible failure crisis",
		"completely unrelated words about gardening",
		"",
	} {
		result := c.Classify(ctx, text)
		assert.GreaterOrEqual(t, result.Score, -1.0, "text %q", text)
		assert.LessOrEqual(t, result.Score, 1.0, "text %q", text)
	}
}

func TestClassifyFallsBackWithoutTokens(t *testing.T) {
	c := NewClassifier(testConfig(t), logging.New())

	// Punctuation-only text has no tokens for the model; the lexicon
	// must answer instead of an error surfacing.
	result := c.Classify(context.Background(), "!!! ???")
	assert.Equal(t, monitor.SentimentNeutral, result.Label)
	assert.Equal(t, 0.0, result.Score)
}

func TestRetrainRequiresMinimumPosts(t *testing.T) {
	c := NewClassifier(testConfig(t), logging.New())
	ctx := context.Background()

	before := c.Classify(ctx, "great excellent result")

	posts := labeledPosts(5)
	err := c.Retrain(ctx, posts)
	require.Error(t, err)

	// The previously active model stays in place.
	assert.Equal(t, before, c.Classify(ctx, "great excellent result"))
}

func TestRetrainSwapsModel(t *testing.T) {
	c := NewClassifier(testConfig(t), logging.New())
	ctx := context.Background()

	require.NoError(t, c.Retrain(ctx, labeledPosts(12)))

	// The retrained model answers deterministically.
	text := "the rollout was flawless and customers are delighted"
	assert.Equal(t, c.Classify(ctx, text), c.Classify(ctx, text))
}

func TestModelPersistsAcrossInstances(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first := NewClassifier(cfg, logging.New())
	text := "very happy with this great result"
	want := first.Classify(ctx, text)

	// A second classifier with the same path loads the persisted model
	// instead of retraining.
	second := NewClassifier(cfg, logging.New())
	assert.Equal(t, want, second.Classify(ctx, text))
}

func labeledPosts(n int) []monitor.Post {
	posts := make([]monitor.Post, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			posts = append(posts, monitor.Post{
				Content:   fmt.Sprintf("customers are delighted with release %d", i),
				Sentiment: monitor.SentimentPositive,
			})
		} else {
			posts = append(posts, monitor.Post{
				Content:   fmt.Sprintf("outage %d left customers furious", i),
				Sentiment: monitor.SentimentNegative,
			})
		}
	}
	return posts
}
