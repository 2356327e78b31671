package forecast

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawatch/internal/config"
	domain "mediawatch/internal/domain/forecast"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
)

// fakePostStore serves a fixed post list to the predictor
type fakePostStore struct {
	posts []monitor.Post
}

func (f *fakePostStore) Append(ctx context.Context, post monitor.Post) error {
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostStore) PostsSince(ctx context.Context, since time.Time) ([]monitor.Post, error) {
	var out []monitor.Post
	for _, p := range f.posts {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostStore) RecentPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.posts, nil
}

func (f *fakePostStore) ProcessedPosts(ctx context.Context, limit int) ([]monitor.Post, error) {
	return f.posts, nil
}

func (f *fakePostStore) UpdateSentiment(ctx context.Context, id string, label monitor.SentimentLabel, score float64) error {
	return nil
}

func (f *fakePostStore) Stats(ctx context.Context) (monitor.DashboardStats, error) {
	return monitor.DashboardStats{}, nil
}

func (f *fakePostStore) TimeSeries(ctx context.Context, hours int) ([]monitor.TimeSeriesPoint, error) {
	return nil, nil
}

func newTestPredictor(store *fakePostStore) *Predictor {
	return NewPredictor(config.ForecastConfig{
		Window:       7 * 24 * time.Hour,
		MinPosts:     10,
		DefaultHours: 24,
	}, store, logging.New(), nil)
}

// testBase is a recent anchor kept at least an hour past midnight, so
// subtracting intra-day minute offsets never crosses a date boundary
var testBase = func() time.Time {
	base := time.Now().UTC()
	if base.Hour() < 1 {
		base = base.Add(-2 * time.Hour)
	}
	return base
}()

// day returns a timestamp daysAgo calendar days before the anchor
func day(daysAgo int) time.Time {
	return testBase.AddDate(0, 0, -daysAgo)
}

func TestPredictTrendsInsufficientData(t *testing.T) {
	store := &fakePostStore{}
	for i := 0; i < 9; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID:        fmt.Sprintf("p%d", i),
			Category:  "Technology",
			Content:   "some content",
			CreatedAt: day(0),
		})
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 0, prediction.Confidence)
	assert.Empty(t, prediction.PredictedTrends)
	assert.Empty(t, prediction.EmergingTopics)
	assert.NotEmpty(t, prediction.Message)
}

func TestPredictTrendsRisingCategory(t *testing.T) {
	store := &fakePostStore{}

	// Daily counts [10, 20, 30]: perfectly linear, slope 10.
	counts := []int{10, 20, 30}
	for dayIdx, count := range counts {
		for i := 0; i < count; i++ {
			store.posts = append(store.posts, monitor.Post{
				ID:        fmt.Sprintf("p%d-%d", dayIdx, i),
				Category:  "Technology",
				Content:   "steady coverage of the product",
				Sentiment: monitor.SentimentNeutral,
				CreatedAt: day(len(counts) - 1 - dayIdx).Add(-time.Duration(i) * time.Minute),
			})
		}
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, prediction.PredictedTrends, 1)

	trend := prediction.PredictedTrends[0]
	assert.Equal(t, "Technology", trend.Category)
	assert.Equal(t, domain.TrendRising, trend.Trend)
	assert.Greater(t, trend.ChangePercent, 0.0)
	assert.Equal(t, 20, trend.CurrentVolume)
	// Projection at index 3 of count = 10*day + 10 is 40.
	assert.Equal(t, 40, trend.PredictedVolume)
	assert.Equal(t, 95.0, trend.Confidence)
}

func TestPredictTrendsSkipsSparseCategories(t *testing.T) {
	store := &fakePostStore{}

	// 4 posts in one category: below the 5-post floor. 8 in another but
	// all on the same day: below the 3-day floor.
	for i := 0; i < 4; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID: fmt.Sprintf("a%d", i), Category: "Politics",
			Content: "x", CreatedAt: day(i),
		})
	}
	for i := 0; i < 8; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID: fmt.Sprintf("b%d", i), Category: "Economy",
			Content: "x", CreatedAt: day(0).Add(-time.Duration(i) * time.Minute),
		})
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)
	assert.Empty(t, prediction.PredictedTrends)
}

func TestSentimentShiftImproving(t *testing.T) {
	store := &fakePostStore{}

	// Older half: 4 positive, 4 neutral. Recent half: 8 positive.
	// Positive shift = (8-4)/4*100 = 100.
	for i := 0; i < 8; i++ {
		label := monitor.SentimentNeutral
		if i < 4 {
			label = monitor.SentimentPositive
		}
		store.posts = append(store.posts, monitor.Post{
			ID: fmt.Sprintf("old%d", i), Category: "Social", Content: "x",
			Sentiment: label, CreatedAt: day(2).Add(-time.Duration(i) * time.Minute),
		})
	}
	for i := 0; i < 8; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID: fmt.Sprintf("new%d", i), Category: "Social", Content: "x",
			Sentiment: monitor.SentimentPositive,
			CreatedAt: day(0).Add(-time.Duration(i) * time.Minute),
		})
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)

	forecast := prediction.SentimentForecast
	assert.Equal(t, 100.0, forecast.PositiveShift)
	assert.Equal(t, domain.OutlookImproving, forecast.Outlook)
	assert.Equal(t, monitor.SentimentPositive, forecast.PredictedDominantSentiment)
}

func TestSentimentShiftFromZeroBaseline(t *testing.T) {
	store := &fakePostStore{}

	// No negatives in the older half, some in the recent half: the shift
	// is pinned to 100 rather than dividing by zero.
	for i := 0; i < 6; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID: fmt.Sprintf("old%d", i), Category: "Social", Content: "x",
			Sentiment: monitor.SentimentNeutral,
			CreatedAt: day(2).Add(-time.Duration(i) * time.Minute),
		})
	}
	for i := 0; i < 6; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID: fmt.Sprintf("new%d", i), Category: "Social", Content: "x",
			Sentiment: monitor.SentimentNegative,
			CreatedAt: day(0).Add(-time.Duration(i) * time.Minute),
		})
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)

	forecast := prediction.SentimentForecast
	assert.Equal(t, 100.0, forecast.NegativeShift)
	assert.Equal(t, domain.OutlookDeteriorating, forecast.Outlook)
}

func TestEmergingTopicsSkipShortTokens(t *testing.T) {
	store := &fakePostStore{}

	for i := 0; i < 12; i++ {
		store.posts = append(store.posts, monitor.Post{
			ID:        fmt.Sprintf("p%d", i),
			Category:  "Technology",
			Content:   "the new blockchain protocol, upgrade now!",
			CreatedAt: day(0).Add(-time.Duration(i) * time.Minute),
		})
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)

	require.NotEmpty(t, prediction.EmergingTopics)
	for _, topic := range prediction.EmergingTopics {
		assert.Greater(t, len(topic.Keyword), 4)
		assert.Equal(t, 0.0, topic.GrowthRate)
	}

	// Frequency ordering: all retained tokens appear once per post, so
	// the most recent third of 12 posts yields frequency 4 each.
	assert.Equal(t, 4, prediction.EmergingTopics[0].Frequency)
}

func TestEndToEndRisingTech(t *testing.T) {
	store := &fakePostStore{}

	// 12 posts over 3 days with daily counts [2, 4, 6].
	counts := []int{2, 4, 6}
	for dayIdx, count := range counts {
		for i := 0; i < count; i++ {
			store.posts = append(store.posts, monitor.Post{
				ID:        fmt.Sprintf("p%d-%d", dayIdx, i),
				Category:  "Tech",
				Content:   "another product announcement",
				Sentiment: monitor.SentimentNeutral,
				CreatedAt: day(len(counts) - 1 - dayIdx).Add(-time.Duration(i) * time.Minute),
			})
		}
	}

	prediction, err := newTestPredictor(store).PredictTrends(context.Background(), 24)
	require.NoError(t, err)

	require.Len(t, prediction.PredictedTrends, 1)
	assert.Equal(t, "Tech", prediction.PredictedTrends[0].Category)
	assert.Equal(t, domain.TrendRising, prediction.PredictedTrends[0].Trend)
	assert.GreaterOrEqual(t, prediction.Confidence, 50)
	assert.Equal(t, 24, prediction.ForecastHours)
}

func TestRecommendationsDefault(t *testing.T) {
	recommendations := generateRecommendations(nil, domain.SentimentForecast{
		Outlook: domain.OutlookNeutral,
	})

	require.Len(t, recommendations, 1)
	assert.Contains(t, recommendations[0], "standard monitoring")
}

func TestRecommendationsRisingAndOutlook(t *testing.T) {
	trends := []domain.PredictedTrend{
		{Category: "Tech", Trend: domain.TrendRising},
		{Category: "Economy", Trend: domain.TrendFalling},
		{Category: "Health", Trend: domain.TrendRising},
	}

	recommendations := generateRecommendations(trends, domain.SentimentForecast{
		Outlook: domain.OutlookDeteriorating,
	})

	require.Len(t, recommendations, 2)
	assert.Contains(t, recommendations[0], "Tech")
	assert.Contains(t, recommendations[0], "Health")
	assert.NotContains(t, recommendations[0], "Economy")
	assert.Contains(t, recommendations[1], "Sentiment declining")
}
