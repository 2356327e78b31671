// internal/service/forecast/predictor.go

package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"mediawatch/internal/config"
	domain "mediawatch/internal/domain/forecast"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
	"mediawatch/internal/metrics"
)

// Predictor produces trend forecasts from the historical post window. It is
// read-only with respect to the post store and keeps no state between
// invocations.
type Predictor struct {
	cfg     config.ForecastConfig
	store   monitor.PostStore
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewPredictor creates a trend predictor
func NewPredictor(cfg config.ForecastConfig, store monitor.PostStore, logger logging.Logger, m *metrics.Metrics) *Predictor {
	return &Predictor{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// PredictTrends forecasts category volume, sentiment momentum and emerging
// keywords for the next hoursAhead hours, based on the trailing window of
// posts
func (p *Predictor) PredictTrends(ctx context.Context, hoursAhead int) (domain.TrendPrediction, error) {
	now := time.Now().UTC()

	posts, err := p.store.PostsSince(ctx, now.Add(-p.cfg.Window))
	if err != nil {
		return domain.TrendPrediction{}, fmt.Errorf("loading historical posts: %w", err)
	}

	if len(posts) < p.cfg.MinPosts {
		// A defined terminal state, not an error.
		return domain.TrendPrediction{
			GeneratedAt:     now,
			ForecastHours:   hoursAhead,
			PredictedTrends: []domain.PredictedTrend{},
			EmergingTopics:  []domain.EmergingTopic{},
			Confidence:      0,
			Message:         "Insufficient data for prediction",
			SentimentForecast: domain.SentimentForecast{
				Outlook:                    domain.OutlookNeutral,
				PredictedDominantSentiment: monitor.SentimentNeutral,
			},
		}, nil
	}

	// Recency ordering is shared by the sentiment and topic analyses.
	byRecency := make([]monitor.Post, len(posts))
	copy(byRecency, posts)
	sort.SliceStable(byRecency, func(i, j int) bool {
		return byRecency[i].CreatedAt.After(byRecency[j].CreatedAt)
	})

	trends := p.analyzeCategoryTrends(posts)
	sentimentForecast := forecastSentiment(byRecency)

	prediction := domain.TrendPrediction{
		GeneratedAt:       now,
		ForecastHours:     hoursAhead,
		PredictedTrends:   trends,
		SentimentForecast: sentimentForecast,
		EmergingTopics:    detectEmergingTopics(byRecency),
		Confidence:        calculateConfidence(posts, now),
		Recommendations:   generateRecommendations(trends, sentimentForecast),
	}

	if p.metrics != nil {
		p.metrics.ForecastsRun.Inc()
	}
	p.logger.WithFields(logging.Fields{
		"posts":      len(posts),
		"trends":     len(prediction.PredictedTrends),
		"confidence": prediction.Confidence,
	}).Debug("Trend prediction generated")

	return prediction, nil
}

// analyzeCategoryTrends fits an OLS line to the daily post counts of each
// category and projects it one day past the observed window
func (p *Predictor) analyzeCategoryTrends(posts []monitor.Post) []domain.PredictedTrend {
	byCategory := make(map[string][]monitor.Post)
	for _, post := range posts {
		byCategory[post.Category] = append(byCategory[post.Category], post)
	}

	var predictions []domain.PredictedTrend
	for category, categoryPosts := range byCategory {
		if len(categoryPosts) < 5 {
			continue
		}

		counts := dailyCounts(categoryPosts)
		if len(counts) < 3 {
			continue
		}

		slope, intercept := fitLine(counts)
		predicted := slope*float64(len(counts)) + intercept

		trend := domain.TrendStable
		if slope > 0.5 {
			trend = domain.TrendRising
		} else if slope < -0.5 {
			trend = domain.TrendFalling
		}

		sum := 0
		for _, c := range counts {
			sum += c
		}
		currentAvg := float64(sum) / float64(len(counts))

		changePercent := 0.0
		if currentAvg > 0 {
			changePercent = (predicted - currentAvg) / currentAvg * 100
		}

		predictions = append(predictions, domain.PredictedTrend{
			Category:        category,
			CurrentVolume:   int(currentAvg),
			PredictedVolume: int(math.Max(0, predicted)),
			Trend:           trend,
			ChangePercent:   math.Round(changePercent*10) / 10,
			Confidence:      math.Min(95, 50+math.Abs(slope)*10),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].ChangePercent > predictions[j].ChangePercent
	})
	if len(predictions) > 5 {
		predictions = predictions[:5]
	}

	return predictions
}

// dailyCounts buckets posts by calendar day and returns the counts in day
// order
func dailyCounts(posts []monitor.Post) []int {
	byDay := make(map[time.Time]int)
	for _, post := range posts {
		day := post.CreatedAt.UTC().Truncate(24 * time.Hour)
		byDay[day]++
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	counts := make([]int, len(days))
	for i, day := range days {
		counts[i] = byDay[day]
	}

	return counts
}

// fitLine computes ordinary least squares over counts indexed 0..n-1
func fitLine(counts []int) (slope, intercept float64) {
	n := float64(len(counts))

	var sumX, sumY, sumXY, sumX2 float64
	for i, count := range counts {
		x := float64(i)
		y := float64(count)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	intercept = (sumY - slope*sumX) / n

	return slope, intercept
}

// forecastSentiment compares label counts in the most recent half of the
// window against the remainder. byRecency must be sorted newest first.
func forecastSentiment(byRecency []monitor.Post) domain.SentimentForecast {
	half := len(byRecency) / 2
	recent := countLabels(byRecency[:half])
	older := countLabels(byRecency[half:])

	positiveShift := labelShift(recent, older, monitor.SentimentPositive)
	negativeShift := labelShift(recent, older, monitor.SentimentNegative)

	outlook := domain.OutlookNeutral
	if positiveShift > 10 {
		outlook = domain.OutlookImproving
	} else if negativeShift > 10 {
		outlook = domain.OutlookDeteriorating
	}

	return domain.SentimentForecast{
		Outlook:                    outlook,
		PositiveShift:              positiveShift,
		NegativeShift:              negativeShift,
		PredictedDominantSentiment: dominantLabel(recent),
	}
}

func countLabels(posts []monitor.Post) map[monitor.SentimentLabel]int {
	counts := make(map[monitor.SentimentLabel]int)
	for _, post := range posts {
		counts[post.Sentiment]++
	}
	return counts
}

// labelShift is the percentage change of a label's count between the older
// and recent halves. A label appearing only in the recent half counts as a
// full 100% shift.
func labelShift(recent, older map[monitor.SentimentLabel]int, label monitor.SentimentLabel) float64 {
	recentCount := recent[label]
	olderCount := older[label]

	if olderCount == 0 {
		if recentCount > 0 {
			return 100
		}
		return 0
	}

	return float64(recentCount-olderCount) / float64(olderCount) * 100
}

func dominantLabel(counts map[monitor.SentimentLabel]int) monitor.SentimentLabel {
	dominant := monitor.SentimentNeutral
	best := 0
	for _, label := range []monitor.SentimentLabel{
		monitor.SentimentPositive,
		monitor.SentimentNegative,
		monitor.SentimentNeutral,
	} {
		if counts[label] > best {
			best = counts[label]
			dominant = label
		}
	}
	return dominant
}

// topicDelimiters is the punctuation stripped during topic tokenization
const topicDelimiters = " .,!?:;"

// detectEmergingTopics counts word frequency across the most recent third
// of the window and returns the top 20 keywords. Ties keep
// first-encountered order. byRecency must be sorted newest first.
func detectEmergingTopics(byRecency []monitor.Post) []domain.EmergingTopic {
	recent := byRecency[:len(byRecency)/3]

	freq := make(map[string]int)
	var order []string
	for _, post := range recent {
		tokens := strings.FieldsFunc(strings.ToLower(post.Content), func(r rune) bool {
			return strings.ContainsRune(topicDelimiters, r)
		})
		for _, token := range tokens {
			if len(token) <= 4 {
				continue
			}
			if _, seen := freq[token]; !seen {
				order = append(order, token)
			}
			freq[token]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > 20 {
		order = order[:20]
	}

	topics := make([]domain.EmergingTopic, len(order))
	for i, keyword := range order {
		topics[i] = domain.EmergingTopic{
			Keyword:   keyword,
			Frequency: freq[keyword],
			// No historical baseline is computed; growth rate is a
			// future extension point.
			GrowthRate: 0,
		}
	}

	return topics
}

// calculateConfidence combines data volume, recency and a fixed
// consistency baseline into a 0-100 score
func calculateConfidence(posts []monitor.Post, now time.Time) int {
	volumeScore := len(posts) / 10
	if volumeScore > 40 {
		volumeScore = 40
	}

	recencyScore := 15
	cutoff := now.Add(-6 * time.Hour)
	for _, post := range posts {
		if post.CreatedAt.After(cutoff) {
			recencyScore = 30
			break
		}
	}

	const consistencyScore = 25

	return volumeScore + recencyScore + consistencyScore
}

// generateRecommendations turns the computed trends and outlook into
// operator-facing guidance strings
func generateRecommendations(trends []domain.PredictedTrend, sentiment domain.SentimentForecast) []string {
	var recommendations []string

	var rising []string
	for _, t := range trends {
		if t.Trend == domain.TrendRising {
			rising = append(rising, t.Category)
		}
	}
	if len(rising) > 3 {
		rising = rising[:3]
	}
	if len(rising) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Monitor closely: %s showing upward trend", strings.Join(rising, ", ")))
	}

	switch sentiment.Outlook {
	case domain.OutlookDeteriorating:
		recommendations = append(recommendations,
			"Sentiment declining - consider proactive communication strategy")
	case domain.OutlookImproving:
		recommendations = append(recommendations,
			"Positive sentiment momentum - opportunity for engagement")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Continue standard monitoring protocols")
	}

	return recommendations
}
