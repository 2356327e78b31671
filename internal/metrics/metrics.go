// internal/metrics/metrics.go

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for the analytics core
type Metrics struct {
	PostsIngested   prometheus.Counter
	Classifications *prometheus.CounterVec
	AlertsFired     *prometheus.CounterVec
	ForecastsRun    prometheus.Counter
	EvaluationTime  prometheus.Histogram
}

// New registers the core's collectors with the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PostsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "mediawatch_posts_ingested_total",
			Help: "Number of posts collected and stored",
		}),
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mediawatch_classifications_total",
			Help: "Sentiment classifications by resulting label",
		}, []string{"label"}),
		AlertsFired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mediawatch_alerts_fired_total",
			Help: "Alert events emitted by severity",
		}, []string{"severity"}),
		ForecastsRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "mediawatch_forecasts_total",
			Help: "Trend forecasts generated",
		}),
		EvaluationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mediawatch_alert_evaluation_seconds",
			Help:    "Duration of alert evaluation passes",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
