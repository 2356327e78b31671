// internal/service/alerting/evaluator.go

package alerting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
	"mediawatch/internal/metrics"
)

// Evaluator matches active alert rules against recently collected posts.
// A rule matching several posts in one pass triggers once per post; the
// counter semantics are per match, not per distinct fire.
type Evaluator struct {
	cfg      config.AlertingConfig
	posts    monitor.PostStore
	rules    monitor.RuleStore
	notifier monitor.Notifier
	logger   logging.Logger
	metrics  *metrics.Metrics
}

// NewEvaluator creates an alert evaluator
func NewEvaluator(
	cfg config.AlertingConfig,
	posts monitor.PostStore,
	rules monitor.RuleStore,
	notifier monitor.Notifier,
	logger logging.Logger,
	m *metrics.Metrics,
) *Evaluator {
	return &Evaluator{
		cfg:      cfg,
		posts:    posts,
		rules:    rules,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
	}
}

// Evaluate runs one evaluation pass over posts collected within the
// trailing window and returns the emitted alert events. Trigger counters
// are accumulated in memory during the pass and written once per rule at
// the end, so an overlapping pass never loses partial per-post state.
func (e *Evaluator) Evaluate(ctx context.Context) ([]monitor.AlertEvent, error) {
	start := time.Now()

	rules, err := e.rules.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}

	posts, err := e.posts.PostsSince(ctx, time.Now().UTC().Add(-e.cfg.Window))
	if err != nil {
		return nil, err
	}

	var events []monitor.AlertEvent
	increments := make(map[string]int)

	for _, rule := range rules {
		if strings.TrimSpace(rule.Keyword) == "" {
			e.logger.WithField("rule_id", rule.ID).Warn("Skipping alert rule with empty keyword")
			continue
		}

		keyword := strings.ToLower(rule.Keyword)
		for _, post := range posts {
			matchedOn, ok := match(keyword, post)
			if !ok {
				continue
			}

			increments[rule.ID]++
			events = append(events, monitor.AlertEvent{
				ID:         uuid.New().String(),
				Rule:       rule,
				Post:       post,
				MatchedOn:  matchedOn,
				OccurredAt: time.Now().UTC(),
			})
		}
	}

	// Persist counters before delivery: a notifier failure must not roll
	// back an increment.
	for ruleID, by := range increments {
		if err := e.rules.IncrementTrigger(ctx, ruleID, by); err != nil {
			e.logger.WithError(err).WithField("rule_id", ruleID).Error("Failed to persist trigger count")
		}
	}

	for _, event := range events {
		if e.metrics != nil {
			e.metrics.AlertsFired.WithLabelValues(string(event.Rule.Severity)).Inc()
		}
		if delivered := e.notifier.Notify(ctx, event); !delivered {
			e.logger.WithFields(logging.Fields{
				"rule_id": event.Rule.ID,
				"keyword": event.Rule.Keyword,
				"post_id": event.Post.ID,
			}).Warn("Alert notification not delivered")
		}
	}

	if e.metrics != nil {
		e.metrics.EvaluationTime.Observe(time.Since(start).Seconds())
	}

	if len(events) > 0 {
		e.logger.WithFields(logging.Fields{
			"events": len(events),
			"rules":  len(increments),
		}).Info("Alert evaluation pass completed")
	}

	return events, nil
}

// match reports whether the lower-cased keyword appears in the post's
// content or any of its tags
func match(keyword string, post monitor.Post) (string, bool) {
	if strings.Contains(strings.ToLower(post.Content), keyword) {
		return "content", true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return "tag", true
		}
	}
	return "", false
}
