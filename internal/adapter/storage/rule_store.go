// internal/adapter/storage/rule_store.go

package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"mediawatch/internal/domain/monitor"
)

// RuleStore implements monitor.RuleStore on PostgreSQL. Rule creation and
// editing belong to the external admin surface; this adapter only reads
// rules and advances trigger counters.
type RuleStore struct {
	db *pgxpool.Pool
}

// NewRuleStore creates a new rule store
func NewRuleStore(db *pgxpool.Pool) *RuleStore {
	return &RuleStore{
		db: db,
	}
}

// ActiveRules returns all rules with the active flag set
func (s *RuleStore) ActiveRules(ctx context.Context) ([]monitor.AlertRule, error) {
	query := `
		SELECT id, keyword, severity, active, notify_email, created_at, trigger_count
		FROM alert_rules
		WHERE active = true
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying active rules: %w", err)
	}
	defer rows.Close()

	var rules []monitor.AlertRule
	for rows.Next() {
		var r monitor.AlertRule
		var severity string
		if err := rows.Scan(
			&r.ID,
			&r.Keyword,
			&severity,
			&r.Active,
			&r.NotifyEmail,
			&r.CreatedAt,
			&r.TriggerCount,
		); err != nil {
			return nil, fmt.Errorf("error scanning rule: %w", err)
		}
		r.Severity = monitor.Severity(severity)
		rules = append(rules, r)
	}

	return rules, rows.Err()
}

// IncrementTrigger adds by to a rule's trigger counter
func (s *RuleStore) IncrementTrigger(ctx context.Context, id string, by int) error {
	if by <= 0 {
		return nil
	}

	query := `
		UPDATE alert_rules
		SET trigger_count = trigger_count + $2
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, by)
	if err != nil {
		return fmt.Errorf("error incrementing trigger count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rule %s not found", id)
	}

	return nil
}
