package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/puzzelhulp/woordzoeker-backend/internal/stats/domain"
)

// TermRepository handles Postgres operations for lookup statistics
type TermRepository struct {
	db *sql.DB
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(db *sql.DB) *TermRepository {
	return &TermRepository{db: db}
}

// Record bumps the counter for one (term, outcome) pair.
func (r *TermRepository) Record(ctx context.Context, term, outcome string) error {
	const q = `
INSERT INTO term_lookups (term, outcome, count, last_seen_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (term, outcome) DO UPDATE
  SET count = term_lookups.count + 1,
      last_seen_at = now()`
	if _, err := r.db.ExecContext(ctx, q, term, outcome); err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// TopTerms returns the most-queried terms across all outcomes, busiest
// first.
func (r *TermRepository) TopTerms(ctx context.Context, limit int) ([]domain.TermCount, error) {
	const q = `
SELECT term, SUM(count) AS lookups, MAX(last_seen_at) AS last_seen_at
FROM term_lookups
GROUP BY term
ORDER BY lookups DESC, term ASC
LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top terms: %w", err)
	}
	defer rows.Close()

	out := []domain.TermCount{}
	for rows.Next() {
		var tc domain.TermCount
		if err := rows.Scan(&tc.Term, &tc.Lookups, &tc.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan top term row: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top term rows: %w", err)
	}
	return out, nil
}

// TermOutcomes returns the per-outcome rows for a single term.
func (r *TermRepository) TermOutcomes(ctx context.Context, term string) ([]domain.TermStat, error) {
	const q = `
SELECT term, outcome, count, last_seen_at
FROM term_lookups
WHERE term = $1
ORDER BY count DESC`
	rows, err := r.db.QueryContext(ctx, q, term)
	if err != nil {
		return nil, fmt.Errorf("failed to query term outcomes: %w", err)
	}
	defer rows.Close()

	out := []domain.TermStat{}
	for rows.Next() {
		var ts domain.TermStat
		if err := rows.Scan(&ts.Term, &ts.Outcome, &ts.Count, &ts.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan term outcome row: %w", err)
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read term outcome rows: %w", err)
	}
	return out, nil
}
