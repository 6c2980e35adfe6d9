package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
)

// TrialRun is one stored benchmark summary.
type TrialRun struct {
	ID        int64     `json:"id"`
	Tree      string    `json:"tree"`
	Answers   int       `json:"answers"`
	Solved    int       `json:"solved"`
	Mean      float64   `json:"mean"`
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	Q1        float64   `json:"q1"`
	Median    float64   `json:"median"`
	Q3        float64   `json:"q3"`
	Failures  int       `json:"failures"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertTrial stores a trial summary and returns its row ID.
func InsertTrial(ctx context.Context, db *sql.DB, s trial.Summary) (int64, error) {
	res, err := db.ExecContext(ctx, `
        INSERT INTO trial_runs
            (tree, answers, solved, mean, min_guesses, max_guesses, q1, median, q3, failures, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Tree, s.Answers, s.Solved, s.Mean, s.Min, s.Max,
		s.Quartiles[0], s.Quartiles[1], s.Quartiles[2],
		len(s.Failures), s.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Page sizes for RecentTrials.
const (
	DefaultTrialLimit = 20
	MaxTrialLimit     = 100
)

// RecentTrials fetches the latest runs, newest first. An empty tree matches
// every tree. limit <= 0 means DefaultTrialLimit; larger than MaxTrialLimit
// is capped.
func RecentTrials(ctx context.Context, db *sql.DB, tree string, limit int) ([]TrialRun, error) {
	switch {
	case limit <= 0:
		limit = DefaultTrialLimit
	case limit > MaxTrialLimit:
		limit = MaxTrialLimit
	}
	rows, err := db.QueryContext(ctx, `
        SELECT id, tree, answers, solved, mean, min_guesses, max_guesses,
               q1, median, q3, failures, elapsed_ms, created_at
        FROM trial_runs
        WHERE (? = '' OR tree = ?)
        ORDER BY id DESC
        LIMIT ?`, tree, tree, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrialRun
	for rows.Next() {
		var r TrialRun
		var created string
		if err := rows.Scan(&r.ID, &r.Tree, &r.Answers, &r.Solved, &r.Mean, &r.Min, &r.Max,
			&r.Q1, &r.Median, &r.Q3, &r.Failures, &r.ElapsedMs, &created); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("trial %d: created_at: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
