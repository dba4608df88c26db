package datafeed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graymarsh/stocksage/Internal/types"
)

// LogScreeningRun records a finished screening run and its ranked rows.
// Numeric columns go through decimal so the stored values round-trip
// exactly.
func LogScreeningRun(ctx context.Context, universe string, totalAnalyzed int, failed []string, results []types.ScreeningResult, startedAt time.Time) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO screening_runs (universe, total_analyzed, failed_count, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		universe, totalAnalyzed, len(failed), startedAt).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert screening run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO screening_results (run_id, rank, symbol, recommendation, current_price, combined_score, attractiveness_score, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		_, err := stmt.ExecContext(ctx, runID, i+1, r.Symbol, r.Recommendation,
			decimal.NewFromFloat(r.CurrentPrice).Round(4).String(),
			decimal.NewFromFloat(r.CombinedScore).Round(4).String(),
			decimal.NewFromFloat(r.AttractivenessScore).Round(4).String(),
			decimal.NewFromFloat(r.Confidence).Round(4).String())
		if err != nil {
			return fmt.Errorf("failed to insert screening result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("Screening run logged: universe=%s analyzed=%d failed=%d results=%d",
		universe, totalAnalyzed, len(failed), len(results))
	return nil
}

// ScreeningRunSummary is one row of the recent-runs listing.
type ScreeningRunSummary struct {
	ID            int64     `json:"id"`
	Universe      string    `json:"universe"`
	TotalAnalyzed int       `json:"totalAnalyzed"`
	FailedCount   int       `json:"failedCount"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
}

func GetRecentScreeningRuns(ctx context.Context, limit int) ([]ScreeningRunSummary, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := DB.QueryContext(ctx, `
		SELECT id, universe, total_analyzed, failed_count, started_at, finished_at
		FROM screening_runs
		ORDER BY finished_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query screening runs: %w", err)
	}
	defer rows.Close()

	var runs []ScreeningRunSummary
	for rows.Next() {
		var r ScreeningRunSummary
		if err := rows.Scan(&r.ID, &r.Universe, &r.TotalAnalyzed, &r.FailedCount, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
