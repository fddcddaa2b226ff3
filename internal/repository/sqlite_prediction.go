package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/domain"
)

// SQLitePredictionRepo implements PredictionRepo using a SQLite database.
// Each task has at most one row; Put overwrites in place.
type SQLitePredictionRepo struct {
	db db.DBTX
}

// NewSQLitePredictionRepo creates a new SQLitePredictionRepo.
func NewSQLitePredictionRepo(db db.DBTX) *SQLitePredictionRepo {
	return &SQLitePredictionRepo{db: db}
}

func (r *SQLitePredictionRepo) Get(ctx context.Context, taskID string) (*domain.PredictionResult, error) {
	query := `SELECT task_id, predicted_date, adjusted_days, confidence_score,
		confidence_interval_days, sample_size, tier, method, factors, computed_at
		FROM predictions WHERE task_id = ?`
	row := r.db.QueryRowContext(ctx, query, taskID)

	var p domain.PredictionResult
	var predictedDate, tier, method, factorsJSON, computedAt string
	err := row.Scan(
		&p.TaskID, &predictedDate, &p.AdjustedDays, &p.ConfidenceScore,
		&p.ConfidenceIntervalDays, &p.SampleSize, &tier, &method, &factorsJSON, &computedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning prediction: %w", err)
	}

	p.PredictedDate, _ = time.Parse(time.RFC3339, predictedDate)
	p.Tier = domain.SimilarityTier(tier)
	p.Method = domain.PredictionMethod(method)
	p.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
	if err := json.Unmarshal([]byte(factorsJSON), &p.Factors); err != nil {
		return nil, fmt.Errorf("decoding prediction factors: %w", err)
	}
	return &p, nil
}

func (r *SQLitePredictionRepo) Put(ctx context.Context, p *domain.PredictionResult) error {
	factorsJSON, err := json.Marshal(p.Factors)
	if err != nil {
		return fmt.Errorf("encoding prediction factors: %w", err)
	}

	query := `INSERT INTO predictions (task_id, predicted_date, adjusted_days,
		confidence_score, confidence_interval_days, sample_size, tier, method, factors, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id) DO UPDATE SET
			predicted_date = excluded.predicted_date,
			adjusted_days = excluded.adjusted_days,
			confidence_score = excluded.confidence_score,
			confidence_interval_days = excluded.confidence_interval_days,
			sample_size = excluded.sample_size,
			tier = excluded.tier,
			method = excluded.method,
			factors = excluded.factors,
			computed_at = excluded.computed_at`
	_, err = r.db.ExecContext(ctx, query,
		p.TaskID,
		p.PredictedDate.UTC().Format(time.RFC3339),
		p.AdjustedDays,
		p.ConfidenceScore,
		p.ConfidenceIntervalDays,
		p.SampleSize,
		string(p.Tier),
		string(p.Method),
		string(factorsJSON),
		p.ComputedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting prediction: %w", err)
	}
	return nil
}

func (r *SQLitePredictionRepo) Delete(ctx context.Context, taskID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("deleting prediction: %w", err)
	}
	return nil
}
