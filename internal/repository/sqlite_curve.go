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

// SQLiteCurveRepo implements CurveRepo using a SQLite database. Point
// sequences are stored as JSON columns; each board has at most one row.
type SQLiteCurveRepo struct {
	db db.DBTX
}

// NewSQLiteCurveRepo creates a new SQLiteCurveRepo.
func NewSQLiteCurveRepo(db db.DBTX) *SQLiteCurveRepo {
	return &SQLiteCurveRepo{db: db}
}

func (r *SQLiteCurveRepo) Get(ctx context.Context, boardID string) (*domain.BurndownCurve, error) {
	query := `SELECT board_id, historical, projected, band_upper, band_lower, ideal,
		mean_velocity, stddev_velocity, risk_level, too_short, computed_at
		FROM burndown_curves WHERE board_id = ?`
	row := r.db.QueryRowContext(ctx, query, boardID)

	var c domain.BurndownCurve
	var historical, projected, bandUpper, bandLower, ideal string
	var riskLevel, computedAt string
	var tooShort int

	err := row.Scan(
		&c.BoardID, &historical, &projected, &bandUpper, &bandLower, &ideal,
		&c.MeanVelocity, &c.StdDevVelocity, &riskLevel, &tooShort, &computedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("burndown curve: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning burndown curve: %w", err)
	}

	for _, col := range []struct {
		raw  string
		dest *[]domain.CurvePoint
	}{
		{historical, &c.Historical},
		{projected, &c.Projected},
		{bandUpper, &c.Band.Upper},
		{bandLower, &c.Band.Lower},
		{ideal, &c.Ideal},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
			return nil, fmt.Errorf("decoding curve points: %w", err)
		}
	}

	c.RiskLevel = domain.RiskLevel(riskLevel)
	c.TooShort = intToBool(tooShort)
	c.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
	return &c, nil
}

func (r *SQLiteCurveRepo) Put(ctx context.Context, c *domain.BurndownCurve) error {
	encode := func(points []domain.CurvePoint) (string, error) {
		if points == nil {
			points = []domain.CurvePoint{}
		}
		b, err := json.Marshal(points)
		return string(b), err
	}

	historical, err := encode(c.Historical)
	if err != nil {
		return fmt.Errorf("encoding historical points: %w", err)
	}
	projected, err := encode(c.Projected)
	if err != nil {
		return fmt.Errorf("encoding projected points: %w", err)
	}
	bandUpper, err := encode(c.Band.Upper)
	if err != nil {
		return fmt.Errorf("encoding band upper: %w", err)
	}
	bandLower, err := encode(c.Band.Lower)
	if err != nil {
		return fmt.Errorf("encoding band lower: %w", err)
	}
	ideal, err := encode(c.Ideal)
	if err != nil {
		return fmt.Errorf("encoding ideal line: %w", err)
	}

	query := `INSERT INTO burndown_curves (board_id, historical, projected,
		band_upper, band_lower, ideal, mean_velocity, stddev_velocity,
		risk_level, too_short, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(board_id) DO UPDATE SET
			historical = excluded.historical,
			projected = excluded.projected,
			band_upper = excluded.band_upper,
			band_lower = excluded.band_lower,
			ideal = excluded.ideal,
			mean_velocity = excluded.mean_velocity,
			stddev_velocity = excluded.stddev_velocity,
			risk_level = excluded.risk_level,
			too_short = excluded.too_short,
			computed_at = excluded.computed_at`
	_, err = r.db.ExecContext(ctx, query,
		c.BoardID,
		historical, projected, bandUpper, bandLower, ideal,
		c.MeanVelocity,
		c.StdDevVelocity,
		string(c.RiskLevel),
		boolToInt(c.TooShort),
		c.ComputedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting burndown curve: %w", err)
	}
	return nil
}

func (r *SQLiteCurveRepo) Delete(ctx context.Context, boardID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM burndown_curves WHERE board_id = ?`, boardID); err != nil {
		return fmt.Errorf("deleting burndown curve: %w", err)
	}
	return nil
}
