package repository

import (
	"context"
	"testing"
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCurve(boardID string, computedAt time.Time) *domain.BurndownCurve {
	day := func(n int) time.Time { return computedAt.AddDate(0, 0, n) }
	return &domain.BurndownCurve{
		BoardID: boardID,
		Historical: []domain.CurvePoint{
			{Date: day(-14), Remaining: 40},
			{Date: day(-7), Remaining: 34},
		},
		Projected: []domain.CurvePoint{
			{Date: day(0), Remaining: 28},
			{Date: day(7), Remaining: 22},
		},
		Band: domain.ConfidenceBand{
			Upper: []domain.CurvePoint{{Date: day(0), Remaining: 30}, {Date: day(7), Remaining: 26}},
			Lower: []domain.CurvePoint{{Date: day(0), Remaining: 26}, {Date: day(7), Remaining: 18}},
		},
		Ideal: []domain.CurvePoint{
			{Date: day(-14), Remaining: 40},
			{Date: day(28), Remaining: 0},
		},
		MeanVelocity:   6,
		StdDevVelocity: 1.2,
		RiskLevel:      domain.RiskOnTrack,
		ComputedAt:     computedAt,
	}
}

func TestCurveRepo_PutAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	boardRepo := NewSQLiteBoardRepo(db)
	curveRepo := NewSQLiteCurveRepo(db)

	board := testutil.NewTestBoard("Board")
	require.NoError(t, boardRepo.Create(ctx, board))

	computedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, curveRepo.Put(ctx, sampleCurve(board.ID, computedAt)))

	got, err := curveRepo.Get(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, got.Historical, 2)
	assert.Len(t, got.Projected, 2)
	assert.Len(t, got.Band.Upper, 2)
	assert.Len(t, got.Band.Lower, 2)
	assert.Equal(t, domain.RiskOnTrack, got.RiskLevel)
	assert.Equal(t, 6.0, got.MeanVelocity)
	assert.Equal(t, computedAt, got.ComputedAt)
}

func TestCurveRepo_PutOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	boardRepo := NewSQLiteBoardRepo(db)
	curveRepo := NewSQLiteCurveRepo(db)

	board := testutil.NewTestBoard("Board")
	require.NoError(t, boardRepo.Create(ctx, board))

	first := sampleCurve(board.ID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, curveRepo.Put(ctx, first))

	second := sampleCurve(board.ID, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
	second.RiskLevel = domain.RiskCritical
	require.NoError(t, curveRepo.Put(ctx, second))

	got, err := curveRepo.Get(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskCritical, got.RiskLevel)
	assert.Equal(t, second.ComputedAt, got.ComputedAt)
}

func TestCurveRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	curveRepo := NewSQLiteCurveRepo(db)

	_, err := curveRepo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
