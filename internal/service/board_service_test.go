package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/repository"
	"github.com/paulavishek/prizmai/internal/testutil"
)

func TestBoardService_CreateDefaults(t *testing.T) {
	r := setupRepos(t)
	svc := NewBoardService(r.boards, r.curves)
	ctx := context.Background()

	b := &domain.Board{Name: "Q2 Launch", OrganizationID: "acme"}
	require.NoError(t, svc.Create(ctx, b))

	assert.NotEmpty(t, b.ID)
	assert.False(t, b.StartDate.IsZero())
	assert.False(t, b.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q2 Launch", got.Name)
}

func TestBoardService_ListExcludesArchived(t *testing.T) {
	r := setupRepos(t)
	svc := NewBoardService(r.boards, r.curves)
	ctx := context.Background()

	active := testutil.NewTestBoard("Active")
	archived := testutil.NewTestBoard("Old")
	require.NoError(t, svc.Create(ctx, active))
	require.NoError(t, svc.Create(ctx, archived))
	require.NoError(t, svc.Archive(ctx, archived.ID))

	boards, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Active", boards[0].Name)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBoardService_UpdateInvalidatesCurve(t *testing.T) {
	r := setupRepos(t)
	svc := NewBoardService(r.boards, r.curves)
	ctx := context.Background()

	b := testutil.NewTestBoard("Q2 Launch")
	require.NoError(t, svc.Create(ctx, b))

	now := time.Now().UTC()
	require.NoError(t, r.curves.Put(ctx, &domain.BurndownCurve{
		BoardID:      b.ID,
		MeanVelocity: 5,
		RiskLevel:    domain.RiskOnTrack,
		ComputedAt:   now,
	}))

	due := now.AddDate(0, 1, 0)
	b.DueDate = &due
	require.NoError(t, svc.Update(ctx, b))

	_, err := r.curves.Get(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBoardService_DeleteUnknownBoard(t *testing.T) {
	r := setupRepos(t)
	svc := NewBoardService(r.boards, r.curves)

	err := svc.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
