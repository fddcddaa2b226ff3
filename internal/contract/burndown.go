package contract

import (
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
)

type BurndownRequest struct {
	BoardID string

	// Force rebuilds the curve even when a fresh one is cached.
	Force bool

	// Now overrides the clock; nil means time.Now().UTC().
	Now *time.Time
}

func NewBurndownRequest(boardID string) BurndownRequest {
	return BurndownRequest{BoardID: boardID}
}

// BurndownView is the presentation-ready burndown forecast for a board.
type BurndownView struct {
	BoardID   string
	BoardName string
	DueDate   *time.Time

	Historical []domain.CurvePoint
	Projected  []domain.CurvePoint
	Band       domain.ConfidenceBand
	Ideal      []domain.CurvePoint

	MeanVelocity   float64
	StdDevVelocity float64
	RiskLevel      domain.RiskLevel

	// ProjectedCompletion is when the mean-velocity trajectory reaches
	// zero; nil when the projection horizon ends first.
	ProjectedCompletion *time.Time

	// TooShort warns that the projection has too few points to chart
	// meaningfully.
	TooShort bool

	ComputedAt time.Time
	// Recomputed is false when a cached fresh curve was served.
	Recomputed bool
}

type BurndownErrorCode string

const (
	ErrBoardNotFound        BurndownErrorCode = "BOARD_NOT_FOUND"
	ErrInsufficientVelocity BurndownErrorCode = "INSUFFICIENT_VELOCITY"
	ErrBurndownInternal     BurndownErrorCode = "INTERNAL_ERROR"
)

type BurndownError struct {
	Code    BurndownErrorCode
	Message string
}

func (e *BurndownError) Error() string {
	return string(e.Code) + ": " + e.Message
}
