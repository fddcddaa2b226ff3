package contract

import "time"

type RefreshRequest struct {
	// BoardID scopes the refresh to one board; empty refreshes every
	// unarchived board. BoardID wins when both scopes are set.
	BoardID string

	// OrganizationID scopes the refresh to one organization's unarchived
	// boards.
	OrganizationID string

	// Workers bounds prediction parallelism.
	Workers int

	// Now overrides the clock; nil means time.Now().UTC().
	Now *time.Time
}

func NewRefreshRequest() RefreshRequest {
	return RefreshRequest{Workers: 4}
}

// TaskFailure records one task whose prediction could not be refreshed.
type TaskFailure struct {
	TaskID string
	Reason string
}

// RefreshSummary tallies a batch refresh. Total counts every pending task
// considered; tasks that cannot be predicted (no start date) count as
// failures, not silent skips.
type RefreshSummary struct {
	Total    int
	Updated  int
	Failed   int
	Failures []TaskFailure

	// BoardsRefreshed counts boards whose burndown curve was rebuilt.
	BoardsRefreshed int

	StartedAt time.Time
	Duration  time.Duration
}
