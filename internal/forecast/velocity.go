package forecast

import (
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
)

// WeekStart returns the Monday 00:00 UTC boundary of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday counts Sunday as 0.
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// SnapshotInput holds a board's completion history for weekly bucketing.
type SnapshotInput struct {
	BoardID     string
	Completions []*domain.CompletedItem
	TeamSize    int
	WindowWeeks int
	Now         time.Time
}

// BuildSnapshots partitions completions into non-overlapping weekly buckets:
// WindowWeeks fully elapsed weeks plus the current partial week, most recent
// last. Weeks with zero completions still produce a snapshot, since a stalled
// board is itself a signal.
func BuildSnapshots(in SnapshotInput) []domain.VelocitySnapshot {
	currentWeek := WeekStart(in.Now)
	firstWeek := currentWeek.AddDate(0, 0, -7*in.WindowWeeks)

	counts := make(map[time.Time]int)
	points := make(map[time.Time]float64)
	pointsSeen := make(map[time.Time]bool)
	for _, c := range in.Completions {
		week := WeekStart(c.CompletedAt)
		if week.Before(firstWeek) || week.After(currentWeek) {
			continue
		}
		counts[week]++
		if c.StoryPoints != nil {
			points[week] += *c.StoryPoints
			pointsSeen[week] = true
		}
	}

	snaps := make([]domain.VelocitySnapshot, 0, in.WindowWeeks+1)
	for week := firstWeek; !week.After(currentWeek); week = week.AddDate(0, 0, 7) {
		s := domain.VelocitySnapshot{
			BoardID:        in.BoardID,
			WeekStart:      week,
			ItemsCompleted: counts[week],
			TeamSize:       in.TeamSize,
		}
		if pointsSeen[week] {
			sp := points[week]
			s.StoryPointsCompleted = &sp
		}
		snaps = append(snaps, s)
	}
	return snaps
}

// WeeklyVelocities extracts items-per-week from the most recent maxWeeks
// fully elapsed snapshots, excluding the current partial week (its count
// would bias the mean downward).
func WeeklyVelocities(snaps []*domain.VelocitySnapshot, now time.Time, maxWeeks int) []float64 {
	currentWeek := WeekStart(now)
	var velocities []float64
	for _, s := range snaps {
		if !s.WeekStart.Before(currentWeek) {
			continue
		}
		velocities = append(velocities, float64(s.ItemsCompleted))
	}
	if len(velocities) > maxWeeks {
		velocities = velocities[len(velocities)-maxWeeks:]
	}
	return velocities
}
