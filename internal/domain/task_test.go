package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskValidate(t *testing.T) {
	valid := Task{
		ComplexityScore: 5,
		ProgressPct:     50,
		Priority:        PriorityMedium,
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{"valid", func(*Task) {}, nil},
		{"complexity too low", func(x *Task) { x.ComplexityScore = 0 }, ErrComplexityOutOfRange},
		{"complexity too high", func(x *Task) { x.ComplexityScore = 11 }, ErrComplexityOutOfRange},
		{"progress negative", func(x *Task) { x.ProgressPct = -1 }, ErrProgressOutOfRange},
		{"progress over 100", func(x *Task) { x.ProgressPct = 101 }, ErrProgressOutOfRange},
		{"unknown priority", func(x *Task) { x.Priority = "someday" }, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)
			assert.ErrorIs(t, task.Validate(), tt.wantErr)
		})
	}
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 4, PriorityUrgent.Weight())
	assert.Equal(t, 3, PriorityHigh.Weight())
	assert.Equal(t, 2, PriorityMedium.Weight())
	assert.Equal(t, 1, PriorityLow.Weight())
	assert.Equal(t, 0, Priority("bogus").Weight())
}

func TestPredictionResultIsStale(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	p := PredictionResult{ComputedAt: now.Add(-24 * time.Hour)}

	assert.False(t, p.IsStale(now, 24*time.Hour), "exactly max age is not stale")
	assert.True(t, p.IsStale(now.Add(time.Second), 24*time.Hour))
}
