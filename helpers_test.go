package printscheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// now is a UTC midnight, 2025-03-28 00:00:00.
const (
	now      = int64(1743120000)
	oneMin   = int64(60)
	halfHour = 30 * oneMin
	oneHour  = 60 * oneMin
	oneDay   = 24 * oneHour
)

func newTestTask(t *testing.T, id string, minutes int64) *Task {
	t.Helper()

	task, errCr := NewTask(
		&ParamsNewTask{
			ID:              id,
			Name:            "job " + id,
			DurationMinutes: minutes,
		},
	)
	require.NoError(t, errCr)

	return task
}

func newCommittedTask(t *testing.T, id string, minutes int64, resourceID string, start int64) *Task {
	t.Helper()

	task := newTestTask(t, id, minutes)
	task.Status = TaskStatusCommitted
	task.ResourceID = resourceID
	task.TimeStart = start

	return task
}

func requireNoOverlap(t *testing.T, plan *Plan) {
	t.Helper()

	for i, a := range plan.Placements {
		for _, b := range plan.Placements[i+1:] {
			if a.ResourceID != b.ResourceID {
				continue
			}

			require.False(t,
				a.Overlaps(b.TimeInterval),
				"%s overlaps %s",
				a,
				b,
			)
		}
	}
}
