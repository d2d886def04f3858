package printscheduler

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

type BusyInterval struct {
	TimeInterval

	TaskID string
}

// Timeline holds the busy intervals of one resource, start ascending.
type Timeline struct {
	intervals []BusyInterval
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) sort() {
	slices.SortStableFunc(
		tl.intervals,
		func(a, b BusyInterval) int {
			switch {
			case a.TimeStart < b.TimeStart:
				return -1

			case a.TimeStart > b.TimeStart:
				return 1

			default:
				return 0
			}
		},
	)
}

// Insert adds an interval that must not overlap the existing ones.
func (tl *Timeline) Insert(interval BusyInterval) error {
	if interval.TimeStart >= interval.TimeEnd {
		return goerrors.ErrInvalidInput{
			Caller:     "Insert",
			InputName:  "TimeEnd",
			InputValue: interval.TimeEnd,
			Issue: errors.New(
				"time start greater or equal to time end",
			),
		}
	}

	for _, busy := range tl.intervals {
		if busy.Overlaps(interval.TimeInterval) {
			return goerrors.ErrInvalidInput{
				Caller:     "Insert",
				InputName:  "TimeInterval",
				InputValue: interval.TimeInterval,
				Issue: fmt.Errorf(
					"overlaps %s of task %s",

					busy.TimeInterval,
					busy.TaskID,
				),
			}
		}
	}

	tl.intervals = append(tl.intervals, interval)
	tl.sort()

	return nil
}

// seed loads committed data as is. Overlapping entries are tolerated, the
// gap sweep treats them as one busy block.
func (tl *Timeline) seed(interval BusyInterval) bool {
	if interval.TimeStart >= interval.TimeEnd {
		return false
	}

	tl.intervals = append(tl.intervals, interval)
	tl.sort()

	return true
}

// Gaps yields the free intervals at or after from, in time order. The
// last one is unbounded.
func (tl *Timeline) Gaps(from int64) iter.Seq[TimeInterval] {
	return func(yield func(TimeInterval) bool) {
		cursor := from

		for _, busy := range tl.intervals {
			if busy.TimeEnd <= cursor {
				continue
			}

			if busy.TimeStart > cursor {
				if !yield(
					TimeInterval{
						TimeStart: cursor,
						TimeEnd:   busy.TimeStart,
					},
				) {
					return
				}
			}

			cursor = max(cursor, busy.TimeEnd)
		}

		yield(
			TimeInterval{
				TimeStart: cursor,
				TimeEnd:   _Unbounded,
			},
		)
	}
}

func (tl *Timeline) Len() int {
	return len(tl.intervals)
}

func (tl *Timeline) Intervals() []BusyInterval {
	return slices.Clone(tl.intervals)
}

func (tl *Timeline) Clone() *Timeline {
	return &Timeline{
		intervals: slices.Clone(tl.intervals),
	}
}

func (tl *Timeline) String() string {
	if len(tl.intervals) == 0 {
		return "Timeline: (empty)"
	}

	var sb strings.Builder
	sb.WriteString("Timeline:\n")

	for _, busy := range tl.intervals {
		sb.WriteString(
			fmt.Sprintf(
				"- %s → Task %s\n",

				busy.TimeInterval,
				busy.TaskID,
			),
		)
	}

	return sb.String()
}
