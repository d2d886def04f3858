package printscheduler

import (
	"fmt"
	"math"
)

const (
	_SecondsPerMinute = int64(60)
	_MinutesPerDay    = int64(24 * 60)
	_SecondsPerDay    = _MinutesPerDay * _SecondsPerMinute

	// _Unbounded closes the trailing free gap of a timeline.
	_Unbounded = int64(math.MaxInt64)
)

// TimeInterval is half open, [TimeStart, TimeEnd), in unix seconds UTC.
type TimeInterval struct {
	TimeStart int64
	TimeEnd   int64
}

func (interval TimeInterval) GetDuration() int64 {
	return interval.TimeEnd - interval.TimeStart
}

func (interval TimeInterval) IsUnbounded() bool {
	return interval.TimeEnd == _Unbounded
}

func (interval TimeInterval) Overlaps(other TimeInterval) bool {
	overlapStart := max(interval.TimeStart, other.TimeStart)
	overlapEnd := min(interval.TimeEnd, other.TimeEnd)

	return overlapStart < overlapEnd
}

// Contains reports whether other lies fully inside interval.
func (interval TimeInterval) Contains(other TimeInterval) bool {
	return interval.TimeStart <= other.TimeStart &&
		other.TimeEnd <= interval.TimeEnd
}

func (interval TimeInterval) String() string {
	if interval.IsUnbounded() {
		return fmt.Sprintf("[%d-∞)", interval.TimeStart)
	}

	return fmt.Sprintf(
		"[%d-%d)",

		interval.TimeStart,
		interval.TimeEnd,
	)
}

func minutesToSeconds(minutes int64) int64 {
	return minutes * _SecondsPerMinute
}
