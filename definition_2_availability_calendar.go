package printscheduler

import (
	"slices"
	"strings"
)

const _LookaheadDays = 7

// Calendar answers whether an instant falls inside the recurring daily
// availability windows. An empty calendar means always available.
type Calendar struct {
	windows  []AvailabilityWindow // sorted by StartMinute
	rejected []AvailabilityWindow

	SecondsOffset int64 // local offset from UTC used for time of day
}

type ParamsNewCalendar struct {
	Windows []AvailabilityWindow

	SecondsOffset int64
}

// NewCalendar keeps the well formed windows and sets aside the rest,
// see Rejected.
func NewCalendar(params *ParamsNewCalendar) *Calendar {
	result := Calendar{
		SecondsOffset: params.SecondsOffset,
	}

	for _, window := range params.Windows {
		if window.IsValid() != nil {
			result.rejected = append(result.rejected, window)

			continue
		}

		result.windows = append(result.windows, window)
	}

	slices.SortStableFunc(
		result.windows,
		func(a, b AvailabilityWindow) int {
			return int(a.StartMinute - b.StartMinute)
		},
	)

	return &result
}

func (c *Calendar) IsEmpty() bool {
	return c == nil || len(c.windows) == 0
}

func (c *Calendar) Rejected() []AvailabilityWindow {
	if c == nil {
		return nil
	}

	return c.rejected
}

// secondsIntoLocalDay handles instants before the epoch as well.
func (c *Calendar) secondsIntoLocalDay(instant int64) int64 {
	return ((instant+c.SecondsOffset)%_SecondsPerDay + _SecondsPerDay) % _SecondsPerDay
}

func (c *Calendar) IsWithinWindow(instant int64) bool {
	if c.IsEmpty() {
		return true
	}

	minuteOfDay := c.secondsIntoLocalDay(instant) / _SecondsPerMinute

	for _, window := range c.windows {
		if window.contains(minuteOfDay) {
			return true
		}
	}

	return false
}

// NextWindowStartAtOrAfter returns the earliest window start >= instant
// within the lookahead. Without a match the instant comes back unchanged.
func (c *Calendar) NextWindowStartAtOrAfter(instant int64) int64 {
	if c.IsEmpty() {
		return instant
	}

	localMidnight := instant - c.secondsIntoLocalDay(instant)

	for day := range int64(_LookaheadDays) {
		dayStart := localMidnight + day*_SecondsPerDay

		for _, window := range c.windows {
			windowStart := dayStart + minutesToSeconds(window.StartMinute)

			if windowStart >= instant {
				return windowStart
			}
		}
	}

	return instant
}

func (c *Calendar) String() string {
	if c.IsEmpty() {
		return "Calendar: (always available)"
	}

	parts := make([]string, len(c.windows))

	for ix, window := range c.windows {
		parts[ix] = window.String()
	}

	return "Calendar: " + strings.Join(parts, ", ")
}
