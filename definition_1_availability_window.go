package printscheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

// AvailabilityWindow is a recurring daily range, minutes since midnight,
// both ends inclusive.
type AvailabilityWindow struct {
	StartMinute int64
	EndMinute   int64
}

func (w AvailabilityWindow) IsValid() error {
	if w.StartMinute < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - AvailabilityWindow",
			Issue: goerrors.ErrNegativeInput{
				InputName: "StartMinute",
			},
		}
	}

	// minute 1440 is the next day's midnight, only valid as an end
	if w.StartMinute >= _MinutesPerDay {
		return goerrors.ErrValidation{
			Caller: "IsValid - AvailabilityWindow",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "StartMinute",
				InputValue: w.StartMinute,
				Issue: errors.New(
					"start at or past midnight",
				),
			},
		}
	}

	if w.EndMinute > _MinutesPerDay {
		return goerrors.ErrValidation{
			Caller: "IsValid - AvailabilityWindow",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "EndMinute",
				InputValue: w.EndMinute,
				Issue: errors.New(
					"end past midnight",
				),
			},
		}
	}

	if w.StartMinute > w.EndMinute {
		return goerrors.ErrValidation{
			Caller: "IsValid - AvailabilityWindow",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "StartMinute",
				InputValue: w.StartMinute,
				Issue: errors.New(
					"start after end",
				),
			},
		}
	}

	return nil
}

func (w AvailabilityWindow) contains(minuteOfDay int64) bool {
	return minuteOfDay >= w.StartMinute && minuteOfDay <= w.EndMinute
}

func (w AvailabilityWindow) String() string {
	return fmt.Sprintf(
		"%s-%s",

		formatClock(w.StartMinute),
		formatClock(w.EndMinute),
	)
}

// ParseAvailabilityWindow accepts 24h "HH:MM" clock values.
func ParseAvailabilityWindow(start, end string) (*AvailabilityWindow, error) {
	startMinute, errStart := parseClock(start)
	if errStart != nil {
		return nil,
			errStart
	}

	endMinute, errEnd := parseClock(end)
	if errEnd != nil {
		return nil,
			errEnd
	}

	result := AvailabilityWindow{
		StartMinute: startMinute,
		EndMinute:   endMinute,
	}

	if errValidation := result.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &result,
		nil
}

func parseClock(clock string) (int64, error) {
	hours, minutes, found := strings.Cut(strings.TrimSpace(clock), ":")
	if !found {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "parseClock",
				InputName:  "clock",
				InputValue: clock,
				Issue: errors.New(
					`expected "HH:MM"`,
				),
			}
	}

	h, errHours := strconv.ParseInt(hours, 10, 64)
	if errHours != nil || h < 0 || h > 24 {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "parseClock",
				InputName:  "hours",
				InputValue: hours,
				Issue:      errHours,
			}
	}

	m, errMinutes := strconv.ParseInt(minutes, 10, 64)
	if errMinutes != nil || m < 0 || m > 59 {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "parseClock",
				InputName:  "minutes",
				InputValue: minutes,
				Issue:      errMinutes,
			}
	}

	return h*60 + m,
		nil
}

func formatClock(minuteOfDay int64) string {
	return fmt.Sprintf(
		"%02d:%02d",

		minuteOfDay/60,
		minuteOfDay%60,
	)
}
