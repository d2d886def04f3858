package printscheduler

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// _NamespacePlan scopes plan fingerprints.
var _NamespacePlan = uuid.NewSHA1(uuid.NameSpaceURL, []byte("printscheduler/plan"))

type PlanStats struct {
	Makespan    TimeInterval
	Fingerprint uuid.UUID

	Placed  int
	Delayed int
	Omitted int
}

func (s PlanStats) GetMakespanHours() float64 {
	return float64(s.Makespan.GetDuration()) / 3600
}

func (s PlanStats) String() string {
	return fmt.Sprintf(
		"Scheduled %d jobs over %.1f hours (%d delayed, %d omitted)",

		s.Placed,
		s.GetMakespanHours(),
		s.Delayed,
		s.Omitted,
	)
}

// GetStats summarizes the plan. Makespan spans earliest start to latest
// finish and is zero for an empty plan.
func (p *Plan) GetStats() PlanStats {
	result := PlanStats{
		Placed:      len(p.Placements),
		Omitted:     len(p.Omitted),
		Fingerprint: p.Fingerprint(),
	}

	for ix, placement := range p.Placements {
		if placement.IsDelayed {
			result.Delayed++
		}

		if ix == 0 {
			result.Makespan = placement.TimeInterval

			continue
		}

		result.Makespan.TimeStart = min(result.Makespan.TimeStart, placement.TimeStart)
		result.Makespan.TimeEnd = max(result.Makespan.TimeEnd, placement.TimeEnd)
	}

	return result
}

// Fingerprint is stable for identical plans.
func (p *Plan) Fingerprint() uuid.UUID {
	var sb strings.Builder

	for _, placement := range p.Placements {
		sb.WriteString(
			fmt.Sprintf(
				"%s|%s|%d|%d|%t\n",

				placement.TaskID,
				placement.ResourceID,
				placement.TimeStart,
				placement.TimeEnd,
				placement.IsDelayed,
			),
		)
	}

	for _, taskID := range p.Omitted {
		sb.WriteString("-" + taskID + "\n")
	}

	return uuid.NewSHA1(_NamespacePlan, []byte(sb.String()))
}
