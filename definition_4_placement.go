package printscheduler

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyTaskPool = errors.New("no tasks to schedule")
	ErrNoResources   = errors.New("no resources to schedule on")
)

type ProposedPlacement struct {
	TimeInterval

	TaskID     string
	ResourceID string

	// IsDelayed marks placements shifted so that the finish lands on the
	// start of an availability window.
	IsDelayed bool
}

func (p ProposedPlacement) String() string {
	return fmt.Sprintf(
		"Task %s on %s %s%s",

		p.TaskID,
		p.ResourceID,
		p.TimeInterval,
		ternary(p.IsDelayed, " (delayed)", ""),
	)
}

// Plan lists placements in commit order.
type Plan struct {
	Placements []ProposedPlacement
	Omitted    []string // task IDs that found no valid slot
}

func (p *Plan) GetPlacement(taskID string) (*ProposedPlacement, bool) {
	for ix := range p.Placements {
		if p.Placements[ix].TaskID == taskID {
			return &p.Placements[ix],
				true
		}
	}

	return nil,
		false
}

func (p *Plan) String() string {
	var sb strings.Builder

	sb.WriteString("Plan:\n")

	for _, placement := range p.Placements {
		sb.WriteString("- " + placement.String() + "\n")
	}

	for _, taskID := range p.Omitted {
		sb.WriteString("- Task " + taskID + " omitted\n")
	}

	return sb.String()
}

type ParamsPlace struct {
	Tasks     []*Task
	Resources []*Resource // order breaks finish time ties

	// Timelines are keyed by resource ID and copied before use.
	// A missing entry means the resource is free.
	Timelines map[string]*Timeline
	Calendar  *Calendar

	PlanStart int64
}

// Place runs the greedy placement: longest task first, each one on the
// eligible resource offering the earliest finish.
func Place(params *ParamsPlace) (*Plan, error) {
	if len(params.Tasks) == 0 {
		return nil,
			ErrEmptyTaskPool
	}

	if len(params.Resources) == 0 {
		return nil,
			ErrNoResources
	}

	resources := make([]*Resource, 0, len(params.Resources))
	timelines := make(map[string]*Timeline, len(params.Resources))

	for _, res := range params.Resources {
		if _, exists := timelines[res.ID]; exists {
			continue
		}

		resources = append(resources, res)

		if seeded, has := params.Timelines[res.ID]; has && seeded != nil {
			timelines[res.ID] = seeded.Clone()

			continue
		}

		timelines[res.ID] = NewTimeline()
	}

	ordered := slices.Clone(params.Tasks)

	slices.SortStableFunc(
		ordered,
		func(a, b *Task) int {
			switch {
			case a.DurationMinutes > b.DurationMinutes:
				return -1

			case a.DurationMinutes < b.DurationMinutes:
				return 1

			default:
				return 0
			}
		},
	)

	var result Plan

	for _, task := range ordered {
		placement, found := placeTask(
			&paramsPlaceTask{
				Task:      task,
				Resources: resources,
				Timelines: timelines,
				Calendar:  params.Calendar,
				PlanStart: params.PlanStart,
			},
		)
		if !found {
			result.Omitted = append(result.Omitted, task.ID)

			continue
		}

		if errInsert := timelines[placement.ResourceID].Insert(
			BusyInterval{
				TimeInterval: placement.TimeInterval,
				TaskID:       task.ID,
			},
		); errInsert != nil {
			result.Omitted = append(result.Omitted, task.ID)

			continue
		}

		result.Placements = append(result.Placements, *placement)
	}

	return &result,
		nil
}

type paramsPlaceTask struct {
	Task      *Task
	Resources []*Resource
	Timelines map[string]*Timeline
	Calendar  *Calendar

	PlanStart int64
}

func placeTask(params *paramsPlaceTask) (*ProposedPlacement, bool) {
	if params.Task.DurationMinutes <= 0 {
		return nil,
			false
	}

	var best *ProposedPlacement

	for _, res := range params.Resources {
		if !IsEligible(params.Task, res) {
			continue
		}

		offer, found := findOffer(
			&paramsFindOffer{
				Timeline:  params.Timelines[res.ID],
				Calendar:  params.Calendar,
				Duration:  params.Task.GetDuration(),
				PlanStart: params.PlanStart,
			},
		)
		if !found {
			continue
		}

		if best == nil || offer.TimeEnd < best.TimeEnd {
			offer.TaskID = params.Task.ID
			offer.ResourceID = res.ID

			best = offer
		}
	}

	return best,
		best != nil
}

type paramsFindOffer struct {
	Timeline *Timeline
	Calendar *Calendar

	Duration  int64
	PlanStart int64
}

// findOffer returns the first gap able to hold the placement. A finish
// outside the calendar is moved to the next window start; if that no
// longer fits the gap, the gap is rejected and the next one is tried.
func findOffer(params *paramsFindOffer) (*ProposedPlacement, bool) {
	for gap := range params.Timeline.Gaps(params.PlanStart) {
		if !gap.IsUnbounded() && gap.GetDuration() < params.Duration {
			continue
		}

		candidate := TimeInterval{
			TimeStart: gap.TimeStart,
			TimeEnd:   gap.TimeStart + params.Duration,
		}

		var isDelayed bool

		if !params.Calendar.IsWithinWindow(candidate.TimeEnd) {
			finish := params.Calendar.NextWindowStartAtOrAfter(candidate.TimeEnd)

			candidate = TimeInterval{
				TimeStart: finish - params.Duration,
				TimeEnd:   finish,
			}
			isDelayed = true
		}

		if gap.Contains(candidate) {
			return &ProposedPlacement{
					TimeInterval: candidate,
					IsDelayed:    isDelayed,
				},
				true
		}
	}

	return nil,
		false
}
