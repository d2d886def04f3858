package printscheduler

import (
	"fmt"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

type Strategy uint8

const (
	// StrategyLock keeps committed tasks in place and fills the gaps.
	StrategyLock Strategy = iota + 1
	// StrategyShuffle recomputes committed and selected tasks from scratch.
	StrategyShuffle
)

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lock":
		return StrategyLock, nil

	case "shuffle":
		return StrategyShuffle, nil
	}

	return 0,
		goerrors.ErrInvalidInput{
			Caller:     "ParseStrategy",
			InputName:  "name",
			InputValue: name,
		}
}

func (s Strategy) String() string {
	switch s {
	case StrategyLock:
		return "lock"

	case StrategyShuffle:
		return "shuffle"
	}

	return fmt.Sprintf("strategy(%d)", uint8(s))
}

type seedReport struct {
	Malformed []string // committed tasks without a usable slot
	Outside   []string // committed on a resource not taking part in the run
}

// strategyBehavior isolates what differs between strategies. Each function
// is called once per run.
type strategyBehavior struct {
	pool   func(tasks []*Task, isSelected func(*Task) bool) []*Task
	seed   func(tasks []*Task, resources []*Resource) (map[string]*Timeline, seedReport)
	revert func(tasks []*Task, plan *Plan) map[string]bool
}

var _Strategies = map[Strategy]strategyBehavior{
	StrategyLock: {
		pool:   poolSelectedPending,
		seed:   seedFromCommitted,
		revert: revertNothing,
	},
	StrategyShuffle: {
		pool:   poolCommittedAndSelectedPending,
		seed:   seedEmpty,
		revert: revertDropped,
	},
}

func (s Strategy) getBehavior() (strategyBehavior, error) {
	behavior, exists := _Strategies[s]
	if !exists {
		return strategyBehavior{},
			goerrors.ErrInvalidInput{
				Caller:     "getBehavior",
				InputName:  "Strategy",
				InputValue: s,
			}
	}

	return behavior,
		nil
}

func poolSelectedPending(tasks []*Task, isSelected func(*Task) bool) []*Task {
	result := make([]*Task, 0)

	for _, task := range tasks {
		if task.Status == TaskStatusPending && isSelected(task) {
			result = append(result, task)
		}
	}

	return result
}

func poolCommittedAndSelectedPending(tasks []*Task, isSelected func(*Task) bool) []*Task {
	result := make([]*Task, 0)

	for _, task := range tasks {
		if task.IsCommitted() {
			result = append(result, task)
		}
	}

	return append(
		result,
		poolSelectedPending(tasks, isSelected)...,
	)
}

func seedFromCommitted(tasks []*Task, resources []*Resource) (map[string]*Timeline, seedReport) {
	result := make(map[string]*Timeline, len(resources))

	for _, res := range resources {
		result[res.ID] = NewTimeline()
	}

	var report seedReport

	for _, task := range tasks {
		if !task.IsCommitted() {
			continue
		}

		interval, isUsable := task.GetCommittedInterval()
		if !isUsable {
			report.Malformed = append(report.Malformed, task.ID)

			continue
		}

		timeline, participates := result[task.ResourceID]
		if !participates {
			report.Outside = append(report.Outside, task.ID)

			continue
		}

		timeline.seed(
			BusyInterval{
				TimeInterval: interval,
				TaskID:       task.ID,
			},
		)
	}

	return result,
		report
}

func seedEmpty(_ []*Task, _ []*Resource) (map[string]*Timeline, seedReport) {
	return nil,
		seedReport{}
}

func revertNothing(_ []*Task, _ *Plan) map[string]bool {
	return nil
}

func revertDropped(tasks []*Task, plan *Plan) map[string]bool {
	result := make(map[string]bool)

	for _, task := range tasks {
		if !task.IsCommitted() {
			continue
		}

		if _, placed := plan.GetPlacement(task.ID); !placed {
			result[task.ID] = true
		}
	}

	return result
}
