package printscheduler

import (
	"fmt"
	"slices"
	"sync"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
)

// Farm owns the printers and the availability calendar. Scheduling runs
// and resource updates are serialized so that every run sees one
// consistent snapshot.
type Farm struct {
	Name string

	resources []*Resource
	calendar  *Calendar
	log       *zap.Logger

	mu sync.Mutex
}

type ParamsNewFarm struct {
	Name      string      `valid:"required"`
	Resources []*Resource `valid:"required"`
	Windows   []AvailabilityWindow

	Logger *zap.Logger `valid:"-"`

	SecondsOffset int64
}

func NewFarm(params *ParamsNewFarm) (*Farm, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Farm",
				Caller:      "NewFarm",
				Issue:       errValidation,
			}
	}

	result := Farm{
		Name: params.Name,

		resources: make([]*Resource, 0, len(params.Resources)),
		calendar: NewCalendar(
			&ParamsNewCalendar{
				Windows:       params.Windows,
				SecondsOffset: params.SecondsOffset,
			},
		),
		log: ternary(params.Logger == nil, zap.NewNop(), params.Logger),
	}

	for _, res := range params.Resources {
		if res == nil {
			continue
		}

		copied := *res
		result.resources = append(result.resources, &copied)
	}

	for _, window := range result.calendar.Rejected() {
		result.log.Warn(
			"ignoring malformed availability window",
			zap.String("farm", result.Name),
			zap.Int64("start_minute", window.StartMinute),
			zap.Int64("end_minute", window.EndMinute),
		)
	}

	return &result,
		nil
}

func (f *Farm) GetCalendar() *Calendar {
	return f.calendar
}

// GetResources returns copies, in farm order.
func (f *Farm) GetResources() []Resource {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]Resource, len(f.resources))

	for ix, res := range f.resources {
		result[ix] = *res
	}

	return result
}

func (f *Farm) SetResourceState(resourceID string, state ResourceState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, res := range f.resources {
		if res.ID == resourceID {
			res.State = state

			return nil
		}
	}

	return goerrors.ErrInvalidInput{
		Caller:     "SetResourceState",
		InputName:  "resourceID",
		InputValue: resourceID,
		Issue: fmt.Errorf(
			"not found in farm %s",
			f.Name,
		),
	}
}

type ParamsSchedule struct {
	Tasks []*Task

	// A nil task selection takes every Pending task, an empty non nil one
	// takes none. An empty resource selection means every enabled resource.
	SelectedTaskIDs     []string
	SelectedResourceIDs []string

	Strategy  Strategy
	PlanStart int64
}

type ResponseSchedule struct {
	ResponseReconcile

	Plan  *Plan
	Stats PlanStats
}

// Schedule runs one placement over the task snapshot and reconciles the
// result. Tasks passed in are not modified.
func (f *Farm) Schedule(params *ParamsSchedule) (*ResponseSchedule, error) {
	behavior, errBehavior := params.Strategy.getBehavior()
	if errBehavior != nil {
		return nil,
			errBehavior
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	resources := f.participants(params.SelectedResourceIDs)

	f.logUnknownResources(params.Tasks)

	pool := behavior.pool(
		params.Tasks,
		selection(params.SelectedTaskIDs),
	)

	timelines, report := behavior.seed(params.Tasks, resources)

	for _, taskID := range report.Malformed {
		f.log.Warn(
			"skipping committed task without usable slot",
			zap.String("task", taskID),
		)
	}

	for _, taskID := range report.Outside {
		f.log.Debug(
			"committed task outside run resources",
			zap.String("task", taskID),
		)
	}

	plan, errPlace := Place(
		&ParamsPlace{
			Tasks:     pool,
			Resources: resources,
			Timelines: timelines,
			Calendar:  f.calendar,
			PlanStart: params.PlanStart,
		},
	)
	if errPlace != nil {
		f.log.Info(
			"scheduling refused",
			zap.String("farm", f.Name),
			zap.Stringer("strategy", params.Strategy),
			zap.Int("pool", len(pool)),
			zap.Int("resources", len(resources)),
			zap.Error(errPlace),
		)

		return nil,
			errPlace
	}

	for _, taskID := range plan.Omitted {
		f.log.Debug(
			"task could not be placed",
			zap.String("task", taskID),
		)
	}

	reconciled, errReconcile := Reconcile(
		&ParamsReconcile{
			Tasks:    params.Tasks,
			Plan:     plan,
			Strategy: params.Strategy,
		},
	)
	if errReconcile != nil {
		return nil,
			errReconcile
	}

	stats := plan.GetStats()

	f.log.Info(
		"scheduling run completed",
		zap.String("farm", f.Name),
		zap.Stringer("strategy", params.Strategy),
		zap.Int("placed", stats.Placed),
		zap.Int("delayed", stats.Delayed),
		zap.Int("omitted", stats.Omitted),
		zap.Int("reverted", len(reconciled.Reverted)),
		zap.Float64("makespan_hours", stats.GetMakespanHours()),
		zap.Stringer("fingerprint", stats.Fingerprint),
	)

	return &ResponseSchedule{
			ResponseReconcile: *reconciled,

			Plan:  plan,
			Stats: stats,
		},
		nil
}

// participants keeps farm order, which is the tie break order.
func (f *Farm) participants(selectedIDs []string) []*Resource {
	result := make([]*Resource, 0, len(f.resources))

	for _, res := range f.resources {
		if !res.IsEnabled() {
			continue
		}

		if len(selectedIDs) > 0 && !slices.Contains(selectedIDs, res.ID) {
			continue
		}

		copied := *res
		result = append(result, &copied)
	}

	return result
}

func (f *Farm) logUnknownResources(tasks []*Task) {
	for _, task := range tasks {
		if !task.IsCommitted() {
			continue
		}

		known := slices.ContainsFunc(
			f.resources,
			func(res *Resource) bool {
				return res.ID == task.ResourceID
			},
		)

		if !known {
			f.log.Warn(
				"committed task references unknown resource",
				zap.String("task", task.ID),
				zap.String("resource", task.ResourceID),
			)
		}
	}
}

func selection(ids []string) func(*Task) bool {
	if ids == nil {
		return func(*Task) bool {
			return true
		}
	}

	selected := make(map[string]bool, len(ids))

	for _, id := range ids {
		selected[id] = true
	}

	return func(task *Task) bool {
		return selected[task.ID]
	}
}
