package printscheduler

import (
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// TaskStatus values other than Pending and Committed never take part in
// a scheduling run and are carried through untouched.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCommitted TaskStatus = "Committed"
	TaskStatusPrinting  TaskStatus = "Printing"
	TaskStatusDone      TaskStatus = "Done"
	TaskStatusFailed    TaskStatus = "Failed"
	TaskStatusArchived  TaskStatus = "Archived"
)

type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyNormal   Urgency = "Normal"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// Task is a print job. ResourceID and TimeStart are only meaningful
// while Status is Committed or Printing.
type Task struct {
	ID                 string
	Name               string
	AllowedResourceIDs []string // empty means every resource
	Notes              string

	Status  TaskStatus
	Urgency Urgency

	DurationMinutes int64
	TimeStart       int64
	ResourceID      string

	GramsRequired float32
	NozzleSize    float32

	RequiresCapability bool
}

type ParamsNewTask struct {
	ID                 string `valid:"required"`
	Name               string `valid:"required"`
	AllowedResourceIDs []string
	Notes              string

	Urgency Urgency

	DurationMinutes int64 `valid:"required"`

	GramsRequired float32
	NozzleSize    float32

	RequiresCapability bool
}

// NewTask creates a Pending task.
func NewTask(params *ParamsNewTask) (*Task, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Tasks",
				Caller:      "NewTask",
				Issue:       errValidation,
			}
	}

	if params.DurationMinutes < 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewTask",
				Issue: goerrors.ErrNegativeInput{
					InputName: "DurationMinutes",
				},
			}
	}

	return &Task{
			ID:                 params.ID,
			Name:               params.Name,
			AllowedResourceIDs: slices.Clone(params.AllowedResourceIDs),
			Notes:              params.Notes,

			Status:  TaskStatusPending,
			Urgency: ternary(len(params.Urgency) == 0, UrgencyNormal, params.Urgency),

			DurationMinutes: params.DurationMinutes,

			GramsRequired: params.GramsRequired,
			NozzleSize:    params.NozzleSize,

			RequiresCapability: params.RequiresCapability,
		},
		nil
}

func (t *Task) GetDuration() int64 {
	return minutesToSeconds(t.DurationMinutes)
}

func (t *Task) IsCommitted() bool {
	return t.Status == TaskStatusCommitted
}

// GetCommittedInterval returns false for tasks that do not hold a usable
// committed slot. A zero TimeStart counts as unset.
func (t *Task) GetCommittedInterval() (TimeInterval, bool) {
	if !t.IsCommitted() || len(t.ResourceID) == 0 || t.TimeStart <= 0 || t.DurationMinutes <= 0 {
		return TimeInterval{},
			false
	}

	return TimeInterval{
			TimeStart: t.TimeStart,
			TimeEnd:   t.TimeStart + t.GetDuration(),
		},
		true
}

func (t *Task) commit(placement *ProposedPlacement) {
	t.Status = TaskStatusCommitted
	t.ResourceID = placement.ResourceID
	t.TimeStart = placement.TimeStart
}

func (t *Task) revertToPending() {
	t.Status = TaskStatusPending
	t.ResourceID = ""
	t.TimeStart = 0
}

func (t Task) clone() Task {
	t.AllowedResourceIDs = slices.Clone(t.AllowedResourceIDs)

	return t
}
