package printscheduler

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

type ResourceState string

const (
	ResourceStateIdle        ResourceState = "Idle"
	ResourceStatePrinting    ResourceState = "Printing"
	ResourceStateMaintenance ResourceState = "Maintenance"
)

// Resource is a printer. Only one task runs on it at a time.
type Resource struct {
	ID      string
	Name    string
	BedSize string

	State ResourceState

	HasCapability bool
}

type ParamsNewResource struct {
	ID      string
	Name    string
	BedSize string

	State ResourceState

	HasCapability bool
}

func (param *ParamsNewResource) IsValid() error {
	if len(param.ID) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewResource",
			Issue: goerrors.ErrNilInput{
				InputName: "ID",
			},
		}
	}

	if len(param.Name) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewResource",
			Issue: goerrors.ErrNilInput{
				InputName: "Name",
			},
		}
	}

	switch param.State {
	case "", ResourceStateIdle, ResourceStatePrinting, ResourceStateMaintenance:
		return nil

	default:
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewResource",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "State",
				InputValue: param.State,
			},
		}
	}
}

func NewResource(params *ParamsNewResource) (*Resource, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &Resource{
			ID:      params.ID,
			Name:    params.Name,
			BedSize: params.BedSize,

			State: ternary(len(params.State) == 0, ResourceStateIdle, params.State),

			HasCapability: params.HasCapability,
		},
		nil
}

// IsEnabled is false for resources under maintenance.
func (res *Resource) IsEnabled() bool {
	return res.State != ResourceStateMaintenance
}

func (res *Resource) String() string {
	return fmt.Sprintf(
		"Resource{ID: %s, Name: %q, Capability: %t, State: %s}",

		res.ID,
		res.Name,
		res.HasCapability,
		res.State,
	)
}
