package printscheduler

import goerrors "github.com/TudorHulban/go-errors"

type ParamsReconcile struct {
	Tasks []*Task // full snapshot, as seen before the run
	Plan  *Plan

	Strategy Strategy
}

type ResponseReconcile struct {
	Tasks []Task // full replacement set, snapshot order

	Updated  []string // committed by this run
	Reverted []string // sent back to Pending
}

// Reconcile turns a plan into task records. Inputs are not modified.
func Reconcile(params *ParamsReconcile) (*ResponseReconcile, error) {
	if params.Plan == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "Reconcile",
				Issue: goerrors.ErrNilInput{
					InputName: "Plan",
				},
			}
	}

	behavior, errBehavior := params.Strategy.getBehavior()
	if errBehavior != nil {
		return nil,
			errBehavior
	}

	toRevert := behavior.revert(params.Tasks, params.Plan)

	result := ResponseReconcile{
		Tasks: make([]Task, 0, len(params.Tasks)),
	}

	for _, task := range params.Tasks {
		reconciled := task.clone()

		if placement, isPlaced := params.Plan.GetPlacement(task.ID); isPlaced {
			reconciled.commit(placement)

			result.Updated = append(result.Updated, task.ID)
		} else if toRevert[task.ID] {
			reconciled.revertToPending()

			result.Reverted = append(result.Reverted, task.ID)
		}

		result.Tasks = append(result.Tasks, reconciled)
	}

	return &result,
		nil
}
