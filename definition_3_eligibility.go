package printscheduler

import "slices"

// IsEligible reports whether task may run on res.
func IsEligible(task *Task, res *Resource) bool {
	if task.RequiresCapability && !res.HasCapability {
		return false
	}

	if len(task.AllowedResourceIDs) > 0 &&
		!slices.Contains(task.AllowedResourceIDs, res.ID) {
		return false
	}

	return true
}
