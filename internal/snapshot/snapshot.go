// Package snapshot reads farm snapshots (printers and jobs) from YAML and
// writes scheduling reports back as YAML.
package snapshot

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TudorHulban/printscheduler"
)

type (
	printerDocument struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		BedSize string `yaml:"bedSize,omitempty"`
		HasAMS  bool   `yaml:"hasAMS,omitempty"`
		Status  string `yaml:"status,omitempty"`
	}

	jobDocument struct {
		ID                   string   `yaml:"id"`
		Name                 string   `yaml:"name"`
		PrintTimeMinutes     int64    `yaml:"printTimeMinutes"`
		GramsRequired        float32  `yaml:"gramsRequired,omitempty"`
		NozzleSize           float32  `yaml:"nozzleSize,omitempty"`
		RequiresAMS          bool     `yaml:"requiresAMS,omitempty"`
		Urgency              string   `yaml:"urgency,omitempty"`
		Status               string   `yaml:"status,omitempty"`
		CompatiblePrinterIDs []string `yaml:"compatiblePrinterIds,omitempty"`
		ScheduledPrinterID   string   `yaml:"scheduledPrinterId,omitempty"`
		ScheduledStartTime   string   `yaml:"scheduledStartTime,omitempty"`
		Notes                string   `yaml:"notes,omitempty"`
	}

	document struct {
		PlanStart string            `yaml:"planStart,omitempty"`
		Printers  []printerDocument `yaml:"printers"`
		Jobs      []jobDocument     `yaml:"jobs"`
	}
)

// Snapshot is the decoded farm state. PlanStart is zero when the document
// does not set it.
type Snapshot struct {
	PlanStart int64

	Resources []*printscheduler.Resource
	Tasks     []*printscheduler.Task
}

func parseTime(value string) (int64, error) {
	if len(value) == 0 {
		return 0, nil
	}

	parsed, errParse := time.Parse(time.RFC3339, value)
	if errParse != nil {
		return 0,
			errParse
	}

	return parsed.Unix(),
		nil
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func parseJobStatus(status string) (printscheduler.TaskStatus, error) {
	switch strings.ToLower(status) {
	case "", "queued", "pending":
		return printscheduler.TaskStatusPending, nil

	case "scheduled", "committed":
		return printscheduler.TaskStatusCommitted, nil

	case "printing":
		return printscheduler.TaskStatusPrinting, nil

	case "completed", "done":
		return printscheduler.TaskStatusDone, nil

	case "failed":
		return printscheduler.TaskStatusFailed, nil

	case "archived":
		return printscheduler.TaskStatusArchived, nil
	}

	return "",
		fmt.Errorf("unsupported job status %q", status)
}

func formatJobStatus(status printscheduler.TaskStatus) string {
	switch status {
	case printscheduler.TaskStatusCommitted:
		return "Scheduled"

	case printscheduler.TaskStatusPrinting:
		return "Printing"

	case printscheduler.TaskStatusDone:
		return "Completed"

	case printscheduler.TaskStatusFailed:
		return "Failed"

	case printscheduler.TaskStatusArchived:
		return "Archived"
	}

	return "Queued"
}

func parseUrgency(urgency string) (printscheduler.Urgency, error) {
	switch strings.ToLower(urgency) {
	case "":
		return "", nil

	case "low":
		return printscheduler.UrgencyLow, nil

	case "normal":
		return printscheduler.UrgencyNormal, nil

	case "high":
		return printscheduler.UrgencyHigh, nil

	case "critical":
		return printscheduler.UrgencyCritical, nil
	}

	return "",
		fmt.Errorf("unsupported urgency %q", urgency)
}

func parsePrinterState(status string) (printscheduler.ResourceState, error) {
	switch strings.ToLower(status) {
	case "", "idle":
		return printscheduler.ResourceStateIdle, nil

	case "printing":
		return printscheduler.ResourceStatePrinting, nil

	case "maintenance":
		return printscheduler.ResourceStateMaintenance, nil
	}

	return "",
		fmt.Errorf("unsupported printer status %q", status)
}

func (doc *printerDocument) toResource() (*printscheduler.Resource, error) {
	state, errState := parsePrinterState(doc.Status)
	if errState != nil {
		return nil,
			errState
	}

	return printscheduler.NewResource(
		&printscheduler.ParamsNewResource{
			ID:      doc.ID,
			Name:    doc.Name,
			BedSize: doc.BedSize,

			State: state,

			HasCapability: doc.HasAMS,
		},
	)
}

func (doc *jobDocument) toTask() (*printscheduler.Task, error) {
	urgency, errUrgency := parseUrgency(doc.Urgency)
	if errUrgency != nil {
		return nil,
			errUrgency
	}

	status, errStatus := parseJobStatus(doc.Status)
	if errStatus != nil {
		return nil,
			errStatus
	}

	timeStart, errStart := parseTime(doc.ScheduledStartTime)
	if errStart != nil {
		return nil,
			fmt.Errorf("scheduledStartTime: %w", errStart)
	}

	result, errCr := printscheduler.NewTask(
		&printscheduler.ParamsNewTask{
			ID:                 doc.ID,
			Name:               doc.Name,
			AllowedResourceIDs: doc.CompatiblePrinterIDs,
			Notes:              doc.Notes,

			Urgency: urgency,

			DurationMinutes: doc.PrintTimeMinutes,

			GramsRequired: doc.GramsRequired,
			NozzleSize:    doc.NozzleSize,

			RequiresCapability: doc.RequiresAMS,
		},
	)
	if errCr != nil {
		return nil,
			errCr
	}

	result.Status = status

	if status == printscheduler.TaskStatusCommitted || status == printscheduler.TaskStatusPrinting {
		result.ResourceID = doc.ScheduledPrinterID
		result.TimeStart = timeStart
	}

	return result,
		nil
}

func newJobDocument(task *printscheduler.Task) jobDocument {
	result := jobDocument{
		ID:                   task.ID,
		Name:                 task.Name,
		PrintTimeMinutes:     task.DurationMinutes,
		GramsRequired:        task.GramsRequired,
		NozzleSize:           task.NozzleSize,
		RequiresAMS:          task.RequiresCapability,
		Urgency:              string(task.Urgency),
		Status:               formatJobStatus(task.Status),
		CompatiblePrinterIDs: task.AllowedResourceIDs,
		Notes:                task.Notes,
	}

	if task.IsCommitted() || task.Status == printscheduler.TaskStatusPrinting {
		result.ScheduledPrinterID = task.ResourceID

		if task.TimeStart > 0 {
			result.ScheduledStartTime = formatTime(task.TimeStart)
		}
	}

	return result
}

// Decode reads a snapshot. Printers and jobs keep document order, which
// is also the tie break order when scheduling.
func Decode(r io.Reader) (*Snapshot, error) {
	var doc document

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if errDecode := decoder.Decode(&doc); errDecode != nil {
		return nil,
			fmt.Errorf("snapshot: decode: %w", errDecode)
	}

	planStart, errStart := parseTime(doc.PlanStart)
	if errStart != nil {
		return nil,
			fmt.Errorf("snapshot: planStart: %w", errStart)
	}

	result := Snapshot{
		PlanStart: planStart,

		Resources: make([]*printscheduler.Resource, 0, len(doc.Printers)),
		Tasks:     make([]*printscheduler.Task, 0, len(doc.Jobs)),
	}

	for ix := range doc.Printers {
		res, errRes := doc.Printers[ix].toResource()
		if errRes != nil {
			return nil,
				fmt.Errorf("snapshot: printer %d (%s): %w", ix, doc.Printers[ix].ID, errRes)
		}

		result.Resources = append(result.Resources, res)
	}

	for ix := range doc.Jobs {
		task, errTask := doc.Jobs[ix].toTask()
		if errTask != nil {
			return nil,
				fmt.Errorf("snapshot: job %d (%s): %w", ix, doc.Jobs[ix].ID, errTask)
		}

		result.Tasks = append(result.Tasks, task)
	}

	return &result,
		nil
}
