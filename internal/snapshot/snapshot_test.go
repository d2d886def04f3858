package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TudorHulban/printscheduler"
)

const (
	midnight = int64(1743120000) // 2025-03-28T00:00:00Z
	oneHour  = int64(3600)
)

const sampleSnapshot = `
planStart: "2025-03-28T00:00:00Z"
printers:
  - id: p1
    name: Bambu X1C
    bedSize: 256x256x256
    hasAMS: true
    status: Idle
  - id: p2
    name: Prusa MK4
    status: Maintenance
jobs:
  - id: j1
    name: Helmet
    printTimeMinutes: 120
    gramsRequired: 310.5
    requiresAMS: true
    urgency: High
    status: Queued
    compatiblePrinterIds: [p1]
  - id: j2
    name: Benchy
    printTimeMinutes: 45
    status: Scheduled
    scheduledPrinterId: p1
    scheduledStartTime: "2025-03-28T10:00:00Z"
  - id: j3
    name: Bracket
    printTimeMinutes: 30
    status: Completed
    notes: reprint if warped
`

func TestDecode(t *testing.T) {
	snap, errDecode := Decode(strings.NewReader(sampleSnapshot))
	require.NoError(t, errDecode)

	require.Equal(t, midnight, snap.PlanStart)

	require.Len(t, snap.Resources, 2)
	require.Equal(t, "p1", snap.Resources[0].ID)
	require.True(t, snap.Resources[0].HasCapability)
	require.Equal(t, printscheduler.ResourceStateIdle, snap.Resources[0].State)
	require.False(t, snap.Resources[1].IsEnabled())

	require.Len(t, snap.Tasks, 3)

	helmet := snap.Tasks[0]
	require.Equal(t, printscheduler.TaskStatusPending, helmet.Status)
	require.Equal(t, printscheduler.UrgencyHigh, helmet.Urgency)
	require.Equal(t, []string{"p1"}, helmet.AllowedResourceIDs)
	require.True(t, helmet.RequiresCapability)
	require.EqualValues(t, 120, helmet.DurationMinutes)

	benchy := snap.Tasks[1]
	require.True(t, benchy.IsCommitted())
	require.Equal(t, "p1", benchy.ResourceID)
	require.Equal(t, midnight+10*oneHour, benchy.TimeStart)
	require.Equal(t, printscheduler.UrgencyNormal, benchy.Urgency)

	require.Equal(t, printscheduler.TaskStatusDone, snap.Tasks[2].Status)
	require.Equal(t, "reprint if warped", snap.Tasks[2].Notes)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"1. empty document",
			"",
		},
		{
			"2. unknown field",
			"printers: []\njobs: []\ncolor: red\n",
		},
		{
			"3. bad plan start",
			"planStart: tomorrow\n",
		},
		{
			"4. printer without name",
			"printers:\n  - id: p1\n",
		},
		{
			"5. unknown printer status",
			"printers:\n  - id: p1\n    name: a\n    status: Offline\n",
		},
		{
			"6. unknown job status",
			"jobs:\n  - id: j1\n    name: a\n    printTimeMinutes: 10\n    status: Paused\n",
		},
		{
			"7. job without duration",
			"jobs:\n  - id: j1\n    name: a\n",
		},
		{
			"8. negative duration",
			"jobs:\n  - id: j1\n    name: a\n    printTimeMinutes: -5\n",
		},
		{
			"9. bad start time",
			"jobs:\n  - id: j1\n    name: a\n    printTimeMinutes: 10\n    status: Scheduled\n    scheduledStartTime: noon\n",
		},
		{
			"10. unknown urgency",
			"jobs:\n  - id: j1\n    name: a\n    printTimeMinutes: 10\n    urgency: Whenever\n",
		},
	}

	for _, tc := range tests {
		t.Run(
			tc.name,
			func(t *testing.T) {
				snap, errDecode := Decode(strings.NewReader(tc.content))
				require.Error(t, errDecode)
				require.Nil(t, snap)
			},
		)
	}
}

func TestWriteReport(t *testing.T) {
	snap, errDecode := Decode(strings.NewReader(sampleSnapshot))
	require.NoError(t, errDecode)

	farm, errCr := printscheduler.NewFarm(
		&printscheduler.ParamsNewFarm{
			Name:      "garage",
			Resources: snap.Resources,
		},
	)
	require.NoError(t, errCr)

	response, errSchedule := farm.Schedule(
		&printscheduler.ParamsSchedule{
			Tasks:     snap.Tasks,
			Strategy:  printscheduler.StrategyLock,
			PlanStart: snap.PlanStart,
		},
	)
	require.NoError(t, errSchedule)

	var buf bytes.Buffer

	require.NoError(t,
		WriteReport(&buf, response, printscheduler.StrategyLock),
	)

	var report reportDocument

	require.NoError(t,
		yaml.Unmarshal(buf.Bytes(), &report),
	)

	require.Equal(t, "lock", report.Strategy)
	require.Equal(t, response.Stats.Fingerprint.String(), report.Fingerprint)
	require.Equal(t, "Scheduled 1 jobs over 2.0 hours (0 delayed, 0 omitted)", report.Summary)

	require.Equal(t,
		[]placementDocument{
			{
				JobID:     "j1",
				PrinterID: "p1",
				Start:     "2025-03-28T00:00:00Z",
				End:       "2025-03-28T02:00:00Z",
			},
		},
		report.Placements,
	)
	require.Equal(t, []string{"j1"}, report.Updated)

	require.Len(t, report.Jobs, 3)
	require.Equal(t, "Scheduled", report.Jobs[0].Status)
	require.Equal(t, "p1", report.Jobs[0].ScheduledPrinterID)
	require.Equal(t, "2025-03-28T00:00:00Z", report.Jobs[0].ScheduledStartTime)
	require.Equal(t, "2025-03-28T10:00:00Z", report.Jobs[1].ScheduledStartTime)
	require.Equal(t, "Completed", report.Jobs[2].Status)
	require.Empty(t, report.Jobs[2].ScheduledPrinterID)
}

const statusSnapshot = `
planStart: "2025-03-28T00:00:00Z"
printers:
  - id: p1
    name: Bambu X1C
jobs:
  - id: running
    name: Vase
    printTimeMinutes: 300
    status: Printing
    scheduledPrinterId: p1
    scheduledStartTime: "2025-03-27T22:00:00Z"
  - id: old
    name: Bracket
    printTimeMinutes: 30
    status: Archived
  - id: unanchored
    name: Clip
    printTimeMinutes: 20
    status: Scheduled
    scheduledPrinterId: p1
  - id: queued
    name: Benchy
    printTimeMinutes: 45
`

func TestStatusesSurviveReport(t *testing.T) {
	snap, errDecode := Decode(strings.NewReader(statusSnapshot))
	require.NoError(t, errDecode)

	require.Equal(t, printscheduler.TaskStatusPrinting, snap.Tasks[0].Status)
	require.Equal(t, "p1", snap.Tasks[0].ResourceID)
	require.Equal(t, printscheduler.TaskStatusArchived, snap.Tasks[1].Status)
	require.Zero(t, snap.Tasks[2].TimeStart)

	farm, errCr := printscheduler.NewFarm(
		&printscheduler.ParamsNewFarm{
			Name:      "garage",
			Resources: snap.Resources,
		},
	)
	require.NoError(t, errCr)

	response, errSchedule := farm.Schedule(
		&printscheduler.ParamsSchedule{
			Tasks:     snap.Tasks,
			Strategy:  printscheduler.StrategyLock,
			PlanStart: snap.PlanStart,
		},
	)
	require.NoError(t, errSchedule)

	// the unanchored job is not seeded, so queued starts at plan start
	require.Equal(t, []string{"queued"}, response.Updated)
	require.Equal(t, midnight, response.Plan.Placements[0].TimeStart)

	var buf bytes.Buffer

	require.NoError(t,
		WriteReport(&buf, response, printscheduler.StrategyLock),
	)

	var report reportDocument

	require.NoError(t,
		yaml.Unmarshal(buf.Bytes(), &report),
	)

	require.Len(t, report.Jobs, 4)
	require.Equal(t, "Printing", report.Jobs[0].Status)
	require.Equal(t, "p1", report.Jobs[0].ScheduledPrinterID)
	require.Equal(t, "2025-03-27T22:00:00Z", report.Jobs[0].ScheduledStartTime)
	require.Equal(t, "Archived", report.Jobs[1].Status)

	require.Equal(t, "Scheduled", report.Jobs[2].Status)
	require.Equal(t, "p1", report.Jobs[2].ScheduledPrinterID)
	require.Empty(t, report.Jobs[2].ScheduledStartTime)

	require.Equal(t, "Scheduled", report.Jobs[3].Status)
}
