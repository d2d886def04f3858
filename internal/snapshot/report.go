package snapshot

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/TudorHulban/printscheduler"
)

type (
	placementDocument struct {
		JobID     string `yaml:"jobId"`
		PrinterID string `yaml:"printerId"`
		Start     string `yaml:"start"`
		End       string `yaml:"end"`
		Delayed   bool   `yaml:"delayed,omitempty"`
	}

	reportDocument struct {
		Strategy    string `yaml:"strategy"`
		Summary     string `yaml:"summary"`
		Fingerprint string `yaml:"fingerprint"`

		Placements []placementDocument `yaml:"placements"`
		Omitted    []string            `yaml:"omitted,omitempty"`
		Updated    []string            `yaml:"updated,omitempty"`
		Reverted   []string            `yaml:"reverted,omitempty"`

		Jobs []jobDocument `yaml:"jobs"`
	}
)

// WriteReport encodes the run outcome. The jobs section uses the snapshot
// layout so a report can be fed back as the next snapshot's job list.
func WriteReport(w io.Writer, response *printscheduler.ResponseSchedule, strategy printscheduler.Strategy) error {
	doc := reportDocument{
		Strategy:    strategy.String(),
		Summary:     response.Stats.String(),
		Fingerprint: response.Stats.Fingerprint.String(),

		Placements: make([]placementDocument, 0, len(response.Plan.Placements)),
		Omitted:    response.Plan.Omitted,
		Updated:    response.Updated,
		Reverted:   response.Reverted,

		Jobs: make([]jobDocument, 0, len(response.Tasks)),
	}

	for _, placement := range response.Plan.Placements {
		doc.Placements = append(doc.Placements,
			placementDocument{
				JobID:     placement.TaskID,
				PrinterID: placement.ResourceID,
				Start:     formatTime(placement.TimeStart),
				End:       formatTime(placement.TimeEnd),
				Delayed:   placement.IsDelayed,
			},
		)
	}

	for ix := range response.Tasks {
		doc.Jobs = append(doc.Jobs, newJobDocument(&response.Tasks[ix]))
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if errEncode := encoder.Encode(doc); errEncode != nil {
		return fmt.Errorf("snapshot: encode report: %w", errEncode)
	}

	return encoder.Close()
}
