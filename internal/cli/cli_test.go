package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	testConfig = `
app:
  farm: garage
logger:
  level: error
scheduler:
  strategy: lock
  availability:
    - start: "09:00"
      end: "17:00"
`

	testSnapshot = `
planStart: "2025-03-28T09:00:00Z"
printers:
  - id: p1
    name: Bambu X1C
jobs:
  - id: j1
    name: Helmet
    printTimeMinutes: 60
  - id: j2
    name: Clip
    printTimeMinutes: 30
`
)

type planReport struct {
	Strategy   string `yaml:"strategy"`
	Placements []struct {
		JobID string `yaml:"jobId"`
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"placements"`
	Updated []string `yaml:"updated"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t,
		os.WriteFile(path, []byte(content), 0o600),
	)

	return path
}

func runPlan(t *testing.T, args ...string) (*planReport, error) {
	t.Helper()

	var out bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(
		append(
			[]string{
				"plan",
				"--config", writeFile(t, "config.yaml", testConfig),
			},
			args...,
		),
	)

	if errExec := root.Execute(); errExec != nil {
		return nil, errExec
	}

	var result planReport

	require.NoError(t,
		yaml.Unmarshal(out.Bytes(), &result),
	)

	return &result, nil
}

func TestPlan(t *testing.T) {
	snapshotPath := writeFile(t, "snapshot.yaml", testSnapshot)

	t.Run(
		"1. all queued jobs",
		func(t *testing.T) {
			report, errPlan := runPlan(t, "--snapshot", snapshotPath)
			require.NoError(t, errPlan)

			require.Equal(t, "lock", report.Strategy)
			require.Len(t, report.Placements, 2)
			require.Equal(t, "j1", report.Placements[0].JobID)
			require.Equal(t, "2025-03-28T09:00:00Z", report.Placements[0].Start)
			require.Equal(t, "2025-03-28T10:00:00Z", report.Placements[1].Start)
			require.Equal(t, "2025-03-28T10:30:00Z", report.Placements[1].End)
		},
	)

	t.Run(
		"2. selected job and explicit start",
		func(t *testing.T) {
			report, errPlan := runPlan(t,
				"--snapshot", snapshotPath,
				"--jobs", "j2",
				"--start", "2025-03-28T12:00:00Z",
				"--strategy", "shuffle",
			)
			require.NoError(t, errPlan)

			require.Equal(t, "shuffle", report.Strategy)
			require.Len(t, report.Placements, 1)
			require.Equal(t, "j2", report.Placements[0].JobID)
			require.Equal(t, "2025-03-28T12:00:00Z", report.Placements[0].Start)
			require.Equal(t, []string{"j2"}, report.Updated)
		},
	)
}

func TestPlanErrors(t *testing.T) {
	snapshotPath := writeFile(t, "snapshot.yaml", testSnapshot)

	tests := []struct {
		name string
		args []string
	}{
		{"1. missing snapshot flag", nil},
		{"2. snapshot not found", []string{"--snapshot", filepath.Join(t.TempDir(), "absent.yaml")}},
		{"3. unknown strategy", []string{"--snapshot", snapshotPath, "--strategy", "random"}},
		{"4. bad start", []string{"--snapshot", snapshotPath, "--start", "noon"}},
		{"5. unknown printer only", []string{"--snapshot", snapshotPath, "--printers", "p9"}},
		{"6. bad log level", []string{"--snapshot", snapshotPath, "--log-level", "loud"}},
		{"7. no queued job selected and nothing scheduled", []string{"--snapshot", snapshotPath, "--jobs", ""}},
	}

	for _, tc := range tests {
		t.Run(
			tc.name,
			func(t *testing.T) {
				report, errPlan := runPlan(t, tc.args...)
				require.Error(t, errPlan)
				require.Nil(t, report)
			},
		)
	}
}
