package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TudorHulban/printscheduler"
	"github.com/TudorHulban/printscheduler/internal/snapshot"
)

func newPlanCmd() *cobra.Command {
	var (
		snapshotFile string
		strategyName string
		startTime    string
		jobIDs       []string
		printerIDs   []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Schedule jobs from a farm snapshot",
		Long:  "Read printers and jobs from a YAML snapshot, run one scheduling pass and print the report as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, errOpen := os.Open(snapshotFile)
			if errOpen != nil {
				return fmt.Errorf("open snapshot: %w", errOpen)
			}
			defer f.Close()

			snap, errDecode := snapshot.Decode(f)
			if errDecode != nil {
				return errDecode
			}

			log.Debug("snapshot loaded",
				zap.String("path", snapshotFile),
				zap.Int("printers", len(snap.Resources)),
				zap.Int("jobs", len(snap.Tasks)),
			)

			if len(strategyName) == 0 {
				strategyName = appConfig.Scheduler.Strategy
			}

			strategy, errStrategy := printscheduler.ParseStrategy(strategyName)
			if errStrategy != nil {
				return fmt.Errorf("strategy: %w", errStrategy)
			}

			planStart := snap.PlanStart

			if len(startTime) > 0 {
				parsed, errParse := time.Parse(time.RFC3339, startTime)
				if errParse != nil {
					return fmt.Errorf("start: %w", errParse)
				}

				planStart = parsed.Unix()
			}

			if planStart == 0 {
				planStart = time.Now().Unix()
			}

			windows, errWindows := appConfig.Scheduler.GetWindows()
			if errWindows != nil {
				return errWindows
			}

			farm, errFarm := printscheduler.NewFarm(
				&printscheduler.ParamsNewFarm{
					Name:      appConfig.App.Farm,
					Resources: snap.Resources,
					Windows:   windows,

					Logger: log,

					SecondsOffset: appConfig.Scheduler.SecondsOffset,
				},
			)
			if errFarm != nil {
				return errFarm
			}

			response, errSchedule := farm.Schedule(
				&printscheduler.ParamsSchedule{
					Tasks:               snap.Tasks,
					SelectedTaskIDs:     jobIDs,
					SelectedResourceIDs: printerIDs,
					Strategy:            strategy,
					PlanStart:           planStart,
				},
			)
			if errSchedule != nil {
				return errSchedule
			}

			return snapshot.WriteReport(cmd.OutOrStdout(), response, strategy)
		},
	}

	cmd.Flags().StringVar(&snapshotFile, "snapshot", "", "YAML snapshot with printers and jobs")
	cmd.Flags().StringVar(&strategyName, "strategy", "", "Scheduling strategy (lock, shuffle), overrides config")
	cmd.Flags().StringVar(&startTime, "start", "", "Plan start, RFC3339 (default snapshot planStart or now)")
	cmd.Flags().StringSliceVar(&jobIDs, "jobs", nil, "Job IDs to schedule (default all queued, \"\" for none)")
	cmd.Flags().StringSliceVar(&printerIDs, "printers", nil, "Printer IDs to use (default all enabled)")

	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}
