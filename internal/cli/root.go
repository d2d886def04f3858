package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TudorHulban/printscheduler/internal/config"
	"github.com/TudorHulban/printscheduler/internal/logger"
)

var (
	flagConfig   string
	flagLogLevel string

	appConfig *config.AppConfig
	log       *zap.Logger
)

// NewRootCmd creates the root cobra command for the printscheduler CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "printscheduler",
		Short: "Print farm job scheduler",
		Long:  "printscheduler places queued print jobs on printers, honoring availability windows.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, errCfg := config.New(flagConfig)
			if errCfg != nil {
				return errCfg
			}

			if len(flagLogLevel) > 0 {
				cfg.Logger.Level = flagLogLevel
			}

			built, _, errLog := logger.Build(cfg.Logger)
			if errLog != nil {
				return errLog
			}

			appConfig = cfg
			log = built.Named(cfg.App.Name)

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./config.yaml or /etc/printscheduler/config.yaml)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error), overrides config")

	root.AddCommand(
		newPlanCmd(),
	)

	return root
}
