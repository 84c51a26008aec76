package main

import (
	"fmt"
	"os"

	"github.com/sentra-lab/simcore/cmd/cloud"
	"github.com/sentra-lab/simcore/cmd/config"
	"github.com/sentra-lab/simcore/cmd/init"
	"github.com/sentra-lab/simcore/cmd/replay"
	"github.com/sentra-lab/simcore/cmd/run"
	"github.com/sentra-lab/simcore/cmd/target"
	"github.com/sentra-lab/simcore/internal/utils"
	"github.com/spf13/cobra"
)

// commit is set via -ldflags at build time; "dev" covers local builds.
var commit = "dev"

func main() {
	logger := utils.NewLogger("simcore", "info")

	rootCmd := &cobra.Command{
		Use:   "simcore",
		Short: "A concurrent load-simulation engine",
		Long: `simcore drives scenarios -- ordered sequences of request steps -- against
a target concurrently, for a bounded duration or request count, with
ramp-up/ramp-down concurrency shaping and per-step timeouts.

Get started:
  simcore init my-load-test   # Scaffold a project
  simcore target up           # Start a disposable demo endpoint
  simcore run run.yaml        # Drive it`,
		Version: utils.GetVersionInfo(commit).String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logger.SetLevel("debug")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		init.NewInitCommand(logger),
		run.NewRunCommand(logger),
		target.NewTargetCommand(logger),
		replay.NewReplayCommand(logger),
		config.NewConfigCommand(logger),
		cloud.NewCloudCommand(logger),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(fmt.Sprintf("command failed: %v", err))
		os.Exit(1)
	}
}
