// Package target implements the "simcore target" subcommand: a disposable
// HTTP demo service so "simcore run" has something to load-test without
// the operator standing up their own endpoint first.
package target

import (
	"context"
	"fmt"
	"time"

	"github.com/sentra-lab/simcore/internal/docker"
	"github.com/sentra-lab/simcore/internal/utils"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

const (
	containerName = "simcore-demo-target"
	demoImage     = "traefik/whoami:latest"
)

type targetCommand struct {
	logger   *utils.Logger
	port     int
	skipOpen bool
}

// NewTargetCommand builds the "target" command group (up/down/logs).
func NewTargetCommand(logger *utils.Logger) *cobra.Command {
	tc := &targetCommand{logger: logger}

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Manage the disposable HTTP demo load target",
		Long: `Starts, stops, and tails logs for a throwaway HTTP service that
echoes back request metadata, useful as a drive target while authoring a
run descriptor before pointing simcore at a real endpoint.`,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Start the demo target container",
		RunE:  tc.up,
	}
	upCmd.Flags().IntVar(&tc.port, "port", 8089, "Host port to publish the target on")
	upCmd.Flags().BoolVar(&tc.skipOpen, "no-open", false, "Don't open the target's URL in a browser")

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the demo target container",
		RunE:  tc.down,
	}

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the demo target's logs",
		RunE:  tc.logs,
	}
	logsCmd.Flags().IntP("tail", "n", 100, "Number of lines to show")

	cmd.AddCommand(upCmd, downCmd, logsCmd)
	return cmd
}

func (tc *targetCommand) up(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := docker.NewClient()
	if err != nil {
		return fmt.Errorf("docker: %w", err)
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}

	tc.logger.Info(fmt.Sprintf("pulling %s...", demoImage))
	if err := client.PullImage(ctx, demoImage); err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	id, err := client.CreateContainer(ctx, &docker.ContainerConfig{
		Name:  containerName,
		Image: demoImage,
		Ports: map[string]int{"80/tcp": tc.port},
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if err := client.StartContainer(ctx, id); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	container := docker.NewContainer(client, id)
	if err := container.WaitUntilHealthy(ctx, 30*time.Second); err != nil {
		tc.logger.Warn(fmt.Sprintf("target did not report healthy, continuing anyway: %v", err))
	}

	url := fmt.Sprintf("http://localhost:%d/", tc.port)
	tc.logger.Info(fmt.Sprintf("demo target up at %s", url))
	tc.logger.Info(fmt.Sprintf("target.url: %s in a run descriptor will drive it", url))

	if !tc.skipOpen {
		tc.logger.Info(fmt.Sprintf("Opening browser: %s", url))
		if err := open.Run(url); err != nil {
			tc.logger.Warn("Failed to open browser automatically")
			tc.logger.Info(fmt.Sprintf("Please open this URL manually: %s", url))
		}
	}

	return nil
}

func (tc *targetCommand) down(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := docker.NewClient()
	if err != nil {
		return fmt.Errorf("docker: %w", err)
	}
	defer client.Close()

	containers, err := client.ListContainers(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	for _, c := range containers {
		if c.Name != "/"+containerName && c.Name != containerName {
			continue
		}
		target := docker.NewContainer(client, c.ID)
		if err := target.Stop(ctx, 10*time.Second); err != nil {
			return fmt.Errorf("stop: %w", err)
		}
		if err := target.Remove(ctx); err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		tc.logger.Info("demo target stopped and removed")
		return nil
	}

	tc.logger.Info("demo target is not running")
	return nil
}

func (tc *targetCommand) logs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tail, _ := cmd.Flags().GetInt("tail")

	client, err := docker.NewClient()
	if err != nil {
		return fmt.Errorf("docker: %w", err)
	}
	defer client.Close()

	containers, err := client.ListContainers(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	for _, c := range containers {
		if c.Name != "/"+containerName && c.Name != containerName {
			continue
		}
		target := docker.NewContainer(client, c.ID)
		out, err := target.Logs(ctx, tail)
		if err != nil {
			return fmt.Errorf("logs: %w", err)
		}
		fmt.Println(out)
		return nil
	}

	return fmt.Errorf("demo target is not running; run 'simcore target up' first")
}
