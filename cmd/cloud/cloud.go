// Package cloud implements "simcore cloud push": uploading a saved JSON
// result set to a remote HTTP collector, the one concrete consumer the
// CLI ships for "results are streamed to a consumer".
package cloud

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sentra-lab/simcore/internal/utils"
	"github.com/spf13/cobra"
)

type cloudCommand struct {
	logger     *utils.Logger
	endpoint   string
	token      string
	maxRetries int
	retryDelay time.Duration
}

func NewCloudCommand(logger *utils.Logger) *cobra.Command {
	cc := &cloudCommand{logger: logger, maxRetries: 3, retryDelay: 2 * time.Second}

	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Push saved results to a remote collector",
	}

	pushCmd := &cobra.Command{
		Use:   "push <results.json>",
		Short: "Upload a saved JSON result set",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.push,
	}
	pushCmd.Flags().StringVar(&cc.endpoint, "endpoint", os.Getenv("SIMCORE_CLOUD_ENDPOINT"), "Collector URL to POST results to")
	pushCmd.Flags().StringVar(&cc.token, "token", os.Getenv("SIMCORE_CLOUD_TOKEN"), "Bearer token for the collector")

	cmd.AddCommand(pushCmd)
	return cmd
}

func (cc *cloudCommand) push(cmd *cobra.Command, args []string) error {
	if cc.endpoint == "" {
		return fmt.Errorf("no --endpoint given and SIMCORE_CLOUD_ENDPOINT is unset")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	cc.logger.Info(fmt.Sprintf("pushing %s to %s", args[0], cc.endpoint))

	// Generated once and resent on every retry, so a collector that
	// dedupes on it won't double-record a push whose earlier response was
	// lost to a network error after the upload actually succeeded.
	idempotencyKey := utils.GenerateID("push")

	var lastErr error
	for attempt := 0; attempt < cc.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			case <-time.After(cc.retryDelay):
			}
		}

		if err := cc.upload(cmd.Context(), data, idempotencyKey); err != nil {
			lastErr = err
			cc.logger.Warn(fmt.Sprintf("push attempt %d/%d failed: %v", attempt+1, cc.maxRetries, err))
			continue
		}

		cc.logger.Info("push succeeded")
		return nil
	}

	return fmt.Errorf("push failed after %d attempts: %w", cc.maxRetries, lastErr)
}

func (cc *cloudCommand) upload(ctx context.Context, data []byte, idempotencyKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)
	if cc.token != "" {
		req.Header.Set("Authorization", "Bearer "+cc.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("collector responded %s", resp.Status)
	}
	return nil
}
