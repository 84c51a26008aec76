package docker

import (
	"context"
	"fmt"
	"time"
)

type Container struct {
	ID        string
	Name      string
	Image     string
	Status    string
	CreatedAt time.Time
	Ports     map[string]int
	client    *Client
}

func NewContainer(client *Client, id string) *Container {
	return &Container{
		ID:     id,
		client: client,
	}
}

func (c *Container) Stop(ctx context.Context, timeout time.Duration) error {
	return c.client.StopContainer(ctx, c.ID, timeout)
}

func (c *Container) Remove(ctx context.Context) error {
	return c.client.RemoveContainer(ctx, c.ID)
}

func (c *Container) Logs(ctx context.Context, tail int) (string, error) {
	return c.client.GetContainerLogs(ctx, c.ID, tail)
}

func (c *Container) GetStatus(ctx context.Context) (*ContainerStatus, error) {
	return c.client.GetContainerStatus(ctx, c.ID)
}

func (c *Container) IsHealthy(ctx context.Context) (bool, error) {
	status, err := c.GetStatus(ctx)
	if err != nil {
		return false, err
	}
	return status.Health == "healthy", nil
}

func (c *Container) WaitUntilHealthy(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		status, err := c.GetStatus(ctx)
		if err != nil {
			return err
		}

		if !status.Running {
			return fmt.Errorf("container not running")
		}

		if status.Health == "" {
			return nil
		}

		healthy, err := c.IsHealthy(ctx)
		if err != nil {
			return err
		}
		if healthy {
			return nil
		}

		time.Sleep(1 * time.Second)
	}

	return fmt.Errorf("timeout waiting for container to be healthy")
}