package shell

import (
	"context"
	"os/exec"
	"time"
)

// DefaultGracePeriod is the time to wait between interrupt and kill signals.
const DefaultGracePeriod = 2 * time.Second

// ProcessController manages subprocess lifecycle with platform-appropriate signals.
type ProcessController interface {
	// Start places the command in its own process group and starts it.
	Start(cmd *exec.Cmd) error

	// Interrupt sends a graceful interrupt signal to the process group.
	Interrupt(cmd *exec.Cmd) error

	// Kill forcefully terminates the process group.
	Kill(cmd *exec.Cmd) error

	// Wait waits for the process to complete with cancellation support.
	// If ctx is cancelled, sends Interrupt, waits gracePeriod, then Kill.
	Wait(ctx context.Context, cmd *exec.Cmd, gracePeriod time.Duration) error
}

// NewProcessController creates a platform-appropriate ProcessController.
func NewProcessController() ProcessController {
	return newPlatformProcessController()
}

const errProcessNotStarted = "process not started"

// waitWithCancel is the Wait flow shared by all platforms.
func waitWithCancel(ctx context.Context, pc ProcessController, cmd *exec.Cmd, gracePeriod time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = pc.Interrupt(cmd)

		select {
		case err := <-done:
			return err
		case <-time.After(gracePeriod):
			_ = pc.Kill(cmd)
			return <-done
		}
	}
}
