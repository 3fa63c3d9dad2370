//go:build !windows

package shell

import (
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

type unixProcessController struct{}

func newPlatformProcessController() ProcessController {
	return &unixProcessController{}
}

// Start runs the command as the leader of a new process group so the
// whole pipeline it spawns can be signalled at once.
func (u *unixProcessController) Start(cmd *exec.Cmd) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	setPdeathsig(cmd.SysProcAttr)
	return cmd.Start()
}

// Interrupt sends SIGINT to the process group (negative PID targets the group).
func (u *unixProcessController) Interrupt(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return errors.New(errProcessNotStarted)
	}
	return unix.Kill(-cmd.Process.Pid, unix.SIGINT)
}

// Kill sends SIGKILL to the process group.
func (u *unixProcessController) Kill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return errors.New(errProcessNotStarted)
	}
	return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
}

func (u *unixProcessController) Wait(ctx context.Context, cmd *exec.Cmd, gracePeriod time.Duration) error {
	if cmd.Process == nil {
		return errors.New(errProcessNotStarted)
	}
	return waitWithCancel(ctx, u, cmd, gracePeriod)
}

// signalExitCode maps a signal death to the conventional 128+N status.
func signalExitCode(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}
