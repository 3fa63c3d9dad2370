//go:build !linux && !windows

package shell

import "syscall"

// setPdeathsig is a no-op where Pdeathsig is not supported.
func setPdeathsig(_ *syscall.SysProcAttr) {}
