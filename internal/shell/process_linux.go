//go:build linux

package shell

import "syscall"

// setPdeathsig kills the child if aiterm itself dies.
func setPdeathsig(attr *syscall.SysProcAttr) {
	attr.Pdeathsig = syscall.SIGKILL
}
