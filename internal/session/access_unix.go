//go:build !windows

package session

import "golang.org/x/sys/unix"

// canEnter reports whether the process may make dir its working directory.
func canEnter(dir string) error {
	return unix.Access(dir, unix.X_OK)
}
