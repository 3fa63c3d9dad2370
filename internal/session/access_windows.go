//go:build windows

package session

import "os"

// canEnter reports whether the process may make dir its working directory.
func canEnter(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	return f.Close()
}
