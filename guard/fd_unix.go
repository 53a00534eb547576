//go:build unix

package guard

import "golang.org/x/sys/unix"

// FD is a raw descriptor that can be registered with a Guard.
type FD int

func (fd FD) Close() error {
	return unix.Close(int(fd))
}
