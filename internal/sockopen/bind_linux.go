//go:build linux

package sockopen

import (
	"golang.org/x/sys/unix"
)

// bindToInterface restricts the socket to a single network interface using
// the SO_BINDTODEVICE socket option. The option takes the device name
// directly and is family-independent, so this is a single syscall.
func bindToInterface(fd int, _ Family, name string) *SysError {
	if err := unix.SetsockoptString(fd, unix.SOL_SOCKET, unix.SO_BINDTODEVICE, name); err != nil {
		return &SysError{Syscall: "setsockopt", Errno: errnoOf(err)}
	}
	return nil
}
