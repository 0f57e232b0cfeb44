//go:build darwin

package sockopen

import (
	"net"

	"golang.org/x/sys/unix"
)

// bindToInterface restricts the socket to a single network interface.
// Darwin has no SO_BINDTODEVICE; the interface name is first resolved to
// its index, then applied with IP_BOUND_IF or IPV6_BOUND_IF depending on
// the address family.
func bindToInterface(fd int, family Family, name string) *SysError {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		// ENXIO is what if_nametoindex(3) leaves behind for unknown names.
		return &SysError{Syscall: "if_nametoindex", Errno: unix.ENXIO, cause: ErrInterfaceNotFound}
	}

	level, opt := unix.IPPROTO_IP, unix.IP_BOUND_IF
	if family == AFInet6 {
		level, opt = unix.IPPROTO_IPV6, unix.IPV6_BOUND_IF
	}

	if err := unix.SetsockoptInt(fd, level, opt, ifi.Index); err != nil {
		return &SysError{Syscall: "setsockopt", Errno: errnoOf(err)}
	}
	return nil
}
