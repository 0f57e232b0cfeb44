// Package sockopen provides asynchronous creation of raw ICMP sockets.
//
// Opening an ICMP socket is a privileged, potentially slow operation: it
// touches raw OS primitives and may bind the socket to a source address or
// restrict it to a single network interface. This package performs the whole
// socket/setsockopt/bind sequence on a bounded worker pool and reports the
// outcome to a caller-supplied handler exactly once, on a single completion
// goroutine. Everything above "get me a correctly bound ICMP descriptor" --
// packet construction, echo sequencing, RTT timing -- belongs to the caller.
package sockopen

import (
	"golang.org/x/sys/unix"
)

// Version is the library version, exposed alongside the family constants.
const Version = "1.0.0"

// Family identifies the address family of the socket to open.
// The numeric values match the host OS address-family constants.
type Family int

// Supported address families.
const (
	AFInet  Family = unix.AF_INET
	AFInet6 Family = unix.AF_INET6
)

// String returns the string representation of the family.
func (f Family) String() string {
	switch f {
	case AFInet:
		return "inet"
	case AFInet6:
		return "inet6"
	default:
		return "unknown"
	}
}

// protocol maps the family to its raw ICMP protocol number.
func (f Family) protocol() (int, bool) {
	switch f {
	case AFInet:
		return unix.IPPROTO_ICMP, true
	case AFInet6:
		return unix.IPPROTO_ICMPV6, true
	default:
		return 0, false
	}
}

// ParseFamily converts a family name ("inet", "inet6", "ipv4", "ipv6")
// to a Family. Returns ErrUnsupportedFamily for anything else.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "inet", "ipv4", "4":
		return AFInet, nil
	case "inet6", "ipv6", "6":
		return AFInet6, nil
	default:
		return 0, ErrUnsupportedFamily
	}
}
