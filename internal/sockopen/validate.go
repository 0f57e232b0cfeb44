package sockopen

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

// MaxSourceAddressLen is the longest accepted textual source address.
// 40 characters covers the longest valid representation in either family.
const MaxSourceAddressLen = 40

// MaxInterfaceNameLen is the longest accepted interface name,
// not counting the C string terminator.
const MaxInterfaceNameLen = unix.IFNAMSIZ

// Handler receives the outcome of one open request, exactly once.
// On success err is nil and fd is a non-negative descriptor owned by the
// caller. On failure fd is -1 and err describes what went wrong.
type Handler func(err error, fd int)

// request is the unit of work handed to the worker pool. It is created only
// after validation succeeds and is owned by exactly one stage at a time:
// the submitter, then a worker, then the completion goroutine.
type request struct {
	family  Family
	addr    netip.Addr // source address to bind, zero value means none
	hasAddr bool
	iface   string // source interface to restrict to, empty means none
	handler Handler

	// outcome, written exactly once by the executing worker
	fd    int
	err   error // nil on success, *SysError on failure
}

// newRequest validates the caller-supplied values and builds a request.
// Validation is pure: it performs no syscalls and allocates nothing visible
// to the worker pool until every check has passed, so argument errors are
// always synchronous and leak nothing.
func newRequest(family Family, sourceAddress, sourceInterface string, handler Handler) (*request, error) {
	if family != AFInet && family != AFInet6 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFamily, int(family))
	}

	var addr netip.Addr
	hasAddr := false
	if sourceAddress != "" {
		parsed, err := parseSourceAddress(family, sourceAddress)
		if err != nil {
			return nil, err
		}
		addr = parsed
		hasAddr = true
	}

	if len(sourceInterface) > MaxInterfaceNameLen {
		return nil, fmt.Errorf("%w: %q exceeds %d characters",
			ErrInterfaceNameTooLong, sourceInterface, MaxInterfaceNameLen)
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	return &request{
		family:  family,
		addr:    addr,
		hasAddr: hasAddr,
		iface:   sourceInterface,
		handler: handler,
		fd:      -1,
	}, nil
}

// parseSourceAddress parses a textual source address and checks that it
// belongs to the requested family.
func parseSourceAddress(family Family, s string) (netip.Addr, error) {
	if len(s) > MaxSourceAddressLen {
		return netip.Addr{}, fmt.Errorf("%w: must be at most %d characters",
			ErrInvalidSourceAddress, MaxSourceAddressLen)
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidSourceAddress, s)
	}

	// Zoned addresses cannot be expressed in a plain sockaddr bind.
	if addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("%w: %q has a zone", ErrInvalidSourceAddress, s)
	}

	switch family {
	case AFInet:
		if !addr.Is4() {
			return netip.Addr{}, fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidSourceAddress, s)
		}
	case AFInet6:
		if !addr.Is6() || addr.Is4() {
			return netip.Addr{}, fmt.Errorf("%w: %q is not an IPv6 address", ErrInvalidSourceAddress, s)
		}
	}

	return addr, nil
}
