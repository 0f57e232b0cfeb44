package sockopen

import (
	"golang.org/x/sys/unix"
)

// execute runs the socket open sequence for a validated request. It always
// runs on a worker goroutine, never on the caller's goroutine, and writes
// the request outcome exactly once before returning.
//
// Every failure branch goes through fail, which closes any partially-opened
// socket first: a request that completes with an error never holds a live
// descriptor.
func execute(req *request) {
	proto, ok := req.family.protocol()
	if !ok {
		// Validation rejects other families before a request is queued.
		req.fail(-1, &SysError{Errno: unix.EAFNOSUPPORT})
		return
	}

	fd, err := unix.Socket(int(req.family), unix.SOCK_DGRAM, proto)
	if err != nil {
		req.fail(-1, &SysError{Syscall: "socket", Errno: errnoOf(err)})
		return
	}

	if req.iface != "" {
		if serr := bindToInterface(fd, req.family, req.iface); serr != nil {
			req.fail(fd, serr)
			return
		}
	}

	if req.hasAddr {
		if err := unix.Bind(fd, req.sockaddr()); err != nil {
			req.fail(fd, &SysError{Syscall: "bind", Errno: errnoOf(err)})
			return
		}
	}

	req.fd = fd
}

// fail records a failure outcome, closing the socket first if one is open.
func (req *request) fail(fd int, serr *SysError) {
	if fd >= 0 {
		unix.Close(fd)
	}
	req.fd = -1
	req.err = serr
}

// sockaddr builds the bind target for the validated source address.
func (req *request) sockaddr() unix.Sockaddr {
	if req.family == AFInet {
		return &unix.SockaddrInet4{Addr: req.addr.As4()}
	}
	return &unix.SockaddrInet6{Addr: req.addr.As16()}
}
