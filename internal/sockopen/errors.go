package sockopen

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// Validation and dispatch errors. These are always reported synchronously
// from Open, before any privileged resource is touched; they never reach
// the completion handler.
var (
	// ErrUnsupportedFamily indicates the family is neither AFInet nor AFInet6
	ErrUnsupportedFamily = errors.New("unsupported socket family")

	// ErrInvalidSourceAddress indicates the source address does not parse
	// as an address of the requested family
	ErrInvalidSourceAddress = errors.New("invalid source address")

	// ErrInterfaceNameTooLong indicates the interface name exceeds IFNAMSIZ
	ErrInterfaceNameTooLong = errors.New("interface name too long")

	// ErrNilHandler indicates no completion handler was supplied
	ErrNilHandler = errors.New("completion handler must not be nil")

	// ErrClosed indicates the opener was closed before the request was queued.
	// This is a dispatch failure, distinct from any OS-level error.
	ErrClosed = errors.New("opener is closed")

	// ErrInvalidWorkerCount indicates the worker count is out of range
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrInvalidQueueSize indicates the queue size is negative
	ErrInvalidQueueSize = errors.New("queue size must not be negative")
)

// ErrInterfaceNotFound indicates the requested source interface does not
// exist on this host. It is discovered only while executing, so it arrives
// through the completion handler, wrapped in a SysError.
var ErrInterfaceNotFound = errors.New("interface not found")

// SysError is a structured failure of one of the syscalls in the open
// sequence (socket, setsockopt, bind, if_nametoindex). It carries the name
// of the failing call and the raw OS error code.
type SysError struct {
	// Syscall is the name of the failing call, empty if unknown.
	Syscall string

	// Errno is the raw OS error code, zero if unknown.
	Errno syscall.Errno

	// cause is an optional sentinel (e.g. ErrInterfaceNotFound) exposed
	// through Unwrap so callers can test the error class.
	cause error
}

// Code returns the short machine-readable name of the error code
// (e.g. "EPERM"), or an empty string when the code is zero or unrecognized.
func (e *SysError) Code() string {
	if e.Errno == 0 {
		return ""
	}
	return unix.ErrnoName(e.Errno)
}

// Message returns the human-readable message for the error code, falling
// back to "Unknown Error" when the code is zero or unrecognized.
func (e *SysError) Message() string {
	if e.Code() == "" {
		return "Unknown Error"
	}
	return e.Errno.Error()
}

// Error implements the error interface.
func (e *SysError) Error() string {
	msg := e.Message()
	if code := e.Code(); code != "" {
		msg = fmt.Sprintf("%s: %s", code, msg)
	}
	if e.Syscall != "" {
		msg = fmt.Sprintf("%s (syscall: %s)", msg, e.Syscall)
	}
	return msg
}

// Unwrap exposes the raw errno and any sentinel cause, so both
// errors.Is(err, unix.EPERM) and errors.Is(err, ErrInterfaceNotFound) work.
func (e *SysError) Unwrap() []error {
	var errs []error
	if e.Errno != 0 {
		errs = append(errs, e.Errno)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// IsPermissionError returns true if the error indicates insufficient
// privileges for raw ICMP sockets.
func IsPermissionError(err error) bool {
	return errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES)
}

// errnoOf extracts the raw error code from a syscall error.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	errors.As(err, &errno)
	return errno
}
