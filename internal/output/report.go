package output

import (
	"errors"
	"time"

	"github.com/KilimcininKorOglu/diavlos/internal/sockopen"
)

// Report aggregates the outcomes of one or more socket open requests.
type Report struct {
	// Family is the requested address family ("inet" or "inet6")
	Family string

	// Source is the requested source address, empty if none
	Source string

	// Interface is the requested source interface, empty if none
	Interface string

	// Timestamp is when the report was produced
	Timestamp time.Time

	// Results holds one entry per open request, in completion order
	Results []Result
}

// Result is the outcome of a single open request.
type Result struct {
	// OK indicates the request delivered a descriptor
	OK bool

	// FD is the delivered descriptor, -1 on failure
	FD int

	// Duration is the time from submission to completion delivery
	Duration time.Duration

	// Error details, empty on success
	Error   string
	Syscall string
	Code    string
	Errno   int
}

// NewResult builds a Result from a completion handler's (err, fd) pair.
func NewResult(err error, fd int, duration time.Duration) Result {
	if err == nil {
		return Result{OK: true, FD: fd, Duration: duration}
	}

	result := Result{FD: -1, Duration: duration, Error: err.Error()}

	var sysErr *sockopen.SysError
	if errors.As(err, &sysErr) {
		result.Error = sysErr.Message()
		result.Syscall = sysErr.Syscall
		result.Code = sysErr.Code()
		result.Errno = int(sysErr.Errno)
	}

	return result
}

// Succeeded returns the number of successful results.
func (r *Report) Succeeded() int {
	n := 0
	for _, result := range r.Results {
		if result.OK {
			n++
		}
	}
	return n
}

// Failed returns the number of failed results.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}
