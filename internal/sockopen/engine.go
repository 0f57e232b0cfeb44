package sockopen

import (
	"log/slog"
	"sync"

	"github.com/KilimcininKorOglu/diavlos/internal/logging"
)

// Opener schedules socket open requests on a bounded worker pool and
// delivers every outcome through its completion goroutine.
//
// Delivery guarantees: each handler fires exactly once, strictly after its
// request finished executing, and never on a worker goroutine. Handlers for
// different requests never run concurrently with each other, but requests
// submitted concurrently may complete in any order. There is no
// cancellation: once queued, a request always runs to completion.
type Opener struct {
	log  *slog.Logger
	jobs chan *request
	done chan *request

	workers  sync.WaitGroup
	delivery sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewOpener creates an Opener and starts its worker pool.
// Zero Workers or Queue fall back to the defaults.
func NewOpener(config Config) (*Opener, error) {
	defaults := DefaultConfig()
	if config.Workers == 0 {
		config.Workers = defaults.Workers
	}
	if config.Queue == 0 {
		config.Queue = defaults.Queue
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	log := config.Logger
	if log == nil {
		log = logging.Nop()
	}

	o := &Opener{
		log:  log,
		jobs: make(chan *request, config.Queue),
		done: make(chan *request, config.Queue),
	}

	for i := 0; i < config.Workers; i++ {
		o.workers.Add(1)
		go o.work()
	}

	// The done channel closes once the last worker drains, which in turn
	// lets the completion goroutine exit after the last delivery.
	go func() {
		o.workers.Wait()
		close(o.done)
	}()

	o.delivery.Add(1)
	go o.complete()

	return o, nil
}

// Open validates the arguments and queues an asynchronous open request.
//
// Validation failures are returned immediately and the handler never fires.
// Every successfully queued request fires the handler exactly once, with
// either a non-negative descriptor or a structured error, never both.
// If the pool and queue are full, Open blocks until a slot frees up.
func (o *Opener) Open(family Family, sourceAddress, sourceInterface string, handler Handler) error {
	req, err := newRequest(family, sourceAddress, sourceInterface, handler)
	if err != nil {
		return err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return ErrClosed
	}

	o.log.Debug("open request queued",
		"family", family.String(),
		"source", sourceAddress,
		"interface", sourceInterface)

	o.jobs <- req
	return nil
}

// Close stops accepting requests, waits for every queued request to execute
// and deliver its outcome, then releases the pool. Close is idempotent.
func (o *Opener) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	close(o.jobs)
	o.mu.Unlock()

	o.delivery.Wait()
	return nil
}

// work executes queued requests until the job channel drains.
func (o *Opener) work() {
	defer o.workers.Done()
	for req := range o.jobs {
		execute(req)
		o.done <- req
	}
}

// complete delivers outcomes in arrival order and finalizes each request.
// This goroutine is the only place handlers run.
func (o *Opener) complete() {
	defer o.delivery.Done()
	for req := range o.done {
		o.finalize(req)
	}
}

// finalize invokes the handler once and releases the request's reference to
// it. The request record is not reused after this point.
func (o *Opener) finalize(req *request) {
	handler := req.handler
	req.handler = nil

	if req.err != nil {
		o.log.Debug("open request failed", "error", req.err)
		handler(req.err, -1)
		return
	}

	o.log.Debug("open request succeeded", "fd", req.fd)
	handler(nil, req.fd)
}
