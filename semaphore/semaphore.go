// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/xmidt-org/psem/logging"
)

var (
	// ErrNilHandle is returned by Signal and Wait when invoked on a nil or
	// already-destroyed semaphore.
	ErrNilHandle = errors.New("no semaphore handle")

	// ErrAllocation is returned by New when the backing memory for the
	// platform object could not be obtained.
	ErrAllocation = errors.New("semaphore allocation failed")
)

// PlatformError indicates that the underlying OS primitive rejected an
// operation for a non-transient reason.  Code carries the platform's native
// error code for diagnostics.
type PlatformError struct {
	Op   string
	Code int
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("semaphore %s failed: platform error %d", e.Op, e.Code)
}

// Interface represents the operations available on a live counting semaphore.
// *Semaphore implements this interface, as do instrumented decorators.
type Interface interface {
	Signal() error
	Wait() error
}

// Semaphore is a counting semaphore backed by a native platform object.  It
// exclusively owns that object's handle for its entire lifetime.
//
// A Semaphore obtained from New must be released exactly once, with Close or
// Destroy.  The zero value is not usable.
//
// Signal and Wait may be called freely from multiple goroutines.  Callers
// must quiesce all users before destroying a semaphore; destruction racing an
// in-flight Signal or Wait is not supported.
type Semaphore struct {
	logger log.Logger
	p      platformSemaphore
}

// Option is a configuration option for a Semaphore under construction.
type Option func(*Semaphore)

// WithLogger sets the diagnostic sink.  Diagnostics are purely observational
// and never affect results.  Passing nil restores the default NOP logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Semaphore) {
		if logger != nil {
			s.logger = logger
		} else {
			s.logger = logging.DefaultLogger()
		}
	}
}

// New allocates and initializes a platform semaphore with an initial count of
// zero and an effectively unbounded maximum.  On failure any partially
// constructed platform state is released, the failure is logged, and a nil
// handle is returned along with the error.
func New(options ...Option) (*Semaphore, error) {
	s := &Semaphore{
		logger: logging.DefaultLogger(),
	}

	for _, o := range options {
		o(s)
	}

	p, err := newPlatformSemaphore()
	if err != nil {
		logging.Error(s.logger).Log(logging.MessageKey(), "failed to create semaphore", "op", "create", logging.ErrorKey(), err)
		return nil, err
	}

	s.p = p
	return s, nil
}

// Signal atomically increments the counter, waking at most one blocked
// waiter.  Which waiter wakes is left entirely to the platform primitive.
// Signal never blocks.
func (s *Semaphore) Signal() error {
	p, err := s.live("signal")
	if err != nil {
		return err
	}

	if err := p.signal(); err != nil {
		logging.Error(s.logger).Log(logging.MessageKey(), "failed to increment semaphore", "op", "signal", logging.ErrorKey(), err)
		return err
	}

	return nil
}

// Wait blocks the calling goroutine until the counter is positive, then
// atomically decrements it.  There is no timeout and no cancellation; the
// only way to unblock a waiter is a matching Signal.
//
// Transient interruptions of the underlying blocking call are retried until
// the decrement actually happens.  They are not observable by the caller.
func (s *Semaphore) Wait() error {
	p, err := s.live("wait")
	if err != nil {
		return err
	}

	for {
		switch err := p.wait(); {
		case err == nil:
			return nil

		case errors.Is(err, errInterrupted):
			// not a real failure; reissue the blocking call

		default:
			logging.Error(s.logger).Log(logging.MessageKey(), "failed to decrement semaphore", "op", "wait", logging.ErrorKey(), err)
			return err
		}
	}
}

// Close releases the platform object and clears the internal handle so that
// accidental reuse is detectable.  Close is idempotent: releasing an already
// destroyed semaphore only logs a warning.  From the caller's point of view
// Close always succeeds.
func (s *Semaphore) Close() error {
	if s == nil || s.p == nil {
		logging.Warn(s.loggerOrDefault()).Log(logging.MessageKey(), "cannot destroy an uninitialized semaphore")
		return nil
	}

	p := s.p
	s.p = nil
	if err := p.destroy(); err != nil {
		logging.Error(s.logger).Log(logging.MessageKey(), "failed to release semaphore", "op", "destroy", logging.ErrorKey(), err)
	}

	return nil
}

// Destroy releases the semaphore referenced by slot and clears the caller's
// slot to nil.  A nil slot, or a slot that already holds nil, results only in
// a warning through the default logger.
func Destroy(slot **Semaphore) {
	if slot == nil || *slot == nil {
		logging.Warn(logging.DefaultLogger()).Log(logging.MessageKey(), "cannot destroy an uninitialized semaphore")
		return
	}

	(*slot).Close()
	*slot = nil
}

func (s *Semaphore) live(op string) (platformSemaphore, error) {
	if s == nil || s.p == nil {
		logging.Error(s.loggerOrDefault()).Log(logging.MessageKey(), "operation on a nil semaphore handle", "op", op, logging.ErrorKey(), ErrNilHandle)
		return nil, ErrNilHandle
	}

	return s.p, nil
}

func (s *Semaphore) loggerOrDefault() log.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}

	return logging.DefaultLogger()
}
