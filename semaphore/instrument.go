// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics/discard"
)

// Adder represents a metric to which deltas can be added.  Go-kit's
// metrics.Counter, metrics.Gauge, and several prometheus interfaces implement
// this interface.
type Adder interface {
	Add(float64)
}

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithPermits establishes a metric that tracks the outstanding permit count:
// each successful Signal adds one, each completed Wait subtracts one.  If a
// nil adder is supplied, permit counts are discarded.
func WithPermits(a Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.permits = a
		} else {
			i.permits = discard.NewCounter()
		}
	}
}

// WithFailures establishes a metric that tracks how many Signal and Wait
// calls fail.  If a nil adder is supplied, failure counts are discarded.
func WithFailures(a Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.failures = a
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.  This
// function panics if s is nil.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("a semaphore is required")
	}

	is := &instrumentedSemaphore{
		Interface: s,
		permits:   discard.NewCounter(),
		failures:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	permits  Adder
	failures Adder
}

func (is *instrumentedSemaphore) Signal() (err error) {
	err = is.Interface.Signal()
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.permits.Add(1.0)
	}

	return
}

func (is *instrumentedSemaphore) Wait() (err error) {
	err = is.Interface.Wait()
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.permits.Add(-1.0)
	}

	return
}
