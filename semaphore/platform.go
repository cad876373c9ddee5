// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import "errors"

// errInterrupted indicates that a blocking wait returned early without
// decrementing the counter.  Wait retries this condition internally, so
// callers never observe it.
var errInterrupted = errors.New("semaphore wait interrupted")

// platformSemaphore is the native counting primitive behind a Semaphore.
// The counter starts at zero and has no practical upper bound.  One
// implementation exists per build variant; see newPlatformSemaphore.
type platformSemaphore interface {
	// signal atomically increments the counter, waking at most one blocked
	// waiter.  It never blocks.
	signal() error

	// wait blocks until the counter is positive, then atomically decrements
	// it.  It may return errInterrupted without having decremented.
	wait() error

	// destroy releases the platform resources.  No method may be called on
	// the receiver afterward.
	destroy() error
}
