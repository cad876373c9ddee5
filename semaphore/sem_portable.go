// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build !windows && (!cgo || darwin)

package semaphore

import "sync"

// condSemaphore is the pure Go fallback used when cgo is unavailable, and on
// darwin, where unnamed POSIX semaphores are not implemented.
// Permits are tracked under a condition variable, so the counter is bounded
// only by the int type.
type condSemaphore struct {
	permits int
	cond    *sync.Cond
}

func newPlatformSemaphore() (platformSemaphore, error) {
	return &condSemaphore{
		cond: sync.NewCond(new(sync.Mutex)),
	}, nil
}

func (c *condSemaphore) signal() error {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	c.permits++
	c.cond.Signal()
	return nil
}

func (c *condSemaphore) wait() error {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	for c.permits <= 0 {
		c.cond.Wait()
	}

	c.permits--
	return nil
}

func (c *condSemaphore) destroy() error {
	return nil
}
