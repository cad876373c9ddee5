// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a counting semaphore backed by the platform's native
synchronization primitive: a kernel semaphore object on Windows, and an unnamed
process-private POSIX semaphore elsewhere.  Builds without cgo, and darwin
builds (which lack unnamed POSIX semaphores), fall back to a pure Go
implementation.

The counter starts at zero.  Signal increments it and Wait blocks until it is
positive, then decrements it.  Interrupted waits are retried internally and are
never visible to callers.
*/
package semaphore
