// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build cgo && !windows && !darwin

package semaphore

/*
#include <errno.h>
#include <semaphore.h>
#include <stdlib.h>

static sem_t *psem_create(int *err) {
	sem_t *s = (sem_t *)calloc(1, sizeof(sem_t));
	if (s == NULL) {
		*err = ENOMEM;
		return NULL;
	}
	if (sem_init(s, 0, 0) != 0) {
		*err = errno;
		free(s);
		return NULL;
	}
	return s;
}

static int psem_post(sem_t *s) {
	return sem_post(s) == 0 ? 0 : errno;
}

static int psem_wait(sem_t *s) {
	return sem_wait(s) == 0 ? 0 : errno;
}

static void psem_destroy(sem_t *s) {
	sem_destroy(s);
	free(s);
}
*/
import "C"

// posixSemaphore is an unnamed, process-private POSIX semaphore.  The sem_t
// wrapper is allocated with calloc and owned exclusively by this value.
type posixSemaphore struct {
	sem *C.sem_t
}

// newPlatformSemaphore allocates a zeroed sem_t wrapper and initializes it
// with a count of zero.  A failed sem_init releases the wrapper before the
// failure is reported, so nothing leaks on that path.
func newPlatformSemaphore() (platformSemaphore, error) {
	var code C.int
	sem := C.psem_create(&code)
	if sem == nil {
		if code == C.ENOMEM {
			return nil, ErrAllocation
		}

		return nil, &PlatformError{Op: "create", Code: int(code)}
	}

	return &posixSemaphore{sem: sem}, nil
}

func (p *posixSemaphore) signal() error {
	if code := C.psem_post(p.sem); code != 0 {
		return &PlatformError{Op: "signal", Code: int(code)}
	}

	return nil
}

func (p *posixSemaphore) wait() error {
	switch code := C.psem_wait(p.sem); code {
	case 0:
		return nil

	case C.EINTR:
		return errInterrupted

	default:
		return &PlatformError{Op: "wait", Code: int(code)}
	}
}

func (p *posixSemaphore) destroy() error {
	C.psem_destroy(p.sem)
	p.sem = nil
	return nil
}
