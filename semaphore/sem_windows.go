// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package semaphore

import (
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

// the largest maximum count a kernel semaphore object supports
const maximumCount = 0x7FFFFFFF

var (
	kernel32DLL             *windows.LazyDLL
	procCreateSemaphore     *windows.LazyProc
	procReleaseSemaphore    *windows.LazyProc
	procWaitForSingleObject *windows.LazyProc
	procCloseHandle         *windows.LazyProc
	initOnce                sync.Once
)

func initProcs() {
	kernel32DLL = windows.NewLazySystemDLL("kernel32.dll")
	procCreateSemaphore = kernel32DLL.NewProc("CreateSemaphoreW")
	procReleaseSemaphore = kernel32DLL.NewProc("ReleaseSemaphore")
	procWaitForSingleObject = kernel32DLL.NewProc("WaitForSingleObject")
	procCloseHandle = kernel32DLL.NewProc("CloseHandle")
}

// kernelSemaphore is an unnamed kernel semaphore object.
type kernelSemaphore struct {
	handle windows.Handle
}

// newPlatformSemaphore creates an unnamed kernel semaphore with an initial
// count of zero.
func newPlatformSemaphore() (platformSemaphore, error) {
	initOnce.Do(initProcs)

	handle, _, err := procCreateSemaphore.Call(0, 0, maximumCount, 0)
	if handle == 0 {
		return nil, &PlatformError{Op: "create", Code: nativeCode(err)}
	}

	return &kernelSemaphore{handle: windows.Handle(handle)}, nil
}

func (k *kernelSemaphore) signal() error {
	ret, _, err := procReleaseSemaphore.Call(uintptr(k.handle), 1, 0)
	if ret == 0 {
		return &PlatformError{Op: "signal", Code: nativeCode(err)}
	}

	return nil
}

func (k *kernelSemaphore) wait() error {
	ret, _, err := procWaitForSingleObject.Call(uintptr(k.handle), windows.INFINITE)
	if ret != windows.WAIT_OBJECT_0 {
		return &PlatformError{Op: "wait", Code: nativeCode(err)}
	}

	return nil
}

func (k *kernelSemaphore) destroy() error {
	ret, _, err := procCloseHandle.Call(uintptr(k.handle))
	k.handle = windows.InvalidHandle
	if ret == 0 {
		return &PlatformError{Op: "destroy", Code: nativeCode(err)}
	}

	return nil
}

// nativeCode extracts the GetLastError value reported by a lazy proc call.
func nativeCode(err error) int {
	if errno, ok := err.(syscall.Errno); ok {
		return int(errno)
	}

	return -1
}
