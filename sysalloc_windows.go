//go:build windows

package memview

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// sysAlloc obtains size bytes from the OS via VirtualAlloc, outside the Go
// heap. Committed pages come back zeroed, but the Region contract leaves
// fresh contents undefined.
func sysAlloc(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE,
	)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// sysFree returns an allocation previously obtained from sysAlloc.
func sysFree(mem []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(&mem[0])), 0, windows.MEM_RELEASE)
}
