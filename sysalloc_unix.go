//go:build unix

package memview

import "golang.org/x/sys/unix"

// sysAlloc obtains size bytes from the OS as one anonymous private mapping,
// outside the Go heap. The kernel hands the pages back zeroed, but callers
// must not rely on that: the Region contract leaves fresh contents undefined.
func sysAlloc(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
}

// sysFree returns a mapping previously obtained from sysAlloc.
func sysFree(mem []byte) error {
	return unix.Munmap(mem)
}
