package memview

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
)

// All selects the full source size (Region.CopyTo) or the full source
// length (View copy operations) when passed as the count argument.
const All = -1

// Region owns a single unmanaged allocation of fixed size. It is the sole
// entity permitted to free that allocation: views derived from it are
// aliases and never release the memory. Not goroutine-safe; callers sharing
// a Region across goroutines must synchronize externally.
type Region struct {
	mem      []byte // the OS-level mapping; nil once released
	disposed bool
}

// AllocRegion allocates size bytes of unmanaged memory and returns the
// owning Region. The contents are undefined. Fails with ErrInvalidArgument
// if size is zero or negative.
//
// A finalizer is registered as a leak backstop so the allocation is
// eventually returned to the OS even if Release is never called. The
// backstop is a last line of defense, not the primary mechanism: callers
// should `defer r.Release()`.
func AllocRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "region size %d", size)
	}
	mem, err := sysAlloc(size)
	if err != nil {
		return nil, errors.Wrapf(err, "memview: allocating %d bytes", size)
	}
	r := &Region{mem: mem}
	stats.regionsAllocated.Inc()
	stats.bytesLive.Add(int64(size))
	runtime.SetFinalizer(r, func(r *Region) {
		// Backstop reclaim. Failures have nowhere to go from here, so a
		// munmap error becomes a (documented) leak rather than a crash.
		_ = r.Release()
	})
	return r, nil
}

// AllocRegionElems allocates a region sized for count elements of elemSize
// bytes each. Fails with ErrInvalidArgument if either factor is
// non-positive or the product overflows.
func AllocRegionElems(count, elemSize int) (*Region, error) {
	if count <= 0 || elemSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "element region %d x %d", count, elemSize)
	}
	if count > math.MaxInt/elemSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "element region %d x %d overflows", count, elemSize)
	}
	return AllocRegion(count * elemSize)
}

// Size returns the region's size in bytes. Zero once released.
func (r *Region) Size() int {
	return len(r.mem)
}

// Addr returns the base address as an opaque handle for diagnostic and
// interop display. It must never be dereferenced by callers. Zero once
// released.
func (r *Region) Addr() uintptr {
	if r.disposed {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(r.mem)))
}

// Disposed reports whether the region has been released.
func (r *Region) Disposed() bool {
	return r.disposed
}

// Fill overwrites every byte of the region with b.
func (r *Region) Fill(b byte) error {
	if r.disposed {
		return errors.Wrap(ErrDisposed, "fill")
	}
	// The b == 0 case compiles to a memclr.
	for i := range r.mem {
		r.mem[i] = b
	}
	return nil
}

// CopyTo copies n bytes from the start of this region to the start of dst.
// Pass All to copy this region's full size. Fails with ErrInvalidArgument
// if n exceeds either region's size, before touching dst. The copy has
// memmove semantics, so overlapping regions produce correct results.
func (r *Region) CopyTo(dst *Region, n int) error {
	if dst == nil {
		return errors.Wrap(ErrInvalidArgument, "nil destination region")
	}
	if r.disposed || dst.Disposed() {
		return errors.Wrap(ErrDisposed, "copy")
	}
	if n == All {
		n = len(r.mem)
	}
	if n < 0 || n > len(r.mem) || n > len(dst.mem) {
		return errors.Wrapf(ErrInvalidArgument, "copy %d bytes (src %d, dst %d)", n, len(r.mem), len(dst.mem))
	}
	copy(dst.mem[:n], r.mem[:n])
	return nil
}

// Release returns the allocation to the OS. Idempotent: the second and
// later calls are no-ops, not errors. After the first call the region's
// address is invalid and its size is zero, and every other operation fails
// with ErrDisposed.
func (r *Region) Release() error {
	if r.disposed {
		return nil
	}
	size := len(r.mem)
	err := sysRelease(r.mem)
	r.mem = nil
	r.disposed = true
	runtime.SetFinalizer(r, nil)
	stats.regionsReleased.Inc()
	if err != nil {
		// The mapping may still be live; its bytes stay in BytesLive as a
		// leak rather than being reported as reclaimed.
		return errors.Wrap(err, "memview: release")
	}
	stats.bytesLive.Sub(int64(size))
	return nil
}

// sysRelease is swapped out in tests to exercise the failed-free path.
var sysRelease = sysFree

// String formats the region for diagnostics.
func (r *Region) String() string {
	if r.disposed {
		return "Region(disposed)"
	}
	return fmt.Sprintf("Region(0x%x, %d bytes)", r.Addr(), r.Size())
}
