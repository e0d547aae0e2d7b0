package memview

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
)

// View is a typed, bounds-checked window over a contiguous run of elements
// in raw memory. T must be a fixed-size type containing no Go pointers:
// anything stored through a view lives outside the garbage collector's
// sight.
//
// A view either pins a caller-supplied slice (ViewOf) or aliases memory
// owned elsewhere (ViewRegion, Offset). An aliasing view does not track the
// lifetime of the memory it references; keeping the owner alive until the
// view is disposed is the caller's responsibility. Not goroutine-safe.
type View[T any] struct {
	base     unsafe.Pointer
	length   int
	disposed bool
	pin      *runtime.Pinner // non-nil iff this view owns a pin on a caller slice
}

// ViewOf builds a view over buf, pinning its backing array so the address
// stays valid and immovable for the view's lifetime. Dispose releases the
// pin. Fails with ErrInvalidArgument if buf is nil or empty.
func ViewOf[T any](buf []T) (*View[T], error) {
	if len(buf) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "nil or empty buffer")
	}
	pin := new(runtime.Pinner)
	pin.Pin(unsafe.SliceData(buf))
	stats.viewsPinned.Inc()
	return &View[T]{
		base:   unsafe.Pointer(unsafe.SliceData(buf)),
		length: len(buf),
		pin:    pin,
	}, nil
}

// ViewRegion builds a view of count elements of type T over the start of
// r's memory. The region keeps ownership: disposing the view never frees
// it, and the caller must dispose the view before releasing the region.
// Fails with ErrDisposed if r is already released and with
// ErrInvalidArgument if count elements of T do not fit in the region.
func ViewRegion[T any](r *Region, count int) (*View[T], error) {
	if r == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil region")
	}
	if r.Disposed() {
		return nil, errors.Wrap(ErrDisposed, "view of region")
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "zero-sized element type")
	}
	if count < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "element count %d", count)
	}
	if count > r.Size()/elem {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"region too small: %d elements of %d bytes in %d bytes", count, elem, r.Size())
	}
	return newView[T](unsafe.Pointer(unsafe.SliceData(r.mem)), count)
}

// newView is the raw constructor behind ViewRegion and Offset.
func newView[T any](base unsafe.Pointer, length int) (*View[T], error) {
	if base == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil base address")
	}
	if length < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "length %d", length)
	}
	return &View[T]{base: base, length: length}, nil
}

// Len returns the number of elements. Zero once disposed.
func (v *View[T]) Len() int {
	return v.length
}

// ElemSize returns the byte width of one element of T.
func (v *View[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Addr returns the base address as an opaque handle for diagnostic and
// interop display. It must never be dereferenced by callers. Zero once
// disposed.
func (v *View[T]) Addr() uintptr {
	if v.disposed {
		return 0
	}
	return uintptr(v.base)
}

// Disposed reports whether the view has been disposed.
func (v *View[T]) Disposed() bool {
	return v.disposed
}

// elem returns the address of element i. Bounds are the caller's problem.
func (v *View[T]) elem(i int) unsafe.Pointer {
	var zero T
	return unsafe.Add(v.base, uintptr(i)*unsafe.Sizeof(zero))
}

// slice exposes the view's span as a Go slice for bulk operations.
func (v *View[T]) slice() []T {
	return unsafe.Slice((*T)(v.base), v.length)
}

// At returns the element at index i. Direct addressed access, no copying
// beyond the element itself.
func (v *View[T]) At(i int) (T, error) {
	var zero T
	if v.disposed {
		return zero, errors.Wrap(ErrDisposed, "read")
	}
	if i < 0 || i >= v.length {
		return zero, errors.Wrapf(ErrOutOfRange, "index %d with length %d", i, v.length)
	}
	return *(*T)(v.elem(i)), nil
}

// Set stores val at index i.
func (v *View[T]) Set(i int, val T) error {
	if v.disposed {
		return errors.Wrap(ErrDisposed, "write")
	}
	if i < 0 || i >= v.length {
		return errors.Wrapf(ErrOutOfRange, "index %d with length %d", i, v.length)
	}
	*(*T)(v.elem(i)) = val
	return nil
}

// Offset returns a new aliasing view whose base is advanced by k elements
// and whose length is reduced by k. The new view never owns anything.
// k must satisfy 0 <= k < Len: an offset equal to the length is rejected
// with ErrOutOfRange rather than yielding an empty tail.
func (v *View[T]) Offset(k int) (*View[T], error) {
	if v.disposed {
		return nil, errors.Wrap(ErrDisposed, "offset")
	}
	if k < 0 || k >= v.length {
		return nil, errors.Wrapf(ErrOutOfRange, "offset %d with length %d", k, v.length)
	}
	return newView[T](v.elem(k), v.length-k)
}

// CopyTo copies n elements from the start of this view to the start of dst.
// Pass All to copy this view's full length. Fails with ErrInvalidArgument
// if n exceeds either view's length, before touching dst. The copy has
// memmove semantics, so overlapping views over the same memory produce
// correct results.
func (v *View[T]) CopyTo(dst *View[T], n int) error {
	if dst == nil {
		return errors.Wrap(ErrInvalidArgument, "nil destination view")
	}
	if v.disposed || dst.disposed {
		return errors.Wrap(ErrDisposed, "copy")
	}
	if n == All {
		n = v.length
	}
	if n < 0 || n > v.length || n > dst.length {
		return errors.Wrapf(ErrInvalidArgument, "copy %d elements (src %d, dst %d)", n, v.length, dst.length)
	}
	copy(dst.slice()[:n], v.slice()[:n])
	return nil
}

// CopyToSlice copies n elements from the start of the view into dst.
// Pass All to copy the view's full length.
func (v *View[T]) CopyToSlice(dst []T, n int) error {
	if v.disposed {
		return errors.Wrap(ErrDisposed, "copy")
	}
	if n == All {
		n = v.length
	}
	if n < 0 || n > v.length || n > len(dst) {
		return errors.Wrapf(ErrInvalidArgument, "copy %d elements (src %d, dst %d)", n, v.length, len(dst))
	}
	copy(dst[:n], v.slice()[:n])
	return nil
}

// CopyFromSlice copies n elements from src into the start of the view.
// Pass All to fill the view's full length.
func (v *View[T]) CopyFromSlice(src []T, n int) error {
	if v.disposed {
		return errors.Wrap(ErrDisposed, "copy")
	}
	if n == All {
		n = v.length
	}
	if n < 0 || n > v.length || n > len(src) {
		return errors.Wrapf(ErrInvalidArgument, "copy %d elements (src %d, dst %d)", n, len(src), v.length)
	}
	copy(v.slice()[:n], src[:n])
	return nil
}

// Fill writes val into every element slot.
func (v *View[T]) Fill(val T) error {
	if v.disposed {
		return errors.Wrap(ErrDisposed, "fill")
	}
	s := v.slice()
	for i := range s {
		s[i] = val
	}
	return nil
}

// ToSlice materializes a snapshot: a freshly allocated []T of Len elements
// holding a copy of the view's current contents.
func (v *View[T]) ToSlice() ([]T, error) {
	if v.disposed {
		return nil, errors.Wrap(ErrDisposed, "snapshot")
	}
	out := make([]T, v.length)
	copy(out, v.slice())
	return out, nil
}

// Dispose makes the view inert. Idempotent: the first call scrubs every
// element slot back to the zero value, sets the length to zero, and
// releases the pin if this view holds one; later calls are no-ops. Dispose
// never frees region memory the view merely aliases, so views must be
// disposed before their owning Region is released.
func (v *View[T]) Dispose() {
	if v.disposed {
		return
	}
	clear(v.slice())
	v.base = nil
	v.length = 0
	v.disposed = true
	if v.pin != nil {
		v.pin.Unpin()
		v.pin = nil
		stats.viewsUnpinned.Inc()
	}
}

// Equal reports whether v and o alias the same memory: same base address
// and same length. This is identity, not element-wise comparison.
func (v *View[T]) Equal(o *View[T]) bool {
	return o != nil && v.base == o.base && v.length == o.length
}

// String formats the view for diagnostics.
func (v *View[T]) String() string {
	if v.disposed {
		return "View(disposed)"
	}
	return fmt.Sprintf("View(0x%x, %d x %d bytes)", v.Addr(), v.length, v.ElemSize())
}
