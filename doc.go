// Package memview provides safety-checked, strongly-typed views over raw
// unmanaged memory. It lets callers allocate, address, and mutate blocks of
// memory outside the Go heap and treat them as bounds-checked, fixed-length
// sequences of a statically-known element type.
//
// # Overview
//
// The package is built around two cooperating types:
//
//   - Region: the untyped owner of a single OS-level allocation. It is
//     responsible for allocation, byte fill, raw byte copy, and
//     deterministic release.
//   - View[T]: a typed, bounds-checked window over a contiguous run of
//     elements. A view either pins a caller-supplied slice or aliases a
//     Region (or another view, via Offset) without owning it.
//
// # Basic Usage
//
//	r, err := memview.AllocRegionElems(5, 4) // 20 bytes
//	if err != nil {
//		return err
//	}
//	defer r.Release() // Always clean up
//
//	v, err := memview.ViewRegion[int32](r, 5)
//	if err != nil {
//		return err
//	}
//	defer v.Dispose()
//
//	_ = v.Set(0, 42)
//	x, _ := v.At(0)  // 42
//	tail, _ := v.Offset(2) // aliasing view of length 3
//
// # Lifetime Rules
//
//   - Region exclusively owns its allocation; Release frees it exactly once
//     and is idempotent. A finalizer backstop frees forgotten regions, but
//     it is a leak guard, not the primary mechanism.
//   - Views derived from a Region (or from Offset) are aliases: Dispose
//     scrubs their contents and makes them inert but never frees the
//     underlying memory. Dispose views before releasing their region.
//   - Views built with ViewOf pin the caller's slice; the pin is held until
//     Dispose.
//
// # Error Handling
//
// Every operation validates its preconditions up front and fails before any
// mutation. Failures fall into three families, matched with errors.Is:
// ErrInvalidArgument, ErrOutOfRange, and ErrDisposed.
//
// # Thread Safety
//
// Region and View are not goroutine-safe. Callers sharing them across
// goroutines must supply their own mutual exclusion. The package-level
// allocation statistics (ReadStats, Collector) are safe to read from any
// goroutine.
//
// # Element Types
//
// View's type parameter must be a fixed-size type containing no Go
// pointers. Pointers stored in unmanaged memory are invisible to the
// garbage collector, so the objects they reference can be collected while
// still referenced.
//
// # Metrics and Monitoring
//
// Package-wide allocation statistics are available as a snapshot:
//
//	s := memview.ReadStats()
//	fmt.Printf("live: %d bytes in %d regions\n", s.BytesLive, s.RegionsLive)
//
// Hosts running Prometheus can register memview.Collector{} with their
// registry instead.
package memview
