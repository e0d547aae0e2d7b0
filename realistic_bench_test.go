package memview

import "testing"

// BenchmarkRealisticUsage tests scenarios a host would actually run: an
// interop-style frame buffer written element by element, and a staging
// region shuttling typed data in and out of caller slices.
func BenchmarkRealisticUsage(b *testing.B) {

	// Scenario 1: a fixed frame buffer mutated in place every iteration
	b.Run("FrameBuffer/View", func(b *testing.B) {
		const frames = 240
		r, err := AllocRegionElems(frames, 8)
		if err != nil {
			b.Fatal(err)
		}
		defer r.Release()

		v, err := ViewRegion[float64](r, frames)
		if err != nil {
			b.Fatal(err)
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < frames; j++ {
				_ = v.Set(j, float64(i+j))
			}
		}
	})

	b.Run("FrameBuffer/Builtin", func(b *testing.B) {
		const frames = 240
		s := make([]float64, frames)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < frames; j++ {
				s[j] = float64(i + j)
			}
		}
	})

	// Scenario 2: staging caller data through unmanaged memory and back
	b.Run("Staging/CopyRoundTrip", func(b *testing.B) {
		const n = 4096
		in := make([]int32, n)
		out := make([]int32, n)
		for i := range in {
			in[i] = int32(i)
		}

		r, err := AllocRegionElems(n, 4)
		if err != nil {
			b.Fatal(err)
		}
		defer r.Release()

		v, err := ViewRegion[int32](r, n)
		if err != nil {
			b.Fatal(err)
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if err := v.CopyFromSlice(in, All); err != nil {
				b.Fatal(err)
			}
			if err := v.CopyToSlice(out, All); err != nil {
				b.Fatal(err)
			}
		}
	})

	// Scenario 3: carving many sub-views out of one region
	b.Run("SubViews/Offset", func(b *testing.B) {
		const n = 1024
		r, err := AllocRegionElems(n, 4)
		if err != nil {
			b.Fatal(err)
		}
		defer r.Release()

		v, err := ViewRegion[int32](r, n)
		if err != nil {
			b.Fatal(err)
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			sub, err := v.Offset(i % (n - 1))
			if err != nil {
				b.Fatal(err)
			}
			_ = sub.Len()
		}
	})
}
