// Package pool provides sync.Pool-backed slice reuse for the decoder's
// metric vectors. The BCJR recursions allocate several T-by-state work
// areas per call; pooling them keeps steady-state decoding
// allocation-free.
package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice returns a zeroed float64 slice of the requested length
// and a cleanup function that must be called (typically with defer) to
// return the slice to the pool.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
		for i := range slice {
			slice[i] = 0
		}
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
