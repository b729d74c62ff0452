// Package unsafecast reinterprets typed slices as raw bytes without copying.
package unsafecast

import "unsafe"

// Bytes reinterprets a slice of any fixed-width type as its underlying bytes.
// No copy is made; the result aliases the input's memory.
func Bytes[T any](in []T) []byte {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(in) == 0 {
		return nil
	}
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(in)))
	return unsafe.Slice(ptr, len(in)*size)
}
