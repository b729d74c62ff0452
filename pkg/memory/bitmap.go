// Package memory provides low-level building blocks for columnar data:
// growable validity bitmaps with Arrow-compatible layout.
package memory

import (
	"iter"

	"github.com/apache/arrow-go/v18/arrow/bitutil"
	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"
)

// A Bitmap is a growable sequence of bits stored in Arrow validity bitmap
// layout (LSB ordering). The zero value is an empty bitmap ready for use,
// backed by [arrowmem.DefaultAllocator].
type Bitmap struct {
	alloc arrowmem.Allocator
	buf   []byte
	bits  int
}

// NewBitmap returns a Bitmap with room for at least capacity bits. A nil
// alloc uses [arrowmem.DefaultAllocator].
func NewBitmap(alloc arrowmem.Allocator, capacity int) Bitmap {
	b := Bitmap{alloc: alloc}
	b.Grow(capacity)
	return b
}

func (b *Bitmap) allocator() arrowmem.Allocator {
	if b.alloc != nil {
		return b.alloc
	}
	return arrowmem.DefaultAllocator
}

// Len returns the number of bits in the bitmap.
func (b *Bitmap) Len() int { return b.bits }

// Cap returns the number of bits the bitmap can hold before growing.
func (b *Bitmap) Cap() int { return len(b.buf) * 8 }

// Grow ensures there is room for at least n more bits, reallocating the
// underlying buffer if needed.
func (b *Bitmap) Grow(n int) {
	need := int(bitutil.BytesForBits(int64(b.bits + n)))
	if len(b.buf) >= need {
		return
	}
	size := max(need, 2*len(b.buf), 8)
	b.buf = b.allocator().Reallocate(size, b.buf)
}

// Resize sets the length of the bitmap to n bits, growing the buffer if
// needed. Bits beyond the previous length are zero.
func (b *Bitmap) Resize(n int) {
	if n > b.bits {
		b.Grow(n - b.bits)
	}
	b.bits = n
}

// Append adds a single bit to the end of the bitmap.
func (b *Bitmap) Append(v bool) {
	b.Grow(1)
	bitutil.SetBitTo(b.buf, b.bits, v)
	b.bits++
}

// AppendCount adds count copies of v to the end of the bitmap.
func (b *Bitmap) AppendCount(v bool, count int) {
	b.Grow(count)
	bitutil.SetBitsTo(b.buf, int64(b.bits), int64(count), v)
	b.bits += count
}

// AppendValues adds the given bits to the end of the bitmap.
func (b *Bitmap) AppendValues(vs ...bool) {
	b.Grow(len(vs))
	for _, v := range vs {
		bitutil.SetBitTo(b.buf, b.bits, v)
		b.bits++
	}
}

// AppendBitmap adds all bits of other to the end of the bitmap.
func (b *Bitmap) AppendBitmap(other Bitmap) {
	b.Grow(other.Len())
	for i := range other.Len() {
		bitutil.SetBitTo(b.buf, b.bits, other.Get(i))
		b.bits++
	}
}

// Get returns the bit at index i. It panics if i is out of range.
func (b *Bitmap) Get(i int) bool {
	if i < 0 || i >= b.bits {
		panic("memory: bitmap index out of range")
	}
	return bitutil.BitIsSet(b.buf, i)
}

// Set writes the bit at index i. It panics if i is out of range.
func (b *Bitmap) Set(i int, v bool) {
	if i < 0 || i >= b.bits {
		panic("memory: bitmap index out of range")
	}
	bitutil.SetBitTo(b.buf, i, v)
}

// SetRange writes all bits in [start, end) to v.
func (b *Bitmap) SetRange(start, end int, v bool) {
	if start < 0 || end > b.bits || start > end {
		panic("memory: bitmap range out of bounds")
	}
	bitutil.SetBitsTo(b.buf, int64(start), int64(end-start), v)
}

// SetCount returns the number of bits in the bitmap equal to v.
func (b *Bitmap) SetCount(v bool) int {
	set := bitutil.CountSetBits(b.buf, 0, b.bits)
	if v {
		return set
	}
	return b.bits - set
}

// Bytes returns the raw bitmap buffer, truncated to the bytes covering Len
// bits. The returned slice aliases the bitmap's storage.
func (b *Bitmap) Bytes() []byte {
	return b.buf[:bitutil.BytesForBits(int64(b.bits))]
}

// IterValues iterates over the indices of all bits equal to v, in order.
func (b *Bitmap) IterValues(v bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < b.bits; i++ {
			if bitutil.BitIsSet(b.buf, i) == v && !yield(i) {
				return
			}
		}
	}
}
