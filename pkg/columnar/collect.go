package columnar

import (
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// Collect builds a single-chunk primitive column from a sequence of optional
// values using the safe incremental builder. An empty sequence yields a
// zero-length column.
func Collect[T Numeric](seq iter.Seq[Nullable[T]], opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	b := newPrimitiveBuilder[T](s.alloc, 0)
	for v := range seq {
		if v.Valid {
			b.Append(v.Value)
		} else {
			b.AppendNull()
		}
	}
	return s.finish(b.NewArray(), pathBuilder)
}

// CollectLen builds a primitive column from a sequence whose exact element
// count the caller guarantees. Storage for length elements is allocated up
// front and filled in a single pass; if the sequence produces a different
// number of elements, CollectLen panics. This is the caller's contract to
// uphold — use [Collect] when the count cannot be proven.
func CollectLen[T Numeric](seq iter.Seq[Nullable[T]], length int, opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	if s.noTrustedLen {
		b := newPrimitiveBuilder[T](s.alloc, length)
		for v := range seq {
			if v.Valid {
				b.Append(v.Value)
			} else {
				b.AppendNull()
			}
		}
		assertLength(length, b.Len())
		return s.finish(b.NewArray(), pathBuilder)
	}
	return s.finish(primitiveTrustedLen(seq, length), pathTrusted)
}

// CollectNoNulls builds a primitive column from values that are never
// missing. No validity bitmap is allocated; the result carries the no-nulls
// marker.
func CollectNoNulls[T Numeric](seq iter.Seq[T], opts ...Option) NoNulls {
	s := newSettings(opts)
	var values []T
	for v := range seq {
		values = append(values, v)
	}
	return AssertNoNulls(s.finish(newPrimitiveArray(values, nil, 0), pathBuilder))
}

// CollectNoNullsLen is the length-trusted variant of [CollectNoNulls]. It
// panics if the sequence produces a number of elements other than length.
func CollectNoNullsLen[T Numeric](seq iter.Seq[T], length int, opts ...Option) NoNulls {
	s := newSettings(opts)
	if s.noTrustedLen {
		values := make([]T, 0, length)
		for v := range seq {
			values = append(values, v)
		}
		assertLength(length, len(values))
		return AssertNoNulls(s.finish(newPrimitiveArray(values, nil, 0), pathBuilder))
	}
	values := make([]T, length)
	n := 0
	for v := range seq {
		values[n] = v
		n++
	}
	assertLength(length, n)
	return AssertNoNulls(s.finish(newPrimitiveArray(values, nil, 0), pathTrusted))
}

// CollectBool builds a boolean column from a sequence of optional values.
// Booleans always go through the incremental builder: their storage is
// bitmap-backed either way, so a length-trusted variant buys nothing.
func CollectBool(seq iter.Seq[Nullable[bool]], opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	b := array.NewBooleanBuilder(s.alloc)
	defer b.Release()
	for v := range seq {
		if v.Valid {
			b.Append(v.Value)
		} else {
			b.AppendNull()
		}
	}
	return s.finish(b.NewArray(), pathBuilder)
}

// CollectBoolValues builds a boolean column from values that are never
// missing.
func CollectBoolValues(seq iter.Seq[bool], opts ...Option) NoNulls {
	s := newSettings(opts)
	b := array.NewBooleanBuilder(s.alloc)
	defer b.Release()
	for v := range seq {
		b.Append(v)
	}
	return AssertNoNulls(s.finish(b.NewArray(), pathBuilder))
}

// CollectStrings builds a string column from a sequence of optional
// string-like values. The Arrow string builder computes byte offsets and
// validity in one pass, so no intermediate buffer is needed.
func CollectStrings[S StringLike](seq iter.Seq[Nullable[S]], opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	b := array.NewStringBuilder(s.alloc)
	defer b.Release()
	for v := range seq {
		if v.Valid {
			b.Append(string(v.Value))
		} else {
			b.AppendNull()
		}
	}
	return s.finish(b.NewArray(), pathBuilder)
}

// CollectStringValues builds a string column from values that are never
// missing.
func CollectStringValues[S StringLike](seq iter.Seq[S], opts ...Option) NoNulls {
	s := newSettings(opts)
	b := array.NewStringBuilder(s.alloc)
	defer b.Release()
	for v := range seq {
		b.Append(string(v))
	}
	return AssertNoNulls(s.finish(b.NewArray(), pathBuilder))
}

// primitiveTrustedLen fills exactly length slots from seq and asserts the
// realized element count afterwards. A sequence that produces too many
// elements panics on the out-of-range slot write; one that produces too few
// fails the final assertion.
func primitiveTrustedLen[T Numeric](seq iter.Seq[Nullable[T]], length int) arrow.Array {
	values := make([]T, length)
	validity := make([]byte, bitutil.BytesForBits(int64(length)))
	n, nulls := 0, 0
	for v := range seq {
		values[n] = v.Value
		if v.Valid {
			bitutil.SetBit(validity, n)
		} else {
			nulls++
		}
		n++
	}
	assertLength(length, n)
	if nulls == 0 {
		validity = nil
	}
	return newPrimitiveArray(values, validity, nulls)
}

func assertLength(want, got int) {
	if want != got {
		panic(fmt.Sprintf("columnar: trusted length violated: expected %d elements, got %d", want, got))
	}
}
