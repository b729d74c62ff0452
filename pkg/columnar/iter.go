package columnar

import (
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Values iterates the logical elements of a primitive column in order,
// across all chunks. It panics if the column's physical type does not match
// T.
func Values[T Numeric](ca *ChunkedArray) iter.Seq[Nullable[T]] {
	if want := primitiveType[T](); !arrow.TypeEqual(ca.DataType(), want) {
		panic(fmt.Sprintf("columnar: cannot read %s column as %s", ca.DataType(), want))
	}
	return func(yield func(Nullable[T]) bool) {
		for _, chunk := range ca.chunks {
			for i, v := range primitiveValues[T](chunk) {
				var el Nullable[T]
				if !chunk.IsNull(i) {
					el = Some(v)
				}
				if !yield(el) {
					return
				}
			}
		}
	}
}

// BoolValues iterates the logical elements of a boolean column in order.
func BoolValues(ca *ChunkedArray) iter.Seq[Nullable[bool]] {
	return func(yield func(Nullable[bool]) bool) {
		for _, chunk := range ca.chunks {
			b := chunk.(*array.Boolean)
			for i := 0; i < b.Len(); i++ {
				var el Nullable[bool]
				if !b.IsNull(i) {
					el = Some(b.Value(i))
				}
				if !yield(el) {
					return
				}
			}
		}
	}
}

// StringValues iterates the logical elements of a string column in order.
func StringValues(ca *ChunkedArray) iter.Seq[Nullable[string]] {
	return func(yield func(Nullable[string]) bool) {
		for _, chunk := range ca.chunks {
			str := chunk.(*array.String)
			for i := 0; i < str.Len(); i++ {
				var el Nullable[string]
				if !str.IsNull(i) {
					el = Some(str.Value(i))
				}
				if !yield(el) {
					return
				}
			}
		}
	}
}

// ListElems iterates the rows of a list column in order. Missing rows yield
// nil; present rows yield a single-chunk column viewing the row's values.
func ListElems(ca *ChunkedArray) iter.Seq[*ChunkedArray] {
	return func(yield func(*ChunkedArray) bool) {
		for _, chunk := range ca.chunks {
			l := chunk.(*array.List)
			offsets := l.Offsets()
			values := l.ListValues()
			for i := 0; i < l.Len(); i++ {
				var row *ChunkedArray
				if !l.IsNull(i) {
					sub := array.NewSlice(values, int64(offsets[i]), int64(offsets[i+1]))
					row = NewChunkedArray("", []arrow.Array{sub})
				}
				if !yield(row) {
					return
				}
			}
		}
	}
}

// primitiveValues returns the raw values buffer of a primitive chunk.
func primitiveValues[T Numeric](arr arrow.Array) []T {
	switch a := arr.(type) {
	case *array.Int8:
		return any(a.Int8Values()).([]T)
	case *array.Int16:
		return any(a.Int16Values()).([]T)
	case *array.Int32:
		return any(a.Int32Values()).([]T)
	case *array.Int64:
		return any(a.Int64Values()).([]T)
	case *array.Uint8:
		return any(a.Uint8Values()).([]T)
	case *array.Uint16:
		return any(a.Uint16Values()).([]T)
	case *array.Uint32:
		return any(a.Uint32Values()).([]T)
	case *array.Uint64:
		return any(a.Uint64Values()).([]T)
	case *array.Float32:
		return any(a.Float32Values()).([]T)
	case *array.Float64:
		return any(a.Float64Values()).([]T)
	default:
		panic(fmt.Sprintf("columnar: not a primitive array: %s", arr.DataType()))
	}
}
