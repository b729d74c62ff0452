package columnar

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrowhead-db/arrowhead/pkg/columnar/internal/unsafecast"
	"github.com/arrowhead-db/arrowhead/pkg/memory"
)

// primitiveType returns the Arrow data type corresponding to T.
func primitiveType[T Numeric]() arrow.DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return arrow.PrimitiveTypes.Int8
	case int16:
		return arrow.PrimitiveTypes.Int16
	case int32:
		return arrow.PrimitiveTypes.Int32
	case int64:
		return arrow.PrimitiveTypes.Int64
	case uint8:
		return arrow.PrimitiveTypes.Uint8
	case uint16:
		return arrow.PrimitiveTypes.Uint16
	case uint32:
		return arrow.PrimitiveTypes.Uint32
	case uint64:
		return arrow.PrimitiveTypes.Uint64
	case float32:
		return arrow.PrimitiveTypes.Float32
	case float64:
		return arrow.PrimitiveTypes.Float64
	default:
		panic("unreachable")
	}
}

// newPrimitiveArray assembles a physical primitive array directly from
// already-filled buffers. A nil validity buffer marks every element valid.
func newPrimitiveArray[T Numeric](values []T, validity []byte, nulls int) arrow.Array {
	var validityBuf *arrowmem.Buffer
	if validity != nil {
		validityBuf = arrowmem.NewBufferBytes(validity)
	}
	data := array.NewData(
		primitiveType[T](),
		len(values),
		[]*arrowmem.Buffer{validityBuf, arrowmem.NewBufferBytes(unsafecast.Bytes(values))},
		nil,
		nulls,
		0,
	)
	defer data.Release()
	return array.MakeFromData(data)
}

// primitiveBuilder is the append-based incremental builder for fixed-width
// primitive arrays: a growable values buffer plus a validity bitmap.
type primitiveBuilder[T Numeric] struct {
	values   []T
	validity memory.Bitmap
	nulls    int
}

func newPrimitiveBuilder[T Numeric](alloc arrowmem.Allocator, capacity int) *primitiveBuilder[T] {
	return &primitiveBuilder[T]{
		values:   make([]T, 0, capacity),
		validity: memory.NewBitmap(alloc, capacity),
	}
}

// Append adds one present value.
func (b *primitiveBuilder[T]) Append(v T) {
	b.values = append(b.values, v)
	b.validity.Append(true)
}

// AppendNull adds one missing value. Its value slot is zero.
func (b *primitiveBuilder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.validity.Append(false)
	b.nulls++
}

// Len returns the number of appended elements.
func (b *primitiveBuilder[T]) Len() int { return len(b.values) }

// NewArray finishes the builder into a physical array.
func (b *primitiveBuilder[T]) NewArray() arrow.Array {
	var validity []byte
	if b.nulls > 0 {
		validity = b.validity.Bytes()
	}
	return newPrimitiveArray(b.values, validity, b.nulls)
}
