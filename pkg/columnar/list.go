package columnar

import (
	"errors"
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrowhead-db/arrowhead/pkg/columnar/internal/unsafecast"
	"github.com/arrowhead-db/arrowhead/pkg/memory"
)

// ErrElementTypeUndetermined is returned by [CollectLists] when every element
// of the input is missing: with no present element there is nothing to fix
// the list element type from. Callers that want an all-missing column of a
// known type must construct it explicitly instead.
var ErrElementTypeUndetermined = errors.New("columnar: cannot determine list element type: all values are null")

// List collection is a two-phase state machine. Until the first present
// element arrives the element type is unknown and missing rows are only
// counted; the first present element fixes the type, the counted rows are
// materialized as missing, and every later element is appended in order.
type listCollectPhase int

const (
	// listScanning counts leading nulls while the element type is unknown.
	listScanning listCollectPhase = iota
	// listAppending appends rows in order once the element type is fixed.
	listAppending
)

// CollectLists builds a list column whose rows are themselves columns. A nil
// element marks a missing row. If the sequence ends with no present element,
// CollectLists returns [ErrElementTypeUndetermined]; rows of a type other
// than the first present element's type are an error.
func CollectLists(seq iter.Seq[*ChunkedArray], opts ...Option) (*ChunkedArray, error) {
	s := newSettings(opts)

	var (
		phase        = listScanning
		leadingNulls int
		b            *listBuilder
	)
	for elem := range seq {
		switch phase {
		case listScanning:
			if elem == nil {
				leadingNulls++
				continue
			}
			b = newListBuilder(s.alloc, elem.DataType(), leadingNulls+1)
			for range leadingNulls {
				b.AppendNull()
			}
			if err := b.Append(elem); err != nil {
				return nil, err
			}
			phase = listAppending

		case listAppending:
			if elem == nil {
				b.AppendNull()
				continue
			}
			if err := b.Append(elem); err != nil {
				return nil, err
			}
		}
	}
	if phase == listScanning {
		return nil, ErrElementTypeUndetermined
	}

	arr, err := b.NewArray()
	if err != nil {
		return nil, err
	}
	return s.finish(arr, pathBuilder), nil
}

// listBuilder incrementally assembles a list array from whole sub-columns.
// Sub-column value chunks are linked in order and concatenated once when the
// array is finished; individual elements are not copied per append. Row
// capacity is advisory and affects reallocation cost only.
type listBuilder struct {
	alloc    arrowmem.Allocator
	elem     arrow.DataType
	segments []arrow.Array
	offsets  []int32
	validity memory.Bitmap
	nulls    int
}

func newListBuilder(alloc arrowmem.Allocator, elem arrow.DataType, capacity int) *listBuilder {
	b := &listBuilder{
		alloc:    alloc,
		elem:     elem,
		segments: make([]arrow.Array, 0, capacity),
		offsets:  make([]int32, 1, capacity+1),
		validity: memory.NewBitmap(alloc, capacity),
	}
	return b
}

// Append adds one present row holding all values of sub.
func (b *listBuilder) Append(sub *ChunkedArray) error {
	if !arrow.TypeEqual(sub.DataType(), b.elem) {
		return fmt.Errorf("columnar: list element type mismatch: got %s, want %s", sub.DataType(), b.elem)
	}
	for _, chunk := range sub.Chunks() {
		if chunk.Len() == 0 {
			continue
		}
		b.segments = append(b.segments, chunk)
	}
	b.offsets = append(b.offsets, b.offsets[len(b.offsets)-1]+int32(sub.Len()))
	b.validity.Append(true)
	return nil
}

// AppendNull adds one missing row.
func (b *listBuilder) AppendNull() {
	b.offsets = append(b.offsets, b.offsets[len(b.offsets)-1])
	b.validity.Append(false)
	b.nulls++
}

// NewArray finishes the builder into a physical list array.
func (b *listBuilder) NewArray() (arrow.Array, error) {
	values, err := b.concatValues()
	if err != nil {
		return nil, err
	}

	var validityBuf *arrowmem.Buffer
	if b.nulls > 0 {
		validityBuf = arrowmem.NewBufferBytes(b.validity.Bytes())
	}
	data := array.NewData(
		arrow.ListOf(b.elem),
		len(b.offsets)-1,
		[]*arrowmem.Buffer{validityBuf, arrowmem.NewBufferBytes(unsafecast.Bytes(b.offsets))},
		[]arrow.ArrayData{values.Data()},
		b.nulls,
		0,
	)
	defer data.Release()
	return array.NewListData(data), nil
}

func (b *listBuilder) concatValues() (arrow.Array, error) {
	switch len(b.segments) {
	case 0:
		// Every present row was empty.
		return array.MakeArrayOfNull(b.alloc, b.elem, 0), nil
	case 1:
		return b.segments[0], nil
	default:
		return array.Concatenate(b.segments, b.alloc)
	}
}
