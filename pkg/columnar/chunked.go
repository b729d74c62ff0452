package columnar

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
)

// A ChunkedArray is one named, typed logical column composed of an ordered
// sequence of physical Arrow chunks. The total logical length is the sum of
// the chunk lengths; a cached cumulative length index resolves logical
// positions to chunks without walking the chunk slice.
//
// Columns produced by the collectors in this package always hold exactly one
// chunk.
type ChunkedArray struct {
	name   string
	dtype  arrow.DataType
	chunks []arrow.Array

	// index[i] holds the cumulative length of chunks[0..i]. It is rebuilt
	// wholesale whenever the chunk sequence is replaced, never patched
	// incrementally.
	index []int
	nulls int

	// dict optionally carries the value mapping of a dictionary-encoded
	// categorical column. It is metadata only; this package never produces
	// dictionaries.
	dict arrow.Array
}

// NewChunkedArray builds a column from one or more physical chunks. All
// chunks must share the same data type; NewChunkedArray panics otherwise.
func NewChunkedArray(name string, chunks []arrow.Array) *ChunkedArray {
	if len(chunks) == 0 {
		panic("columnar: chunked array requires at least one chunk")
	}
	ca := &ChunkedArray{name: name, dtype: chunks[0].DataType()}
	ca.setChunks(chunks)
	return ca
}

// setChunks replaces the chunk sequence and recomputes the length index and
// null count.
func (ca *ChunkedArray) setChunks(chunks []arrow.Array) {
	index := make([]int, len(chunks))
	total, nulls := 0, 0
	for i, c := range chunks {
		if !arrow.TypeEqual(c.DataType(), ca.dtype) {
			panic(fmt.Sprintf("columnar: chunk %d has type %s, want %s", i, c.DataType(), ca.dtype))
		}
		total += c.Len()
		nulls += c.NullN()
		index[i] = total
	}
	ca.chunks = chunks
	ca.index = index
	ca.nulls = nulls
}

// Name returns the column name. Collected columns are unnamed unless a name
// was supplied with [WithName].
func (ca *ChunkedArray) Name() string { return ca.name }

// SetName renames the column.
func (ca *ChunkedArray) SetName(name string) { ca.name = name }

// DataType returns the physical element type of the column.
func (ca *ChunkedArray) DataType() arrow.DataType { return ca.dtype }

// Len returns the total logical length of the column.
func (ca *ChunkedArray) Len() int {
	return ca.index[len(ca.index)-1]
}

// NullCount returns the total number of missing values across all chunks.
func (ca *ChunkedArray) NullCount() int { return ca.nulls }

// NumChunks returns the number of physical chunks.
func (ca *ChunkedArray) NumChunks() int { return len(ca.chunks) }

// Chunk returns the i-th physical chunk.
func (ca *ChunkedArray) Chunk(i int) arrow.Array { return ca.chunks[i] }

// Chunks returns the physical chunks in order. The returned slice must not
// be modified.
func (ca *ChunkedArray) Chunks() []arrow.Array { return ca.chunks }

// Locate resolves a logical index to its chunk and the offset within that
// chunk using the cached length index.
func (ca *ChunkedArray) Locate(i int) (chunk, offset int) {
	if i < 0 || i >= ca.Len() {
		panic(fmt.Sprintf("columnar: index %d out of range for column of length %d", i, ca.Len()))
	}
	chunk = sort.SearchInts(ca.index, i+1)
	offset = i
	if chunk > 0 {
		offset -= ca.index[chunk-1]
	}
	return chunk, offset
}

// IsNull reports whether the element at logical index i is missing.
func (ca *ChunkedArray) IsNull(i int) bool {
	chunk, offset := ca.Locate(i)
	return ca.chunks[chunk].IsNull(offset)
}

// Dictionary returns the categorical value mapping carried by the column, or
// nil if the column is not dictionary-encoded.
func (ca *ChunkedArray) Dictionary() arrow.Array { return ca.dict }

// SetDictionary attaches a categorical value mapping to the column.
func (ca *ChunkedArray) SetDictionary(dict arrow.Array) { ca.dict = dict }
