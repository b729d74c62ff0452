// Package columnar implements construction of chunked, Arrow-backed columnar
// arrays from sequential or data-parallel producers.
//
// The package is the ingestion boundary between arbitrary producer code and
// the engine's canonical column representation: a [ChunkedArray] composed of
// one or more physical Arrow chunks with a validity (null) model. Physical
// array layouts and their builders come from arrow-go; this package decides
// how sequences of optional values become those layouts, including a
// length-trusted fast path for producers whose exact element count is known
// and an order-preserving parallel collection pipeline.
package columnar

// A Nullable is an optional element of a column: a value plus a validity
// flag, mirroring [database/sql.Null]. The zero value is a missing element.
type Nullable[T any] struct {
	Value T
	Valid bool
}

// Some returns a valid Nullable holding v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Value: v, Valid: true} }

// Null returns a Nullable marking a missing value.
func Null[T any]() Nullable[T] { return Nullable[T]{} }

// Numeric is the set of fixed-width primitive element types supported by the
// primitive collectors. Temporal engine types are stored as their int64
// representation.
type Numeric interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// StringLike is any type whose values can be viewed as a string.
type StringLike interface {
	~string | ~[]byte
}
