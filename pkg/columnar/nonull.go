package columnar

// NoNulls marks a column as containing no missing values. The marker carries
// no runtime state and performs no inspection; it exists so downstream code
// can statically skip validity handling.
//
// A NoNulls obtained from the ...NoNulls and ...Values collectors is correct
// by construction. [AssertNoNulls] is the only other way to obtain one, and
// shifts the burden of proof to the caller.
type NoNulls struct {
	arr *ChunkedArray
}

// AssertNoNulls wraps arr without inspecting it. Calling it is the caller's
// attestation that arr holds no missing values; wrapping a column that does
// leads to incorrect results downstream, not to an error here.
func AssertNoNulls(arr *ChunkedArray) NoNulls { return NoNulls{arr: arr} }

// Array returns the wrapped column.
func (n NoNulls) Array() *ChunkedArray { return n.arr }

// Len returns the total logical length of the wrapped column.
func (n NoNulls) Len() int { return n.arr.Len() }

// Name returns the name of the wrapped column.
func (n NoNulls) Name() string { return n.arr.Name() }
