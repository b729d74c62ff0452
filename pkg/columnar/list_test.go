package columnar_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowhead-db/arrowhead/pkg/columnar"
)

func int64Column(vals ...int64) *columnar.ChunkedArray {
	return columnar.CollectNoNulls(slices.Values(vals)).Array()
}

func TestCollectLists(t *testing.T) {
	in := []*columnar.ChunkedArray{
		nil,
		nil,
		int64Column(1, 2),
		nil,
		int64Column(3),
	}

	ca, err := columnar.CollectLists(slices.Values(in))
	require.NoError(t, err)

	require.Equal(t, 5, ca.Len())
	require.Equal(t, 3, ca.NullCount())

	rows := slices.Collect(columnar.ListElems(ca))
	require.Len(t, rows, 5)

	require.Nil(t, rows[0])
	require.Nil(t, rows[1])
	require.Nil(t, rows[3])

	require.Equal(t,
		[]columnar.Nullable[int64]{columnar.Some[int64](1), columnar.Some[int64](2)},
		slices.Collect(columnar.Values[int64](rows[2])),
	)
	require.Equal(t,
		[]columnar.Nullable[int64]{columnar.Some[int64](3)},
		slices.Collect(columnar.Values[int64](rows[4])),
	)
}

func TestCollectLists_AllNull(t *testing.T) {
	_, err := columnar.CollectLists(slices.Values([]*columnar.ChunkedArray{nil, nil}))
	require.ErrorIs(t, err, columnar.ErrElementTypeUndetermined)
}

func TestCollectLists_Empty(t *testing.T) {
	_, err := columnar.CollectLists(slices.Values([]*columnar.ChunkedArray{}))
	require.ErrorIs(t, err, columnar.ErrElementTypeUndetermined)
}

func TestCollectLists_TypeMismatch(t *testing.T) {
	strings := columnar.CollectStringValues(slices.Values([]string{"a"})).Array()

	_, err := columnar.CollectLists(slices.Values([]*columnar.ChunkedArray{
		int64Column(1),
		strings,
	}))
	require.Error(t, err)
	require.NotErrorIs(t, err, columnar.ErrElementTypeUndetermined)
}

func TestCollectLists_NoLeadingNulls(t *testing.T) {
	s1 := columnar.CollectBoolValues(slices.Values([]bool{true, false, true})).Array()
	s2 := columnar.CollectBoolValues(slices.Values([]bool{true, false, true})).Array()

	ca, err := columnar.CollectLists(slices.Values([]*columnar.ChunkedArray{s1, s2}))
	require.NoError(t, err)
	require.Equal(t, 2, ca.Len())
	require.Equal(t, 0, ca.NullCount())

	ca, err = columnar.CollectLists(slices.Values([]*columnar.ChunkedArray{nil, s2}))
	require.NoError(t, err)
	require.Equal(t, 2, ca.Len())
	require.Equal(t, 1, ca.NullCount())
}

func TestCollectLists_EmptyRows(t *testing.T) {
	in := []*columnar.ChunkedArray{
		int64Column(), // present but empty
		nil,
		int64Column(9),
	}

	ca, err := columnar.CollectLists(slices.Values(in))
	require.NoError(t, err)
	require.Equal(t, 3, ca.Len())
	require.Equal(t, 1, ca.NullCount())

	rows := slices.Collect(columnar.ListElems(ca))
	require.Equal(t, 0, rows[0].Len())
	require.Nil(t, rows[1])
	require.Equal(t,
		[]columnar.Nullable[int64]{columnar.Some[int64](9)},
		slices.Collect(columnar.Values[int64](rows[2])),
	)
}

// Sub-columns inside list rows keep their own validity: nulls within a
// present row survive collection.
func TestCollectLists_InnerNulls(t *testing.T) {
	inner := columnar.Collect(slices.Values([]columnar.Nullable[int64]{
		columnar.Some[int64](1),
		columnar.Null[int64](),
	}))

	ca, err := columnar.CollectLists(slices.Values([]*columnar.ChunkedArray{inner}))
	require.NoError(t, err)
	require.Equal(t, 1, ca.Len())
	require.Equal(t, 0, ca.NullCount(), "row-level validity is separate from value-level validity")

	rows := slices.Collect(columnar.ListElems(ca))
	require.Equal(t,
		[]columnar.Nullable[int64]{columnar.Some[int64](1), columnar.Null[int64]()},
		slices.Collect(columnar.Values[int64](rows[0])),
	)
}
