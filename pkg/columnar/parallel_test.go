package columnar_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowhead-db/arrowhead/pkg/columnar"
)

// Parallel collection must produce the same column as sequential collection
// for any source length and worker count: parallelism may never reorder
// elements.
func TestCollectParallel_MatchesSequential(t *testing.T) {
	at := func(i int) columnar.Nullable[int64] {
		if i%5 == 0 {
			return columnar.Null[int64]()
		}
		return columnar.Some(int64(i * 3))
	}

	for _, n := range []int{0, 1, 7, 100, 1000} {
		for _, workers := range []int{1, 3, 8} {
			t.Run(fmt.Sprintf("n=%d workers=%d", n, workers), func(t *testing.T) {
				seq := make([]columnar.Nullable[int64], n)
				for i := range seq {
					seq[i] = at(i)
				}
				want := columnar.Collect(slices.Values(seq))

				got := columnar.CollectParallel(n, at, columnar.WithParallelism(workers))

				require.Equal(t, want.Len(), got.Len())
				require.Equal(t, want.NullCount(), got.NullCount())
				require.Equal(t,
					slices.Collect(columnar.Values[int64](want)),
					slices.Collect(columnar.Values[int64](got)),
				)
			})
		}
	}
}

func TestCollectParallelNoNulls(t *testing.T) {
	const n = 257
	col := columnar.CollectParallelNoNulls(n, func(i int) float64 {
		return float64(i) * 0.5
	}, columnar.WithParallelism(4))

	require.Equal(t, n, col.Len())
	require.Equal(t, 0, col.Array().NullCount())

	vals := slices.Collect(columnar.Values[float64](col.Array()))
	for i, v := range vals {
		require.True(t, v.Valid)
		require.Equal(t, float64(i)*0.5, v.Value, "unexpected value at index %d", i)
	}
}

func TestCollectBoolParallel(t *testing.T) {
	const n = 64
	at := func(i int) columnar.Nullable[bool] {
		if i%9 == 0 {
			return columnar.Null[bool]()
		}
		return columnar.Some(i%2 == 0)
	}

	seq := make([]columnar.Nullable[bool], n)
	for i := range seq {
		seq[i] = at(i)
	}
	want := columnar.CollectBool(slices.Values(seq))
	got := columnar.CollectBoolParallel(n, at, columnar.WithParallelism(3))

	require.Equal(t,
		slices.Collect(columnar.BoolValues(want)),
		slices.Collect(columnar.BoolValues(got)),
	)

	noNulls := columnar.CollectBoolValuesParallel(n, func(i int) bool { return i%2 == 0 })
	require.Equal(t, n, noNulls.Len())
	require.Equal(t, 0, noNulls.Array().NullCount())
}

func TestCollectStringsParallel(t *testing.T) {
	const n = 41
	at := func(i int) columnar.Nullable[string] {
		if i%4 == 3 {
			return columnar.Null[string]()
		}
		return columnar.Some(fmt.Sprintf("value-%d", i))
	}

	seq := make([]columnar.Nullable[string], n)
	for i := range seq {
		seq[i] = at(i)
	}
	want := columnar.CollectStrings(slices.Values(seq))
	got := columnar.CollectStringsParallel(n, at, columnar.WithParallelism(5))

	require.Equal(t,
		slices.Collect(columnar.StringValues(want)),
		slices.Collect(columnar.StringValues(got)),
	)

	noNulls := columnar.CollectStringValuesParallel(n, func(i int) string {
		return fmt.Sprintf("v%d", i)
	})
	require.Equal(t, n, noNulls.Len())
	require.Equal(t, 0, noNulls.Array().NullCount())
}
