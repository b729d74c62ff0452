package columnar

import (
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	Collect(slices.Values([]Nullable[int64]{
		Some[int64](1),
		Null[int64](),
		Some[int64](3),
	}), WithMetrics(m))

	CollectLen(slices.Values([]Nullable[int64]{
		Some[int64](4),
		Some[int64](5),
	}), 2, WithMetrics(m))

	require.Equal(t, 5.0, testutil.ToFloat64(m.rowsTotal))
	require.Equal(t, 1.0, testutil.ToFloat64(m.columnsTotal.WithLabelValues(pathBuilder)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.columnsTotal.WithLabelValues(pathTrusted)))
}

func TestMetrics_Nil(t *testing.T) {
	// A nil Metrics disables instrumentation without special-casing at call
	// sites.
	var m *Metrics
	require.NotPanics(t, func() {
		Collect(slices.Values([]Nullable[int64]{Some[int64](1)}), WithMetrics(m))
	})
}
