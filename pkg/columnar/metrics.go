package columnar

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Construction paths reported by [Metrics].
const (
	pathTrusted = "trusted"
	pathBuilder = "builder"
)

// Metrics instruments column construction. A nil *Metrics disables
// instrumentation.
type Metrics struct {
	columnsTotal *prometheus.CounterVec
	rowsTotal    prometheus.Counter
	buildSeconds prometheus.Histogram
}

// NewMetrics creates collection metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		columnsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "arrowhead_columnar_columns_built_total",
			Help: "Total number of columns built, by construction path.",
		}, []string{"path"}),
		rowsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "arrowhead_columnar_rows_collected_total",
			Help: "Total number of logical rows collected into columns.",
		}),
		buildSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "arrowhead_columnar_build_seconds",
			Help: "Time taken to collect a column.",

			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}),
	}
}

func (m *Metrics) observe(path string, rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.columnsTotal.WithLabelValues(path).Inc()
	m.rowsTotal.Add(float64(rows))
	m.buildSeconds.Observe(elapsed.Seconds())
}
