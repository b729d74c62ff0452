package columnar

import (
	"runtime"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// An Option adjusts how a column is collected.
type Option func(*settings)

type settings struct {
	name         string
	alloc        arrowmem.Allocator
	logger       log.Logger
	metrics      *Metrics
	parallelism  int
	noTrustedLen bool

	start time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		alloc:       arrowmem.DefaultAllocator,
		logger:      log.NewNopLogger(),
		parallelism: runtime.GOMAXPROCS(0),
		start:       time.Now(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// finish wraps a freshly built physical array into a single-chunk column and
// records construction metrics.
func (s *settings) finish(arr arrow.Array, path string) *ChunkedArray {
	ca := NewChunkedArray(s.name, []arrow.Array{arr})
	s.metrics.observe(path, ca.Len(), time.Since(s.start))
	return ca
}

func (s *settings) logCollect(msg string, rows, partitions int) {
	level.Debug(s.logger).Log("msg", msg, "rows", rows, "partitions", partitions, "duration", time.Since(s.start))
}

// WithName sets the name of the collected column. Columns are unnamed by
// default.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithAllocator sets the Arrow allocator used for physical buffers. The
// default is [arrowmem.DefaultAllocator].
func WithAllocator(alloc arrowmem.Allocator) Option {
	return func(s *settings) { s.alloc = alloc }
}

// WithLogger sets the logger used by the parallel collectors.
func WithLogger(logger log.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMetrics instruments collection with m.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithParallelism bounds the number of workers used by the parallel
// collectors. The default is GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(s *settings) { s.parallelism = n }
}

// WithoutTrustedLength forces the length-trusted collectors through the safe
// incremental builder. Results are identical element for element; this is a
// performance toggle, not a semantic one.
func WithoutTrustedLength() Option {
	return func(s *settings) { s.noTrustedLen = true }
}
