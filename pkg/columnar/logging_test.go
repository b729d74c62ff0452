package columnar_test

import (
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/arrowhead-db/arrowhead/pkg/columnar"
)

func TestCollectParallel_Logs(t *testing.T) {
	// The debug line is emitted from the collecting goroutine after the fold
	// completes, so an unsynchronized writer is fine here.
	var buf strings.Builder
	logger := log.NewLogfmtLogger(&buf)

	columnar.CollectParallel(10, func(i int) columnar.Nullable[int64] {
		return columnar.Some(int64(i))
	}, columnar.WithLogger(logger), columnar.WithParallelism(2))

	require.Contains(t, buf.String(), "parallel primitive collect")
	require.Contains(t, buf.String(), "rows=10")
	require.Contains(t, buf.String(), "level=debug")
}
