package columnar

import (
	"context"
	"iter"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/grafana/dskit/concurrency"
)

// A segmentList is an ordered, singly linked sequence of per-partition
// buffers. Merging two lists relinks their ends; element data is never
// copied until the final flatten.
type segmentList[V any] struct {
	head, tail *segment[V]
}

type segment[V any] struct {
	vals []V
	next *segment[V]
}

// push appends one buffer as a new tail segment.
func (l *segmentList[V]) push(vals []V) {
	seg := &segment[V]{vals: vals}
	if l.tail == nil {
		l.head, l.tail = seg, seg
		return
	}
	l.tail.next = seg
	l.tail = seg
}

// total sums segment lengths in a single pass over the segments.
func (l *segmentList[V]) total() int {
	n := 0
	for seg := l.head; seg != nil; seg = seg.next {
		n += len(seg.vals)
	}
	return n
}

// all iterates every element in order across segments.
func (l *segmentList[V]) all() iter.Seq[V] {
	return func(yield func(V) bool) {
		for seg := l.head; seg != nil; seg = seg.next {
			for _, v := range seg.vals {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// mergeLists appends b after a by relinking. Both inputs are consumed.
func mergeLists[V any](a, b *segmentList[V]) *segmentList[V] {
	switch {
	case a == nil || a.head == nil:
		return b
	case b == nil || b.head == nil:
		return a
	default:
		a.tail.next = b.head
		a.tail = b.tail
		return a
	}
}

// reduceLists combines per-partition lists into one ordered list via a
// balanced pairwise merge tree. The merge work is proportional to the number
// of partitions, not the number of elements.
func reduceLists[V any](lists []*segmentList[V]) *segmentList[V] {
	switch len(lists) {
	case 0:
		return &segmentList[V]{}
	case 1:
		return lists[0]
	}
	mid := len(lists) / 2
	return mergeLists(reduceLists(lists[:mid]), reduceLists(lists[mid:]))
}

// foldPartitions evaluates at(0)..at(n-1) across a bounded worker pool. The
// index range is split into contiguous partitions; each partition is folded
// sequentially into a buffer owned exclusively by its worker, and the
// partition results are reduced into one ordered list. The fold phase needs
// no locking: no buffer is visible to more than one worker.
func foldPartitions[V any](n int, at func(int) V, s *settings) (*segmentList[V], int) {
	if n <= 0 {
		return &segmentList[V]{}, 0
	}
	parts := min(max(s.parallelism, 1), n)
	results := make([]*segmentList[V], parts)

	// Jobs never fail and the context is never canceled, so ForEachJob cannot
	// return an error. Callers needing cancellation wrap the whole collect.
	_ = concurrency.ForEachJob(context.Background(), parts, parts, func(_ context.Context, i int) error {
		start, end := i*n/parts, (i+1)*n/parts
		buf := make([]V, 0, end-start)
		for j := start; j < end; j++ {
			buf = append(buf, at(j))
		}
		list := &segmentList[V]{}
		list.push(buf)
		results[i] = list
		return nil
	})

	return reduceLists(results), parts
}

// CollectParallel builds a primitive column by evaluating at(0)..at(n-1)
// across a worker pool. Elements appear in index order regardless of how the
// range was partitioned. The merged result has a known total length, so the
// final array is built through the length-trusted path.
func CollectParallel[T Numeric](n int, at func(int) Nullable[T], opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	list, parts := foldPartitions(n, at, &s)
	total := list.total()
	arr := primitiveTrustedLen(list.all(), total)
	s.logCollect("parallel primitive collect", total, parts)
	return s.finish(arr, pathTrusted)
}

// CollectParallelNoNulls is the parallel variant of [CollectNoNulls].
func CollectParallelNoNulls[T Numeric](n int, at func(int) T, opts ...Option) NoNulls {
	s := newSettings(opts)
	list, parts := foldPartitions(n, at, &s)
	total := list.total()

	values := make([]T, total)
	i := 0
	for v := range list.all() {
		values[i] = v
		i++
	}
	assertLength(total, i)

	s.logCollect("parallel primitive collect", total, parts)
	return AssertNoNulls(s.finish(newPrimitiveArray(values, nil, 0), pathTrusted))
}

// CollectBoolParallel is the parallel variant of [CollectBool]. The flattened
// result is replayed through the incremental boolean builder, matching the
// sequential per-type policy.
func CollectBoolParallel(n int, at func(int) Nullable[bool], opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	list, parts := foldPartitions(n, at, &s)

	b := array.NewBooleanBuilder(s.alloc)
	defer b.Release()
	b.Reserve(list.total())
	for v := range list.all() {
		if v.Valid {
			b.Append(v.Value)
		} else {
			b.AppendNull()
		}
	}

	s.logCollect("parallel boolean collect", list.total(), parts)
	return s.finish(b.NewArray(), pathBuilder)
}

// CollectBoolValuesParallel is the parallel variant of [CollectBoolValues].
func CollectBoolValuesParallel(n int, at func(int) bool, opts ...Option) NoNulls {
	s := newSettings(opts)
	list, parts := foldPartitions(n, at, &s)

	b := array.NewBooleanBuilder(s.alloc)
	defer b.Release()
	b.Reserve(list.total())
	for v := range list.all() {
		b.Append(v)
	}

	s.logCollect("parallel boolean collect", list.total(), parts)
	return AssertNoNulls(s.finish(b.NewArray(), pathBuilder))
}

// CollectStringsParallel is the parallel variant of [CollectStrings].
func CollectStringsParallel[S StringLike](n int, at func(int) Nullable[S], opts ...Option) *ChunkedArray {
	s := newSettings(opts)
	list, parts := foldPartitions(n, at, &s)

	b := array.NewStringBuilder(s.alloc)
	defer b.Release()
	b.Reserve(list.total())
	for v := range list.all() {
		if v.Valid {
			b.Append(string(v.Value))
		} else {
			b.AppendNull()
		}
	}

	s.logCollect("parallel string collect", list.total(), parts)
	return s.finish(b.NewArray(), pathBuilder)
}

// CollectStringValuesParallel is the parallel variant of
// [CollectStringValues].
func CollectStringValuesParallel[S StringLike](n int, at func(int) S, opts ...Option) NoNulls {
	s := newSettings(opts)
	list, parts := foldPartitions(n, at, &s)

	b := array.NewStringBuilder(s.alloc)
	defer b.Release()
	b.Reserve(list.total())
	for v := range list.all() {
		b.Append(string(v))
	}

	s.logCollect("parallel string collect", list.total(), parts)
	return AssertNoNulls(s.finish(b.NewArray(), pathBuilder))
}
