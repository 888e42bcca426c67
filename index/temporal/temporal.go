// Package temporal provides an ordered multimap index over timestamped
// items for range, before/after and chronological-iteration queries.
package temporal

import (
	"iter"
	"sort"

	"github.com/hupe1980/geonarrative/event"
)

// Index is a temporal index over (timestamp, payload) pairs.
//
// Items are keyed by unix-millisecond instant. Multiple items may share
// an instant; all are retained and returned in insertion order within
// the shared key. Lookups are binary searches over a sorted key table;
// incremental Insert keeps the table sorted (a memmove in the worst
// case, so FromSlice is the preferred path for static datasets).
type Index[T any] struct {
	items   []T
	keys    []int64    // sorted, unique
	buckets [][]uint32 // parallel to keys; ids in insertion order
}

// New creates an empty temporal index.
func New[T any]() *Index[T] {
	return &Index[T]{}
}

// FromSlice bulk-builds an index over items, using tsFn to extract each
// item's timestamp. One sort instead of n sorted inserts.
func FromSlice[T any](items []T, tsFn func(T) event.Timestamp) *Index[T] {
	idx := &Index[T]{items: make([]T, len(items))}
	copy(idx.items, items)

	type keyed struct {
		key int64
		id  uint32
	}
	order := make([]keyed, len(items))
	for i, item := range items {
		order[i] = keyed{key: tsFn(item).UnixMilli(), id: uint32(i)}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].key != order[j].key {
			return order[i].key < order[j].key
		}
		return order[i].id < order[j].id
	})

	for _, kv := range order {
		n := len(idx.keys)
		if n > 0 && idx.keys[n-1] == kv.key {
			idx.buckets[n-1] = append(idx.buckets[n-1], kv.id)
			continue
		}
		idx.keys = append(idx.keys, kv.key)
		idx.buckets = append(idx.buckets, []uint32{kv.id})
	}
	return idx
}

// Insert adds one item at the given timestamp.
func (idx *Index[T]) Insert(item T, ts event.Timestamp) {
	id := uint32(len(idx.items))
	idx.items = append(idx.items, item)

	key := ts.UnixMilli()
	pos := sort.Search(len(idx.keys), func(i int) bool { return idx.keys[i] >= key })
	if pos < len(idx.keys) && idx.keys[pos] == key {
		idx.buckets[pos] = append(idx.buckets[pos], id)
		return
	}
	idx.keys = append(idx.keys, 0)
	copy(idx.keys[pos+1:], idx.keys[pos:])
	idx.keys[pos] = key
	idx.buckets = append(idx.buckets, nil)
	copy(idx.buckets[pos+1:], idx.buckets[pos:])
	idx.buckets[pos] = []uint32{id}
}

// Len returns the number of indexed items.
func (idx *Index[T]) Len() int { return len(idx.items) }

// IsEmpty reports whether the index holds no items.
func (idx *Index[T]) IsEmpty() bool { return len(idx.items) == 0 }

// Items returns the payload arena in insertion order. The returned slice
// is shared with the index and must not be mutated.
func (idx *Index[T]) Items() []T { return idx.items }

// QueryRange returns the items whose timestamp falls within the range,
// endpoints included, in chronological order.
func (idx *Index[T]) QueryRange(r event.TimeRange) ([]T, error) {
	ids, err := idx.QueryRangeIDs(r)
	if err != nil {
		return nil, err
	}
	return idx.collect(ids), nil
}

// QueryRangeIDs returns the insertion-order ids of items within the
// range, in chronological order.
func (idx *Index[T]) QueryRangeIDs(r event.TimeRange) ([]uint32, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	startKey, endKey := r.Start.UnixMilli(), r.End.UnixMilli()
	from := sort.Search(len(idx.keys), func(i int) bool { return idx.keys[i] >= startKey })

	var ids []uint32
	for i := from; i < len(idx.keys) && idx.keys[i] <= endKey; i++ {
		ids = append(ids, idx.buckets[i]...)
	}
	return ids, nil
}

// Before returns the items strictly before the timestamp, chronological.
func (idx *Index[T]) Before(ts event.Timestamp) []T {
	key := ts.UnixMilli()
	limit := sort.Search(len(idx.keys), func(i int) bool { return idx.keys[i] >= key })

	var ids []uint32
	for i := 0; i < limit; i++ {
		ids = append(ids, idx.buckets[i]...)
	}
	return idx.collect(ids)
}

// After returns the items strictly after the timestamp, chronological.
func (idx *Index[T]) After(ts event.Timestamp) []T {
	key := ts.UnixMilli()
	from := sort.Search(len(idx.keys), func(i int) bool { return idx.keys[i] > key })

	var ids []uint32
	for i := from; i < len(idx.keys); i++ {
		ids = append(ids, idx.buckets[i]...)
	}
	return idx.collect(ids)
}

// At returns the items at exactly the given instant, insertion order.
func (idx *Index[T]) At(ts event.Timestamp) []T {
	key := ts.UnixMilli()
	pos := sort.Search(len(idx.keys), func(i int) bool { return idx.keys[i] >= key })
	if pos >= len(idx.keys) || idx.keys[pos] != key {
		return nil
	}
	return idx.collect(idx.buckets[pos])
}

// First returns the earliest item. ok is false on an empty index.
func (idx *Index[T]) First() (T, bool) {
	if len(idx.keys) == 0 {
		var zero T
		return zero, false
	}
	return idx.items[idx.buckets[0][0]], true
}

// Last returns the latest item. ok is false on an empty index.
func (idx *Index[T]) Last() (T, bool) {
	if len(idx.keys) == 0 {
		var zero T
		return zero, false
	}
	bucket := idx.buckets[len(idx.buckets)-1]
	return idx.items[bucket[len(bucket)-1]], true
}

// Chronological returns a restartable sequence over all items in
// ascending timestamp order. Iteration never mutates the index and may
// be abandoned or restarted freely.
func (idx *Index[T]) Chronological() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range idx.keys {
			for _, id := range idx.buckets[i] {
				if !yield(idx.items[id]) {
					return
				}
			}
		}
	}
}

// ReverseChronological returns a restartable sequence over all items in
// descending timestamp order.
func (idx *Index[T]) ReverseChronological() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(idx.keys) - 1; i >= 0; i-- {
			bucket := idx.buckets[i]
			for j := len(bucket) - 1; j >= 0; j-- {
				if !yield(idx.items[bucket[j]]) {
					return
				}
			}
		}
	}
}

// TimeRange returns the span from the earliest to the latest indexed
// instant. ok is false on an empty index.
func (idx *Index[T]) TimeRange() (event.TimeRange, bool) {
	if len(idx.keys) == 0 {
		return event.TimeRange{}, false
	}
	return event.TimeRange{
		Start: event.FromUnixMilli(idx.keys[0]),
		End:   event.FromUnixMilli(idx.keys[len(idx.keys)-1]),
	}, true
}

func (idx *Index[T]) collect(ids []uint32) []T {
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = idx.items[id]
	}
	return out
}
