// Package spatial provides a k-d tree index over WGS84 points for
// bounding-box, radius and k-nearest queries.
package spatial

import (
	"sort"

	"github.com/hupe1980/geonarrative/geo"
	"github.com/hupe1980/geonarrative/internal/queue"
)

const noChild = -1

// treeNode is one k-d tree node. Payloads live in a separate arena slice;
// nodes reference them by position, which doubles as insertion order.
type treeNode struct {
	lat, lon float64
	id       uint32
	axis     uint8 // 0 = latitude, 1 = longitude
	left     int32
	right    int32
}

// Index is a spatial index over (location, payload) pairs.
//
// Bulk construction via FromSlice builds a balanced tree in O(n log n)
// and is the preferred path for static datasets. Incremental Insert is
// O(log n) on balanced trees but does not rebalance; a pathological
// insertion order degrades query time, never correctness.
type Index[T any] struct {
	items []T
	nodes []treeNode
	root  int32
}

// New creates an empty spatial index.
func New[T any]() *Index[T] {
	return &Index[T]{root: noChild}
}

// FromSlice bulk-builds a balanced index over items, using locFn to
// extract each item's location.
func FromSlice[T any](items []T, locFn func(T) geo.Location) *Index[T] {
	idx := &Index[T]{
		items: make([]T, len(items)),
		nodes: make([]treeNode, 0, len(items)),
		root:  noChild,
	}
	copy(idx.items, items)

	order := make([]treeNode, len(items))
	for i, item := range items {
		loc := locFn(item)
		order[i] = treeNode{lat: loc.Lat, lon: loc.Lon, id: uint32(i), left: noChild, right: noChild}
	}
	idx.root = idx.build(order, 0)
	return idx
}

// build recursively splits points at the median of the current axis.
func (idx *Index[T]) build(points []treeNode, depth int) int32 {
	if len(points) == 0 {
		return noChild
	}
	axis := uint8(depth % 2)
	sort.SliceStable(points, func(i, j int) bool {
		if axis == 0 {
			return points[i].lat < points[j].lat
		}
		return points[i].lon < points[j].lon
	})
	mid := len(points) / 2

	n := points[mid]
	n.axis = axis
	pos := int32(len(idx.nodes))
	idx.nodes = append(idx.nodes, n)

	left := idx.build(points[:mid], depth+1)
	right := idx.build(points[mid+1:], depth+1)
	idx.nodes[pos].left = left
	idx.nodes[pos].right = right
	return pos
}

// Insert adds one item at the given location.
func (idx *Index[T]) Insert(item T, loc geo.Location) {
	id := uint32(len(idx.items))
	idx.items = append(idx.items, item)

	pos := int32(len(idx.nodes))
	if idx.root == noChild {
		idx.nodes = append(idx.nodes, treeNode{lat: loc.Lat, lon: loc.Lon, id: id, left: noChild, right: noChild})
		idx.root = pos
		return
	}

	cur := idx.root
	for {
		n := &idx.nodes[cur]
		var goLeft bool
		if n.axis == 0 {
			goLeft = loc.Lat < n.lat
		} else {
			goLeft = loc.Lon < n.lon
		}
		if goLeft {
			if n.left == noChild {
				childAxis := (n.axis + 1) % 2
				idx.nodes = append(idx.nodes, treeNode{lat: loc.Lat, lon: loc.Lon, id: id, axis: childAxis, left: noChild, right: noChild})
				idx.nodes[cur].left = pos
				return
			}
			cur = n.left
		} else {
			if n.right == noChild {
				childAxis := (n.axis + 1) % 2
				idx.nodes = append(idx.nodes, treeNode{lat: loc.Lat, lon: loc.Lon, id: id, axis: childAxis, left: noChild, right: noChild})
				idx.nodes[cur].right = pos
				return
			}
			cur = n.right
		}
	}
}

// Len returns the number of indexed items.
func (idx *Index[T]) Len() int { return len(idx.items) }

// IsEmpty reports whether the index holds no items.
func (idx *Index[T]) IsEmpty() bool { return len(idx.items) == 0 }

// Items returns the payload arena in insertion order. The returned slice
// is shared with the index and must not be mutated.
func (idx *Index[T]) Items() []T { return idx.items }

// QueryBBox returns all items whose location falls within the closed
// rectangle. Result order is unspecified. Inverted boxes are rejected.
func (idx *Index[T]) QueryBBox(minLat, minLon, maxLat, maxLon float64) ([]T, error) {
	ids, err := idx.QueryBBoxIDs(minLat, minLon, maxLat, maxLon)
	if err != nil {
		return nil, err
	}
	return idx.collect(ids), nil
}

// QueryBounds is the geo.Bounds convenience form of QueryBBox.
func (idx *Index[T]) QueryBounds(bounds geo.Bounds) ([]T, error) {
	return idx.QueryBBox(bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon)
}

// QueryBBoxIDs returns the insertion-order ids of items inside the box.
func (idx *Index[T]) QueryBBoxIDs(minLat, minLon, maxLat, maxLon float64) ([]uint32, error) {
	if minLat > maxLat || minLon > maxLon {
		return nil, &geo.ErrInvalidBounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}
	}
	var ids []uint32
	idx.searchBBox(idx.root, minLat, minLon, maxLat, maxLon, &ids)
	return ids, nil
}

func (idx *Index[T]) searchBBox(pos int32, minLat, minLon, maxLat, maxLon float64, out *[]uint32) {
	if pos == noChild {
		return
	}
	n := idx.nodes[pos]
	if n.lat >= minLat && n.lat <= maxLat && n.lon >= minLon && n.lon <= maxLon {
		*out = append(*out, n.id)
	}
	// Bulk builds can place equal coordinates on the left of the median,
	// so the left descent must be inclusive.
	if n.axis == 0 {
		if minLat <= n.lat {
			idx.searchBBox(n.left, minLat, minLon, maxLat, maxLon, out)
		}
		if maxLat >= n.lat {
			idx.searchBBox(n.right, minLat, minLon, maxLat, maxLon, out)
		}
	} else {
		if minLon <= n.lon {
			idx.searchBBox(n.left, minLat, minLon, maxLat, maxLon, out)
		}
		if maxLon >= n.lon {
			idx.searchBBox(n.right, minLat, minLon, maxLat, maxLon, out)
		}
	}
}

// QueryRadius returns all items within radiusDeg of the center, measured
// as Euclidean distance in degree space. This is deliberately not
// geodesic: a degree of longitude shrinks toward the poles. Callers that
// need a true great-circle radius should over-fetch with QueryBBox and
// post-filter with geo.Haversine.
func (idx *Index[T]) QueryRadius(lat, lon, radiusDeg float64) ([]T, error) {
	ids, err := idx.QueryRadiusIDs(lat, lon, radiusDeg)
	if err != nil {
		return nil, err
	}
	return idx.collect(ids), nil
}

// QueryRadiusIDs returns the insertion-order ids of items within the
// degree-space radius.
func (idx *Index[T]) QueryRadiusIDs(lat, lon, radiusDeg float64) ([]uint32, error) {
	if radiusDeg < 0 {
		return nil, &ErrNegativeRadius{Radius: radiusDeg}
	}
	radiusSq := radiusDeg * radiusDeg
	var ids []uint32
	idx.searchRadius(idx.root, lat, lon, radiusDeg, radiusSq, &ids)
	return ids, nil
}

func (idx *Index[T]) searchRadius(pos int32, lat, lon, radius, radiusSq float64, out *[]uint32) {
	if pos == noChild {
		return
	}
	n := idx.nodes[pos]
	if geo.DegreeDistanceSq(lat, lon, n.lat, n.lon) <= radiusSq {
		*out = append(*out, n.id)
	}
	var delta float64
	if n.axis == 0 {
		delta = lat - n.lat
	} else {
		delta = lon - n.lon
	}
	if delta < 0 {
		idx.searchRadius(n.left, lat, lon, radius, radiusSq, out)
		if -delta <= radius {
			idx.searchRadius(n.right, lat, lon, radius, radiusSq, out)
		}
	} else {
		idx.searchRadius(n.right, lat, lon, radius, radiusSq, out)
		if delta <= radius {
			idx.searchRadius(n.left, lat, lon, radius, radiusSq, out)
		}
	}
}

// Nearest returns the k items closest to the query point in degree
// space, ascending by distance; ties break by insertion order so results
// are reproducible. k <= 0 yields an empty result; k beyond the item
// count yields every item.
func (idx *Index[T]) Nearest(lat, lon float64, k int) []T {
	return idx.collect(idx.NearestIDs(lat, lon, k))
}

// NearestOne returns the single closest item. ok is false on an empty index.
func (idx *Index[T]) NearestOne(lat, lon float64) (T, bool) {
	ids := idx.NearestIDs(lat, lon, 1)
	if len(ids) == 0 {
		var zero T
		return zero, false
	}
	return idx.items[ids[0]], true
}

// NearestIDs returns the insertion-order ids of the k nearest items,
// ascending by distance.
func (idx *Index[T]) NearestIDs(lat, lon float64, k int) []uint32 {
	if k <= 0 || len(idx.items) == 0 {
		return nil
	}
	if k > len(idx.items) {
		k = len(idx.items)
	}

	// Bounded max-heap of the best k candidates seen so far. When full,
	// the root is the current worst and sets the pruning bound.
	best := queue.NewMax(k)
	idx.searchNearest(idx.root, lat, lon, k, best)

	// Drain ascending by (distance, insertion order).
	type hit struct {
		id   uint32
		dist float64
	}
	hits := make([]hit, 0, best.Len())
	for {
		item, ok := best.Pop()
		if !ok {
			break
		}
		hits = append(hits, hit{id: item.Node, dist: item.Priority})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].id < hits[j].id
	})

	ids := make([]uint32, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

func (idx *Index[T]) searchNearest(pos int32, lat, lon float64, k int, best *queue.PriorityQueue) {
	if pos == noChild {
		return
	}
	n := idx.nodes[pos]
	distSq := geo.DegreeDistanceSq(lat, lon, n.lat, n.lon)

	if best.Len() < k {
		best.Push(queue.Item{Node: n.id, Priority: distSq, Seq: n.id})
	} else if worst, _ := best.Top(); distSq < worst.Priority ||
		(distSq == worst.Priority && n.id < worst.Node) {
		best.Pop()
		best.Push(queue.Item{Node: n.id, Priority: distSq, Seq: n.id})
	}

	var delta float64
	if n.axis == 0 {
		delta = lat - n.lat
	} else {
		delta = lon - n.lon
	}
	near, far := n.left, n.right
	if delta >= 0 {
		near, far = n.right, n.left
	}
	idx.searchNearest(near, lat, lon, k, best)

	// Visit the far side only if the splitting plane can still beat the
	// current worst candidate.
	if best.Len() < k {
		idx.searchNearest(far, lat, lon, k, best)
	} else if worst, _ := best.Top(); delta*delta <= worst.Priority {
		idx.searchNearest(far, lat, lon, k, best)
	}
}

func (idx *Index[T]) collect(ids []uint32) []T {
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = idx.items[id]
	}
	return out
}
