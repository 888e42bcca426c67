package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap(t *testing.T) {
	pq := NewMin(8)
	for _, p := range []float64{5, 1, 4, 2, 3} {
		pq.Push(Item{Node: uint32(p), Priority: p})
	}

	var got []float64
	for pq.Len() > 0 {
		item, ok := pq.Pop()
		require.True(t, ok)
		got = append(got, item.Priority)
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, got)
}

func TestMaxHeap(t *testing.T) {
	pq := NewMax(8)
	for _, p := range []float64{5, 1, 4, 2, 3} {
		pq.Push(Item{Node: uint32(p), Priority: p})
	}

	top, ok := pq.Top()
	require.True(t, ok)
	assert.Equal(t, 5.0, top.Priority)

	var got []float64
	for pq.Len() > 0 {
		item, _ := pq.Pop()
		got = append(got, item.Priority)
	}
	assert.Equal(t, []float64{5, 4, 3, 2, 1}, got)
}

func TestEmptyQueue(t *testing.T) {
	pq := NewMin(0)
	_, ok := pq.Pop()
	assert.False(t, ok)
	_, ok = pq.Top()
	assert.False(t, ok)
	assert.Zero(t, pq.Len())
}

func TestStableTieBreak(t *testing.T) {
	t.Run("min drains earlier seq first", func(t *testing.T) {
		pq := NewMin(4)
		pq.Push(Item{Node: 10, Priority: 1, Seq: 0})
		pq.Push(Item{Node: 20, Priority: 1, Seq: 1})
		pq.Push(Item{Node: 30, Priority: 1, Seq: 2})

		var nodes []uint32
		for pq.Len() > 0 {
			item, _ := pq.Pop()
			nodes = append(nodes, item.Node)
		}
		assert.Equal(t, []uint32{10, 20, 30}, nodes)
	})

	t.Run("max evicts later seq first", func(t *testing.T) {
		pq := NewMax(4)
		pq.Push(Item{Node: 10, Priority: 1, Seq: 0})
		pq.Push(Item{Node: 20, Priority: 1, Seq: 1})

		top, ok := pq.Top()
		require.True(t, ok)
		assert.Equal(t, uint32(20), top.Node)
	})
}

func TestRandomizedAgainstSort(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	pq := NewMin(128)

	priorities := make([]float64, 200)
	for i := range priorities {
		priorities[i] = rng.Float64() * 100
		pq.Push(Item{Node: uint32(i), Priority: priorities[i], Seq: uint32(i)})
	}
	sort.Float64s(priorities)

	for _, want := range priorities {
		item, ok := pq.Pop()
		require.True(t, ok)
		assert.Equal(t, want, item.Priority)
	}
	_, ok := pq.Pop()
	assert.False(t, ok)
}
