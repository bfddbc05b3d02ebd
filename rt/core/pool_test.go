package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
}

func TestPool_RemovedSlotIsReused(t *testing.T) {
	p := NewPool[item]()
	a, b, c := &item{"a"}, &item{"b"}, &item{"c"}
	p.Add(a)
	p.Add(b)
	p.Add(c)
	require.Equal(t, 3, p.Len())
	require.Equal(t, 3, p.Count())

	assert.Same(t, b, p.Remove(b))
	assert.Equal(t, 3, p.Len(), "backing size never shrinks")
	assert.Equal(t, 2, p.Count())
	assert.Nil(t, p.Get(1))

	d := &item{"d"}
	p.Add(d)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 3, p.Count())
	assert.Same(t, d, p.Get(1))
}

func TestPool_RemoveUsesIdentity(t *testing.T) {
	p := NewPool[item]()
	a := &item{"same"}
	p.Add(a)

	p.Remove(&item{"same"})
	assert.Equal(t, 1, p.Count())
	assert.True(t, p.Contains(a))

	p.Remove(a)
	assert.True(t, p.Empty())
	assert.False(t, p.Contains(a))
}

func TestPool_GetOutOfRange(t *testing.T) {
	p := NewPool[item]()
	p.Add(&item{"a"})

	assert.Nil(t, p.Get(1))
	assert.Nil(t, p.Get(100))
	assert.Nil(t, p.Get(-1))
}

func TestPool_Each(t *testing.T) {
	p := NewPool[item]()
	a, b, c := &item{"a"}, &item{"b"}, &item{"c"}
	p.Add(a)
	p.Add(b)
	p.Add(c)
	p.Remove(b)

	var names []string
	var indices []int
	p.Each(func(it *item, i int) {
		names = append(names, it.name)
		indices = append(indices, i)
	})
	assert.Equal(t, []string{"a", "c"}, names)
	assert.Equal(t, []int{0, 1}, indices)

	var slots []*item
	var slotIndices []int
	p.EachSlot(func(it *item, i int) {
		slots = append(slots, it)
		slotIndices = append(slotIndices, i)
	})
	assert.Equal(t, []*item{a, nil, c}, slots)
	assert.Equal(t, []int{0, 1, 2}, slotIndices)
}

func TestPool_Clear(t *testing.T) {
	p := NewPool[item]()
	p.Add(&item{"a"})
	p.Clear()

	assert.Equal(t, 0, p.Len())
	assert.True(t, p.Empty())

	visited := false
	p.Each(func(*item, int) { visited = true })
	assert.False(t, visited)
}
