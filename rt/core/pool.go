package core

// Pool is a slot-reusing array of object references.
//
// Removing an object nils its slot instead of erasing it, so the backing
// size never shrinks; Add fills the first nil slot before growing.
type Pool[T any] struct {
	objects []*T
	count   int
}

func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Empty reports whether there are no live objects.
func (p *Pool[T]) Empty() bool { return p.count == 0 }

// Len is the backing size, nil slots included.
func (p *Pool[T]) Len() int { return len(p.objects) }

// Count is the number of live objects.
func (p *Pool[T]) Count() int { return p.count }

func (p *Pool[T]) Add(obj *T) {
	added := false
	for i := range p.objects {
		if p.objects[i] == nil {
			p.objects[i] = obj
			added = true
			break
		}
	}

	if !added {
		p.objects = append(p.objects, obj)
	}
	p.count++
}

// Remove nils the slot holding obj, compared by identity, and returns obj.
func (p *Pool[T]) Remove(obj *T) *T {
	if obj == nil {
		return nil
	}
	for i := range p.objects {
		if p.objects[i] == obj {
			p.objects[i] = nil
			p.count--
			break
		}
	}
	return obj
}

func (p *Pool[T]) Contains(obj *T) bool {
	if obj == nil {
		return false
	}
	for _, o := range p.objects {
		if o == obj {
			return true
		}
	}
	return false
}

func (p *Pool[T]) Clear() {
	p.objects = nil
	p.count = 0
}

// Get returns nil when index is outside the backing array or the slot is free.
func (p *Pool[T]) Get(index int) *T {
	if index < 0 || index >= len(p.objects) {
		return nil
	}
	return p.objects[index]
}

// Each visits live objects in slot order. The index passed to fn counts
// visited objects only, so it is dense even when slots are free.
func (p *Pool[T]) Each(fn func(obj *T, index int)) {
	if p.Empty() {
		return
	}
	i := 0
	for _, o := range p.objects {
		if o != nil {
			fn(o, i)
			i++
		}
	}
}

// EachSlot visits every backing slot, nil ones included, with its slot index.
func (p *Pool[T]) EachSlot(fn func(obj *T, index int)) {
	if p.Empty() {
		return
	}
	for i, o := range p.objects {
		fn(o, i)
	}
}
