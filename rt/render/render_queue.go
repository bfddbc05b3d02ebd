package render

import (
	"github.com/gekko3d/lumen/rt/core"
)

// RenderQueue is the per-camera visible set consumed by a render pass.
type RenderQueue struct {
	Camera *core.Camera

	lights *core.Pool[core.Light]
	opaque *core.Pool[core.Node]
}

func NewRenderQueue(camera *core.Camera) *RenderQueue {
	return &RenderQueue{
		Camera: camera,
		lights: core.NewPool[core.Light](),
		opaque: core.NewPool[core.Node](),
	}
}

// BuildRenderQueue collects the lights and geometry nodes of scene.
func BuildRenderQueue(scene *core.Node, camera *core.Camera) *RenderQueue {
	q := NewRenderQueue(camera)
	if scene != nil {
		scene.Perform(q.Collect())
	}
	return q
}

// Collect returns a visitor filling the queue.
func (q *RenderQueue) Collect() core.Visitor {
	return func(node *core.Node) {
		if l := node.Light(); l != nil {
			q.AddLight(l)
		}
		if node.Geometry() != nil {
			q.AddOpaque(node)
		}
	}
}

func (q *RenderQueue) Reset() {
	q.lights.Clear()
	q.opaque.Clear()
}

func (q *RenderQueue) AddLight(l *core.Light) { q.lights.Add(l) }

func (q *RenderQueue) AddOpaque(n *core.Node) { q.opaque.Add(n) }

func (q *RenderQueue) LightCount() int  { return q.lights.Count() }
func (q *RenderQueue) OpaqueCount() int { return q.opaque.Count() }

func (q *RenderQueue) EachLight(fn func(*core.Light)) {
	q.lights.Each(func(l *core.Light, _ int) { fn(l) })
}

func (q *RenderQueue) EachOpaque(fn func(*core.Node)) {
	q.opaque.Each(func(n *core.Node, _ int) { fn(n) })
}
