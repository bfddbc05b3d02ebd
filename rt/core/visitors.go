package core

// Apply wraps a plain function as a Visitor.
func Apply(fn func(*Node)) Visitor {
	return Visitor(fn)
}

// UpdateWorldState recomputes World = ParentWorld ∘ Local for every node.
// Roots take their local transform as-is.
func UpdateWorldState() Visitor {
	return func(node *Node) {
		if node.parent == nil {
			node.World = node.Local
		} else {
			node.World = Compose(node.parent.World, node.Local)
		}
		node.WorldIsCurrent = true
	}
}

// UpdateRenderState gives every geometry node a render state. A geometry
// without its own materials inherits those of the nearest ancestor that has
// some, falling back to a default material.
func UpdateRenderState() Visitor {
	return func(node *Node) {
		if node.Geometry() == nil {
			return
		}

		rs := node.RenderState()
		if rs != nil && rs.HasMaterials() {
			return
		}
		if rs == nil {
			rs = NewRenderState()
			node.AttachComponent(rs)
		}

		for p := node.parent; p != nil; p = p.parent {
			if prs := p.RenderState(); prs != nil && prs.HasMaterials() {
				rs.Materials = append(rs.Materials[:0], prs.Materials...)
				return
			}
		}
		rs.Materials = []*Material{NewMaterial("default")}
	}
}

func StartComponents() Visitor {
	return func(node *Node) {
		node.EachComponent(func(c Component) {
			c.Start()
		})
	}
}

func UpdateComponents(clock *Clock) Visitor {
	return func(node *Node) {
		node.EachComponent(func(c Component) {
			c.Update(clock)
		})
	}
}

// FetchCameras collects every camera in a graph, in traversal order.
type FetchCameras struct {
	cameras []*Camera
}

func (f *FetchCameras) Visitor() Visitor {
	return func(node *Node) {
		if c := node.Camera(); c != nil {
			f.cameras = append(f.cameras, c)
		}
	}
}

func (f *FetchCameras) HasCameras() bool { return len(f.cameras) > 0 }

func (f *FetchCameras) EachCamera(fn func(*Camera)) {
	for _, c := range f.cameras {
		fn(c)
	}
}
