package core

import (
	"fmt"
	"slices"
)

// ComponentKind is the closed set of capabilities a node can carry.
type ComponentKind int

const (
	KindGeometry ComponentKind = iota
	KindRenderState
	KindLight
	KindCamera
	KindSkinnedMesh
	KindSkin
	KindJoint
)

func (k ComponentKind) String() string {
	switch k {
	case KindGeometry:
		return "Geometry"
	case KindRenderState:
		return "RenderState"
	case KindLight:
		return "Light"
	case KindCamera:
		return "Camera"
	case KindSkinnedMesh:
		return "SkinnedMesh"
	case KindSkin:
		return "Skin"
	case KindJoint:
		return "Joint"
	}
	return fmt.Sprintf("ComponentKind(%d)", int(k))
}

// Component is attached to at most one node at a time, one per kind.
type Component interface {
	Kind() ComponentKind
	OnAttach(node *Node)
	OnDetach(node *Node)
	Start()
	Update(clock *Clock)
}

// NodeComponent provides the node bookkeeping and no-op lifecycle hooks
// shared by every component. Embed it and override what you need.
type NodeComponent struct {
	node *Node
}

func (c *NodeComponent) OnAttach(node *Node) { c.node = node }
func (c *NodeComponent) OnDetach(node *Node) { c.node = nil }
func (c *NodeComponent) Start()              {}
func (c *NodeComponent) Update(clock *Clock) {}

// Node returns the node the component is attached to, or nil.
func (c *NodeComponent) Node() *Node { return c.node }

// Visitor is applied to nodes during traversal.
type Visitor func(node *Node)

type Node struct {
	Name  string
	Local Transform
	World Transform

	WorldIsCurrent bool

	parent     *Node
	children   []*Node
	components map[ComponentKind]Component
}

func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		Local:      NewTransform(),
		World:      NewTransform(),
		components: make(map[ComponentKind]Component),
	}
}

func (n *Node) Parent() *Node   { return n.parent }
func (n *Node) HasParent() bool { return n.parent != nil }

func (n *Node) Children() []*Node { return n.children }

// AttachNode makes child a child of n, detaching it from a previous parent.
func (n *Node) AttachNode(child *Node) *Node {
	if child.parent != nil {
		child.parent.DetachNode(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return n
}

func (n *Node) DetachNode(child *Node) {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
}

// Root walks up the parent chain.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// AttachComponent replaces any component of the same kind.
func (n *Node) AttachComponent(c Component) *Node {
	if old, ok := n.components[c.Kind()]; ok {
		old.OnDetach(n)
	}
	n.components[c.Kind()] = c
	c.OnAttach(n)
	return n
}

func (n *Node) DetachComponent(kind ComponentKind) {
	if c, ok := n.components[kind]; ok {
		delete(n.components, kind)
		c.OnDetach(n)
	}
}

func (n *Node) Component(kind ComponentKind) Component {
	return n.components[kind]
}

func (n *Node) HasComponent(kind ComponentKind) bool {
	_, ok := n.components[kind]
	return ok
}

// EachComponent visits components in kind order.
func (n *Node) EachComponent(fn func(Component)) {
	kinds := make([]ComponentKind, 0, len(n.components))
	for k := range n.components {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		fn(n.components[k])
	}
}

// Perform applies v to n and its descendants, depth first, parents before children.
func (n *Node) Perform(v Visitor) {
	v(n)
	for _, child := range n.children {
		child.Perform(v)
	}
}

// Find returns the first node in the subtree named name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// ParentWorld is the world transform of the parent, or identity for roots.
func (n *Node) ParentWorld() Transform {
	if n.parent == nil {
		return NewTransform()
	}
	return n.parent.World
}

func (n *Node) Geometry() *Geometry {
	g, _ := n.components[KindGeometry].(*Geometry)
	return g
}

func (n *Node) RenderState() *RenderState {
	rs, _ := n.components[KindRenderState].(*RenderState)
	return rs
}

func (n *Node) Light() *Light {
	l, _ := n.components[KindLight].(*Light)
	return l
}

func (n *Node) Camera() *Camera {
	c, _ := n.components[KindCamera].(*Camera)
	return c
}
