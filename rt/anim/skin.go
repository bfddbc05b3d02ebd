package anim

import (
	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// JointComponent marks a scene node as a skinning joint.
type JointComponent struct {
	core.NodeComponent
	InverseBindMatrix mgl32.Mat4
}

func NewJointComponent(inverseBind mgl32.Mat4) *JointComponent {
	return &JointComponent{InverseBindMatrix: inverseBind}
}

func (j *JointComponent) Kind() core.ComponentKind { return core.KindJoint }

// WorldMatrix is the joint node's current world model matrix.
func (j *JointComponent) WorldMatrix() mgl32.Mat4 {
	if j.Node() == nil {
		return mgl32.Ident4()
	}
	return j.Node().World.ModelMatrix()
}

func JointOf(n *core.Node) *JointComponent {
	j, _ := n.Component(core.KindJoint).(*JointComponent)
	return j
}

// Skin binds a geometry to the joint nodes deforming it. The joint index
// passed to EachJoint is the skinning slot used by shaders.
type Skin struct {
	core.NodeComponent
	joints *core.Pool[core.Node]
}

func NewSkin(joints ...*core.Node) *Skin {
	s := &Skin{joints: core.NewPool[core.Node]()}
	for _, j := range joints {
		s.AddJoint(j)
	}
	return s
}

func (s *Skin) Kind() core.ComponentKind { return core.KindSkin }

func (s *Skin) AddJoint(node *core.Node) {
	s.joints.Add(node)
}

func (s *Skin) RemoveJoint(node *core.Node) {
	s.joints.Remove(node)
}

func (s *Skin) HasJoints() bool { return !s.joints.Empty() }

func (s *Skin) JointCount() int { return s.joints.Count() }

// EachJoint visits joint nodes that carry a JointComponent.
func (s *Skin) EachJoint(fn func(node *core.Node, joint *JointComponent, index int)) {
	s.joints.Each(func(n *core.Node, i int) {
		if j := JointOf(n); j != nil {
			fn(n, j, i)
		}
	})
}

func SkinOf(n *core.Node) *Skin {
	s, _ := n.Component(core.KindSkin).(*Skin)
	return s
}

func SkinnedMeshOf(n *core.Node) *SkinnedMeshComponent {
	c, _ := n.Component(core.KindSkinnedMesh).(*SkinnedMeshComponent)
	return c
}
