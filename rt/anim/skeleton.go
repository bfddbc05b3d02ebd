package anim

import (
	"fmt"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Joint is a named bone with a stable index and a bind-pose offset.
type Joint struct {
	ID     int
	Name   string
	Offset mgl32.Mat4
}

type Skeleton struct {
	joints *core.Pool[Joint]
	byName map[string]*Joint
	clips  []*AnimationClip
}

func NewSkeleton() *Skeleton {
	return &Skeleton{
		joints: core.NewPool[Joint](),
		byName: make(map[string]*Joint),
	}
}

// AddJoint appends a joint; its ID is its position in the skeleton.
func (s *Skeleton) AddJoint(name string, offset mgl32.Mat4) *Joint {
	if _, ok := s.byName[name]; ok {
		panic(fmt.Sprintf("joint %q is already in skeleton", name))
	}
	j := &Joint{ID: s.joints.Len(), Name: name, Offset: offset}
	s.joints.Add(j)
	s.byName[name] = j
	return j
}

// Joint returns nil when no joint is named name.
func (s *Skeleton) Joint(name string) *Joint {
	return s.byName[name]
}

func (s *Skeleton) JointCount() int { return s.joints.Count() }

func (s *Skeleton) EachJoint(fn func(*Joint)) {
	s.joints.Each(func(j *Joint, _ int) { fn(j) })
}

func (s *Skeleton) AddClip(clip *AnimationClip) int {
	s.clips = append(s.clips, clip)
	return len(s.clips) - 1
}

func (s *Skeleton) ClipCount() int { return len(s.clips) }

// Clip panics on an invalid index: callers must select an existing clip.
func (s *Skeleton) Clip(index int) *AnimationClip {
	if index < 0 || index >= len(s.clips) {
		panic(fmt.Sprintf("animation clip %d out of range (skeleton has %d)", index, len(s.clips)))
	}
	return s.clips[index]
}

// SkinnedMesh is the shared, immutable part of a skinned model: its
// primitives and the skeleton with its clips. Per-instance playback state
// lives in SkinnedMeshComponent.
type SkinnedMesh struct {
	Name       string
	Skeleton   *Skeleton
	Primitives []*core.Primitive
}

func NewSkinnedMesh(name string, skeleton *Skeleton, primitives ...*core.Primitive) *SkinnedMesh {
	return &SkinnedMesh{Name: name, Skeleton: skeleton, Primitives: primitives}
}

// AnimationState holds one pose matrix per skeleton joint, indexed by joint ID.
type AnimationState struct {
	JointPoses []mgl32.Mat4
}

func (s *AnimationState) resize(n int) {
	if cap(s.JointPoses) >= n {
		s.JointPoses = s.JointPoses[:n]
		return
	}
	poses := make([]mgl32.Mat4, n)
	copy(poses, s.JointPoses)
	s.JointPoses = poses
}
