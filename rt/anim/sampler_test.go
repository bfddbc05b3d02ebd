package anim

import (
	"testing"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAnimationTime_Looping(t *testing.T) {
	assert.InDelta(t, 0, ComputeAnimationTime(10, 1, 1, 0, 10, true), 1e-6, "wraps at the window end")
	assert.InDelta(t, 5, ComputeAnimationTime(5, 1, 1, 0, 10, true), 1e-6)
	assert.InDelta(t, 2, ComputeAnimationTime(12, 1, 1, 0, 10, true), 1e-6)
	assert.InDelta(t, 7, ComputeAnimationTime(2, 1, 1, 5, 10, true), 1e-6)
	assert.InDelta(t, 6, ComputeAnimationTime(1.5, 2, 2, 0, 10, true), 1e-6)
}

func TestComputeAnimationTime_NonLoopingClampsToEnd(t *testing.T) {
	assert.InDelta(t, 10, ComputeAnimationTime(15, 1, 1, 0, 10, false), 1e-6)
	assert.InDelta(t, 5, ComputeAnimationTime(5, 1, 1, 0, 10, false), 1e-6)
	assert.InDelta(t, 20, ComputeAnimationTime(100, 1, 24, 10, 20, false), 1e-6)
}

func TestComputeAnimationTime_ZeroLengthWindow(t *testing.T) {
	for _, localTime := range []float64{0, 0.5, 3, 1000} {
		for _, loop := range []bool{true, false} {
			got := ComputeAnimationTime(localTime, 1, 30, 4, 4, loop)
			assert.Equal(t, float32(4), got, "localTime=%v loop=%v", localTime, loop)
		}
	}
}

func TestChannel_Sampling(t *testing.T) {
	quarter := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	ch := &Channel{
		Name: "bone",
		PositionKeys: []VectorKey{
			{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
			{Time: 10, Value: mgl32.Vec3{10, 0, 0}},
		},
		RotationKeys: []QuatKey{
			{Time: 0, Value: mgl32.QuatIdent()},
			{Time: 10, Value: quarter},
		},
		ScaleKeys: []VectorKey{{Time: 0, Value: mgl32.Vec3{2, 2, 2}}},
	}

	assert.InDelta(t, 2.5, ch.ComputePosition(2.5).X(), 1e-5)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, ch.ComputePosition(-1), "clamps before the first key")
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, ch.ComputePosition(50), "clamps after the last key")
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, ch.ComputeScale(7))

	half := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	assert.True(t, ch.ComputeRotation(5).ApproxEqualThreshold(half, 1e-4))

	empty := &Channel{Name: "empty"}
	tr := empty.Sample(3)
	assert.Equal(t, core.NewTransform(), tr)
}

type rig struct {
	model, hip, knee, prop *core.Node
	component              *SkinnedMeshComponent
	skeleton               *Skeleton
}

func newRig(t *testing.T) *rig {
	t.Helper()

	skeleton := NewSkeleton()
	skeleton.AddJoint("hip", mgl32.Ident4())
	skeleton.AddJoint("knee", mgl32.Translate3D(0, -1, 0))

	clip := NewAnimationClip("walk", 10, 1,
		&Channel{
			Name: "hip",
			PositionKeys: []VectorKey{
				{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
				{Time: 10, Value: mgl32.Vec3{10, 0, 0}},
			},
		},
		&Channel{
			Name: "prop",
			PositionKeys: []VectorKey{
				{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
				{Time: 10, Value: mgl32.Vec3{0, 0, 10}},
			},
		},
	)
	require.Equal(t, 0, skeleton.AddClip(clip))

	r := &rig{
		model:    core.NewNode("model"),
		hip:      core.NewNode("hip"),
		knee:     core.NewNode("knee"),
		prop:     core.NewNode("prop"),
		skeleton: skeleton,
	}
	r.knee.Local.Position = mgl32.Vec3{0, 1, 0}
	r.model.AttachNode(r.hip).AttachNode(r.prop)
	r.hip.AttachNode(r.knee)

	r.component = NewSkinnedMeshComponent(NewSkinnedMesh("walker", skeleton))
	r.model.AttachComponent(r.component)
	r.model.Perform(core.UpdateWorldState())
	r.model.Perform(core.StartComponents())
	return r
}

func matNear(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	if !expected.ApproxEqualThreshold(actual, 1e-4) {
		t.Errorf("expected\n%v\ngot\n%v", expected, actual)
	}
}

func TestSkinnedMeshComponent_Update(t *testing.T) {
	r := newRig(t)
	require.True(t, r.component.Playing())

	clock := core.NewClock()
	clock.Advance(5)
	r.model.Perform(core.UpdateComponents(clock))

	assert.InDelta(t, 5, r.component.Time(), 1e-9)
	assert.InDelta(t, 5, r.component.AnimationTime(), 1e-6)

	// channel nodes are sampled, joint or not
	assert.InDelta(t, 5, r.hip.Local.Position.X(), 1e-5)
	assert.InDelta(t, 5, r.prop.Local.Position.Z(), 1e-5)
	// nodes without a channel pass through
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, r.knee.Local.Position)

	poses := r.component.State().JointPoses
	require.Len(t, poses, 2)
	matNear(t, mgl32.Translate3D(5, 0, 0), poses[0])
	// knee: parent world (not yet propagated) * local * offset
	matNear(t, mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Translate3D(0, -1, 0)), poses[1])

	r.model.Perform(core.UpdateWorldState())
	clock.Advance(0)
	r.model.Perform(core.UpdateComponents(clock))
	poses = r.component.State().JointPoses
	matNear(t, mgl32.Translate3D(5, 0, 0), poses[1])
}

func TestSkinnedMeshComponent_StartResetsTime(t *testing.T) {
	r := newRig(t)
	clock := core.NewClock()
	clock.Advance(3)
	r.model.Perform(core.UpdateComponents(clock))
	require.InDelta(t, 3, r.component.Time(), 1e-9)

	r.component.Start()
	assert.Equal(t, 0.0, r.component.Time())
}

func TestSkinnedMeshComponent_LoopWindow(t *testing.T) {
	r := newRig(t)
	r.component.SetAnimationParams(2, 6, true, 1)

	clock := core.NewClock()
	clock.Advance(5)
	r.model.Perform(core.UpdateComponents(clock))
	assert.InDelta(t, 3, r.component.AnimationTime(), 1e-6)

	r.component.SetAnimationParams(2, 6, false, 1)
	r.model.Perform(core.UpdateComponents(clock))
	assert.InDelta(t, 6, r.component.AnimationTime(), 1e-6)
	assert.InDelta(t, 6, r.hip.Local.Position.X(), 1e-5)
}

func TestSkinnedMeshComponent_InvalidClipPanics(t *testing.T) {
	r := newRig(t)
	r.component.SetCurrentAnimation(3)

	clock := core.NewClock()
	clock.Advance(0.1)
	assert.Panics(t, func() {
		r.model.Perform(core.UpdateComponents(clock))
	})
}

func TestSkinnedMeshComponent_DebugLines(t *testing.T) {
	r := newRig(t)
	clock := core.NewClock()
	clock.Advance(5)
	r.model.Perform(core.UpdateComponents(clock))
	r.model.Perform(core.UpdateWorldState())

	lines := r.component.DebugLines()
	require.Len(t, lines, 6)
	// model -> hip
	assert.Equal(t, r.model.World.Position, lines[0])
	assert.Equal(t, r.hip.World.Position, lines[1])
	// hip -> knee
	assert.Equal(t, r.hip.World.Position, lines[2])
	assert.Equal(t, r.knee.World.Position, lines[3])

	detached := NewSkinnedMeshComponent(nil)
	assert.Nil(t, detached.DebugLines())
}

func TestSkin_EachJoint(t *testing.T) {
	a, b, plain := core.NewNode("a"), core.NewNode("b"), core.NewNode("plain")
	a.AttachComponent(NewJointComponent(mgl32.Ident4()))
	b.AttachComponent(NewJointComponent(mgl32.Translate3D(1, 0, 0)))
	b.Local.Position = mgl32.Vec3{0, 2, 0}
	b.Perform(core.UpdateWorldState())

	skin := NewSkin(a, plain, b)
	require.True(t, skin.HasJoints())

	var names []string
	var indices []int
	skin.EachJoint(func(n *core.Node, j *JointComponent, i int) {
		names = append(names, n.Name)
		indices = append(indices, i)
	})
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []int{0, 2}, indices)

	matNear(t, mgl32.Translate3D(0, 2, 0), JointOf(b).WorldMatrix())
}

func TestSkeleton_Joints(t *testing.T) {
	s := NewSkeleton()
	hip := s.AddJoint("hip", mgl32.Ident4())
	knee := s.AddJoint("knee", mgl32.Ident4())

	assert.Equal(t, 0, hip.ID)
	assert.Equal(t, 1, knee.ID)
	assert.Same(t, knee, s.Joint("knee"))
	assert.Nil(t, s.Joint("elbow"))
	assert.Equal(t, 2, s.JointCount())
	assert.Panics(t, func() { s.AddJoint("hip", mgl32.Ident4()) })
	assert.Panics(t, func() { s.Clip(0) })
}
