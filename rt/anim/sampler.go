package anim

import (
	"math"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// ComputeAnimationTime maps a local playback time in seconds onto the clip
// window [firstFrame, lastFrame], in ticks.
//
// Looping windows wrap; a non-looping window freezes on lastFrame once the
// elapsed ticks pass its length. A zero-length window always yields firstFrame.
func ComputeAnimationTime(localTime float64, timeScale, frameRate, firstFrame, lastFrame float32, loop bool) float32 {
	timeInTicks := localTime * float64(timeScale) * float64(frameRate)
	duration := float64(lastFrame - firstFrame)

	if duration <= 0 {
		return firstFrame
	}

	wrapped := math.Mod(timeInTicks, duration)
	animationTime := float64(firstFrame) + math.Max(0, math.Min(wrapped, duration))

	if !loop && timeInTicks > duration {
		return lastFrame
	}
	return float32(animationTime)
}

// SkinnedMeshComponent plays a clip of a shared SkinnedMesh over the node
// hierarchy it is attached to.
//
// Every update writes the sampled local transform back to each node of the
// subtree (joint or not) and stores one pose matrix per joint in the
// component's AnimationState.
type SkinnedMeshComponent struct {
	core.NodeComponent

	mesh  *SkinnedMesh
	state AnimationState

	currentAnimation int
	firstFrame       float32
	lastFrame        float32 // < 0 means the clip duration
	loop             bool
	timeScale        float32

	time          float64
	animationTime float32
	playing       bool
}

func NewSkinnedMeshComponent(mesh *SkinnedMesh) *SkinnedMeshComponent {
	c := &SkinnedMeshComponent{mesh: mesh}
	c.SetAnimationParams(0, -1, true, 1)
	return c
}

func (c *SkinnedMeshComponent) Kind() core.ComponentKind { return core.KindSkinnedMesh }

func (c *SkinnedMeshComponent) Mesh() *SkinnedMesh { return c.mesh }

func (c *SkinnedMeshComponent) State() *AnimationState { return &c.state }

// SetAnimationParams sets the playback window in ticks. A negative lastFrame
// plays to the end of the clip.
func (c *SkinnedMeshComponent) SetAnimationParams(firstFrame, lastFrame float32, loop bool, timeScale float32) {
	c.firstFrame = firstFrame
	c.lastFrame = lastFrame
	c.loop = loop
	c.timeScale = timeScale
}

func (c *SkinnedMeshComponent) SetCurrentAnimation(index int) {
	c.currentAnimation = index
}

func (c *SkinnedMeshComponent) CurrentAnimation() int { return c.currentAnimation }

// Time is the local playback time in seconds.
func (c *SkinnedMeshComponent) Time() float64 { return c.time }

// AnimationTime is the clip time, in ticks, sampled by the last update.
func (c *SkinnedMeshComponent) AnimationTime() float32 { return c.animationTime }

func (c *SkinnedMeshComponent) Playing() bool { return c.playing }

func (c *SkinnedMeshComponent) Start() {
	c.time = 0
	c.playing = true
}

func (c *SkinnedMeshComponent) OnDetach(node *core.Node) {
	c.NodeComponent.OnDetach(node)
	c.playing = false
}

func (c *SkinnedMeshComponent) Update(clock *core.Clock) {
	node := c.Node()
	if node == nil || c.mesh == nil {
		return
	}

	c.time += clock.DeltaTime()

	skeleton := c.mesh.Skeleton
	c.state.resize(skeleton.JointCount())

	clip := skeleton.Clip(c.currentAnimation)

	lastFrame := c.lastFrame
	if lastFrame < 0 {
		lastFrame = clip.Duration
	}
	c.animationTime = ComputeAnimationTime(c.time, c.timeScale, clip.FrameRate, c.firstFrame, lastFrame, c.loop)

	animationTime := c.animationTime
	poses := c.state.JointPoses
	node.Perform(func(n *core.Node) {
		local := n.Local
		if channel, ok := clip.Channel(n.Name); ok {
			local = channel.Sample(animationTime)
		}

		if joint := skeleton.Joint(n.Name); joint != nil {
			poses[joint.ID] = n.ParentWorld().ModelMatrix().
				Mul4(local.ModelMatrix()).
				Mul4(joint.Offset)
		}

		n.Local = local
	})
}

// DebugLines returns segment endpoints, two per non-root node of the
// subtree: parent world position then node world position.
func (c *SkinnedMeshComponent) DebugLines() []mgl32.Vec3 {
	node := c.Node()
	if node == nil {
		return nil
	}

	var lines []mgl32.Vec3
	node.Perform(func(n *core.Node) {
		if n.HasParent() {
			lines = append(lines, n.Parent().World.Position, n.World.Position)
		}
	})
	return lines
}
