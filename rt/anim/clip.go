package anim

import (
	"sort"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

type VectorKey struct {
	Time  float32
	Value mgl32.Vec3
}

type QuatKey struct {
	Time  float32
	Value mgl32.Quat
}

// Channel holds the keyframe tracks driving one node, matched by name.
// Key times are in ticks and must be sorted ascending.
type Channel struct {
	Name         string
	PositionKeys []VectorKey
	RotationKeys []QuatKey
	ScaleKeys    []VectorKey
}

// bracket returns the keys surrounding t and the blend factor between them.
// Times before the first key or after the last clamp to that key.
func bracket(n int, timeAt func(int) float32, t float32) (int, int, float32) {
	if n == 1 || t <= timeAt(0) {
		return 0, 0, 0
	}
	if t >= timeAt(n-1) {
		return n - 1, n - 1, 0
	}
	next := sort.Search(n, func(i int) bool { return timeAt(i) > t })
	prev := next - 1
	span := timeAt(next) - timeAt(prev)
	if span <= 0 {
		return prev, prev, 0
	}
	return prev, next, (t - timeAt(prev)) / span
}

func sampleVector(keys []VectorKey, t float32, fallback mgl32.Vec3) mgl32.Vec3 {
	if len(keys) == 0 {
		return fallback
	}
	a, b, f := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if a == b {
		return keys[a].Value
	}
	return keys[a].Value.Add(keys[b].Value.Sub(keys[a].Value).Mul(f))
}

func (c *Channel) ComputePosition(t float32) mgl32.Vec3 {
	return sampleVector(c.PositionKeys, t, mgl32.Vec3{0, 0, 0})
}

func (c *Channel) ComputeScale(t float32) mgl32.Vec3 {
	return sampleVector(c.ScaleKeys, t, mgl32.Vec3{1, 1, 1})
}

func (c *Channel) ComputeRotation(t float32) mgl32.Quat {
	keys := c.RotationKeys
	if len(keys) == 0 {
		return mgl32.QuatIdent()
	}
	a, b, f := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if a == b {
		return keys[a].Value
	}
	return mgl32.QuatSlerp(keys[a].Value, keys[b].Value, f).Normalize()
}

// Sample composes the channel's local transform at t: scale and rotation
// first, translation last.
func (c *Channel) Sample(t float32) core.Transform {
	return core.Transform{
		Position: c.ComputePosition(t),
		Rotation: c.ComputeRotation(t),
		Scale:    c.ComputeScale(t),
	}
}

// AnimationClip is immutable once built. Duration is in ticks and FrameRate
// in ticks per second.
type AnimationClip struct {
	Name      string
	Duration  float32
	FrameRate float32

	channels map[string]*Channel
}

func NewAnimationClip(name string, duration, frameRate float32, channels ...*Channel) *AnimationClip {
	clip := &AnimationClip{
		Name:      name,
		Duration:  duration,
		FrameRate: frameRate,
		channels:  make(map[string]*Channel, len(channels)),
	}
	for _, ch := range channels {
		clip.channels[ch.Name] = ch
	}
	return clip
}

func (c *AnimationClip) Channel(name string) (*Channel, bool) {
	ch, ok := c.channels[name]
	return ch, ok
}

func (c *AnimationClip) ChannelCount() int { return len(c.channels) }
