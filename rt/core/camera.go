package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera views the scene from its node's world transform.
type Camera struct {
	NodeComponent

	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera() *Camera {
	return &Camera{
		FovY:   45,
		Aspect: 4.0 / 3.0,
		Near:   0.1,
		Far:    1000,
	}
}

func (c *Camera) Kind() ComponentKind { return KindCamera }

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewMatrix is the inverse of the node's world transform. A detached camera
// looks down -Z from the origin.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	if c.node == nil {
		return mgl32.Ident4()
	}
	return c.node.World.InverseMatrix()
}

// LookAt orients the camera's node so it sits at eye looking at target.
func (c *Camera) LookAt(eye, target, up mgl32.Vec3) {
	if c.node == nil {
		return
	}
	view := mgl32.LookAtV(eye, target, up)
	c.node.Local.Position = eye
	c.node.Local.Rotation = mgl32.Mat4ToQuat(view).Conjugate().Normalize()
}
