package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
)

const (
	DefaultShadowNearCoeff float32 = 1.0
	DefaultShadowFarCoeff  float32 = 100.0

	// half-extent in world units of the orthographic frustum used by
	// directional light shadows
	DefaultShadowHalfExtent float32 = 40.0
)

// Light is a scene light positioned and oriented by its node.
type Light struct {
	NodeComponent

	Type        LightType
	Color       [3]float32 // RGB
	Intensity   float32
	Range       float32 // point/spot
	ConeAngle   float32 // full cone angle in degrees (spot)
	Attenuation mgl32.Vec3

	CastShadows     bool
	ShadowNearCoeff float32
	ShadowFarCoeff  float32
}

func NewLight(t LightType) *Light {
	return &Light{
		Type:            t,
		Color:           [3]float32{1, 1, 1},
		Intensity:       1,
		Range:           10,
		ConeAngle:       45,
		Attenuation:     mgl32.Vec3{1, 0, 0},
		ShadowNearCoeff: DefaultShadowNearCoeff,
		ShadowFarCoeff:  DefaultShadowFarCoeff,
	}
}

func (l *Light) Kind() ComponentKind { return KindLight }

func (l *Light) world() Transform {
	if l.node == nil {
		return NewTransform()
	}
	return l.node.World
}

func (l *Light) Position() mgl32.Vec3 {
	return l.world().Position
}

func (l *Light) Direction() mgl32.Vec3 {
	return l.world().Forward()
}

// ComputeProjectionMatrix is orthographic for directional lights and a 45°
// perspective frustum otherwise, spanning the shadow near/far coefficients.
func (l *Light) ComputeProjectionMatrix() mgl32.Mat4 {
	if l.Type == LightTypeDirectional {
		h := DefaultShadowHalfExtent
		return mgl32.Ortho(-h, h, -h, h, l.ShadowNearCoeff, l.ShadowFarCoeff)
	}
	return mgl32.Perspective(mgl32.DegToRad(45), 1, l.ShadowNearCoeff, l.ShadowFarCoeff)
}

func (l *Light) ComputeViewMatrix() mgl32.Mat4 {
	return l.world().InverseMatrix()
}
