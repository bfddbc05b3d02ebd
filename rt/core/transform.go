package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func TranslationTransform(p mgl32.Vec3) Transform {
	t := NewTransform()
	t.Position = p
	return t
}

// ModelMatrix returns M = T * R * S.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// InverseMatrix returns inv(M) = inv(S) * inv(R) * inv(T).
func (t Transform) InverseMatrix() mgl32.Mat4 {
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())

	// conjugate is the inverse of a unit quaternion
	invRotate := t.Rotation.Conjugate().Mat4()

	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// NormalMatrix is the inverse transpose of the upper 3x3 of the model matrix.
func (t Transform) NormalMatrix() mgl32.Mat3 {
	return t.ModelMatrix().Mat3().Inv().Transpose()
}

// Compose returns parent ∘ child, applying child first.
//
// Components are propagated directly rather than decomposed from a matrix:
//
//	Pos   = ParentPos + ParentRot * (ParentScale * ChildPos)
//	Rot   = ParentRot * ChildRot
//	Scale = ParentScale * ChildScale
func Compose(parent, child Transform) Transform {
	scaledPos := mgl32.Vec3{
		child.Position.X() * parent.Scale.X(),
		child.Position.Y() * parent.Scale.Y(),
		child.Position.Z() * parent.Scale.Z(),
	}

	return Transform{
		Position: parent.Position.Add(parent.Rotation.Rotate(scaledPos)),
		Rotation: parent.Rotation.Mul(child.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			parent.Scale.X() * child.Scale.X(),
			parent.Scale.Y() * child.Scale.Y(),
			parent.Scale.Z() * child.Scale.Z(),
		},
	}
}

// Forward is the -Z axis rotated into this transform's frame.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}
