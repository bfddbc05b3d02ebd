package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type PrimitiveType int

const (
	PrimitiveTriangles PrimitiveType = iota
	PrimitiveLines
)

type VertexBuffer struct {
	// Stride is the number of floats per vertex.
	Stride int
	Data   []float32
}

func (vb *VertexBuffer) VertexCount() int {
	if vb == nil || vb.Stride == 0 {
		return 0
	}
	return len(vb.Data) / vb.Stride
}

type IndexBuffer struct {
	Data []uint16
}

type Primitive struct {
	Type         PrimitiveType
	VertexBuffer *VertexBuffer
	IndexBuffer  *IndexBuffer
}

// NewQuadPrimitive builds a centered width x height quad in the XY plane,
// with position (3) and uv (2) per vertex.
func NewQuadPrimitive(width, height float32) *Primitive {
	hw, hh := width/2, height/2
	return &Primitive{
		Type: PrimitiveTriangles,
		VertexBuffer: &VertexBuffer{
			Stride: 5,
			Data: []float32{
				-hw, hh, 0, 0, 1,
				-hw, -hh, 0, 0, 0,
				hw, -hh, 0, 1, 0,
				hw, hh, 0, 1, 1,
			},
		},
		IndexBuffer: &IndexBuffer{Data: []uint16{0, 1, 2, 0, 2, 3}},
	}
}

// Geometry holds the primitives drawn at its node's world transform.
type Geometry struct {
	NodeComponent
	Primitives []*Primitive
}

func NewGeometry(primitives ...*Primitive) *Geometry {
	return &Geometry{Primitives: primitives}
}

func (g *Geometry) Kind() ComponentKind { return KindGeometry }

func (g *Geometry) EachPrimitive(fn func(*Primitive)) {
	for _, p := range g.Primitives {
		if p != nil {
			fn(p)
		}
	}
}

type Material struct {
	Name      string
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Emissive  mgl32.Vec4
	Shininess float32
}

func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   mgl32.Vec4{0, 0, 0, 1},
		Diffuse:   mgl32.Vec4{1, 1, 1, 1},
		Specular:  mgl32.Vec4{1, 1, 1, 1},
		Emissive:  mgl32.Vec4{0, 0, 0, 1},
		Shininess: 50,
	}
}

// RenderState lists the materials a geometry is drawn with.
type RenderState struct {
	NodeComponent
	Materials []*Material
}

func NewRenderState(materials ...*Material) *RenderState {
	return &RenderState{Materials: materials}
}

func (rs *RenderState) Kind() ComponentKind { return KindRenderState }

func (rs *RenderState) HasMaterials() bool { return len(rs.Materials) > 0 }

func (rs *RenderState) EachMaterial(fn func(*Material)) {
	for _, m := range rs.Materials {
		if m != nil {
			fn(m)
		}
	}
}
