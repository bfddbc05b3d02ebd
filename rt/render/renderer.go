package render

import (
	"fmt"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Semantic names a standard shader input. Shader programs resolve semantics
// to their own locations.
type Semantic int

const (
	ColorMapUniform Semantic = iota
	ProjectionMatrixUniform
	ViewMatrixUniform
	ModelMatrixUniform
	NormalMatrixUniform

	UseShadowMapUniform
	ShadowMapUniform
	LightSourceProjectionMatrixUniform
	LightSourceViewMatrixUniform
	LinearDepthConstantUniform

	GBufferColorMapUniform
	GBufferPositionMapUniform
	GBufferNormalMapUniform
	GBufferEmissiveMapUniform

	// indexed by joint slot
	JointWorldMatrixUniform
	JointInverseBindMatrixUniform
)

var semanticNames = map[Semantic]string{
	ColorMapUniform:                    "uColorMap",
	ProjectionMatrixUniform:            "uPMatrix",
	ViewMatrixUniform:                  "uVMatrix",
	ModelMatrixUniform:                 "uMMatrix",
	NormalMatrixUniform:                "uNMatrix",
	UseShadowMapUniform:                "uUseShadowMap",
	ShadowMapUniform:                   "uShadowMap",
	LightSourceProjectionMatrixUniform: "uLightSourceProjectionMatrix",
	LightSourceViewMatrixUniform:       "uLightSourceViewMatrix",
	LinearDepthConstantUniform:         "uLinearDepthConstant",
	GBufferColorMapUniform:             "uColorMap",
	GBufferPositionMapUniform:          "uPositionMap",
	GBufferNormalMapUniform:            "uNormalMap",
	GBufferEmissiveMapUniform:          "uEmissiveMap",
	JointWorldMatrixUniform:            "uJoints[%d].worldMatrix",
	JointInverseBindMatrixUniform:      "uJoints[%d].invBindMatrix",
}

// Slot addresses a semantic, or one element of an indexed semantic.
type Slot struct {
	Semantic Semantic
	Index    int
}

func (s Semantic) Slot() Slot { return Slot{Semantic: s} }

func (s Semantic) At(index int) Slot { return Slot{Semantic: s, Index: index} }

func (s Slot) String() string {
	name, ok := semanticNames[s.Semantic]
	if !ok {
		return fmt.Sprintf("semantic(%d)[%d]", int(s.Semantic), s.Index)
	}
	if s.Semantic == JointWorldMatrixUniform || s.Semantic == JointInverseBindMatrixUniform {
		return fmt.Sprintf(name, s.Index)
	}
	return name
}

// Program names looked up through Renderer.ShaderProgram. The names are a
// contract with the shader assets.
const (
	ProgramDeferredCompose = "deferredCompose"
	ProgramScreen          = "screen"
)

type ShaderProgram struct {
	Name string
}

func NewShaderProgram(name string) *ShaderProgram {
	return &ShaderProgram{Name: name}
}

// Transformations are the matrices applied to a draw.
type Transformations struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
	Normal     mgl32.Mat3
}

// Renderer is the graphics backend consumed by render passes.
type Renderer interface {
	// ScreenBuffer is the presentation target; its size drives lazily built
	// offscreen buffers.
	ScreenBuffer() *FrameBuffer

	BindFrameBuffer(fb *FrameBuffer)
	UnbindFrameBuffer(fb *FrameBuffer)

	BindProgram(p *ShaderProgram)
	UnbindProgram(p *ShaderProgram)

	BindMaterial(p *ShaderProgram, m *core.Material)
	UnbindMaterial(p *ShaderProgram, m *core.Material)

	BindVertexBuffer(p *ShaderProgram, vb *core.VertexBuffer)
	UnbindVertexBuffer(p *ShaderProgram, vb *core.VertexBuffer)
	BindIndexBuffer(p *ShaderProgram, ib *core.IndexBuffer)
	UnbindIndexBuffer(p *ShaderProgram, ib *core.IndexBuffer)

	BindLight(p *ShaderProgram, l *core.Light)
	UnbindLight(p *ShaderProgram, l *core.Light)

	BindMatrix(p *ShaderProgram, slot Slot, m mgl32.Mat4)
	BindFloat(p *ShaderProgram, slot Slot, v float32)
	BindBool(p *ShaderProgram, slot Slot, v bool)
	BindTexture(p *ShaderProgram, slot Slot, t *Texture)
	UnbindTexture(p *ShaderProgram, slot Slot, t *Texture)

	SetAlphaState(enabled bool)
	SetDepthState(enabled bool)

	ApplyTransformations(p *ShaderProgram, t Transformations)
	RestoreTransformations(p *ShaderProgram, t Transformations)

	DrawPrimitive(p *ShaderProgram, prim *core.Primitive)

	// DepthProgram, DeferredPassProgram and ShaderProgram return nil when the
	// backend has no such program.
	DepthProgram() *ShaderProgram
	DeferredPassProgram() *ShaderProgram
	ShaderProgram(name string) *ShaderProgram
}

// FrameRenderer is implemented by backends that need per-frame setup and
// teardown, such as clearing and swapping the screen buffer.
type FrameRenderer interface {
	BeginRender()
	EndRender()
}
