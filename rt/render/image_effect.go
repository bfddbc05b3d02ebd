package render

import (
	"github.com/gekko3d/lumen/rt/core"
)

// ImageEffect is a full screen post-process step. Inputs are, in order, the
// composite frame, then the color, position, normal and emissive G-buffer
// outputs. Effects render into output.
type ImageEffect interface {
	Apply(r Renderer, inputs []*Texture, screen *core.Primitive, output *FrameBuffer)
}

// ImageEffectFunc adapts a function to ImageEffect.
type ImageEffectFunc func(r Renderer, inputs []*Texture, screen *core.Primitive, output *FrameBuffer)

func (f ImageEffectFunc) Apply(r Renderer, inputs []*Texture, screen *core.Primitive, output *FrameBuffer) {
	f(r, inputs, screen, output)
}

// NewScreenPrimitive is the full screen quad in normalized device coordinates.
func NewScreenPrimitive() *core.Primitive {
	return core.NewQuadPrimitive(2, 2)
}

// present draws texture as a full screen quad using the "screen" program.
// Backends without one skip presentation.
func present(r Renderer, logger core.Logger, screen *core.Primitive, texture *Texture) {
	program := r.ShaderProgram(ProgramScreen)
	if program == nil {
		logger.Warnf("render: no %q program, skipping presentation", ProgramScreen)
		return
	}

	r.BindProgram(program)
	r.BindTexture(program, ColorMapUniform.Slot(), texture)
	r.BindVertexBuffer(program, screen.VertexBuffer)
	r.BindIndexBuffer(program, screen.IndexBuffer)

	r.DrawPrimitive(program, screen)

	r.UnbindVertexBuffer(program, screen.VertexBuffer)
	r.UnbindIndexBuffer(program, screen.IndexBuffer)
	r.UnbindTexture(program, ColorMapUniform.Slot(), texture)
	r.UnbindProgram(program)
}
