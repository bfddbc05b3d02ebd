package headless

import (
	"testing"

	"github.com/gekko3d/lumen/rt/core"
	"github.com/gekko3d/lumen/rt/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Programs(t *testing.T) {
	r := New(800, 600)
	require.NotNil(t, r.ScreenBuffer())
	assert.Equal(t, 800, r.ScreenBuffer().Width)
	assert.NotNil(t, r.DepthProgram())
	assert.NotNil(t, r.DeferredPassProgram())
	assert.NotNil(t, r.ShaderProgram(render.ProgramDeferredCompose))
	assert.NotNil(t, r.ShaderProgram(render.ProgramScreen))
	assert.Nil(t, r.ShaderProgram("bloom"))

	bare := New(1, 1, WithoutPrograms(), WithProgram("bloom"))
	assert.Nil(t, bare.DepthProgram())
	assert.Nil(t, bare.DeferredPassProgram())
	assert.Nil(t, bare.ShaderProgram(render.ProgramScreen))
	assert.NotNil(t, bare.ShaderProgram("bloom"))

	noDepth := New(1, 1, WithoutProgram(DepthProgramName))
	assert.Nil(t, noDepth.DepthProgram())
	assert.NotNil(t, noDepth.DeferredPassProgram())
}

func TestRenderer_Records(t *testing.T) {
	r := New(2, 2)
	p := r.ShaderProgram(render.ProgramScreen)
	quad := core.NewQuadPrimitive(1, 1)

	r.BeginRender()
	r.BindProgram(p)
	r.BindFloat(p, render.LinearDepthConstantUniform.Slot(), 0.5)
	r.DrawPrimitive(p, quad)
	r.UnbindProgram(p)
	r.EndRender()

	require.Len(t, r.Calls(), 6)
	assert.Equal(t, []string{render.ProgramScreen}, r.Draws())
	assert.Same(t, quad, r.CallsOf(OpDrawPrimitive)[0].Primitive)
	assert.InDelta(t, 0.5, r.CallsOf(OpBindFloat)[0].Float, 1e-9)
	assert.Equal(t, "BindProgram(screen uColorMap)", r.Calls()[1].String())
	assert.Equal(t, 1, r.Frames())

	r.Reset()
	assert.Empty(t, r.Calls())
	assert.Equal(t, 1, r.Frames())
}

func TestRenderer_FrameHistory(t *testing.T) {
	r := New(2, 2, WithFrameHistory(2))
	p := r.ShaderProgram(render.ProgramScreen)
	quad := core.NewQuadPrimitive(1, 1)

	frame := func(draws int) {
		r.BeginRender()
		for i := 0; i < draws; i++ {
			r.DrawPrimitive(p, quad)
		}
		r.EndRender()
	}

	frame(1)
	frame(2)
	assert.Len(t, r.Calls(), 7)

	for i := 0; i < 100; i++ {
		frame(3)
	}
	assert.Equal(t, 102, r.Frames())
	require.Len(t, r.Calls(), 10, "two frames of five calls")
	assert.Equal(t, OpBeginRender, r.Calls()[0].Op)
	assert.Equal(t, OpBeginRender, r.Calls()[5].Op)
	assert.Len(t, r.Draws(), 6)

	r.Reset()
	frame(1)
	assert.Len(t, r.Calls(), 3)
}

func TestRenderer_KeepsEverythingByDefault(t *testing.T) {
	r := New(2, 2)
	for i := 0; i < 10; i++ {
		r.BeginRender()
		r.EndRender()
	}
	assert.Len(t, r.Calls(), 20)
}
