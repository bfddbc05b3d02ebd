package render

import (
	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowMapResolution is the width and height in texels of a shadow
// map built without an explicit buffer.
const DefaultShadowMapResolution = 2048

// ShadowMap is the offscreen target a shadow-casting light renders depth into.
type ShadowMap struct {
	source  *core.Light
	buffer  *FrameBuffer
	texture *Texture

	lightProjectionMatrix mgl32.Mat4
	lightViewMatrix       mgl32.Mat4
	linearDepthConstant   float32
}

// NewShadowFrameBuffer builds the depth + color pair used by shadow maps.
func NewShadowFrameBuffer(width, height int) *FrameBuffer {
	fb := NewFrameBuffer(width, height)
	fb.AddRenderTarget(NewRenderTarget("depth", RenderTargetDepth16, OutputRender, width, height))
	fb.AddRenderTarget(NewRenderTarget("color", RenderTargetColorRGBA, OutputTexture, width, height))
	return fb
}

// NewShadowMap builds a shadow map for source. A nil buffer gets a default
// DefaultShadowMapResolution square one. The lookup texture is the one of the
// buffer's "color" target.
func NewShadowMap(source *core.Light, buffer *FrameBuffer) *ShadowMap {
	if buffer == nil {
		buffer = NewShadowFrameBuffer(DefaultShadowMapResolution, DefaultShadowMapResolution)
	}

	sm := &ShadowMap{
		source:                source,
		buffer:                buffer,
		lightProjectionMatrix: mgl32.Ident4(),
		lightViewMatrix:       mgl32.Ident4(),
	}
	if color := buffer.RenderTarget("color"); color != nil {
		sm.texture = color.Texture()
	}
	sm.linearDepthConstant = LinearDepthConstant(source.ShadowNearCoeff, source.ShadowFarCoeff)
	return sm
}

// LinearDepthConstant is 1 / (far - near), used by shaders to bring depth into
// [0, 1]. Degenerate ranges yield 0.
func LinearDepthConstant(near, far float32) float32 {
	if far == near {
		return 0
	}
	return 1 / (far - near)
}

func (sm *ShadowMap) Source() *core.Light  { return sm.source }
func (sm *ShadowMap) Buffer() *FrameBuffer { return sm.buffer }
func (sm *ShadowMap) Texture() *Texture    { return sm.texture }

func (sm *ShadowMap) LinearDepthConstant() float32 { return sm.linearDepthConstant }

func (sm *ShadowMap) LightProjectionMatrix() mgl32.Mat4 { return sm.lightProjectionMatrix }
func (sm *ShadowMap) SetLightProjectionMatrix(m mgl32.Mat4) {
	sm.lightProjectionMatrix = m
}

func (sm *ShadowMap) LightViewMatrix() mgl32.Mat4 { return sm.lightViewMatrix }
func (sm *ShadowMap) SetLightViewMatrix(m mgl32.Mat4) {
	sm.lightViewMatrix = m
}
