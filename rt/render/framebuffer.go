package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type RenderTargetType int

const (
	RenderTargetDepth16 RenderTargetType = iota
	RenderTargetColorRGBA
)

type RenderTargetOutput int

const (
	OutputRender RenderTargetOutput = iota
	OutputTexture
	OutputRenderAndTexture
)

// Texture is a GPU texture handle. The backend maps ID to its own resource.
type Texture struct {
	ID     uuid.UUID
	Name   string
	Width  int
	Height int
	Float  bool
}

func NewTexture(name string, width, height int) *Texture {
	return &Texture{
		ID:     uuid.New(),
		Name:   name,
		Width:  width,
		Height: height,
	}
}

type RenderTarget struct {
	Name   string
	Type   RenderTargetType
	Output RenderTargetOutput
	Width  int
	Height int

	texture *Texture
}

// NewRenderTarget allocates a texture when the output is sampled.
func NewRenderTarget(name string, t RenderTargetType, output RenderTargetOutput, width, height int) *RenderTarget {
	rt := &RenderTarget{
		Name:   name,
		Type:   t,
		Output: output,
		Width:  width,
		Height: height,
	}
	if output != OutputRender {
		rt.texture = NewTexture(name, width, height)
	}
	return rt
}

// Texture is nil for render-only targets.
func (rt *RenderTarget) Texture() *Texture { return rt.texture }

func (rt *RenderTarget) SetUseFloatTexture(use bool) {
	if rt.texture != nil {
		rt.texture.Float = use
	}
}

type FrameBuffer struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec4

	targets []*RenderTarget
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:      width,
		Height:     height,
		ClearColor: mgl32.Vec4{0, 0, 0, 0},
	}
}

func (fb *FrameBuffer) AddRenderTarget(rt *RenderTarget) *RenderTarget {
	fb.targets = append(fb.targets, rt)
	return rt
}

// RenderTarget returns nil when no target is named name.
func (fb *FrameBuffer) RenderTarget(name string) *RenderTarget {
	for _, rt := range fb.targets {
		if rt.Name == name {
			return rt
		}
	}
	return nil
}

func (fb *FrameBuffer) RenderTargets() []*RenderTarget { return fb.targets }
