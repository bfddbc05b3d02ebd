package render

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/lumen/rt/anim"
	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrDeferredUnsupported   = errors.New("deferred rendering not supported by the renderer")
	ErrComposeProgramMissing = errors.New("cannot find shader program for composite deferred scene")
)

type DeferredOption func(*DeferredRenderPass)

func WithLogger(logger core.Logger) DeferredOption {
	return func(p *DeferredRenderPass) { p.logger = logger }
}

func WithImageEffects(effects ...ImageEffect) DeferredOption {
	return func(p *DeferredRenderPass) { p.imageEffects = append(p.imageEffects, effects...) }
}

// WithShadowMapResolution sets the square size of shadow maps created from
// now on. Zero keeps DefaultShadowMapResolution.
func WithShadowMapResolution(size int) DeferredOption {
	return func(p *DeferredRenderPass) { p.shadowMapResolution = size }
}

// WithExitFunc replaces the process exit invoked on fatal configuration
// errors. Render still returns the error when exit returns.
func WithExitFunc(exit func(code int)) DeferredOption {
	return func(p *DeferredRenderPass) { p.exit = exit }
}

// DeferredRenderPass renders a queue in four steps: shadow maps, G-buffer,
// lit composite and presentation (optionally through image effects).
type DeferredRenderPass struct {
	logger              core.Logger
	exit                func(code int)
	imageEffects        []ImageEffect
	shadowMapResolution int

	shadowMaps    map[*core.Light]*ShadowMap
	shadowMapList *core.Pool[ShadowMap]

	gBuffer               *FrameBuffer
	gBufferColorOutput    *Texture
	gBufferPositionOutput *Texture
	gBufferNormalOutput   *Texture
	gBufferEmissiveOutput *Texture

	accumBuffer       *FrameBuffer
	accumBufferOutput *Texture

	frameBuffer       *FrameBuffer
	frameBufferOutput *Texture

	screen *core.Primitive
}

func NewDeferredRenderPass(opts ...DeferredOption) *DeferredRenderPass {
	p := &DeferredRenderPass{
		logger:        core.NewNopLogger(),
		exit:          os.Exit,
		shadowMaps:    make(map[*core.Light]*ShadowMap),
		shadowMapList: core.NewPool[ShadowMap](),
		screen:        NewScreenPrimitive(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *DeferredRenderPass) ImageEffects() []ImageEffect { return p.imageEffects }

func (p *DeferredRenderPass) AddImageEffect(effect ImageEffect) {
	p.imageEffects = append(p.imageEffects, effect)
}

// ShadowMap returns the cached map of light, or nil.
func (p *DeferredRenderPass) ShadowMap(light *core.Light) *ShadowMap {
	return p.shadowMaps[light]
}

func (p *DeferredRenderPass) ShadowMapCount() int { return p.shadowMapList.Count() }

// ForgetLight releases the shadow map of a light leaving the scene.
func (p *DeferredRenderPass) ForgetLight(light *core.Light) {
	sm, ok := p.shadowMaps[light]
	if !ok {
		return
	}
	delete(p.shadowMaps, light)
	p.shadowMapList.Remove(sm)
}

// Resize drops the screen sized buffers. They are rebuilt at the next frame
// from the renderer's screen buffer.
func (p *DeferredRenderPass) Resize() {
	p.gBuffer = nil
	p.gBufferColorOutput = nil
	p.gBufferPositionOutput = nil
	p.gBufferNormalOutput = nil
	p.gBufferEmissiveOutput = nil
	p.accumBuffer = nil
	p.accumBufferOutput = nil
	p.frameBuffer = nil
	p.frameBufferOutput = nil
}

func (p *DeferredRenderPass) GBuffer() *FrameBuffer     { return p.gBuffer }
func (p *DeferredRenderPass) AccumBuffer() *FrameBuffer { return p.accumBuffer }
func (p *DeferredRenderPass) FrameBuffer() *FrameBuffer { return p.frameBuffer }

// Render draws one frame of q as seen by camera. Missing required programs
// are fatal: the error is logged, the exit hook runs and, if it returns, the
// error is returned with the frame abandoned.
func (p *DeferredRenderPass) Render(r Renderer, q *RenderQueue, camera *core.Camera) error {
	screen := r.ScreenBuffer()
	if screen == nil {
		p.logger.Warnf("render: renderer has no screen buffer, skipping frame")
		return nil
	}

	p.computeShadowMaps(r, q)

	if err := p.renderToGBuffer(r, q, camera, screen); err != nil {
		return p.fatal(err)
	}
	if err := p.composeFrame(r, q, camera, screen); err != nil {
		return p.fatal(err)
	}

	if len(p.imageEffects) == 0 {
		present(r, p.logger, p.screen, p.frameBufferOutput)
		return nil
	}

	inputs := []*Texture{
		p.frameBufferOutput,
		p.gBufferColorOutput,
		p.gBufferPositionOutput,
		p.gBufferNormalOutput,
		p.gBufferEmissiveOutput,
	}
	for _, effect := range p.imageEffects {
		effect.Apply(r, inputs, p.screen, p.accumBuffer)
	}
	present(r, p.logger, p.screen, p.accumBufferOutput)
	return nil
}

func (p *DeferredRenderPass) fatal(err error) error {
	p.logger.Errorf("render: %v", err)
	p.exit(1)
	return err
}

func (p *DeferredRenderPass) newShadowMap(light *core.Light) *ShadowMap {
	var buffer *FrameBuffer
	if p.shadowMapResolution > 0 {
		buffer = NewShadowFrameBuffer(p.shadowMapResolution, p.shadowMapResolution)
	}
	sm := NewShadowMap(light, buffer)
	sm.Buffer().ClearColor = mgl32.Vec4{1, 1, 1, 1}

	p.shadowMaps[light] = sm
	p.shadowMapList.Add(sm)
	p.logger.Debugf("render: shadow map %dx%d allocated", sm.Buffer().Width, sm.Buffer().Height)
	return sm
}

func (p *DeferredRenderPass) computeShadowMaps(r Renderer, q *RenderQueue) {
	program := r.DepthProgram()
	if program == nil {
		return
	}

	r.BindProgram(program)

	q.EachLight(func(light *core.Light) {
		if !light.CastShadows {
			return
		}

		sm := p.shadowMaps[light]
		if sm == nil {
			sm = p.newShadowMap(light)
		}
		sm.SetLightProjectionMatrix(light.ComputeProjectionMatrix())
		sm.SetLightViewMatrix(light.ComputeViewMatrix())

		r.BindFrameBuffer(sm.Buffer())
		r.SetAlphaState(false)
		r.SetDepthState(true)
		r.BindFloat(program, LinearDepthConstantUniform.Slot(), sm.LinearDepthConstant())

		q.EachOpaque(func(node *core.Node) {
			rs := node.RenderState()
			if rs == nil || !rs.HasMaterials() {
				return
			}
			node.Geometry().EachPrimitive(func(prim *core.Primitive) {
				bindJoints(r, program, node)

				r.BindVertexBuffer(program, prim.VertexBuffer)
				r.BindIndexBuffer(program, prim.IndexBuffer)

				r.ApplyTransformations(program, Transformations{
					Projection: sm.LightProjectionMatrix(),
					View:       sm.LightViewMatrix(),
					Model:      node.World.ModelMatrix(),
					Normal:     node.World.NormalMatrix(),
				})

				r.DrawPrimitive(program, prim)

				r.UnbindVertexBuffer(program, prim.VertexBuffer)
				r.UnbindIndexBuffer(program, prim.IndexBuffer)
			})
		})

		r.UnbindFrameBuffer(sm.Buffer())
	})

	r.UnbindProgram(program)
}

// bindJoints binds the skinning matrices of node's skin, if any.
func bindJoints(r Renderer, program *ShaderProgram, node *core.Node) {
	skin := anim.SkinOf(node)
	if skin == nil || !skin.HasJoints() {
		return
	}
	skin.EachJoint(func(_ *core.Node, joint *anim.JointComponent, index int) {
		r.BindMatrix(program, JointWorldMatrixUniform.At(index), joint.WorldMatrix())
		r.BindMatrix(program, JointInverseBindMatrixUniform.At(index), joint.InverseBindMatrix)
	})
}

func (p *DeferredRenderPass) buildAccumBuffer(width, height int) {
	p.accumBuffer = NewFrameBuffer(width, height)
	p.accumBuffer.AddRenderTarget(NewRenderTarget("depth", RenderTargetDepth16, OutputRender, width, height))
	color := p.accumBuffer.AddRenderTarget(NewRenderTarget("color", RenderTargetColorRGBA, OutputTexture, width, height))
	p.accumBufferOutput = color.Texture()
}

func (p *DeferredRenderPass) buildGBuffer(width, height int) {
	p.gBuffer = NewFrameBuffer(width, height)
	p.gBuffer.AddRenderTarget(NewRenderTarget("depth", RenderTargetDepth16, OutputRender, width, height))

	target := func(name string, float bool) *Texture {
		rt := p.gBuffer.AddRenderTarget(NewRenderTarget(name, RenderTargetColorRGBA, OutputTexture, width, height))
		rt.SetUseFloatTexture(float)
		return rt.Texture()
	}
	p.gBufferColorOutput = target("color", true)
	p.gBufferPositionOutput = target("position", true)
	p.gBufferNormalOutput = target("normal", true)
	p.gBufferEmissiveOutput = target("emissive", false)

	if p.accumBuffer == nil {
		p.buildAccumBuffer(width, height)
	}
}

func (p *DeferredRenderPass) renderToGBuffer(r Renderer, q *RenderQueue, camera *core.Camera, screen *FrameBuffer) error {
	if p.gBuffer == nil {
		p.buildGBuffer(screen.Width, screen.Height)
	}

	var projection, view mgl32.Mat4
	if camera != nil {
		if screen.Height > 0 {
			camera.Aspect = float32(screen.Width) / float32(screen.Height)
		}
		projection, view = camera.ProjectionMatrix(), camera.ViewMatrix()
	} else {
		projection, view = mgl32.Ident4(), mgl32.Ident4()
	}

	r.BindFrameBuffer(p.gBuffer)
	defer r.UnbindFrameBuffer(p.gBuffer)

	var err error
	q.EachOpaque(func(node *core.Node) {
		rs := node.RenderState()
		if rs == nil || err != nil {
			return
		}
		rs.EachMaterial(func(material *core.Material) {
			node.Geometry().EachPrimitive(func(prim *core.Primitive) {
				if err != nil {
					return
				}
				program := r.DeferredPassProgram()
				if program == nil {
					err = ErrDeferredUnsupported
					return
				}

				r.BindProgram(program)
				r.BindMaterial(program, material)
				bindJoints(r, program, node)
				r.BindVertexBuffer(program, prim.VertexBuffer)
				r.BindIndexBuffer(program, prim.IndexBuffer)

				t := Transformations{
					Projection: projection,
					View:       view,
					Model:      node.World.ModelMatrix(),
					Normal:     node.World.NormalMatrix(),
				}
				r.ApplyTransformations(program, t)
				r.DrawPrimitive(program, prim)
				r.RestoreTransformations(program, t)

				r.UnbindVertexBuffer(program, prim.VertexBuffer)
				r.UnbindIndexBuffer(program, prim.IndexBuffer)
				r.UnbindMaterial(program, material)
				r.UnbindProgram(program)
			})
		})
	})
	return err
}

func (p *DeferredRenderPass) buildFrameBuffer(width, height int) {
	p.frameBuffer = NewFrameBuffer(width, height)
	p.frameBuffer.AddRenderTarget(NewRenderTarget("depth", RenderTargetDepth16, OutputRender, width, height))
	color := p.frameBuffer.AddRenderTarget(NewRenderTarget("color", RenderTargetColorRGBA, OutputTexture, width, height))
	p.frameBufferOutput = color.Texture()
}

func (p *DeferredRenderPass) composeFrame(r Renderer, q *RenderQueue, camera *core.Camera, screen *FrameBuffer) error {
	if p.frameBuffer == nil {
		p.buildFrameBuffer(screen.Width, screen.Height)
	}

	r.BindFrameBuffer(p.frameBuffer)
	defer r.UnbindFrameBuffer(p.frameBuffer)

	program := r.ShaderProgram(ProgramDeferredCompose)
	if program == nil {
		return fmt.Errorf("%w %q", ErrComposeProgramMissing, ProgramDeferredCompose)
	}

	r.BindProgram(program)

	// A single set of shadow uniforms: the last shadow-casting light in queue
	// order wins.
	var bound []*ShadowMap
	r.BindBool(program, UseShadowMapUniform.Slot(), false)
	q.EachLight(func(light *core.Light) {
		sm := p.shadowMaps[light]
		if !light.CastShadows || sm == nil {
			return
		}
		r.BindMatrix(program, LightSourceProjectionMatrixUniform.Slot(), sm.LightProjectionMatrix())
		r.BindMatrix(program, LightSourceViewMatrixUniform.Slot(), sm.LightViewMatrix())
		r.BindBool(program, UseShadowMapUniform.Slot(), true)
		r.BindFloat(program, LinearDepthConstantUniform.Slot(), sm.LinearDepthConstant())
		r.BindTexture(program, ShadowMapUniform.Slot(), sm.Texture())
		bound = append(bound, sm)
	})

	q.EachLight(func(light *core.Light) { r.BindLight(program, light) })

	r.BindTexture(program, GBufferColorMapUniform.Slot(), p.gBufferColorOutput)
	r.BindTexture(program, GBufferPositionMapUniform.Slot(), p.gBufferPositionOutput)
	r.BindTexture(program, GBufferNormalMapUniform.Slot(), p.gBufferNormalOutput)
	r.BindTexture(program, GBufferEmissiveMapUniform.Slot(), p.gBufferEmissiveOutput)

	view := mgl32.Ident4()
	if camera != nil {
		view = camera.ViewMatrix()
	}
	r.BindMatrix(program, ViewMatrixUniform.Slot(), view)

	r.BindVertexBuffer(program, p.screen.VertexBuffer)
	r.BindIndexBuffer(program, p.screen.IndexBuffer)
	r.DrawPrimitive(program, p.screen)
	r.UnbindVertexBuffer(program, p.screen.VertexBuffer)
	r.UnbindIndexBuffer(program, p.screen.IndexBuffer)

	r.UnbindTexture(program, GBufferColorMapUniform.Slot(), p.gBufferColorOutput)
	r.UnbindTexture(program, GBufferPositionMapUniform.Slot(), p.gBufferPositionOutput)
	r.UnbindTexture(program, GBufferNormalMapUniform.Slot(), p.gBufferNormalOutput)
	r.UnbindTexture(program, GBufferEmissiveMapUniform.Slot(), p.gBufferEmissiveOutput)

	q.EachLight(func(light *core.Light) { r.UnbindLight(program, light) })

	for _, sm := range bound {
		r.UnbindTexture(program, ShadowMapUniform.Slot(), sm.Texture())
	}

	r.UnbindProgram(program)
	return nil
}
