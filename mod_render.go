package lumen

import (
	"github.com/gekko3d/lumen/rt/core"
	"github.com/gekko3d/lumen/rt/render"
)

// Graphics is the renderer resource installed by RenderModule.
type Graphics struct {
	Name     RendererName
	Renderer render.Renderer
	Pass     *render.DeferredRenderPass

	queue *render.RenderQueue
}

// RenderModule installs a renderer and the deferred pass drawing every
// scene camera. Zero ShadowMapResolution keeps the pass default.
type RenderModule struct {
	Name                RendererName
	Renderer            render.Renderer
	ShadowMapResolution int
	ImageEffects        []render.ImageEffect
	// ExitFunc replaces os.Exit on fatal render configuration errors.
	ExitFunc func(code int)
}

func (mod RenderModule) Install(sim *Simulation, cmd *Commands) {
	if mod.Renderer == nil {
		panic("RenderModule: Renderer is nil")
	}
	name := mod.Name
	if name == "" {
		name = RendererHeadless
	}
	opts := []render.DeferredOption{
		render.WithImageEffects(mod.ImageEffects...),
		render.WithShadowMapResolution(mod.ShadowMapResolution),
	}
	if mod.ExitFunc != nil {
		opts = append(opts, render.WithExitFunc(mod.ExitFunc))
	}
	sim.UseRenderer(name, mod.Renderer, opts...)
}

func beginRenderTask(sim *Simulation, cmd *Commands) {
	g, ok := Resource[Graphics](sim)
	if !ok {
		return
	}
	if fr, ok := g.Renderer.(render.FrameRenderer); ok {
		fr.BeginRender()
	}
}

func endRenderTask(sim *Simulation, cmd *Commands) {
	g, ok := Resource[Graphics](sim)
	if !ok {
		return
	}
	if fr, ok := g.Renderer.(render.FrameRenderer); ok {
		fr.EndRender()
	}
}

// renderSceneTask renders the scene once per camera. A fatal render error
// abandons the rest of the frame.
func renderSceneTask(sim *Simulation, cmd *Commands) {
	g, ok := Resource[Graphics](sim)
	if !ok || sim.scene == nil {
		return
	}

	var failed bool
	sim.EachCamera(func(camera *core.Camera) {
		if failed {
			return
		}
		g.queue.Reset()
		g.queue.Camera = camera
		sim.scene.Perform(g.queue.Collect())

		if err := g.Pass.Render(g.Renderer, g.queue, camera); err != nil {
			failed = true
			return
		}
		sim.BroadcastMessage(Message{Kind: DidRenderScene, Scene: sim.scene, Camera: camera})
	})
}
