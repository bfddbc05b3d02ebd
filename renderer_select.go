package lumen

import (
	"github.com/gekko3d/lumen/rt/render"
	"github.com/gekko3d/lumen/rt/render/headless"
)

// RendererName identifies a concrete renderer backend.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererHeadless RendererName = "headless"
)

// UseRenderer installs exactly one renderer, enforcing exclusivity via
// ensureSingleRenderer, and the deferred pass that draws with it.
// Usage:
//
//	sim.UseRenderer("gl", backend, render.WithShadowMapResolution(1024))
func (sim *Simulation) UseRenderer(name RendererName, r render.Renderer, opts ...render.DeferredOption) *Simulation {
	ensureSingleRenderer(sim, string(name))
	sim.Logger().Infof("Renderer selected: %s", name)

	opts = append([]render.DeferredOption{render.WithLogger(simLogger{sim: sim})}, opts...)
	sim.addResources(&Graphics{
		Name:     name,
		Renderer: r,
		Pass:     render.NewDeferredRenderPass(opts...),
		queue:    render.NewRenderQueue(nil),
	})
	return sim
}

// UseHeadless selects a recording renderer with a width x height screen.
// Only the latest frame's calls are kept. The renderer is returned for
// inspection.
func (sim *Simulation) UseHeadless(width, height int, opts ...render.DeferredOption) *headless.Renderer {
	r := headless.New(width, height, headless.WithFrameHistory(1))
	sim.UseRenderer(RendererHeadless, r, opts...)
	return r
}

// Graphics returns the installed renderer resource, or nil.
func (sim *Simulation) Graphics() *Graphics {
	g, _ := Resource[Graphics](sim)
	return g
}
