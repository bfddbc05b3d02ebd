package lumen

import (
	"testing"

	"github.com/gekko3d/lumen/rt/anim"
	"github.com/gekko3d/lumen/rt/core"
	"github.com/gekko3d/lumen/rt/render"
	"github.com/gekko3d/lumen/rt/render/headless"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkerMesh() *anim.SkinnedMesh {
	skeleton := anim.NewSkeleton()
	skeleton.AddJoint("hip", mgl32.Ident4())
	skeleton.AddJoint("spine", mgl32.Translate3D(0, -1, 0))
	skeleton.AddClip(anim.NewAnimationClip("walk", 10, 1, &anim.Channel{
		Name: "hip",
		PositionKeys: []anim.VectorKey{
			{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
			{Time: 10, Value: mgl32.Vec3{10, 0, 0}},
		},
	}))
	return anim.NewSkinnedMesh("walker", skeleton, core.NewQuadPrimitive(1, 2))
}

type demo struct {
	sim      *Simulation
	renderer *headless.Renderer
	exits    []int
}

func newDemo(t *testing.T, opts ...headless.Option) *demo {
	t.Helper()
	d := &demo{renderer: headless.New(320, 240, opts...)}
	d.sim = NewSimulationBuilder().
		Named("demo").
		UseModule(
			AssetServerModule{},
			TimeModule{FixedStep: 1},
			RenderModule{
				Renderer:            d.renderer,
				ShadowMapResolution: 256,
				ExitFunc:            func(code int) { d.exits = append(d.exits, code) },
			},
		).
		Build()

	assets := d.sim.Assets()
	walker := assets.LoadSkinnedMesh(walkerMesh())
	quad := assets.CreateQuad(10, 10)
	grey := assets.CreateMaterial(core.NewMaterial("grey"))

	d.sim.SetScene(LoadScene(assets, &SceneDef{
		Name: "demo",
		Cameras: []CameraDef{
			{Position: mgl32.Vec3{0, 2, 10}, Target: mgl32.Vec3{0, 0, 0}},
		},
		Lights: []LightDef{
			{Name: "sun", Type: core.LightTypeDirectional, CastShadows: true},
			{Name: "lamp", Type: core.LightTypePoint, Position: mgl32.Vec3{0, 3, 0}, Range: 20},
		},
		Meshes: []MeshDef{
			{Name: "floor", Primitive: quad, Materials: []AssetId{grey}},
		},
		SkinnedModels: []SkinnedModelDef{
			{Name: "walker", Mesh: walker, Loop: true},
		},
	}))
	return d
}

func TestLoadScene_Layout(t *testing.T) {
	d := newDemo(t)
	scene := d.sim.Scene()
	require.NotNil(t, scene)

	assert.Equal(t, 1, d.sim.CameraCount())
	camera := scene.Find("camera0")
	require.NotNil(t, camera)
	assert.True(t, camera.World.Position.ApproxEqual(mgl32.Vec3{0, 2, 10}), "got %v", camera.World.Position)

	sun := scene.Find("sun")
	require.NotNil(t, sun.Light())
	assert.True(t, sun.Light().CastShadows)
	assert.Equal(t, float32(20), scene.Find("lamp").Light().Range)

	floor := scene.Find("floor")
	require.NotNil(t, floor.RenderState())
	assert.Equal(t, "grey", floor.RenderState().Materials[0].Name)

	walker := scene.Find("walker")
	require.NotNil(t, walker)
	component := anim.SkinnedMeshOf(walker)
	require.NotNil(t, component)
	assert.True(t, component.Playing())

	body := scene.Find("walker.skin")
	require.NotNil(t, body)
	skin := anim.SkinOf(body)
	require.NotNil(t, skin)
	assert.Equal(t, 2, skin.JointCount())
	assert.NotNil(t, anim.JointOf(scene.Find("spine")))
}

func TestSimulation_Frames(t *testing.T) {
	d := newDemo(t)

	rendered := 0
	d.sim.Subscribe(DidRenderScene, func(sim *Simulation, m Message) {
		rendered++
		assert.NotNil(t, m.Camera)
	})

	for i := 0; i < 3; i++ {
		require.True(t, d.sim.Step())
	}

	assert.Equal(t, 3, rendered)
	assert.Equal(t, 3, d.renderer.Frames())
	assert.Empty(t, d.exits)

	hip := d.sim.Scene().Find("hip")
	assert.InDelta(t, 3, hip.Local.Position.X(), 1e-4, "one second of animation per frame")
	assert.InDelta(t, 3, hip.World.Position.X(), 1e-4)

	g := d.sim.Graphics()
	require.NotNil(t, g)
	assert.Equal(t, 1, g.Pass.ShadowMapCount())
	sm := g.Pass.ShadowMap(d.sim.Scene().Find("sun").Light())
	require.NotNil(t, sm)
	assert.Equal(t, 256, sm.Buffer().Width)

	calls := d.renderer.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, headless.OpBeginRender, calls[0].Op)
	assert.Equal(t, headless.OpEndRender, calls[len(calls)-1].Op)

	var joints int
	for _, c := range d.renderer.CallsOf(headless.OpBindMatrix) {
		if c.Slot == render.JointWorldMatrixUniform.At(1) {
			joints++
		}
	}
	assert.Equal(t, 6, joints, "skin joints bound in the depth and geometry passes every frame")
}

func TestSimulation_FatalRenderError(t *testing.T) {
	d := newDemo(t, headless.WithoutProgram(render.ProgramDeferredCompose))

	rendered := 0
	d.sim.Subscribe(DidRenderScene, func(*Simulation, Message) { rendered++ })

	d.sim.Step()
	assert.Equal(t, []int{1}, d.exits)
	assert.Equal(t, 0, rendered)
}

func TestSimulation_UpdateSceneWithoutScene(t *testing.T) {
	sim := NewSimulationBuilder().UseModule(TimeModule{FixedStep: 1}).Build()
	sim.UseHeadless(32, 32)
	assert.True(t, sim.Step())
}
