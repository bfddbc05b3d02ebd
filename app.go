package lumen

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gekko3d/lumen/rt/core"
)

// Simulation owns the scene, the simulation clock and the ordered task list
// run once per frame by Step.
type Simulation struct {
	name      string
	modules   []Module
	tasks     []*scheduledTask
	resources map[reflect.Type]any

	clock   *core.Clock
	scene   *core.Node
	cameras *core.Pool[core.Camera]

	handlers map[MessageKind][]MessageHandler
	messages []Message

	started       bool
	stopped       bool
	stopRequested bool

	// Command buffering
	pendingScene *pendingScene
}

type pendingScene struct {
	scene *core.Node
}

func NewSimulation(name string) *Simulation {
	return &Simulation{
		name:      name,
		resources: make(map[reflect.Type]any),
		clock:     core.NewClock(),
		cameras:   core.NewPool[core.Camera](),
		handlers:  make(map[MessageKind][]MessageHandler),
	}
}

func (sim *Simulation) Name() string { return sim.name }

func (sim *Simulation) Clock() *core.Clock { return sim.clock }

func (sim *Simulation) Commands() *Commands {
	return &Commands{sim: sim}
}

// Start registers the frame tasks. Step and Run call it on first use.
func (sim *Simulation) Start() {
	if sim.started {
		return
	}

	sim.UseTask(Task(dispatchMessagesTask).Named("dispatch messages").WithPriority(PriorityHighest))
	sim.UseTask(Task(beginRenderTask).Named("begin render").WithPriority(PriorityBeginRender))
	sim.UseTask(Task(endRenderTask).Named("end render").WithPriority(PriorityEndRender))
	sim.UseTask(Task(updateSceneTask).Named("update scene").WithPriority(PriorityUpdateScene))
	sim.UseTask(Task(updatePhysicsTask).Named("update physics").WithPriority(PriorityUpdatePhysics))
	sim.UseTask(Task(renderSceneTask).Named("render scene").WithPriority(PriorityRenderScene))

	sim.started = true
	for _, t := range sim.tasks {
		sim.startTask(t)
	}
	sim.Logger().Infof("Simulation %q started with %d tasks", sim.name, len(sim.tasks))
}

// Step runs every task once, in priority order, and reports whether the
// simulation should keep going. A stop requested during the step lets the
// step finish first. Tasks added during a step run from the next step on.
func (sim *Simulation) Step() bool {
	if sim.stopped {
		return false
	}
	sim.Start()

	if sim.stopRequested {
		sim.shutdown()
		return false
	}

	cmd := sim.Commands()
	for _, t := range slices.Clone(sim.tasks) {
		t.fn(sim, cmd)
		sim.FlushCommands()
	}

	if sim.stopRequested {
		sim.shutdown()
		return false
	}
	return true
}

func (sim *Simulation) Run() {
	sim.Start()
	for sim.Step() {
	}
}

// Stop makes the simulation end at the next step boundary.
func (sim *Simulation) Stop() {
	sim.stopRequested = true
}

func (sim *Simulation) Stopped() bool { return sim.stopped }

func (sim *Simulation) shutdown() {
	if sim.stopped {
		return
	}
	sim.stopped = true
	for _, t := range sim.tasks {
		if t.onStop != nil {
			t.onStop(sim)
		}
	}
	sim.Logger().Infof("Simulation %q stopped", sim.name)
}

// Scene returns the active scene, or nil.
func (sim *Simulation) Scene() *core.Node { return sim.scene }

// SetScene makes scene the active one. World and render state are
// propagated, components started and the scene cameras collected before a
// SceneLoaded message is posted. A nil scene clears the simulation.
func (sim *Simulation) SetScene(scene *core.Node) {
	sim.scene = scene
	sim.cameras.Clear()

	if scene == nil {
		return
	}

	scene.Perform(core.UpdateWorldState())
	scene.Perform(core.UpdateRenderState())
	scene.Perform(core.StartComponents())

	fetch := &core.FetchCameras{}
	scene.Perform(fetch.Visitor())
	if fetch.HasCameras() {
		fetch.EachCamera(func(c *core.Camera) {
			sim.cameras.Add(c)
		})
	}

	sim.Logger().Infof("Scene %q loaded with %d cameras", scene.Name, sim.cameras.Count())
	sim.PostMessage(Message{Kind: SceneLoaded, Scene: scene})
}

func (sim *Simulation) CameraCount() int { return sim.cameras.Count() }

func (sim *Simulation) EachCamera(fn func(*core.Camera)) {
	sim.cameras.Each(func(c *core.Camera, _ int) {
		fn(c)
	})
}

func (sim *Simulation) addResources(resources ...any) *Simulation {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := sim.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		sim.resources[resourceType.Elem()] = resource
	}
	return sim
}

// Resource fetches the resource of type *T installed by a module.
func Resource[T any](sim *Simulation) (*T, bool) {
	res, ok := sim.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

func (sim *Simulation) FlushCommands() {
	if sim.pendingScene != nil {
		pending := sim.pendingScene
		sim.pendingScene = nil
		sim.SetScene(pending.scene)
	}
}
