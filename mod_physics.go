package lumen

// PhysicsStepper advances a physics world by dt seconds. The simulation
// treats it as opaque.
type PhysicsStepper interface {
	Step(sim *Simulation, dt float64)
}

type PhysicsStepperFunc func(sim *Simulation, dt float64)

func (f PhysicsStepperFunc) Step(sim *Simulation, dt float64) { f(sim, dt) }

// Physics is the resource installed by PhysicsModule.
type Physics struct {
	Stepper PhysicsStepper
	Paused  bool

	steps int
}

// Steps counts the stepper invocations so far.
func (p *Physics) Steps() int { return p.steps }

type PhysicsModule struct {
	Stepper PhysicsStepper
}

func (mod PhysicsModule) Install(sim *Simulation, cmd *Commands) {
	if mod.Stepper == nil {
		panic("PhysicsModule: Stepper is nil")
	}
	cmd.AddResources(&Physics{Stepper: mod.Stepper})
}

func updatePhysicsTask(sim *Simulation, cmd *Commands) {
	p, ok := Resource[Physics](sim)
	if !ok || p.Paused {
		return
	}
	p.Stepper.Step(sim, sim.clock.DeltaTime())
	p.steps++
}
