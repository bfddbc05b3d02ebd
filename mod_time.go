package lumen

import (
	"github.com/gekko3d/lumen/rt/core"
)

// TimeModule drives the simulation clock at the start of every frame. With a
// positive FixedStep (seconds) the clock advances by that amount per frame
// instead of following the wall clock.
type TimeModule struct {
	FixedStep float64
}

func (mod TimeModule) Install(sim *Simulation, cmd *Commands) {
	sim.Subscribe(ResetSimulationTime, resetTime)
	sim.Subscribe(SceneLoaded, resetTime)

	step := mod.FixedStep
	cmd.UseTask(
		Task(func(sim *Simulation, cmd *Commands) {
			updateTime(sim.clock, step)
		}).
			Named("update time").
			WithPriority(PriorityBeginRender).
			OnStart(func(sim *Simulation) { sim.clock.Reset() }),
	)
}

func resetTime(sim *Simulation, m Message) {
	sim.clock.Reset()
}

func updateTime(clock *core.Clock, fixedStep float64) {
	if fixedStep > 0 {
		clock.Advance(fixedStep)
		return
	}
	clock.Tick()
}
