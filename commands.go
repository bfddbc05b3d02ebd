package lumen

import (
	"github.com/gekko3d/lumen/rt/core"
)

// Commands are handed to tasks. Scene changes issued through them apply once
// the running task returns.
type Commands struct {
	sim *Simulation
}

func (cmd *Commands) Simulation() *Simulation { return cmd.sim }

func (cmd *Commands) SetScene(scene *core.Node) *Commands {
	cmd.sim.pendingScene = &pendingScene{scene: scene}
	return cmd
}

func (cmd *Commands) Stop() *Commands {
	cmd.sim.Stop()
	return cmd
}

func (cmd *Commands) PostMessage(m Message) *Commands {
	cmd.sim.PostMessage(m)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.sim.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseTask(sched taskScheduleBuilder) *Commands {
	cmd.sim.UseTask(sched)
	return cmd
}
