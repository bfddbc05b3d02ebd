package lumen

// Module installs resources, tasks and message handlers into a Simulation.
type Module interface {
	Install(sim *Simulation, cmd *Commands)
}

type SimulationBuilder struct {
	sim     *Simulation
	modules []Module
}

func NewSimulationBuilder() *SimulationBuilder {
	return &SimulationBuilder{sim: NewSimulation("lumen")}
}

func (b *SimulationBuilder) Named(name string) *SimulationBuilder {
	b.sim.name = name
	return b
}

func (b *SimulationBuilder) UseModule(modules ...Module) *SimulationBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs the modules in registration order.
func (b *SimulationBuilder) Build() *Simulation {
	sim := b.sim
	sim.UseModules(b.modules...)
	return sim
}

func (sim *Simulation) UseModules(modules ...Module) *Simulation {
	commands := sim.Commands()
	for _, module := range modules {
		module.Install(sim, commands)
		sim.modules = append(sim.modules, module)
	}
	return sim
}
