package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicsModule_StepsWithFrameDelta(t *testing.T) {
	var deltas []float64
	stepper := PhysicsStepperFunc(func(sim *Simulation, dt float64) {
		deltas = append(deltas, dt)
	})

	sim := NewSimulationBuilder().
		UseModule(TimeModule{FixedStep: 0.25}, PhysicsModule{Stepper: stepper}).
		Build()

	require.True(t, sim.Step())
	require.True(t, sim.Step())
	assert.Equal(t, []float64{0.25, 0.25}, deltas)

	physics, ok := Resource[Physics](sim)
	require.True(t, ok)
	assert.Equal(t, 2, physics.Steps())

	physics.Paused = true
	require.True(t, sim.Step())
	assert.Len(t, deltas, 2)
}

func TestPhysicsModule_RunsAfterSceneUpdate(t *testing.T) {
	var order []string
	stepper := PhysicsStepperFunc(func(*Simulation, float64) { order = append(order, "physics") })

	sim := NewSimulationBuilder().UseModule(PhysicsModule{Stepper: stepper}).Build()
	sim.UseTask(Task(func(*Simulation, *Commands) { order = append(order, "scene") }).WithPriority(PriorityUpdateScene))
	sim.UseTask(Task(func(*Simulation, *Commands) { order = append(order, "render") }).WithPriority(PriorityRenderScene))

	require.True(t, sim.Step())
	assert.Equal(t, []string{"scene", "physics", "render"}, order)
}

func TestPhysicsModule_RequiresStepper(t *testing.T) {
	assert.PanicsWithValue(t, "PhysicsModule: Stepper is nil", func() {
		NewSimulationBuilder().UseModule(PhysicsModule{}).Build()
	})
}
