package lumen

import (
	"testing"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeModule_FixedStep(t *testing.T) {
	sim := NewSimulationBuilder().UseModule(TimeModule{FixedStep: 0.5}).Build()

	for i := 0; i < 4; i++ {
		require.True(t, sim.Step())
	}
	assert.InDelta(t, 2.0, sim.Clock().AccumTime(), 1e-9)
	assert.InDelta(t, 0.5, sim.Clock().DeltaTime(), 1e-9)

	names := sim.TaskNames()
	assert.Equal(t, []string{"dispatch messages", "update time", "begin render"}, names[:3])
}

func TestTimeModule_ResetOnMessages(t *testing.T) {
	sim := NewSimulationBuilder().UseModule(TimeModule{FixedStep: 0.25}).Build()

	for i := 0; i < 4; i++ {
		require.True(t, sim.Step())
	}
	require.InDelta(t, 1.0, sim.Clock().AccumTime(), 1e-9)

	sim.PostMessage(Message{Kind: ResetSimulationTime})
	require.True(t, sim.Step())
	assert.InDelta(t, 0.25, sim.Clock().AccumTime(), 1e-9, "reset is dispatched before the clock advances")

	require.True(t, sim.Step())
	sim.SetScene(core.NewNode("scene"))
	require.True(t, sim.Step())
	assert.InDelta(t, 0.25, sim.Clock().AccumTime(), 1e-9, "scene loads reset the clock")
}

func TestUpdateTime_WallClock(t *testing.T) {
	clock := core.NewClock()
	updateTime(clock, 0)
	assert.GreaterOrEqual(t, clock.DeltaTime(), 0.0)
	assert.InDelta(t, clock.DeltaTime(), clock.AccumTime(), 1e-9)

	updateTime(clock, 0.1)
	assert.InDelta(t, 0.1, clock.DeltaTime(), 1e-9)
}
