package lumen

import (
	"fmt"
	"slices"
)

// Priority orders tasks within a frame, lowest first.
type Priority int

const (
	PriorityHighest       Priority = 0
	PriorityBeginRender   Priority = 1000
	PriorityUpdateScene   Priority = 2000
	PriorityUpdatePhysics Priority = 3000
	PriorityRenderScene   Priority = 4000
	PriorityEndRender     Priority = 5000
	PriorityLowest        Priority = 10000
)

func (p Priority) String() string {
	switch p {
	case PriorityHighest:
		return "Highest"
	case PriorityBeginRender:
		return "BeginRender"
	case PriorityUpdateScene:
		return "UpdateScene"
	case PriorityUpdatePhysics:
		return "UpdatePhysics"
	case PriorityRenderScene:
		return "RenderScene"
	case PriorityEndRender:
		return "EndRender"
	case PriorityLowest:
		return "Lowest"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

type TaskFn func(sim *Simulation, cmd *Commands)

type scheduledTask struct {
	name     string
	priority Priority
	fn       TaskFn
	onStart  func(sim *Simulation)
	onStop   func(sim *Simulation)
}

type taskScheduleBuilder struct {
	name     string
	priority Priority
	fn       TaskFn
	onStart  func(sim *Simulation)
	onStop   func(sim *Simulation)
}

// Task starts the description of a frame task. Tasks default to
// PriorityUpdateScene.
func Task(fn TaskFn) taskScheduleBuilder {
	return taskScheduleBuilder{
		fn:       fn,
		priority: PriorityUpdateScene,
	}
}

func (sched taskScheduleBuilder) Named(name string) taskScheduleBuilder {
	sched.name = name
	return sched
}

func (sched taskScheduleBuilder) WithPriority(p Priority) taskScheduleBuilder {
	sched.priority = p
	return sched
}

// OnStart runs fn when the simulation starts, or right away for tasks added
// to a running simulation.
func (sched taskScheduleBuilder) OnStart(fn func(sim *Simulation)) taskScheduleBuilder {
	sched.onStart = fn
	return sched
}

// OnStop runs fn when the simulation shuts down.
func (sched taskScheduleBuilder) OnStop(fn func(sim *Simulation)) taskScheduleBuilder {
	sched.onStop = fn
	return sched
}

// UseTask inserts a task after every task of lower or equal priority.
func (sim *Simulation) UseTask(sched taskScheduleBuilder) *Simulation {
	if sched.fn == nil {
		panic(fmt.Sprintf("Task %q has no function", sched.name))
	}

	t := &scheduledTask{
		name:     sched.name,
		priority: sched.priority,
		fn:       sched.fn,
		onStart:  sched.onStart,
		onStop:   sched.onStop,
	}

	insertAt := len(sim.tasks)
	for i, existing := range sim.tasks {
		if existing.priority > t.priority {
			insertAt = i
			break
		}
	}
	sim.tasks = slices.Insert(sim.tasks, insertAt, t)

	if sim.started {
		sim.startTask(t)
	}
	return sim
}

func (sim *Simulation) startTask(t *scheduledTask) {
	if t.onStart != nil {
		t.onStart(sim)
	}
}

// TaskNames lists the scheduled tasks in execution order.
func (sim *Simulation) TaskNames() []string {
	names := make([]string, 0, len(sim.tasks))
	for _, t := range sim.tasks {
		names = append(names, t.name)
	}
	return names
}
