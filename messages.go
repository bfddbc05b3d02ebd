package lumen

import (
	"fmt"

	"github.com/gekko3d/lumen/rt/core"
)

type MessageKind int

const (
	// ResetSimulationTime asks the time task to restart the clock.
	ResetSimulationTime MessageKind = iota
	// SceneLoaded follows every non-nil SetScene.
	SceneLoaded
	// DidRenderScene is broadcast after each camera's frame is rendered.
	DidRenderScene
)

func (k MessageKind) String() string {
	switch k {
	case ResetSimulationTime:
		return "ResetSimulationTime"
	case SceneLoaded:
		return "SceneLoaded"
	case DidRenderScene:
		return "DidRenderScene"
	}
	return fmt.Sprintf("MessageKind(%d)", int(k))
}

type Message struct {
	Kind   MessageKind
	Scene  *core.Node
	Camera *core.Camera
}

type MessageHandler func(sim *Simulation, m Message)

// Subscribe registers handler for messages of kind. Handlers run in
// subscription order.
func (sim *Simulation) Subscribe(kind MessageKind, handler MessageHandler) {
	sim.handlers[kind] = append(sim.handlers[kind], handler)
}

// PostMessage queues m for the dispatch task of the next step.
func (sim *Simulation) PostMessage(m Message) {
	sim.messages = append(sim.messages, m)
}

// BroadcastMessage delivers m right away.
func (sim *Simulation) BroadcastMessage(m Message) {
	for _, h := range sim.handlers[m.Kind] {
		h(sim, m)
	}
}

func (sim *Simulation) PendingMessages() int { return len(sim.messages) }

// dispatchMessagesTask delivers the queued messages. Messages posted by
// handlers wait for the next step.
func dispatchMessagesTask(sim *Simulation, cmd *Commands) {
	if len(sim.messages) == 0 {
		return
	}
	queued := sim.messages
	sim.messages = nil
	for _, m := range queued {
		sim.BroadcastMessage(m)
	}
}
