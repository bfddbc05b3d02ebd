package lumen

import (
	"fmt"
	"reflect"
)

// RendererTag marks that a renderer has been installed into the Simulation.
// Only one renderer should be installed at a time.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer panics when a second renderer is installed.
func ensureSingleRenderer(sim *Simulation, name string) {
	if sim == nil {
		panic("ensureSingleRenderer: simulation is nil")
	}
	t := reflect.TypeOf((*RendererTag)(nil)).Elem()
	if res, ok := sim.resources[t]; ok {
		if tag, ok2 := res.(*RendererTag); ok2 {
			sim.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		panic("RendererTag resource present with unexpected type")
	}
	sim.addResources(&RendererTag{Name: name})
}
