package lumen

import (
	"github.com/gekko3d/lumen/rt/core"
)

type Logger = core.Logger

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(sim *Simulation, cmd *Commands) {
	logger := core.NewDefaultLogger(m.Prefix, m.Debug)
	sim.addResources(logger)
}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (sim *Simulation) Logger() Logger {
	if sim == nil {
		return core.NewNopLogger()
	}
	for _, r := range sim.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return core.NewNopLogger()
}

// simLogger looks up the simulation logger on every call, so parts installed
// before the LoggingModule still log through it.
type simLogger struct {
	sim *Simulation
}

func (l simLogger) DebugEnabled() bool                { return l.sim.Logger().DebugEnabled() }
func (l simLogger) SetDebug(enabled bool)             { l.sim.Logger().SetDebug(enabled) }
func (l simLogger) Debugf(format string, args ...any) { l.sim.Logger().Debugf(format, args...) }
func (l simLogger) Infof(format string, args ...any)  { l.sim.Logger().Infof(format, args...) }
func (l simLogger) Warnf(format string, args ...any)  { l.sim.Logger().Warnf(format, args...) }
func (l simLogger) Errorf(format string, args ...any) { l.sim.Logger().Errorf(format, args...) }
