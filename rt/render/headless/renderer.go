// Package headless provides a Renderer without a GPU. It records every call
// so passes can be checked and run in tests. Long running simulations bound
// the record with WithFrameHistory.
package headless

import (
	"fmt"

	"github.com/gekko3d/lumen/rt/core"
	"github.com/gekko3d/lumen/rt/render"

	"github.com/go-gl/mathgl/mgl32"
)

type Op string

const (
	OpBindFrameBuffer        Op = "BindFrameBuffer"
	OpUnbindFrameBuffer      Op = "UnbindFrameBuffer"
	OpBindProgram            Op = "BindProgram"
	OpUnbindProgram          Op = "UnbindProgram"
	OpBindMaterial           Op = "BindMaterial"
	OpUnbindMaterial         Op = "UnbindMaterial"
	OpBindVertexBuffer       Op = "BindVertexBuffer"
	OpUnbindVertexBuffer     Op = "UnbindVertexBuffer"
	OpBindIndexBuffer        Op = "BindIndexBuffer"
	OpUnbindIndexBuffer      Op = "UnbindIndexBuffer"
	OpBindLight              Op = "BindLight"
	OpUnbindLight            Op = "UnbindLight"
	OpBindMatrix             Op = "BindMatrix"
	OpBindFloat              Op = "BindFloat"
	OpBindBool               Op = "BindBool"
	OpBindTexture            Op = "BindTexture"
	OpUnbindTexture          Op = "UnbindTexture"
	OpSetAlphaState          Op = "SetAlphaState"
	OpSetDepthState          Op = "SetDepthState"
	OpApplyTransformations   Op = "ApplyTransformations"
	OpRestoreTransformations Op = "RestoreTransformations"
	OpDrawPrimitive          Op = "DrawPrimitive"
	OpBeginRender            Op = "BeginRender"
	OpEndRender              Op = "EndRender"
)

// Call is one recorded renderer call. Only the fields relevant to Op are set.
type Call struct {
	Op          Op
	Program     string
	Slot        render.Slot
	FrameBuffer *render.FrameBuffer
	Texture     *render.Texture
	Light       *core.Light
	Material    *core.Material
	Primitive   *core.Primitive
	Matrix      mgl32.Mat4
	Float       float32
	Bool        bool
	Transforms  render.Transformations
}

func (c Call) String() string {
	if c.Program == "" {
		return string(c.Op)
	}
	return fmt.Sprintf("%s(%s %s)", c.Op, c.Program, c.Slot)
}

type Option func(*Renderer)

// WithoutPrograms builds a renderer that reports no shader programs at all.
func WithoutPrograms() Option {
	return func(r *Renderer) {
		r.depth = nil
		r.deferred = nil
		r.programs = map[string]*render.ShaderProgram{}
	}
}

// WithoutProgram removes one named program. "depth" and "deferred" name the
// standard depth and deferred pass programs.
func WithoutProgram(name string) Option {
	return func(r *Renderer) {
		switch name {
		case DepthProgramName:
			r.depth = nil
		case DeferredProgramName:
			r.deferred = nil
		default:
			delete(r.programs, name)
		}
	}
}

func WithProgram(name string) Option {
	return func(r *Renderer) { r.programs[name] = render.NewShaderProgram(name) }
}

// WithFrameHistory keeps the calls of the last n frames only, counted from
// BeginRender. Zero or less keeps everything.
func WithFrameHistory(n int) Option {
	return func(r *Renderer) { r.history = n }
}

const (
	DepthProgramName    = "depth"
	DeferredProgramName = "deferred"
)

// Renderer records calls instead of issuing them. It is not safe for
// concurrent use.
type Renderer struct {
	screen   *render.FrameBuffer
	depth    *render.ShaderProgram
	deferred *render.ShaderProgram
	programs map[string]*render.ShaderProgram

	calls  []Call
	frames int

	history     int
	frameStarts []int
}

var (
	_ render.Renderer      = (*Renderer)(nil)
	_ render.FrameRenderer = (*Renderer)(nil)
)

// New returns a renderer with a width x height screen and the depth, deferred,
// "deferredCompose" and "screen" programs.
func New(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		screen:   render.NewFrameBuffer(width, height),
		depth:    render.NewShaderProgram(DepthProgramName),
		deferred: render.NewShaderProgram(DeferredProgramName),
		programs: map[string]*render.ShaderProgram{
			render.ProgramDeferredCompose: render.NewShaderProgram(render.ProgramDeferredCompose),
			render.ProgramScreen:          render.NewShaderProgram(render.ProgramScreen),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) record(c Call) { r.calls = append(r.calls, c) }

func programName(p *render.ShaderProgram) string {
	if p == nil {
		return ""
	}
	return p.Name
}

// Calls returns the recorded calls since the last Reset, limited to the
// frame history when one is set.
func (r *Renderer) Calls() []Call { return r.calls }

// CallsOf returns the recorded calls with the given op.
func (r *Renderer) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Renderer) Count(op Op) int { return len(r.CallsOf(op)) }

// Draws returns the names of the programs used by each draw, in order.
func (r *Renderer) Draws() []string {
	var out []string
	for _, c := range r.CallsOf(OpDrawPrimitive) {
		out = append(out, c.Program)
	}
	return out
}

func (r *Renderer) Frames() int { return r.frames }

func (r *Renderer) Reset() {
	r.calls = nil
	r.frameStarts = nil
}

func (r *Renderer) Resize(width, height int) {
	r.screen.Width = width
	r.screen.Height = height
}

func (r *Renderer) BeginRender() {
	r.frameStarts = append(r.frameStarts, len(r.calls))
	if r.history > 0 && len(r.frameStarts) > r.history {
		r.trim()
	}
	r.record(Call{Op: OpBeginRender})
}

// trim drops the calls of frames older than the history.
func (r *Renderer) trim() {
	drop := len(r.frameStarts) - r.history
	cut := r.frameStarts[drop]

	n := copy(r.calls, r.calls[cut:])
	clear(r.calls[n:])
	r.calls = r.calls[:n]

	starts := r.frameStarts[drop:]
	for i := range starts {
		starts[i] -= cut
	}
	r.frameStarts = append(r.frameStarts[:0], starts...)
}

func (r *Renderer) EndRender() {
	r.frames++
	r.record(Call{Op: OpEndRender})
}

func (r *Renderer) ScreenBuffer() *render.FrameBuffer { return r.screen }

func (r *Renderer) BindFrameBuffer(fb *render.FrameBuffer) {
	r.record(Call{Op: OpBindFrameBuffer, FrameBuffer: fb})
}

func (r *Renderer) UnbindFrameBuffer(fb *render.FrameBuffer) {
	r.record(Call{Op: OpUnbindFrameBuffer, FrameBuffer: fb})
}

func (r *Renderer) BindProgram(p *render.ShaderProgram) {
	r.record(Call{Op: OpBindProgram, Program: programName(p)})
}

func (r *Renderer) UnbindProgram(p *render.ShaderProgram) {
	r.record(Call{Op: OpUnbindProgram, Program: programName(p)})
}

func (r *Renderer) BindMaterial(p *render.ShaderProgram, m *core.Material) {
	r.record(Call{Op: OpBindMaterial, Program: programName(p), Material: m})
}

func (r *Renderer) UnbindMaterial(p *render.ShaderProgram, m *core.Material) {
	r.record(Call{Op: OpUnbindMaterial, Program: programName(p), Material: m})
}

func (r *Renderer) BindVertexBuffer(p *render.ShaderProgram, vb *core.VertexBuffer) {
	r.record(Call{Op: OpBindVertexBuffer, Program: programName(p)})
}

func (r *Renderer) UnbindVertexBuffer(p *render.ShaderProgram, vb *core.VertexBuffer) {
	r.record(Call{Op: OpUnbindVertexBuffer, Program: programName(p)})
}

func (r *Renderer) BindIndexBuffer(p *render.ShaderProgram, ib *core.IndexBuffer) {
	r.record(Call{Op: OpBindIndexBuffer, Program: programName(p)})
}

func (r *Renderer) UnbindIndexBuffer(p *render.ShaderProgram, ib *core.IndexBuffer) {
	r.record(Call{Op: OpUnbindIndexBuffer, Program: programName(p)})
}

func (r *Renderer) BindLight(p *render.ShaderProgram, l *core.Light) {
	r.record(Call{Op: OpBindLight, Program: programName(p), Light: l})
}

func (r *Renderer) UnbindLight(p *render.ShaderProgram, l *core.Light) {
	r.record(Call{Op: OpUnbindLight, Program: programName(p), Light: l})
}

func (r *Renderer) BindMatrix(p *render.ShaderProgram, slot render.Slot, m mgl32.Mat4) {
	r.record(Call{Op: OpBindMatrix, Program: programName(p), Slot: slot, Matrix: m})
}

func (r *Renderer) BindFloat(p *render.ShaderProgram, slot render.Slot, v float32) {
	r.record(Call{Op: OpBindFloat, Program: programName(p), Slot: slot, Float: v})
}

func (r *Renderer) BindBool(p *render.ShaderProgram, slot render.Slot, v bool) {
	r.record(Call{Op: OpBindBool, Program: programName(p), Slot: slot, Bool: v})
}

func (r *Renderer) BindTexture(p *render.ShaderProgram, slot render.Slot, t *render.Texture) {
	r.record(Call{Op: OpBindTexture, Program: programName(p), Slot: slot, Texture: t})
}

func (r *Renderer) UnbindTexture(p *render.ShaderProgram, slot render.Slot, t *render.Texture) {
	r.record(Call{Op: OpUnbindTexture, Program: programName(p), Slot: slot, Texture: t})
}

func (r *Renderer) SetAlphaState(enabled bool) {
	r.record(Call{Op: OpSetAlphaState, Bool: enabled})
}

func (r *Renderer) SetDepthState(enabled bool) {
	r.record(Call{Op: OpSetDepthState, Bool: enabled})
}

func (r *Renderer) ApplyTransformations(p *render.ShaderProgram, t render.Transformations) {
	r.record(Call{Op: OpApplyTransformations, Program: programName(p), Transforms: t})
}

func (r *Renderer) RestoreTransformations(p *render.ShaderProgram, t render.Transformations) {
	r.record(Call{Op: OpRestoreTransformations, Program: programName(p), Transforms: t})
}

func (r *Renderer) DrawPrimitive(p *render.ShaderProgram, prim *core.Primitive) {
	r.record(Call{Op: OpDrawPrimitive, Program: programName(p), Primitive: prim})
}

func (r *Renderer) DepthProgram() *render.ShaderProgram { return r.depth }

func (r *Renderer) DeferredPassProgram() *render.ShaderProgram { return r.deferred }

func (r *Renderer) ShaderProgram(name string) *render.ShaderProgram { return r.programs[name] }
