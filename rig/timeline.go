package rig

import (
	"github.com/phanxgames/conduit"
)

// Timeline is a horizontal time ruler. Clicking seeks to the time under
// the pointer; dragging scrubs, clamped to [Start, End] even when the
// pointer leaves the ruler.
type Timeline struct {
	Start, End float64

	mgr       *conduit.Manager
	ctx       *conduit.Context
	local     *conduit.LocalManager
	bounds    conduit.Bounds
	time      float64
	scrubbing bool
	onSeek    []func(t float64)
}

// NewTimeline creates a timeline over bounds covering [start, end] and
// pushes its "timeline" context at the given priority.
func NewTimeline(m *conduit.Manager, bounds conduit.Bounds, start, end float64, priority int) *Timeline {
	tl := &Timeline{
		Start:  start,
		End:    end,
		mgr:    m,
		ctx:    conduit.NewContext("timeline", priority),
		bounds: bounds,
		time:   start,
	}
	m.PushContext(tl.ctx)
	tl.local = conduit.NewLocalManager(m, tl.ctx, bounds, conduit.LocalConfig{
		Name:          "timeline",
		DragThreshold: 2,
	})
	tl.local.OnClick(func(pe conduit.PointerEvent) { tl.Seek(tl.TimeAt(pe.Position.X)) })
	tl.local.OnDragStart(func(pe conduit.PointerEvent) {
		tl.scrubbing = true
	})
	tl.local.OnDrag(func(pe conduit.PointerEvent) { tl.Seek(tl.TimeAt(pe.Position.X)) })
	tl.local.OnDragEnd(func(pe conduit.PointerEvent) {
		tl.scrubbing = false
	})
	return tl
}

// Context returns the timeline's context.
func (tl *Timeline) Context() *conduit.Context { return tl.ctx }

// Time returns the playhead position.
func (tl *Timeline) Time() float64 { return tl.time }

// Scrubbing reports whether a drag on the ruler is in progress.
func (tl *Timeline) Scrubbing() bool { return tl.scrubbing }

// TimeAt maps a screen x coordinate to a time, clamped to the range.
func (tl *Timeline) TimeAt(x float64) float64 {
	r := tl.bounds.Bounds()
	if r.Width <= 0 {
		return tl.Start
	}
	t := tl.Start + (x-r.X)/r.Width*(tl.End-tl.Start)
	return clamp(t, tl.Start, tl.End)
}

// Seek moves the playhead and notifies OnSeek callbacks when it changed.
func (tl *Timeline) Seek(t float64) {
	t = clamp(t, tl.Start, tl.End)
	if t == tl.time {
		return
	}
	tl.time = t
	for _, fn := range tl.onSeek {
		fn(t)
	}
}

// OnSeek registers a callback for playhead changes.
func (tl *Timeline) OnSeek(fn func(t float64)) {
	tl.onSeek = append(tl.onSeek, fn)
}

// Dispose pops the context and releases the local manager.
func (tl *Timeline) Dispose() {
	tl.local.Dispose()
	tl.mgr.PopContext(tl.ctx)
	tl.onSeek = nil
}
