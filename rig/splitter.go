package rig

import (
	"github.com/phanxgames/conduit"
)

// SplitterConfig configures a Splitter.
type SplitterConfig struct {
	Name string
	// Ratio is the initial divider position as a fraction of the area.
	Ratio float64
	// Min and Max clamp Ratio. Zero Max means 1.
	Min, Max float64
	// Handle is the grab width of the divider in pixels.
	Handle float64
	// Vertical stacks the panels top and bottom instead of side by side.
	Vertical bool
	// Priority of the splitter context. It must be above the panels it
	// divides; the context is exclusive, so a grabbed handle hides the
	// drag from them.
	Priority int
}

// Splitter is a draggable divider between two docked panels.
type Splitter struct {
	cfg      SplitterConfig
	area     conduit.Bounds
	ratio    float64
	mgr      *conduit.Manager
	ctx      *conduit.Context
	local    *conduit.LocalManager
	onResize []func(ratio float64)
}

// NewSplitter creates a splitter dividing area and pushes its context.
func NewSplitter(m *conduit.Manager, area conduit.Bounds, cfg SplitterConfig) *Splitter {
	if cfg.Name == "" {
		cfg.Name = "splitter"
	}
	if cfg.Max <= 0 || cfg.Max > 1 {
		cfg.Max = 1
	}
	if cfg.Min < 0 || cfg.Min > cfg.Max {
		cfg.Min = 0
	}
	if cfg.Handle <= 0 {
		cfg.Handle = 6
	}
	s := &Splitter{
		cfg:  cfg,
		area: area,
		mgr:  m,
		ctx:  conduit.NewExclusiveContext(cfg.Name, cfg.Priority),
	}
	s.ratio = clamp(cfg.Ratio, cfg.Min, cfg.Max)
	m.PushContext(s.ctx)
	s.local = conduit.NewLocalManager(m, s.ctx, conduit.BoundsFunc(s.HandleBounds), conduit.LocalConfig{
		Name:          cfg.Name,
		DragThreshold: 1,
	})
	s.local.OnDrag(func(pe conduit.PointerEvent) { s.dragTo(pe.Position) })
	return s
}

// Context returns the splitter's context.
func (s *Splitter) Context() *conduit.Context { return s.ctx }

// Ratio returns the divider position.
func (s *Splitter) Ratio() float64 { return s.ratio }

// SetRatio moves the divider, clamped to [Min, Max].
func (s *Splitter) SetRatio(r float64) {
	r = clamp(r, s.cfg.Min, s.cfg.Max)
	if r == s.ratio {
		return
	}
	s.ratio = r
	for _, fn := range s.onResize {
		fn(r)
	}
}

// OnResize registers a callback for divider moves.
func (s *Splitter) OnResize(fn func(ratio float64)) {
	s.onResize = append(s.onResize, fn)
}

func (s *Splitter) dragTo(p conduit.Vec2) {
	a := s.area.Bounds()
	if s.cfg.Vertical {
		if a.Height > 0 {
			s.SetRatio((p.Y - a.Y) / a.Height)
		}
		return
	}
	if a.Width > 0 {
		s.SetRatio((p.X - a.X) / a.Width)
	}
}

// HandleBounds returns the divider's grab rectangle.
func (s *Splitter) HandleBounds() conduit.Rect {
	a := s.area.Bounds()
	h := s.cfg.Handle
	if s.cfg.Vertical {
		return conduit.Rect{X: a.X, Y: a.Y + a.Height*s.ratio - h/2, Width: a.Width, Height: h}
	}
	return conduit.Rect{X: a.X + a.Width*s.ratio - h/2, Y: a.Y, Width: h, Height: a.Height}
}

// Panels returns the rectangles on either side of the divider.
func (s *Splitter) Panels() (first, second conduit.Rect) {
	a := s.area.Bounds()
	if s.cfg.Vertical {
		h := a.Height * s.ratio
		return conduit.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: h},
			conduit.Rect{X: a.X, Y: a.Y + h, Width: a.Width, Height: a.Height - h}
	}
	w := a.Width * s.ratio
	return conduit.Rect{X: a.X, Y: a.Y, Width: w, Height: a.Height},
		conduit.Rect{X: a.X + w, Y: a.Y, Width: a.Width - w, Height: a.Height}
}

// Dispose pops the context and releases the local manager.
func (s *Splitter) Dispose() {
	s.local.Dispose()
	s.mgr.PopContext(s.ctx)
	s.onResize = nil
}
