package rig

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/conduit"
)

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// OrbitConfig tunes an OrbitRig. Zero fields select the defaults.
type OrbitConfig struct {
	// OrbitSpeed is radians of yaw and pitch per dragged pixel.
	OrbitSpeed float64
	// PanSpeed is scene units per dragged pixel per unit of distance.
	PanSpeed float64
	// ZoomStep is the distance factor applied per wheel notch.
	ZoomStep float64
	// MinDistance and MaxDistance clamp the zoom.
	MinDistance, MaxDistance float64
	// Duration is the length in seconds of zoom and frame tweens.
	Duration float32
	// Priority of the viewport context.
	Priority int
}

func (c OrbitConfig) withDefaults() OrbitConfig {
	if c.OrbitSpeed <= 0 {
		c.OrbitSpeed = 0.01
	}
	if c.PanSpeed <= 0 {
		c.PanSpeed = 0.002
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = 1.1
	}
	if c.MinDistance <= 0 {
		c.MinDistance = 0.5
	}
	if c.MaxDistance <= c.MinDistance {
		c.MaxDistance = 500
	}
	if c.Duration <= 0 {
		c.Duration = 0.2
	}
	return c
}

// maxPitch bounds Pitch just short of the poles.
const maxPitch = math.Pi/2 - 0.01

// tween3 eases a Vec3 component-wise.
type tween3 struct {
	x, y, z *gween.Tween
}

func newTween3(from, to Vec3, d float32, fn ease.TweenFunc) *tween3 {
	return &tween3{
		x: gween.New(float32(from.X), float32(to.X), d, fn),
		y: gween.New(float32(from.Y), float32(to.Y), d, fn),
		z: gween.New(float32(from.Z), float32(to.Z), d, fn),
	}
}

func (t *tween3) update(dt float32) (Vec3, bool) {
	x, dx := t.x.Update(dt)
	y, dy := t.y.Update(dt)
	z, dz := t.z.Update(dt)
	return Vec3{float64(x), float64(y), float64(z)}, dx && dy && dz
}

// OrbitRig is the viewport camera controller: left-drag orbits around the
// target, middle-drag pans, the wheel zooms and F frames the focus point.
// Zoom and framing are eased; call Update every tick to advance them.
type OrbitRig struct {
	// Yaw and Pitch are in radians. Pitch is clamped to just under ±π/2.
	Yaw, Pitch float64
	// Distance from the eye to Target.
	Distance float64
	Target   Vec3
	// Focus is where Frame moves the target.
	Focus         Vec3
	FrameDistance float64

	cfg   OrbitConfig
	mgr   *conduit.Manager
	ctx   *conduit.Context
	local *conduit.LocalManager
	keys  *conduit.KeyBindings

	zoomTween   *gween.Tween
	zoomEnd     float64
	targetTween *tween3
}

// NewOrbitRig creates a rig for the viewport element, pushes its
// "viewport" context and registers its local manager and key bindings.
func NewOrbitRig(m *conduit.Manager, viewport conduit.Bounds, cfg OrbitConfig) *OrbitRig {
	cfg = cfg.withDefaults()
	r := &OrbitRig{
		Pitch:         0.5,
		Distance:      10,
		FrameDistance: 10,
		cfg:           cfg,
		mgr:           m,
		ctx:           conduit.NewContext("viewport", cfg.Priority),
	}
	m.PushContext(r.ctx)

	r.local = conduit.NewLocalManager(m, r.ctx, viewport, conduit.LocalConfig{
		Name:    "viewport",
		Buttons: []conduit.MouseButton{conduit.MouseButtonLeft, conduit.MouseButtonMiddle},
	})
	r.local.OnDrag(r.drag)
	r.local.OnWheel(func(pe conduit.PointerEvent) { r.Zoom(pe.WheelY) })

	r.keys = conduit.NewKeyBindings(m, r.ctx)
	r.keys.Bind("F", "frame")
	r.keys.OnAction(func(a conduit.ActionEvent) {
		if a.Action == "frame" {
			r.Frame()
		}
	})
	return r
}

// Context returns the rig's viewport context.
func (r *OrbitRig) Context() *conduit.Context { return r.ctx }

// Local returns the rig's local manager.
func (r *OrbitRig) Local() *conduit.LocalManager { return r.local }

func (r *OrbitRig) drag(pe conduit.PointerEvent) {
	switch pe.Button {
	case conduit.MouseButtonLeft:
		r.Orbit(pe.Delta.X, pe.Delta.Y)
	case conduit.MouseButtonMiddle:
		r.Pan(pe.Delta.X, pe.Delta.Y)
	}
}

// Orbit rotates the eye around the target by a pointer movement in pixels.
func (r *OrbitRig) Orbit(dx, dy float64) {
	r.Yaw -= dx * r.cfg.OrbitSpeed
	r.Pitch = clamp(r.Pitch+dy*r.cfg.OrbitSpeed, -maxPitch, maxPitch)
}

// Pan moves the target in the view plane by a pointer movement in pixels.
// A running frame tween is cancelled.
func (r *OrbitRig) Pan(dx, dy float64) {
	r.targetTween = nil
	right, up := r.basis()
	k := r.cfg.PanSpeed * r.Distance
	r.Target = r.Target.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
}

// Zoom starts easing the distance by ZoomStep per notch. Positive notches
// (scrolling down) move the eye away.
func (r *OrbitRig) Zoom(notches float64) {
	if notches == 0 {
		return
	}
	from := r.Distance
	to := from
	if r.zoomTween != nil {
		// Chain from where the running tween is heading.
		to = r.zoomEnd
	}
	to = clamp(to*math.Pow(r.cfg.ZoomStep, notches), r.cfg.MinDistance, r.cfg.MaxDistance)
	r.zoomEnd = to
	r.zoomTween = gween.New(float32(from), float32(to), r.cfg.Duration, ease.OutQuad)
}

// Frame eases the target to Focus and the distance to FrameDistance.
func (r *OrbitRig) Frame() {
	r.targetTween = newTween3(r.Target, r.Focus, r.cfg.Duration, ease.InOutQuad)
	d := clamp(r.FrameDistance, r.cfg.MinDistance, r.cfg.MaxDistance)
	r.zoomEnd = d
	r.zoomTween = gween.New(float32(r.Distance), float32(d), r.cfg.Duration, ease.InOutQuad)
}

// Animating reports whether a zoom or frame tween is running.
func (r *OrbitRig) Animating() bool {
	return r.zoomTween != nil || r.targetTween != nil
}

// Update advances the tweens by dt seconds.
func (r *OrbitRig) Update(dt float32) {
	if r.zoomTween != nil {
		val, done := r.zoomTween.Update(dt)
		r.Distance = float64(val)
		if done {
			r.Distance = r.zoomEnd
			r.zoomTween = nil
		}
	}
	if r.targetTween != nil {
		val, done := r.targetTween.update(dt)
		r.Target = val
		if done {
			r.Target = r.Focus
			r.targetTween = nil
		}
	}
}

// Eye returns the camera position.
func (r *OrbitRig) Eye() Vec3 {
	cp := math.Cos(r.Pitch)
	dir := Vec3{cp * math.Sin(r.Yaw), math.Sin(r.Pitch), cp * math.Cos(r.Yaw)}
	return r.Target.Add(dir.Scale(r.Distance))
}

// basis returns the view's right and up vectors.
func (r *OrbitRig) basis() (right, up Vec3) {
	sy, cy := math.Sin(r.Yaw), math.Cos(r.Yaw)
	sp, cp := math.Sin(r.Pitch), math.Cos(r.Pitch)
	right = Vec3{cy, 0, -sy}
	up = Vec3{-sp * sy, cp, -sp * cy}
	return right, up
}

// Dispose pops the context and releases the local manager and bindings.
func (r *OrbitRig) Dispose() {
	r.local.Dispose()
	r.keys.Dispose()
	r.mgr.PopContext(r.ctx)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
