package conduit

import (
	"fmt"
	"slices"
)

// GestureKind identifies a semantic event emitted by a LocalManager.
type GestureKind uint8

const (
	GesturePointerDown GestureKind = iota // a claimed pointer press
	GesturePointerMove                    // a claimed pointer move
	GesturePointerUp                      // a claimed pointer release
	GestureDragStart                      // movement passed the drag threshold
	GestureDrag                           // each move while dragging
	GestureDragEnd                        // release (or cancel) after dragging
	GestureWheel                          // a claimed wheel event
	GestureClick                          // press then release without dragging

	gestureKindCount
)

var gestureNames = [gestureKindCount]string{
	GesturePointerDown: "pointerdown",
	GesturePointerMove: "pointermove",
	GesturePointerUp:   "pointerup",
	GestureDragStart:   "dragstart",
	GestureDrag:        "drag",
	GestureDragEnd:     "dragend",
	GestureWheel:       "wheel",
	GestureClick:       "click",
}

func (k GestureKind) String() string {
	if k < gestureKindCount {
		return gestureNames[k]
	}
	return fmt.Sprintf("GestureKind(%d)", uint8(k))
}

// PointerEvent is the semantic event handed to a LocalManager's consumer.
type PointerEvent struct {
	Kind GestureKind
	// Element is LocalConfig.Name of the emitting manager.
	Element string

	// Button is the pressed or released button for pointer down/up, and
	// the tracked button for drag gestures and clicks.
	Button MouseButton
	// Position is the pointer in screen pixels.
	Position Vec2
	// Local is Position relative to the top-left of the element bounds.
	Local Vec2

	// Start is the press position for drag gestures.
	Start Vec2
	// Delta is the movement since the previous Drag for GestureDrag and
	// GestureDragEnd (the first Drag measures from the press), and the
	// host-reported movement for GesturePointerMove.
	Delta Vec2

	WheelX, WheelY float64
	Modifiers      KeyModifiers

	// Source is the canonical event that produced this one.
	Source Event
}

// Bounds provides the screen rectangle of an element. It is queried on
// every event, so moving or resizing the element needs no notification.
type Bounds interface {
	Bounds() Rect
}

// BoundsFunc adapts a function to Bounds.
type BoundsFunc func() Rect

// Bounds implements Bounds.
func (f BoundsFunc) Bounds() Rect { return f() }

// EventSink receives every semantic event a LocalManager emits, after its
// own handlers. See package ecs for a Donburi-backed sink.
type EventSink interface {
	EmitPointerEvent(ev PointerEvent)
}

// LocalConfig configures a LocalManager.
type LocalConfig struct {
	// Name labels emitted events and debug traces.
	Name string
	// DragThreshold is the distance in pixels the pointer must travel from
	// the press before a drag starts. Zero or negative selects the default
	// unless ImmediateDrag is set.
	DragThreshold float64
	// ImmediateDrag starts a drag on the first move after a press. It
	// overrides DragThreshold.
	ImmediateDrag bool
	// Buttons are the buttons that start click/drag tracking. Empty
	// selects the left button.
	Buttons []MouseButton
	// Global claims pointer and wheel events anywhere on screen instead of
	// only inside the element bounds.
	Global bool
}

// DefaultLocalConfig returns the configuration used for zero fields.
func DefaultLocalConfig() LocalConfig {
	return LocalConfig{
		DragThreshold: defaultDragThreshold,
		Buttons:       []MouseButton{MouseButtonLeft},
	}
}

func (c LocalConfig) withDefaults() LocalConfig {
	switch {
	case c.ImmediateDrag:
		c.DragThreshold = 0
	case c.DragThreshold <= 0:
		c.DragThreshold = defaultDragThreshold
	}
	if len(c.Buttons) == 0 {
		c.Buttons = []MouseButton{MouseButtonLeft}
	} else {
		c.Buttons = slices.Clone(c.Buttons)
	}
	return c
}

// LocalManager subscribes one UI element to a Manager. It claims pointer
// and wheel events that fall inside the element, keeps claiming moves and
// the release while a tracked press is in flight, and turns them into
// PointerEvents, separating clicks from drags.
type LocalManager struct {
	mgr    *Manager
	ctx    PriorityContext
	bounds Bounds
	cfg    LocalConfig
	sink   EventSink

	fsm      dragMachine
	handlers [gestureKindCount]handlerSet[PointerEvent]
	nextID   uint32
	disposed bool
}

// NewLocalManager creates a LocalManager for the element described by
// bounds, competing in ctx, and registers it with m. A nil bounds claims
// nothing unless cfg.Global is set.
func NewLocalManager(m *Manager, ctx PriorityContext, bounds Bounds, cfg LocalConfig) *LocalManager {
	cfg = cfg.withDefaults()
	l := &LocalManager{
		mgr:    m,
		ctx:    ctx,
		bounds: bounds,
		cfg:    cfg,
		fsm:    dragMachine{threshold: cfg.DragThreshold},
	}
	m.RegisterLocalManager(l)
	return l
}

// Config returns the effective configuration.
func (l *LocalManager) Config() LocalConfig { return l.cfg }

// InputContext implements Routable.
func (l *LocalManager) InputContext() PriorityContext { return l.ctx }

// SetSink attaches s to receive every emitted event. nil detaches.
func (l *LocalManager) SetSink(s EventSink) { l.sink = s }

// DragState returns a snapshot of the click/drag tracking.
func (l *LocalManager) DragState() DragState { return l.fsm.state() }

// Contains reports whether p is inside the element, or true for a global
// manager.
func (l *LocalManager) Contains(p Vec2) bool {
	if l.cfg.Global {
		return true
	}
	if l.bounds == nil {
		return false
	}
	return l.bounds.Bounds().ContainsPoint(p)
}

func (l *LocalManager) tracks(b MouseButton) bool {
	return slices.Contains(l.cfg.Buttons, b)
}

// WantsEvent implements Routable.
func (l *LocalManager) WantsEvent(ev Event) bool {
	if l.disposed {
		return false
	}
	switch ev.Kind {
	case EventPointerDown, EventWheel:
		return l.Contains(ev.Global)
	case EventPointerMove:
		return l.fsm.active() || l.Contains(ev.Global)
	case EventPointerUp:
		if l.fsm.active() && ev.Button == l.fsm.button {
			return true
		}
		return l.Contains(ev.Global)
	}
	return false
}

// HandleEvent implements Routable.
func (l *LocalManager) HandleEvent(ev Event) {
	if l.disposed {
		return
	}
	switch ev.Kind {
	case EventPointerDown:
		l.emit(GesturePointerDown, ev, Vec2{}, Vec2{})
		if l.tracks(ev.Button) {
			l.advance(dragPress, ev)
		}
	case EventPointerMove:
		l.emit(GesturePointerMove, ev, Vec2{}, ev.Delta)
		l.advance(dragMove, ev)
	case EventPointerUp:
		l.advance(dragRelease, ev)
		l.emit(GesturePointerUp, ev, Vec2{}, Vec2{})
	case EventWheel:
		l.emit(GestureWheel, ev, Vec2{}, Vec2{})
	}
}

// advance feeds one input to the drag machine and emits what it produced.
func (l *LocalManager) advance(in dragInput, ev Event) {
	if l.disposed {
		return
	}
	before := l.fsm.state()
	var buf [2]dragOutput
	out := l.fsm.step(in, ev.Global, ev.Button, buf[:0])
	for _, o := range out {
		l.emitGesture(o.kind, ev, before.Button, before.Origin, o.delta)
	}
}

// Cancel abandons the gesture in flight. A drag in progress ends with a
// DragEnd carrying a zero delta; a pending press ends silently.
func (l *LocalManager) Cancel() {
	if l.disposed || !l.fsm.active() {
		return
	}
	before := l.fsm.state()
	var buf [2]dragOutput
	out := l.fsm.step(dragCancel, l.mgr.cursorOrZero(), before.Button, buf[:0])
	for _, o := range out {
		ev := Event{Kind: EventPointerUp, Button: before.Button, Global: l.mgr.cursorOrZero()}
		l.emitGesture(o.kind, ev, before.Button, before.Origin, o.delta)
	}
}

// releaseButton ends a gesture whose button went up without the release
// being routed here.
func (l *LocalManager) releaseButton(b MouseButton) {
	if l.disposed || !l.fsm.active() || l.fsm.button != b {
		return
	}
	l.Cancel()
}

func (l *LocalManager) emit(kind GestureKind, ev Event, start, delta Vec2) {
	l.emitGesture(kind, ev, ev.Button, start, delta)
}

func (l *LocalManager) emitGesture(kind GestureKind, ev Event, button MouseButton, start, delta Vec2) {
	if l.disposed {
		return
	}
	pe := PointerEvent{
		Kind:      kind,
		Element:   l.cfg.Name,
		Button:    button,
		Position:  ev.Global,
		Local:     ev.Global,
		Start:     start,
		Delta:     delta,
		WheelX:    ev.WheelX,
		WheelY:    ev.WheelY,
		Modifiers: ev.Modifiers,
		Source:    ev,
	}
	if l.bounds != nil {
		pe.Local = ev.Global.Sub(l.bounds.Bounds().Min())
	}
	l.handlers[kind].fire(pe, l.Disposed)
	if l.sink != nil && !l.disposed {
		l.sink.EmitPointerEvent(pe)
	}
}

// --- Subscriptions ---

// OnPointerDown registers a callback for claimed presses.
func (l *LocalManager) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	return l.on(GesturePointerDown, fn)
}

// OnPointerMove registers a callback for claimed moves.
func (l *LocalManager) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return l.on(GesturePointerMove, fn)
}

// OnPointerUp registers a callback for claimed releases.
func (l *LocalManager) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	return l.on(GesturePointerUp, fn)
}

// OnDragStart registers a callback fired once when a drag begins.
func (l *LocalManager) OnDragStart(fn func(PointerEvent)) CallbackHandle {
	return l.on(GestureDragStart, fn)
}

// OnDrag registers a callback fired for each move while dragging.
func (l *LocalManager) OnDrag(fn func(PointerEvent)) CallbackHandle {
	return l.on(GestureDrag, fn)
}

// OnDragEnd registers a callback fired when a drag finishes.
func (l *LocalManager) OnDragEnd(fn func(PointerEvent)) CallbackHandle {
	return l.on(GestureDragEnd, fn)
}

// OnWheel registers a callback for claimed wheel events.
func (l *LocalManager) OnWheel(fn func(PointerEvent)) CallbackHandle {
	return l.on(GestureWheel, fn)
}

// OnClick registers a callback for presses released before the threshold.
func (l *LocalManager) OnClick(fn func(PointerEvent)) CallbackHandle {
	return l.on(GestureClick, fn)
}

// On registers fn for an arbitrary gesture kind.
func (l *LocalManager) On(kind GestureKind, fn func(PointerEvent)) CallbackHandle {
	return l.on(kind, fn)
}

func (l *LocalManager) on(kind GestureKind, fn func(PointerEvent)) CallbackHandle {
	if l.disposed {
		panic(fmt.Errorf("subscribe %s on disposed local manager %q: %w", kind, l.cfg.Name, ErrDisposed))
	}
	if fn == nil || kind >= gestureKindCount {
		return CallbackHandle{}
	}
	l.nextID++
	l.handlers[kind].add(l.nextID, fn)
	return CallbackHandle{id: l.nextID, slot: uint8(kind), owner: l}
}

func (l *LocalManager) removeHandler(slot uint8, id uint32) {
	if GestureKind(slot) < gestureKindCount {
		l.handlers[slot].remove(id)
	}
}

// Dispose unregisters from the Manager and drops every handler and the
// drag state. No DragEnd is emitted. Safe to call more than once.
func (l *LocalManager) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	l.mgr.UnregisterLocalManager(l)
	for i := range l.handlers {
		l.handlers[i].clear()
	}
	l.fsm.reset()
	l.sink = nil
}

// Disposed reports whether Dispose has been called.
func (l *LocalManager) Disposed() bool { return l.disposed }
