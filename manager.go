package conduit

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// Manager is the process-wide input router. Create one at startup with
// NewManager and pass it to every consumer that needs input; it owns the
// key and button state, the cursor history, the context stack and the
// registry of routables.
//
// A Manager is not safe for concurrent use. All host callbacks, and
// everything they trigger, must run on one goroutine (the game loop).
type Manager struct {
	normalizer *Normalizer
	log        *logrus.Entry
	debug      bool
	disposed   bool

	keys     map[string]bool
	buttons  map[MouseButton]bool
	cursor   Vec2
	prev     Vec2
	seenMove bool

	taps   [eventKindCount]handlerSet[Event]
	nextID uint32

	stack     []PriorityContext
	routables []Routable
	routeBuf  []Routable
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug traces.
func WithLogger(entry *logrus.Entry) Option {
	return func(m *Manager) {
		if entry != nil {
			m.log = entry
		}
	}
}

// WithDebug enables routing traces from the start.
func WithDebug(enabled bool) Option {
	return func(m *Manager) { m.debug = enabled }
}

// NewManager creates a Manager listening to host. host may be nil, in which
// case events are fed through Dispatch.
func NewManager(host Host, opts ...Option) *Manager {
	m := &Manager{
		keys:    make(map[string]bool),
		buttons: make(map[MouseButton]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = defaultLogger()
	}
	m.normalizer = NewNormalizer(host, m.Dispatch)
	return m
}

// --- Queries ---

// IsKeyPressed reports whether the key with the given W3C code is held.
// Unknown codes read as not pressed.
func (m *Manager) IsKeyPressed(code string) bool {
	m.mustLive("IsKeyPressed")
	return m.keys[code]
}

// IsButtonPressed reports whether pointer button b is held.
func (m *Manager) IsButtonPressed(b MouseButton) bool {
	m.mustLive("IsButtonPressed")
	return m.buttons[b]
}

// IsControlPressed reports whether either Control key is held.
func (m *Manager) IsControlPressed() bool {
	m.mustLive("IsControlPressed")
	return m.keys[KeyControlLeft] || m.keys[KeyControlRight]
}

// IsShiftPressed reports whether either Shift key is held.
func (m *Manager) IsShiftPressed() bool {
	m.mustLive("IsShiftPressed")
	return m.keys[KeyShiftLeft] || m.keys[KeyShiftRight]
}

// IsAltPressed reports whether either Alt key is held.
func (m *Manager) IsAltPressed() bool {
	m.mustLive("IsAltPressed")
	return m.keys[KeyAltLeft] || m.keys[KeyAltRight]
}

// IsMetaPressed reports whether either Meta key is held.
func (m *Manager) IsMetaPressed() bool {
	m.mustLive("IsMetaPressed")
	return m.keys[KeyMetaLeft] || m.keys[KeyMetaRight]
}

// Modifiers returns the held modifier keys as a bitmask.
func (m *Manager) Modifiers() KeyModifiers {
	m.mustLive("Modifiers")
	var mods KeyModifiers
	for code, down := range m.keys {
		if down {
			mods |= modifierForKey(code)
		}
	}
	return mods
}

// CursorPosition returns the pointer position from the most recent pointer
// event.
func (m *Manager) CursorPosition() Vec2 {
	m.mustLive("CursorPosition")
	return m.cursor
}

// cursorOrZero is CursorPosition without the liveness check, for teardown
// paths.
func (m *Manager) cursorOrZero() Vec2 {
	if m == nil {
		return Vec2{}
	}
	return m.cursor
}

// CursorDelta returns the current position minus the previous one.
func (m *Manager) CursorDelta() Vec2 {
	m.mustLive("CursorDelta")
	return m.cursor.Sub(m.prev)
}

// --- Global taps ---

// OnKeyDown registers a callback for every key press, before routing.
func (m *Manager) OnKeyDown(fn func(Event)) CallbackHandle { return m.tap(EventKeyDown, fn) }

// OnKeyUp registers a callback for every key release, before routing.
func (m *Manager) OnKeyUp(fn func(Event)) CallbackHandle { return m.tap(EventKeyUp, fn) }

// OnPointerMove registers a callback for every pointer move, before routing.
func (m *Manager) OnPointerMove(fn func(Event)) CallbackHandle { return m.tap(EventPointerMove, fn) }

// OnPointerDown registers a callback for every pointer press, before routing.
func (m *Manager) OnPointerDown(fn func(Event)) CallbackHandle { return m.tap(EventPointerDown, fn) }

// OnPointerUp registers a callback for every pointer release, before routing.
func (m *Manager) OnPointerUp(fn func(Event)) CallbackHandle { return m.tap(EventPointerUp, fn) }

// OnWheel registers a callback for every wheel event, before routing.
func (m *Manager) OnWheel(fn func(Event)) CallbackHandle { return m.tap(EventWheel, fn) }

func (m *Manager) tap(kind EventKind, fn func(Event)) CallbackHandle {
	m.mustLive("subscribe " + kind.String())
	if fn == nil {
		return CallbackHandle{}
	}
	m.nextID++
	m.taps[kind].add(m.nextID, fn)
	return CallbackHandle{id: m.nextID, slot: uint8(kind), owner: m}
}

func (m *Manager) removeHandler(slot uint8, id uint32) {
	if EventKind(slot) < eventKindCount {
		m.taps[slot].remove(id)
	}
}

// --- Registry ---

// RegisterLocalManager adds r to the routing registry. Registering the same
// value twice is a no-op.
func (m *Manager) RegisterLocalManager(r Routable) {
	m.mustLive("RegisterLocalManager")
	if r == nil || slices.Contains(m.routables, r) {
		return
	}
	m.routables = append(m.routables, r)
}

// UnregisterLocalManager removes r from the registry. Unknown values, and
// calls after Dispose, are no-ops.
func (m *Manager) UnregisterLocalManager(r Routable) {
	if m.disposed {
		return
	}
	if i := slices.Index(m.routables, r); i >= 0 {
		m.routables = slices.Delete(m.routables, i, i+1)
	}
}

// LocalManagers returns a snapshot of the registry in registration order.
func (m *Manager) LocalManagers() []Routable {
	m.mustLive("LocalManagers")
	return slices.Clone(m.routables)
}

// --- Context stack ---

// PushContext places c on the stack after every context of equal or higher
// priority. A context already on the stack is moved, never duplicated.
func (m *Manager) PushContext(c PriorityContext) {
	m.mustLive("PushContext")
	if c == nil {
		return
	}
	m.stack = removeContext(m.stack, c)
	m.restack()
	at := len(m.stack)
	for i, e := range m.stack {
		if e.Priority() < c.Priority() {
			at = i
			break
		}
	}
	m.stack = slices.Insert(m.stack, at, c)
	m.debugContext("push", c, at)
}

// PopContext removes c from the stack. Absent contexts, and calls after
// Dispose, are no-ops.
func (m *Manager) PopContext(c PriorityContext) {
	if m.disposed || c == nil {
		return
	}
	before := len(m.stack)
	m.stack = removeContext(m.stack, c)
	if len(m.stack) != before {
		m.debugContext("pop", c, -1)
	}
}

// ActiveContext returns the highest-priority stacked context, or nil when
// the stack is empty.
func (m *Manager) ActiveContext() PriorityContext {
	m.mustLive("ActiveContext")
	if len(m.stack) == 0 {
		return nil
	}
	m.restack()
	return m.stack[0]
}

// ContextStack returns a snapshot of the stack, highest priority first.
func (m *Manager) ContextStack() []PriorityContext {
	m.mustLive("ContextStack")
	m.restack()
	return slices.Clone(m.stack)
}

// restack keeps the stack sorted when a stacked context's priority changed
// since it was pushed.
func (m *Manager) restack() {
	slices.SortStableFunc(m.stack, compareByPriority)
}

func removeContext(stack []PriorityContext, c PriorityContext) []PriorityContext {
	if i := slices.Index(stack, c); i >= 0 {
		return slices.Delete(stack, i, i+1)
	}
	return stack
}

// --- Distribution ---

// Dispatch processes one canonical event: state maps first, then global
// taps in registration order, then the routing pass. The Normalizer calls
// it for every host callback; tests and replays may call it directly.
func (m *Manager) Dispatch(ev Event) {
	m.mustLive("Dispatch")
	m.apply(ev)
	m.taps[ev.Kind].fire(ev, m.Disposed)
	if m.disposed {
		return
	}
	m.route(ev)
}

func (m *Manager) apply(ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		if ev.Key != "" {
			m.keys[ev.Key] = true
		}
	case EventKeyUp:
		delete(m.keys, ev.Key)
	case EventPointerDown:
		m.buttons[ev.Button] = true
		m.moveCursor(ev.Global, false)
	case EventPointerUp:
		delete(m.buttons, ev.Button)
		m.moveCursor(ev.Global, false)
	case EventPointerMove:
		m.moveCursor(ev.Global, true)
	}
}

// moveCursor records a new pointer position. Press and release only shift
// the history when the position actually changed, so a press does not
// erase the delta of the move before it.
func (m *Manager) moveCursor(pos Vec2, always bool) {
	if !m.seenMove {
		m.seenMove = true
		m.prev, m.cursor = pos, pos
		return
	}
	if !always && pos == m.cursor {
		return
	}
	m.prev, m.cursor = m.cursor, pos
}

// route walks a priority-sorted snapshot of the registry. The order is
// recomputed for every event because contexts may change priority between
// events. A release is reported to every local manager afterwards, so a
// gesture ends even when a higher exclusive context took the PointerUp.
func (m *Manager) route(ev Event) {
	if len(m.routables) == 0 {
		return
	}
	snap := append(m.routeBuf[:0], m.routables...)
	m.routeBuf = nil
	defer func() {
		clear(snap)
		m.routeBuf = snap[:0]
	}()

	slices.SortStableFunc(snap, func(a, b Routable) int {
		return compareByPriority(a.InputContext(), b.InputContext())
	})

	for _, r := range snap {
		if m.disposed {
			return
		}
		ctx := r.InputContext()
		if ctx != nil && !ctx.Enabled() {
			continue
		}
		if !r.WantsEvent(ev) {
			continue
		}
		m.debugRoute(ev, ctx)
		r.HandleEvent(ev)
		if ctx != nil && ctx.Exclusive() {
			m.debugExclusive(ev, ctx)
			break
		}
	}

	if ev.Kind != EventPointerUp {
		return
	}
	for _, r := range snap {
		if m.disposed {
			return
		}
		if rl, ok := r.(releaser); ok {
			rl.releaseButton(ev.Button)
		}
	}
}

// --- Lifecycle ---

// Reset clears the key and button maps and cancels every in-flight
// gesture. Call it when the window loses focus, since the host will never
// deliver the matching releases.
func (m *Manager) Reset() {
	m.mustLive("Reset")
	clear(m.keys)
	clear(m.buttons)
	for _, r := range slices.Clone(m.routables) {
		if c, ok := r.(canceler); ok {
			c.Cancel()
		}
	}
}

// Dispose removes the host listeners, drops every subscriber, the registry
// and the stack, and resets all transient state. Any further use other
// than Dispose, PopContext, UnregisterLocalManager and handle removal
// panics with ErrDisposed. Safe to call more than once.
func (m *Manager) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.normalizer.Dispose()
	for i := range m.taps {
		m.taps[i].clear()
	}
	m.stack = nil
	m.routables = nil
	m.routeBuf = nil
	clear(m.keys)
	clear(m.buttons)
	m.cursor, m.prev, m.seenMove = Vec2{}, Vec2{}, false
	if m.debug {
		m.log.Debug("manager disposed")
	}
}

// Disposed reports whether Dispose has been called.
func (m *Manager) Disposed() bool { return m.disposed }

// Host returns the host the manager listens to, or nil.
func (m *Manager) Host() Host { return m.normalizer.Host() }

// ManagerHandle gives lazy access to a Manager that is re-created after
// disposal. Keep one per process (typically in the application struct)
// rather than a package-level variable.
type ManagerHandle struct {
	Host    Host
	Options []Option

	m *Manager
}

// Manager returns the live Manager, constructing a fresh one with empty
// state on first use or after the previous one was disposed.
func (h *ManagerHandle) Manager() *Manager {
	if h.m == nil || h.m.Disposed() {
		h.m = NewManager(h.Host, h.Options...)
	}
	return h.m
}

// Dispose disposes the current Manager, if any.
func (h *ManagerHandle) Dispose() {
	if h.m != nil {
		h.m.Dispose()
	}
}
