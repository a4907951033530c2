package conduit

// SyntheticHost is a Host driven by method calls instead of a platform. It
// is used by tests, by ScriptRunner, and by tools that replay recorded
// input. Every method fires its listeners synchronously, one host callback
// per call (Click and Drag are sequences of calls).
//
// Screen and local coordinates differ by Origin, which models the offset
// of the editor surface inside the window.
type SyntheticHost struct {
	Listeners

	// Origin is subtracted from screen coordinates to produce Local.
	Origin Vec2

	cursor  Vec2
	mods    KeyModifiers
	held    map[string]bool
	pressed map[MouseButton]bool
}

// NewSyntheticHost returns a host with the cursor at the origin and
// nothing held.
func NewSyntheticHost() *SyntheticHost {
	return &SyntheticHost{
		held:    make(map[string]bool),
		pressed: make(map[MouseButton]bool),
	}
}

// Cursor returns the last injected pointer position.
func (h *SyntheticHost) Cursor() Vec2 { return h.cursor }

// IsPressed reports whether the host considers button b held.
func (h *SyntheticHost) IsPressed(b MouseButton) bool { return h.pressed[b] }

func (h *SyntheticHost) raw(pos Vec2) RawInput {
	return RawInput{Screen: pos, Local: pos.Sub(h.Origin), Modifiers: h.mods}
}

// Move fires a pointer move to (x, y).
func (h *SyntheticHost) Move(x, y float64) {
	pos := Vec2{x, y}
	raw := h.raw(pos)
	raw.Movement = pos.Sub(h.cursor)
	h.cursor = pos
	h.Emit(EventPointerMove, raw)
}

// Press fires a left-button press at (x, y).
func (h *SyntheticHost) Press(x, y float64) { h.PressButton(MouseButtonLeft, x, y) }

// Release fires a left-button release at (x, y).
func (h *SyntheticHost) Release(x, y float64) { h.ReleaseButton(MouseButtonLeft, x, y) }

// PressButton fires a press of b at (x, y). The cursor jumps there without
// a move event, as with a touch-style host.
func (h *SyntheticHost) PressButton(b MouseButton, x, y float64) {
	pos := Vec2{x, y}
	h.cursor = pos
	h.pressed[b] = true
	raw := h.raw(pos)
	raw.Button = b
	h.Emit(EventPointerDown, raw)
}

// ReleaseButton fires a release of b at (x, y).
func (h *SyntheticHost) ReleaseButton(b MouseButton, x, y float64) {
	pos := Vec2{x, y}
	h.cursor = pos
	delete(h.pressed, b)
	raw := h.raw(pos)
	raw.Button = b
	h.Emit(EventPointerUp, raw)
}

// Click fires a left press and release at (x, y).
func (h *SyntheticHost) Click(x, y float64) {
	h.Press(x, y)
	h.Release(x, y)
}

// Drag fires a press at (fromX, fromY), steps linearly interpolated moves
// ending at (toX, toY), and a release there. steps below 1 is treated as 1.
func (h *SyntheticHost) Drag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	h.Press(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		h.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.Release(toX, toY)
}

// Scroll fires a wheel event at (x, y).
func (h *SyntheticHost) Scroll(x, y, dx, dy float64) {
	pos := Vec2{x, y}
	h.cursor = pos
	raw := h.raw(pos)
	raw.WheelX, raw.WheelY = dx, dy
	h.Emit(EventWheel, raw)
}

// KeyDown fires a key press. Modifier keys update the modifier mask that
// later events carry, before this event is fired.
func (h *SyntheticHost) KeyDown(code string) {
	h.held[code] = true
	h.mods = h.heldModifiers()
	raw := h.raw(h.cursor)
	raw.Key = code
	h.Emit(EventKeyDown, raw)
}

// KeyUp fires a key release.
func (h *SyntheticHost) KeyUp(code string) {
	delete(h.held, code)
	h.mods = h.heldModifiers()
	raw := h.raw(h.cursor)
	raw.Key = code
	h.Emit(EventKeyUp, raw)
}

// Tap fires KeyDown then KeyUp for code.
func (h *SyntheticHost) Tap(code string) {
	h.KeyDown(code)
	h.KeyUp(code)
}

// Chord holds the chord's modifiers, taps its key, then releases the
// modifiers in reverse order.
func (h *SyntheticHost) Chord(c Chord) {
	mods := chordModifierKeys(c.Mods)
	for _, k := range mods {
		h.KeyDown(k)
	}
	h.Tap(c.Key)
	for i := len(mods) - 1; i >= 0; i-- {
		h.KeyUp(mods[i])
	}
}

func (h *SyntheticHost) heldModifiers() KeyModifiers {
	var m KeyModifiers
	for code := range h.held {
		m |= modifierForKey(code)
	}
	return m
}

func chordModifierKeys(m KeyModifiers) []string {
	var keys []string
	if m.Has(ModCtrl) {
		keys = append(keys, KeyControlLeft)
	}
	if m.Has(ModShift) {
		keys = append(keys, KeyShiftLeft)
	}
	if m.Has(ModAlt) {
		keys = append(keys, KeyAltLeft)
	}
	if m.Has(ModMeta) {
		keys = append(keys, KeyMetaLeft)
	}
	return keys
}
