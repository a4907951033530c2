// Package tcellhost adapts tcell terminal events to a conduit.Host, so a
// terminal frontend can drive the same managers, contexts and local
// managers as the ebiten editor.
package tcellhost

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/conduit"
)

// Host converts tcell events into conduit host callbacks. Feed it every
// event returned by tcell.Screen.PollEvent.
//
// Terminals report no key releases, so each key press fires KeyDown and an
// immediate KeyUp. Mouse presses and releases are found by diffing the
// button mask of consecutive mouse events.
type Host struct {
	conduit.Listeners

	// CellSize scales cell coordinates to pointer units. Zero means 1x1.
	CellSize conduit.Vec2
	// Origin is subtracted from screen coordinates to produce Local.
	Origin conduit.Vec2

	cursor  conduit.Vec2
	primed  bool
	buttons tcell.ButtonMask
}

// New returns a host with no buttons held.
func New() *Host {
	return &Host{}
}

// Cursor returns the last reported pointer position in pointer units.
func (h *Host) Cursor() conduit.Vec2 { return h.cursor }

var buttonMap = [...]struct {
	mask tcell.ButtonMask
	btn  conduit.MouseButton
}{
	{tcell.Button1, conduit.MouseButtonLeft},
	{tcell.Button3, conduit.MouseButtonMiddle},
	{tcell.Button2, conduit.MouseButtonRight},
	{tcell.Button4, conduit.MouseButtonBack},
	{tcell.Button5, conduit.MouseButtonForward},
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// HandleEvent dispatches ev to the listeners. It reports whether ev was an
// input event the host understood.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(e)
	case *tcell.EventMouse:
		h.handleMouse(e)
		return true
	}
	return false
}

func (h *Host) handleKey(e *tcell.EventKey) bool {
	code, mods, ok := keyCode(e)
	if !ok {
		return false
	}
	raw := conduit.RawInput{
		Key:       code,
		Screen:    h.cursor,
		Local:     h.cursor.Sub(h.Origin),
		Modifiers: mods,
		Native:    e,
	}
	h.Emit(conduit.EventKeyDown, raw)
	h.Emit(conduit.EventKeyUp, raw)
	return true
}

func (h *Host) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	pos := h.scale(x, y)
	mods := modifiers(e.Modifiers())
	mask := e.Buttons()

	if !h.primed {
		h.primed = true
		h.cursor = pos
	}
	if pos != h.cursor {
		raw := h.raw(pos, mods, e)
		raw.Movement = pos.Sub(h.cursor)
		h.cursor = pos
		h.Emit(conduit.EventPointerMove, raw)
	}

	held := mask &^ wheelMask
	for _, b := range buttonMap {
		if held&b.mask != 0 && h.buttons&b.mask == 0 {
			raw := h.raw(pos, mods, e)
			raw.Button = b.btn
			h.Emit(conduit.EventPointerDown, raw)
		}
	}
	for _, b := range buttonMap {
		if held&b.mask == 0 && h.buttons&b.mask != 0 {
			raw := h.raw(pos, mods, e)
			raw.Button = b.btn
			h.Emit(conduit.EventPointerUp, raw)
		}
	}
	h.buttons = held

	if mask&wheelMask != 0 {
		raw := h.raw(pos, mods, e)
		switch {
		case mask&tcell.WheelUp != 0:
			raw.WheelY = -1
		case mask&tcell.WheelDown != 0:
			raw.WheelY = 1
		}
		switch {
		case mask&tcell.WheelLeft != 0:
			raw.WheelX = -1
		case mask&tcell.WheelRight != 0:
			raw.WheelX = 1
		}
		h.Emit(conduit.EventWheel, raw)
	}
}

func (h *Host) scale(x, y int) conduit.Vec2 {
	sx, sy := h.CellSize.X, h.CellSize.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return conduit.Vec2{X: float64(x) * sx, Y: float64(y) * sy}
}

func (h *Host) raw(pos conduit.Vec2, mods conduit.KeyModifiers, native tcell.Event) conduit.RawInput {
	return conduit.RawInput{
		Screen:    pos,
		Local:     pos.Sub(h.Origin),
		Modifiers: mods,
		Native:    native,
	}
}

func modifiers(m tcell.ModMask) conduit.KeyModifiers {
	var mods conduit.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= conduit.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= conduit.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= conduit.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= conduit.ModMeta
	}
	return mods
}

// namedKeys maps tcell's special keys to W3C codes. KeyTab, KeyEnter and
// KeyBackspace share values with KeyCtrlI, KeyCtrlM and KeyCtrlH, so they
// are looked up before the control-letter range.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      conduit.KeyEnter,
	tcell.KeyTab:        conduit.KeyTab,
	tcell.KeyBacktab:    conduit.KeyTab,
	tcell.KeyBackspace:  conduit.KeyBackspace,
	tcell.KeyBackspace2: conduit.KeyBackspace,
	tcell.KeyEscape:     conduit.KeyEscape,
	tcell.KeyDelete:     conduit.KeyDelete,
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// keyCode converts a tcell key event to a W3C code and modifier mask.
func keyCode(e *tcell.EventKey) (string, conduit.KeyModifiers, bool) {
	mods := modifiers(e.Modifiers())
	k := e.Key()
	if k == tcell.KeyRune {
		r := e.Rune()
		switch {
		case r == ' ':
			return conduit.KeySpace, mods, true
		case r >= 'a' && r <= 'z':
			return "Key" + string(unicode.ToUpper(r)), mods, true
		case r >= 'A' && r <= 'Z':
			return "Key" + string(r), mods | conduit.ModShift, true
		case r >= '0' && r <= '9':
			return "Digit" + string(r), mods, true
		}
		return "", 0, false
	}
	if k == tcell.KeyBacktab {
		mods |= conduit.ModShift
	}
	if code, ok := namedKeys[k]; ok {
		return code, mods, true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "Key" + string(rune('A'+k-tcell.KeyCtrlA)), mods | conduit.ModCtrl, true
	}
	return "", 0, false
}
