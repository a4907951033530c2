package conduit

import (
	"fmt"
	"strings"
	"unicode"
)

// Chord is a key code plus the exact set of modifiers that must be held.
type Chord struct {
	Mods KeyModifiers
	Key  string
}

func (c Chord) String() string {
	if c.Mods == 0 {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// namedKeys maps the lower-case names accepted by ParseChord to key codes.
var namedKeys = map[string]string{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"space":     KeySpace,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"minus":     "Minus",
	"equal":     "Equal",
	"comma":     "Comma",
	"period":    "Period",
	"slash":     "Slash",
	"shift":     KeyShiftLeft,
	"ctrl":      KeyControlLeft,
	"control":   KeyControlLeft,
	"alt":       KeyAltLeft,
	"meta":      KeyMetaLeft,
}

// ParseChord parses strings such as "Ctrl+Z", "Shift+Delete", "Escape" or
// "Ctrl+Shift+KeyS". Modifier names are ctrl/control, shift, alt/option and
// meta/cmd/super. A single letter or digit becomes "KeyX" or "DigitN";
// anything unrecognized is taken as a literal key code.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) == "" {
		return Chord{}, fmt.Errorf("parse chord %q: missing key", s)
	}
	var c Chord
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			c.Mods |= ModCtrl
		case "shift":
			c.Mods |= ModShift
		case "alt", "option":
			c.Mods |= ModAlt
		case "meta", "cmd", "super", "win":
			c.Mods |= ModMeta
		default:
			return Chord{}, fmt.Errorf("parse chord %q: unknown modifier %q", s, p)
		}
	}
	c.Key = keyCodeFor(strings.TrimSpace(parts[len(parts)-1]))
	return c, nil
}

func keyCodeFor(name string) string {
	if r := []rune(name); len(r) == 1 {
		switch {
		case unicode.IsLetter(r[0]):
			return "Key" + string(unicode.ToUpper(r[0]))
		case unicode.IsDigit(r[0]):
			return "Digit" + string(r[0])
		}
	}
	if code, ok := namedKeys[strings.ToLower(name)]; ok {
		return code
	}
	if len(name) >= 2 && (name[0] == 'f' || name[0] == 'F') && isDigits(name[1:]) {
		return "F" + name[1:]
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

type keyBinding struct {
	chord  Chord
	action string
}

// ActionEvent is delivered to KeyBindings action handlers.
type ActionEvent struct {
	Action string
	Chord  Chord
	Source Event
}

// KeyBindings maps chords to named actions inside one context. It claims a
// KeyDown only when a bound chord matches, so unbound keys keep flowing to
// lower-priority contexts even when its context is exclusive.
type KeyBindings struct {
	mgr      *Manager
	ctx      PriorityContext
	bindings []keyBinding
	handlers handlerSet[ActionEvent]
	nextID   uint32
	disposed bool
}

// NewKeyBindings creates an empty binding table competing in ctx and
// registers it with m.
func NewKeyBindings(m *Manager, ctx PriorityContext) *KeyBindings {
	k := &KeyBindings{mgr: m, ctx: ctx}
	m.RegisterLocalManager(k)
	return k
}

// Bind maps chord to action. Binding an already bound chord replaces its
// action.
func (k *KeyBindings) Bind(chord, action string) error {
	c, err := ParseChord(chord)
	if err != nil {
		return err
	}
	k.BindChord(c, action)
	return nil
}

// BindChord is Bind for an already parsed chord.
func (k *KeyBindings) BindChord(c Chord, action string) {
	for i := range k.bindings {
		if k.bindings[i].chord == c {
			k.bindings[i].action = action
			return
		}
	}
	k.bindings = append(k.bindings, keyBinding{chord: c, action: action})
}

// Unbind removes the binding for chord, if any.
func (k *KeyBindings) Unbind(chord string) error {
	c, err := ParseChord(chord)
	if err != nil {
		return err
	}
	for i := range k.bindings {
		if k.bindings[i].chord == c {
			k.bindings = append(k.bindings[:i], k.bindings[i+1:]...)
			break
		}
	}
	return nil
}

// Lookup returns the action bound to the chord of ev.
func (k *KeyBindings) Lookup(ev Event) (string, bool) {
	// A modifier key reports its own bit while down; "Shift" alone must
	// still match Chord{Key: ShiftLeft}.
	c := Chord{Mods: ev.Modifiers &^ modifierForKey(ev.Key), Key: ev.Key}
	for _, b := range k.bindings {
		if b.chord == c {
			return b.action, true
		}
	}
	return "", false
}

// OnAction registers a callback for every triggered action.
func (k *KeyBindings) OnAction(fn func(ActionEvent)) CallbackHandle {
	if k.disposed {
		panic(fmt.Errorf("subscribe on disposed key bindings: %w", ErrDisposed))
	}
	if fn == nil {
		return CallbackHandle{}
	}
	k.nextID++
	k.handlers.add(k.nextID, fn)
	return CallbackHandle{id: k.nextID, owner: k}
}

func (k *KeyBindings) removeHandler(_ uint8, id uint32) { k.handlers.remove(id) }

// InputContext implements Routable.
func (k *KeyBindings) InputContext() PriorityContext { return k.ctx }

// WantsEvent implements Routable.
func (k *KeyBindings) WantsEvent(ev Event) bool {
	if k.disposed || ev.Kind != EventKeyDown {
		return false
	}
	_, ok := k.Lookup(ev)
	return ok
}

// HandleEvent implements Routable.
func (k *KeyBindings) HandleEvent(ev Event) {
	action, ok := k.Lookup(ev)
	if !ok || k.disposed {
		return
	}
	k.handlers.fire(ActionEvent{
		Action: action,
		Chord:  Chord{Mods: ev.Modifiers, Key: ev.Key},
		Source: ev,
	}, k.Disposed)
}

// Dispose unregisters the table and drops every handler. Safe to call more
// than once.
func (k *KeyBindings) Dispose() {
	if k.disposed {
		return
	}
	k.disposed = true
	k.mgr.UnregisterLocalManager(k)
	k.handlers.clear()
	k.bindings = nil
}

// Disposed reports whether Dispose has been called.
func (k *KeyBindings) Disposed() bool { return k.disposed }
