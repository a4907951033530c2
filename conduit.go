package conduit

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrDisposed is wrapped by the panic raised when a disposed Manager,
// LocalManager or KeyBindings is used. Recover and test with errors.Is.
var ErrDisposed = errors.New("conduit: use after dispose")

// Vec2 is a 2D vector used for positions, offsets and deltas throughout the
// API. Units are screen pixels unless stated otherwise.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Bounds lets a fixed Rect serve as a Bounds provider.
func (r Rect) Bounds() Rect { return r }

// EventKind identifies a canonical input event. It doubles as the host
// listener category: hosts expose exactly one listener slot per kind.
type EventKind uint8

const (
	EventKeyDown     EventKind = iota // a key went down
	EventKeyUp                        // a key was released
	EventPointerDown                  // a pointer button was pressed
	EventPointerUp                    // a pointer button was released
	EventPointerMove                  // the pointer moved
	EventWheel                        // the wheel or trackpad scrolled

	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	EventKeyDown:     "keydown",
	EventKeyUp:       "keyup",
	EventPointerDown: "pointerdown",
	EventPointerUp:   "pointerup",
	EventPointerMove: "pointermove",
	EventWheel:       "wheel",
}

func (k EventKind) String() string {
	if k < eventKindCount {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// MouseButton identifies a pointer button. Numbering follows the W3C
// MouseEvent.button convention so host adapters can pass indices through.
type MouseButton int

const (
	MouseButtonLeft    MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                     // middle mouse button (scroll wheel click)
	MouseButtonRight                      // secondary (right) mouse button
	MouseButtonBack                       // back navigation button
	MouseButtonForward                    // forward navigation button
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	case MouseButtonBack:
		return "back"
	case MouseButtonForward:
		return "forward"
	default:
		return fmt.Sprintf("button%d", int(b))
	}
}

// ParseMouseButton accepts the names produced by MouseButton.String,
// case-insensitively.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "primary":
		return MouseButtonLeft, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "right", "secondary":
		return MouseButtonRight, nil
	case "back":
		return MouseButtonBack, nil
	case "forward":
		return MouseButtonForward, nil
	}
	return 0, fmt.Errorf("parse mouse button %q: unknown button", s)
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether every bit in m2 is set in m.
func (m KeyModifiers) Has(m2 KeyModifiers) bool { return m&m2 == m2 }

func (m KeyModifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}
