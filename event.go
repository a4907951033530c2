package conduit

// Event is the canonical record for one host input occurrence. The
// Normalizer builds exactly one Event per host callback; it is passed by
// value and never modified afterwards.
type Event struct {
	Kind EventKind

	// Button is the pointer button for EventPointerDown and EventPointerUp.
	Button MouseButton
	// Key is the W3C key code for EventKeyDown and EventKeyUp.
	Key string

	// Local is the position relative to the host surface.
	Local Vec2
	// Global is the position in screen pixels. Routing, bounds tests and
	// drag thresholds all use this space.
	Global Vec2
	// Delta is the movement reported by the host for EventPointerMove.
	Delta Vec2

	// WheelX and WheelY are the scroll amounts for EventWheel. Positive
	// WheelY scrolls down, matching the browser convention.
	WheelX, WheelY float64

	// Modifiers are the modifier keys the host reported as held.
	Modifiers KeyModifiers

	// Raw is the host's original event, if it has one.
	Raw any
}

// IsPointer reports whether the event is a pointer press, release or move.
func (e Event) IsPointer() bool {
	return e.Kind == EventPointerDown || e.Kind == EventPointerUp || e.Kind == EventPointerMove
}

// IsKey reports whether the event is a key press or release.
func (e Event) IsKey() bool {
	return e.Kind == EventKeyDown || e.Kind == EventKeyUp
}

// Normalize builds the canonical event for a raw host record of the given
// kind. Fields that do not apply to the kind are left zero.
func Normalize(kind EventKind, raw RawInput) Event {
	ev := Event{
		Kind:      kind,
		Local:     raw.Local,
		Global:    raw.Screen,
		Modifiers: raw.Modifiers,
		Raw:       raw.Native,
	}
	switch kind {
	case EventKeyDown, EventKeyUp:
		ev.Key = raw.Key
	case EventPointerDown, EventPointerUp:
		ev.Button = raw.Button
	case EventPointerMove:
		ev.Delta = raw.Movement
	case EventWheel:
		ev.WheelX = raw.WheelX
		ev.WheelY = raw.WheelY
	}
	return ev
}
