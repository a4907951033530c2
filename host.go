package conduit

// RawInput is what a host hands to its listeners. It is the host-neutral
// shape of a platform callback argument, before normalization.
type RawInput struct {
	Key       string
	Button    MouseButton
	Screen    Vec2
	Local     Vec2
	Movement  Vec2
	WheelX    float64
	WheelY    float64
	Modifiers KeyModifiers
	Native    any
}

// Host is a source of platform input. Listen registers fn for one kind
// of input and returns a function that removes it again.
type Host interface {
	Listen(kind EventKind, fn func(RawInput)) (remove func())
}

type hostListener struct {
	id uint32
	fn func(RawInput)
}

// Listeners is a listener table hosts can embed to implement Host.
// The zero value is ready to use.
type Listeners struct {
	slots  [eventKindCount][]hostListener
	nextID uint32
	buf    []hostListener
}

// Listen implements Host. Calling the returned function more than once is
// a no-op.
func (l *Listeners) Listen(kind EventKind, fn func(RawInput)) func() {
	if kind >= eventKindCount || fn == nil {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.slots[kind] = append(l.slots[kind], hostListener{id: id, fn: fn})
	return func() {
		s := l.slots[kind]
		for i := range s {
			if s[i].id == id {
				copy(s[i:], s[i+1:])
				s[len(s)-1] = hostListener{}
				l.slots[kind] = s[:len(s)-1]
				return
			}
		}
	}
}

// Emit calls every listener registered for kind, in registration order.
// Listeners added or removed during the call take effect on the next Emit.
func (l *Listeners) Emit(kind EventKind, raw RawInput) {
	if kind >= eventKindCount || len(l.slots[kind]) == 0 {
		return
	}
	snap := append(l.buf[:0], l.slots[kind]...)
	l.buf = nil
	for _, h := range snap {
		h.fn(raw)
	}
	clear(snap)
	l.buf = snap[:0]
}

// Count returns the number of listeners registered for kind.
func (l *Listeners) Count(kind EventKind) int {
	if kind >= eventKindCount {
		return 0
	}
	return len(l.slots[kind])
}
