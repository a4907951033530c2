package conduit

// Normalizer turns host callbacks into canonical events. It holds one host
// listener per EventKind for its whole lifetime and forwards each
// callback, synchronously and unbuffered, to its sink.
type Normalizer struct {
	host     Host
	sink     func(Event)
	removers []func()
	disposed bool
}

// NewNormalizer registers the listeners on host and returns the normalizer.
// A nil host yields a normalizer that never produces events.
func NewNormalizer(host Host, sink func(Event)) *Normalizer {
	n := &Normalizer{host: host, sink: sink}
	if host == nil {
		return n
	}
	n.removers = make([]func(), 0, int(eventKindCount))
	for kind := EventKind(0); kind < eventKindCount; kind++ {
		n.removers = append(n.removers, host.Listen(kind, func(raw RawInput) {
			n.forward(kind, raw)
		}))
	}
	return n
}

func (n *Normalizer) forward(kind EventKind, raw RawInput) {
	if n.disposed || n.sink == nil {
		return
	}
	n.sink(Normalize(kind, raw))
}

// Host returns the host the normalizer listens to.
func (n *Normalizer) Host() Host { return n.host }

// Dispose removes every host listener. No events are produced afterwards.
// Safe to call more than once.
func (n *Normalizer) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	for _, remove := range n.removers {
		if remove != nil {
			remove()
		}
	}
	n.removers = nil
	n.sink = nil
}

// Disposed reports whether Dispose has been called.
func (n *Normalizer) Disposed() bool { return n.disposed }
