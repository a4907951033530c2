package conduit

// handlerOwner is implemented by every type that hands out CallbackHandles.
type handlerOwner interface {
	removeHandler(slot uint8, id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	slot  uint8
	owner handlerOwner
}

// Remove unregisters the callback. Events processed after Remove returns
// never reach it. Removing twice, or after the owner was disposed, is a
// no-op. The zero CallbackHandle is valid and does nothing.
func (h CallbackHandle) Remove() {
	if h.owner == nil {
		return
	}
	h.owner.removeHandler(h.slot, h.id)
}

type handlerEntry[T any] struct {
	id uint32
	fn func(T)
}

// handlerSet is an ordered list of callbacks for one event slot.
type handlerSet[T any] struct {
	entries []handlerEntry[T]
}

func (s *handlerSet[T]) add(id uint32, fn func(T)) {
	s.entries = append(s.entries, handlerEntry[T]{id: id, fn: fn})
}

// remove drops the entry with id, keeping the order of the rest.
func (s *handlerSet[T]) remove(id uint32) {
	for i := range s.entries {
		if s.entries[i].id == id {
			copy(s.entries[i:], s.entries[i+1:])
			s.entries[len(s.entries)-1] = handlerEntry[T]{}
			s.entries = s.entries[:len(s.entries)-1]
			return
		}
	}
}

func (s *handlerSet[T]) len() int { return len(s.entries) }

func (s *handlerSet[T]) clear() {
	clear(s.entries)
	s.entries = nil
}

// fire calls every handler over a snapshot taken before the first call.
// stop is checked between calls so an owner disposed mid-dispatch stops
// notifying.
func (s *handlerSet[T]) fire(v T, stop func() bool) {
	switch len(s.entries) {
	case 0:
		return
	case 1:
		s.entries[0].fn(v)
		return
	}
	snap := make([]handlerEntry[T], len(s.entries))
	copy(snap, s.entries)
	for _, h := range snap {
		if stop != nil && stop() {
			return
		}
		h.fn(v)
	}
}
