package conduit

// defaultDragThreshold is the movement in pixels before a press turns into
// a drag.
const defaultDragThreshold = 4.0

// DragPhase is the state of a LocalManager's press/drag tracking.
type DragPhase uint8

const (
	DragIdle     DragPhase = iota // no tracked button is down
	DragPending                   // pressed, not yet past the threshold
	DragDragging                  // pressed and moved past the threshold

	dragPhaseCount
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragPending:
		return "pending"
	case DragDragging:
		return "dragging"
	}
	return "unknown"
}

// DragState is a snapshot of the tracking machine. Button and Origin are
// zero in DragIdle.
type DragState struct {
	Phase  DragPhase
	Button MouseButton
	Origin Vec2
}

type dragInput uint8

const (
	dragPress dragInput = iota
	dragMove
	dragRelease
	dragCancel

	dragInputCount
)

// dragOutput is one gesture the machine asks its owner to emit.
type dragOutput struct {
	kind  GestureKind
	delta Vec2
}

type dragTransition func(m *dragMachine, pos Vec2, b MouseButton, out []dragOutput) []dragOutput

// dragTable holds every legal transition. A nil cell means the input is
// ignored in that phase.
var dragTable = [dragPhaseCount][dragInputCount]dragTransition{
	DragIdle: {
		dragPress: idlePress,
	},
	DragPending: {
		dragMove:    pendingMove,
		dragRelease: pendingRelease,
		dragCancel:  pendingCancel,
	},
	DragDragging: {
		dragMove:    draggingMove,
		dragRelease: draggingRelease,
		dragCancel:  draggingCancel,
	},
}

// dragMachine separates clicks from drags for one LocalManager.
type dragMachine struct {
	phase     DragPhase
	button    MouseButton
	origin    Vec2
	last      Vec2
	threshold float64
}

func (m *dragMachine) step(in dragInput, pos Vec2, b MouseButton, out []dragOutput) []dragOutput {
	t := dragTable[m.phase][in]
	if t == nil {
		return out
	}
	return t(m, pos, b, out)
}

func (m *dragMachine) active() bool { return m.phase != DragIdle }

func (m *dragMachine) state() DragState {
	if m.phase == DragIdle {
		return DragState{}
	}
	return DragState{Phase: m.phase, Button: m.button, Origin: m.origin}
}

func (m *dragMachine) reset() {
	m.phase = DragIdle
	m.button = 0
	m.origin = Vec2{}
	m.last = Vec2{}
}

func idlePress(m *dragMachine, pos Vec2, b MouseButton, out []dragOutput) []dragOutput {
	m.phase = DragPending
	m.button = b
	m.origin = pos
	m.last = pos
	return out
}

func pendingMove(m *dragMachine, pos Vec2, _ MouseButton, out []dragOutput) []dragOutput {
	if pos.Sub(m.origin).Len() < m.threshold {
		return out
	}
	m.phase = DragDragging
	out = append(out, dragOutput{kind: GestureDragStart})
	return draggingMove(m, pos, m.button, out)
}

func pendingRelease(m *dragMachine, _ Vec2, b MouseButton, out []dragOutput) []dragOutput {
	if b != m.button {
		return out
	}
	m.reset()
	return append(out, dragOutput{kind: GestureClick})
}

func pendingCancel(m *dragMachine, _ Vec2, _ MouseButton, out []dragOutput) []dragOutput {
	m.reset()
	return out
}

func draggingMove(m *dragMachine, pos Vec2, _ MouseButton, out []dragOutput) []dragOutput {
	delta := pos.Sub(m.last)
	m.last = pos
	return append(out, dragOutput{kind: GestureDrag, delta: delta})
}

func draggingRelease(m *dragMachine, pos Vec2, b MouseButton, out []dragOutput) []dragOutput {
	if b != m.button {
		return out
	}
	delta := pos.Sub(m.last)
	m.reset()
	return append(out, dragOutput{kind: GestureDragEnd, delta: delta})
}

func draggingCancel(m *dragMachine, _ Vec2, _ MouseButton, out []dragOutput) []dragOutput {
	m.reset()
	return append(out, dragOutput{kind: GestureDragEnd})
}
