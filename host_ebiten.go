package conduit

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenSource is the slice of the ebiten input API EbitenHost polls. Tests
// substitute a scripted implementation.
type ebitenSource interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	IsKeyPressed(k ebiten.Key) bool
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	CursorPosition() (int, int)
	Wheel() (float64, float64)
}

type liveEbiten struct{}

func (liveEbiten) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (liveEbiten) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (liveEbiten) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }

func (liveEbiten) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (liveEbiten) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (liveEbiten) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (liveEbiten) Wheel() (float64, float64) { return ebiten.Wheel() }

// ebitenButtons maps ebiten mouse buttons to W3C button indices.
var ebitenButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButton3, MouseButtonBack},
	{ebiten.MouseButton4, MouseButtonForward},
}

// EbitenHost turns ebiten's polled input into host callbacks. Call Update
// once per tick from Game.Update; ebiten has no input callbacks, so edges
// are found by comparing frames. Callbacks for one frame are fired in the
// order keys, move, presses, releases, wheel.
type EbitenHost struct {
	Listeners

	// Origin is subtracted from screen coordinates to produce Local.
	Origin Vec2

	src     ebitenSource
	cursor  Vec2
	primed  bool
	keyBuf  []ebiten.Key
	pressed [len(ebitenButtons)]bool
}

// NewEbitenHost returns a host reading ebiten's global input state.
func NewEbitenHost() *EbitenHost {
	return newEbitenHost(liveEbiten{})
}

func newEbitenHost(src ebitenSource) *EbitenHost {
	return &EbitenHost{src: src}
}

// Update polls ebiten and fires callbacks for everything that changed
// since the previous call.
func (h *EbitenHost) Update() {
	mods := h.modifiers()

	h.keyBuf = h.src.AppendJustPressedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		if code, ok := ebitenKeyCode(k); ok {
			h.Emit(EventKeyDown, h.raw(h.cursor, mods, code))
		}
	}
	h.keyBuf = h.src.AppendJustReleasedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		if code, ok := ebitenKeyCode(k); ok {
			h.Emit(EventKeyUp, h.raw(h.cursor, mods, code))
		}
	}

	cx, cy := h.src.CursorPosition()
	pos := Vec2{float64(cx), float64(cy)}
	if !h.primed {
		h.primed = true
		h.cursor = pos
	}
	if pos != h.cursor {
		raw := h.raw(pos, mods, "")
		raw.Movement = pos.Sub(h.cursor)
		h.cursor = pos
		h.Emit(EventPointerMove, raw)
	}

	for i, b := range ebitenButtons {
		if !h.pressed[i] && h.src.IsMouseButtonJustPressed(b.eb) {
			h.pressed[i] = true
			raw := h.raw(pos, mods, "")
			raw.Button = b.btn
			h.Emit(EventPointerDown, raw)
		}
	}
	for i, b := range ebitenButtons {
		if h.pressed[i] && h.src.IsMouseButtonJustReleased(b.eb) {
			h.pressed[i] = false
			raw := h.raw(pos, mods, "")
			raw.Button = b.btn
			h.Emit(EventPointerUp, raw)
		}
	}

	if wx, wy := h.src.Wheel(); wx != 0 || wy != 0 {
		raw := h.raw(pos, mods, "")
		// ebiten reports positive y for scrolling up.
		raw.WheelX, raw.WheelY = wx, -wy
		h.Emit(EventWheel, raw)
	}
}

func (h *EbitenHost) raw(pos Vec2, mods KeyModifiers, key string) RawInput {
	return RawInput{
		Key:       key,
		Screen:    pos,
		Local:     pos.Sub(h.Origin),
		Modifiers: mods,
	}
}

func (h *EbitenHost) modifiers() KeyModifiers {
	var mods KeyModifiers
	if h.src.IsKeyPressed(ebiten.KeyShiftLeft) || h.src.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if h.src.IsKeyPressed(ebiten.KeyControlLeft) || h.src.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if h.src.IsKeyPressed(ebiten.KeyAltLeft) || h.src.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if h.src.IsKeyPressed(ebiten.KeyMetaLeft) || h.src.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// ebitenKeyCode converts an ebiten key to its W3C code. ebiten's virtual
// side-less modifiers are skipped since the sided keys are reported too.
func ebitenKeyCode(k ebiten.Key) (string, bool) {
	switch k {
	case ebiten.KeyShift, ebiten.KeyControl, ebiten.KeyAlt, ebiten.KeyMeta:
		return "", false
	}
	name := k.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return "Key" + name, true
	}
	return name, name != ""
}
