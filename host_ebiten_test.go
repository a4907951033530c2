package conduit

import (
	"fmt"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeEbiten is one scripted frame of ebiten input state.
type fakeEbiten struct {
	justPressed  []ebiten.Key
	justReleased []ebiten.Key
	held         map[ebiten.Key]bool
	btnDown      map[ebiten.MouseButton]bool
	btnUp        map[ebiten.MouseButton]bool
	x, y         int
	wheelX       float64
	wheelY       float64
}

func (f *fakeEbiten) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.justPressed...)
}

func (f *fakeEbiten) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.justReleased...)
}

func (f *fakeEbiten) IsKeyPressed(k ebiten.Key) bool                      { return f.held[k] }
func (f *fakeEbiten) IsMouseButtonJustPressed(b ebiten.MouseButton) bool  { return f.btnDown[b] }
func (f *fakeEbiten) IsMouseButtonJustReleased(b ebiten.MouseButton) bool { return f.btnUp[b] }
func (f *fakeEbiten) CursorPosition() (int, int)                          { return f.x, f.y }
func (f *fakeEbiten) Wheel() (float64, float64)                           { return f.wheelX, f.wheelY }

// nextFrame clears the edge-triggered state, keeping held keys and the
// cursor.
func (f *fakeEbiten) nextFrame() {
	f.justPressed, f.justReleased = nil, nil
	f.btnDown, f.btnUp = nil, nil
	f.wheelX, f.wheelY = 0, 0
}

func TestEbitenHostKeys(t *testing.T) {
	src := &fakeEbiten{
		justPressed: []ebiten.Key{ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyZ},
		held:        map[ebiten.Key]bool{ebiten.KeyControlLeft: true, ebiten.KeyZ: true},
	}
	h := newEbitenHost(src)
	m := NewManager(h)
	defer m.Dispose()

	var keys []string
	var mods []KeyModifiers
	m.OnKeyDown(func(ev Event) {
		keys = append(keys, ev.Key)
		mods = append(mods, ev.Modifiers)
	})

	h.Update()
	if fmt.Sprint(keys) != "[ControlLeft KeyZ]" {
		t.Errorf("keys = %v, want [ControlLeft KeyZ]", keys)
	}
	if mods[1] != ModCtrl {
		t.Errorf("KeyZ modifiers = %v, want Ctrl", mods[1])
	}
	if !m.IsControlPressed() || !m.IsKeyPressed("KeyZ") {
		t.Error("manager should see Ctrl+Z held")
	}

	src.nextFrame()
	src.justReleased = []ebiten.Key{ebiten.KeyZ}
	delete(src.held, ebiten.KeyZ)
	h.Update()
	if m.IsKeyPressed("KeyZ") {
		t.Error("KeyZ should be released")
	}
}

func TestEbitenHostPointer(t *testing.T) {
	src := &fakeEbiten{x: 10, y: 10}
	h := newEbitenHost(src)
	m := NewManager(h)
	defer m.Dispose()

	var kinds []string
	var moved Vec2
	for _, k := range []EventKind{EventPointerDown, EventPointerMove, EventPointerUp, EventWheel} {
		m.tap(k, func(ev Event) {
			kinds = append(kinds, ev.Kind.String())
			if ev.Kind == EventPointerMove {
				moved = ev.Delta
			}
		})
	}

	// First frame only primes the cursor.
	h.Update()
	if len(kinds) != 0 {
		t.Fatalf("priming frame fired %v", kinds)
	}

	src.nextFrame()
	src.x, src.y = 14, 13
	src.btnDown = map[ebiten.MouseButton]bool{ebiten.MouseButtonRight: true}
	src.wheelY = 1
	h.Update()
	if fmt.Sprint(kinds) != "[pointermove pointerdown wheel]" {
		t.Errorf("kinds = %v", kinds)
	}
	if moved != (Vec2{4, 3}) {
		t.Errorf("move delta = %v, want (4,3)", moved)
	}
	if m.CursorPosition() != (Vec2{14, 13}) {
		t.Errorf("CursorPosition = %v, want (14,13)", m.CursorPosition())
	}
	if !m.IsButtonPressed(MouseButtonRight) {
		t.Error("right button should be pressed")
	}

	src.nextFrame()
	src.btnUp = map[ebiten.MouseButton]bool{ebiten.MouseButtonRight: true}
	h.Update()
	if m.IsButtonPressed(MouseButtonRight) {
		t.Error("right button should be released")
	}

	// A release without a press seen by the host is dropped.
	src.nextFrame()
	src.btnUp = map[ebiten.MouseButton]bool{ebiten.MouseButtonLeft: true}
	kinds = nil
	h.Update()
	if len(kinds) != 0 {
		t.Errorf("unpaired release fired %v", kinds)
	}
}

func TestEbitenHostWheelDirection(t *testing.T) {
	src := &fakeEbiten{wheelY: 2}
	h := newEbitenHost(src)
	var wy float64
	h.Listen(EventWheel, func(raw RawInput) { wy = raw.WheelY })
	h.Update()
	if wy != -2 {
		t.Errorf("WheelY = %g, want -2 (scrolling up)", wy)
	}
}

func TestEbitenHostMouseButtonMapping(t *testing.T) {
	tests := []struct {
		eb   ebiten.MouseButton
		want MouseButton
	}{
		{ebiten.MouseButtonLeft, MouseButtonLeft},
		{ebiten.MouseButtonMiddle, MouseButtonMiddle},
		{ebiten.MouseButtonRight, MouseButtonRight},
		{ebiten.MouseButton3, MouseButtonBack},
		{ebiten.MouseButton4, MouseButtonForward},
	}
	for _, tt := range tests {
		src := &fakeEbiten{btnDown: map[ebiten.MouseButton]bool{tt.eb: true}}
		h := newEbitenHost(src)
		var got MouseButton = -1
		h.Listen(EventPointerDown, func(raw RawInput) { got = raw.Button })
		h.Update()
		if got != tt.want {
			t.Errorf("ebiten button %d -> %v, want %v", tt.eb, got, tt.want)
		}
	}
}

func TestEbitenKeyCode(t *testing.T) {
	tests := []struct {
		k    ebiten.Key
		want string
		ok   bool
	}{
		{ebiten.KeyA, "KeyA", true},
		{ebiten.KeyDigit1, "Digit1", true},
		{ebiten.KeyEscape, "Escape", true},
		{ebiten.KeyShiftRight, "ShiftRight", true},
		{ebiten.KeyArrowUp, "ArrowUp", true},
		{ebiten.KeyShift, "", false},
		{ebiten.KeyMeta, "", false},
	}
	for _, tt := range tests {
		got, ok := ebitenKeyCode(tt.k)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ebitenKeyCode(%v) = %q, %v, want %q, %v", tt.k, got, ok, tt.want, tt.ok)
		}
	}
}
