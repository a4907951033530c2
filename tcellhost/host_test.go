package tcellhost

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/conduit"
)

type record struct {
	kind conduit.EventKind
	raw  conduit.RawInput
}

func listenAll(h *Host) *[]record {
	var got []record
	for _, k := range []conduit.EventKind{
		conduit.EventKeyDown, conduit.EventKeyUp,
		conduit.EventPointerDown, conduit.EventPointerUp,
		conduit.EventPointerMove, conduit.EventWheel,
	} {
		h.Listen(k, func(raw conduit.RawInput) {
			got = append(got, record{k, raw})
		})
	}
	return &got
}

func kinds(rs []record) []conduit.EventKind {
	out := make([]conduit.EventKind, len(rs))
	for i, r := range rs {
		out[i] = r.kind
	}
	return out
}

func TestKeyPressFiresDownThenUp(t *testing.T) {
	h := New()
	got := listenAll(h)

	ok := h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, []conduit.EventKind{conduit.EventKeyDown, conduit.EventKeyUp}, kinds(*got))
	assert.Equal(t, "KeyF", (*got)[0].raw.Key)
}

func TestKeyCodes(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		mod  tcell.ModMask
		code string
		mods conduit.KeyModifiers
	}{
		{"lower", tcell.KeyRune, 'z', tcell.ModNone, "KeyZ", 0},
		{"upper", tcell.KeyRune, 'Z', tcell.ModNone, "KeyZ", conduit.ModShift},
		{"digit", tcell.KeyRune, '7', tcell.ModNone, "Digit7", 0},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, conduit.KeySpace, 0},
		{"alt", tcell.KeyRune, 'x', tcell.ModAlt, "KeyX", conduit.ModAlt},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, conduit.KeyEscape, 0},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, conduit.KeyEnter, 0},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, conduit.KeyTab, 0},
		{"delete", tcell.KeyDelete, 0, tcell.ModNone, conduit.KeyDelete, 0},
		{"arrow", tcell.KeyLeft, 0, tcell.ModShift, "ArrowLeft", conduit.ModShift},
		{"function", tcell.KeyF5, 0, tcell.ModNone, "F5", 0},
		{"ctrl letter", tcell.KeyCtrlZ, 0, tcell.ModCtrl, "KeyZ", conduit.ModCtrl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, mods, ok := keyCode(tcell.NewEventKey(tt.key, tt.ch, tt.mod))
			require.True(t, ok)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.mods, mods)
		})
	}
}

func TestUnknownRuneIgnored(t *testing.T) {
	h := New()
	got := listenAll(h)
	assert.False(t, h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)))
	assert.Empty(t, *got)
}

func TestNonInputEventIgnored(t *testing.T) {
	h := New()
	assert.False(t, h.HandleEvent(tcell.NewEventResize(80, 24)))
}

func TestMouseButtonDiff(t *testing.T) {
	h := New()
	got := listenAll(h)

	h.HandleEvent(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone))
	assert.Empty(t, *got, "first event only primes the cursor")

	h.HandleEvent(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(6, 4, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(6, 4, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, []conduit.EventKind{
		conduit.EventPointerDown,
		conduit.EventPointerMove,
		conduit.EventPointerUp,
	}, kinds(*got))
	assert.Equal(t, conduit.MouseButtonLeft, (*got)[0].raw.Button)
	assert.Equal(t, conduit.Vec2{X: 3, Y: 0}, (*got)[1].raw.Movement)
	assert.Equal(t, conduit.MouseButtonLeft, (*got)[2].raw.Button)
}

func TestMouseRightAndMiddle(t *testing.T) {
	h := New()
	got := listenAll(h)

	h.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button2|tcell.Button3, tcell.ModNone))
	require.Len(t, *got, 2)
	assert.Equal(t, conduit.MouseButtonMiddle, (*got)[0].raw.Button)
	assert.Equal(t, conduit.MouseButtonRight, (*got)[1].raw.Button)
}

func TestWheel(t *testing.T) {
	h := New()
	got := listenAll(h)

	h.HandleEvent(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone))

	require.Len(t, *got, 2)
	assert.Equal(t, conduit.EventWheel, (*got)[0].kind)
	assert.Equal(t, 1.0, (*got)[0].raw.WheelY)
	assert.Equal(t, -1.0, (*got)[1].raw.WheelY)
}

func TestCellSizeAndOrigin(t *testing.T) {
	h := New()
	h.CellSize = conduit.Vec2{X: 8, Y: 16}
	h.Origin = conduit.Vec2{X: 8, Y: 0}
	got := listenAll(h)

	h.HandleEvent(tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModCtrl))
	require.Len(t, *got, 1)
	raw := (*got)[0].raw
	assert.Equal(t, conduit.Vec2{X: 16, Y: 48}, raw.Screen)
	assert.Equal(t, conduit.Vec2{X: 8, Y: 48}, raw.Local)
	assert.Equal(t, conduit.ModCtrl, raw.Modifiers)
}

func TestDrivesManager(t *testing.T) {
	h := New()
	m := conduit.NewManager(h)
	defer m.Dispose()

	ctx := conduit.NewContext("list", 1)
	m.PushContext(ctx)
	lm := conduit.NewLocalManager(m, ctx, conduit.Rect{Width: 20, Height: 10}, conduit.LocalConfig{DragThreshold: 1})

	clicks := 0
	lm.OnClick(func(conduit.PointerEvent) { clicks++ })

	h.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, 1, clicks)

	h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	assert.False(t, m.IsKeyPressed("KeyA"), "terminal keys release immediately")
}
