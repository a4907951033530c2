package conduit

import (
	"fmt"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"Ctrl+Z", Chord{ModCtrl, "KeyZ"}},
		{"ctrl+shift+s", Chord{ModCtrl | ModShift, "KeyS"}},
		{"Shift+Delete", Chord{ModShift, KeyDelete}},
		{"Escape", Chord{0, KeyEscape}},
		{"esc", Chord{0, KeyEscape}},
		{"Cmd+1", Chord{ModMeta, "Digit1"}},
		{"Alt+F4", Chord{ModAlt, "F4"}},
		{"Option+Space", Chord{ModAlt, KeySpace}},
		{"F", Chord{0, "KeyF"}},
		{"NumpadAdd", Chord{0, "NumpadAdd"}},
		{" Ctrl + Up ", Chord{ModCtrl, "ArrowUp"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChord(tt.in)
			if err != nil {
				t.Fatalf("ParseChord: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseChordErrors(t *testing.T) {
	for _, in := range []string{"", "Ctrl+", "Hyper+K"} {
		if _, err := ParseChord(in); err == nil {
			t.Errorf("ParseChord(%q): expected error", in)
		}
	}
}

func TestChordString(t *testing.T) {
	if got := (Chord{ModCtrl | ModShift, "KeyZ"}).String(); got != "Ctrl+Shift+KeyZ" {
		t.Errorf("String = %q", got)
	}
	if got := (Chord{Key: KeyEscape}).String(); got != "Escape" {
		t.Errorf("String = %q", got)
	}
}

func TestKeyBindingsTriggerAction(t *testing.T) {
	m, h := newTestManager(t)
	kb := NewKeyBindings(m, NewContext("editor", 0))
	if err := kb.Bind("Ctrl+Z", "undo"); err != nil {
		t.Fatal(err)
	}
	var actions []string
	kb.OnAction(func(a ActionEvent) { actions = append(actions, a.Action) })

	h.Tap("KeyZ")
	h.Chord(Chord{ModCtrl, "KeyZ"})
	h.Chord(Chord{ModCtrl | ModShift, "KeyZ"})

	if fmt.Sprint(actions) != "[undo]" {
		t.Errorf("actions = %v, want [undo] (exact modifier match)", actions)
	}
}

func TestKeyBindingsRebindAndUnbind(t *testing.T) {
	m, h := newTestManager(t)
	kb := NewKeyBindings(m, nil)
	kb.Bind("F", "frame")
	kb.Bind("f", "focus")
	var actions []string
	kb.OnAction(func(a ActionEvent) { actions = append(actions, a.Action) })

	h.Tap("KeyF")
	if err := kb.Unbind("F"); err != nil {
		t.Fatal(err)
	}
	h.Tap("KeyF")
	if fmt.Sprint(actions) != "[focus]" {
		t.Errorf("actions = %v, want [focus]", actions)
	}
}

func TestKeyBindingsLetUnboundKeysThroughExclusive(t *testing.T) {
	m, h := newTestManager(t)
	menu := NewKeyBindings(m, NewExclusiveContext("menu", 100))
	menu.Bind("Escape", "close")
	editor := NewKeyBindings(m, NewContext("editor", 0))
	editor.Bind("Escape", "deselect")
	editor.Bind("Delete", "delete")

	var actions []string
	record := func(a ActionEvent) { actions = append(actions, a.Action) }
	menu.OnAction(record)
	editor.OnAction(record)

	h.Tap(KeyEscape)
	h.Tap(KeyDelete)
	if fmt.Sprint(actions) != "[close delete]" {
		t.Errorf("actions = %v, want [close delete]", actions)
	}
}

func TestKeyBindingsDisabledContext(t *testing.T) {
	m, h := newTestManager(t)
	ctx := NewContext("viewport", 0)
	kb := NewKeyBindings(m, ctx)
	kb.Bind("F", "frame")
	var n int
	kb.OnAction(func(ActionEvent) { n++ })

	ctx.SetEnabled(false)
	h.Tap("KeyF")
	ctx.SetEnabled(true)
	h.Tap("KeyF")
	if n != 1 {
		t.Errorf("actions = %d, want 1", n)
	}
}

func TestKeyBindingsDispose(t *testing.T) {
	m, h := newTestManager(t)
	kb := NewKeyBindings(m, nil)
	kb.Bind("F", "frame")
	var n int
	kb.OnAction(func(ActionEvent) { n++ })

	kb.Dispose()
	kb.Dispose()
	h.Tap("KeyF")
	if n != 0 {
		t.Error("disposed bindings should not fire")
	}
	if len(m.LocalManagers()) != 0 {
		t.Error("dispose should unregister")
	}
	expectDisposedPanic(t, func() { kb.OnAction(func(ActionEvent) {}) })
}

func TestKeyBindingsIgnoreKeyUp(t *testing.T) {
	m, _ := newTestManager(t)
	kb := NewKeyBindings(m, nil)
	kb.Bind("Enter", "confirm")
	if kb.WantsEvent(Event{Kind: EventKeyUp, Key: KeyEnter}) {
		t.Error("key up should not be claimed")
	}
	if !kb.WantsEvent(Event{Kind: EventKeyDown, Key: KeyEnter}) {
		t.Error("bound key down should be claimed")
	}
}

func TestKeyBindingsModifierKeyAlone(t *testing.T) {
	m, h := newTestManager(t)
	kb := NewKeyBindings(m, NewContext("editor", 0))
	kb.Bind("Shift", "extend")
	kb.Bind("Ctrl+Shift", "both")
	var actions []string
	kb.OnAction(func(a ActionEvent) { actions = append(actions, a.Action) })

	h.KeyDown(KeyShiftLeft)
	h.KeyUp(KeyShiftLeft)
	h.KeyDown(KeyControlLeft)
	h.KeyDown(KeyShiftLeft)

	if fmt.Sprint(actions) != "[extend both]" {
		t.Errorf("actions = %v, want [extend both]", actions)
	}
}
