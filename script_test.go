package conduit

import (
	"fmt"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: click, x: 100, y: 200}
  - {action: wait, frames: 3}
  - {action: drag, fromX: 0, fromY: 0, toX: 30, toY: 0, frames: 4, button: middle}
  - {action: key, key: "Ctrl+Z"}
`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "click" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[2].button != MouseButtonMiddle || runner.steps[2].Frames != 4 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].chord != (Chord{ModCtrl, "KeyZ"}) {
		t.Errorf("step 3 chord = %+v", runner.steps[3].chord)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "move", "x": 5, "y": 6}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.steps[0].X != 5 || runner.steps[0].Y != 6 {
		t.Error("JSON step mismatch")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := map[string]string{
		"invalid":        `steps: [`,
		"empty":          `steps: []`,
		"unknown action": `steps: [{action: teleport}]`,
		"missing action": `steps: [{x: 1}]`,
		"bad button":     `steps: [{action: click, button: thumb}]`,
		"missing key":    `steps: [{action: key}]`,
		"bad chord":      `steps: [{action: key, key: "Hyper+K"}]`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadScript([]byte(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptRunnerOneCallbackPerFrame(t *testing.T) {
	m, h := newTestManager(t)
	l := NewLocalManager(m, nil, Rect{0, 0, 100, 100}, LocalConfig{})
	var clicks int
	l.OnClick(func(PointerEvent) { clicks++ })

	runner, err := LoadScript([]byte(`steps: [{action: click, x: 50, y: 50}]`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: press.
	runner.Step(h)
	if clicks != 0 || !m.IsButtonPressed(MouseButtonLeft) {
		t.Fatal("frame 1 should only press")
	}
	if runner.Done() {
		t.Error("runner should not be done while the release is pending")
	}

	// Frame 2: release.
	runner.Step(h)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestScriptRunnerDragSpansFrames(t *testing.T) {
	m, h := newTestManager(t)
	l := NewLocalManager(m, nil, Rect{0, 0, 100, 100}, LocalConfig{
		Buttons: []MouseButton{MouseButtonMiddle},
	})
	var drags []Vec2
	var ended bool
	l.OnDrag(func(pe PointerEvent) { drags = append(drags, pe.Delta) })
	l.OnDragEnd(func(PointerEvent) { ended = true })

	runner, err := LoadScript([]byte(`steps: [{action: drag, fromX: 0, fromY: 0, toX: 30, toY: 0, frames: 4, button: middle}]`))
	if err != nil {
		t.Fatal(err)
	}
	frames := 0
	for !runner.Done() {
		runner.Step(h)
		frames++
		if frames > 10 {
			t.Fatal("runner did not finish")
		}
	}
	// press, three moves, release
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
	if fmt.Sprint(drags) != "[{10 0} {10 0} {10 0}]" {
		t.Errorf("drag deltas = %v", drags)
	}
	if !ended {
		t.Error("drag should end")
	}
}

func TestScriptRunnerWait(t *testing.T) {
	_, h := newTestManager(t)
	runner, err := LoadScript([]byte(`steps: [{action: wait, frames: 3}, {action: move, x: 1, y: 1}]`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		runner.Step(h)
		if h.Cursor() != (Vec2{}) {
			t.Fatalf("frame %d: moved during wait", i+1)
		}
	}
	runner.Step(h)
	if h.Cursor() != (Vec2{1, 1}) {
		t.Errorf("cursor = %v, want (1,1)", h.Cursor())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
	runner.Step(h) // no-op once done
}

func TestScriptRunnerKeys(t *testing.T) {
	m, h := newTestManager(t)
	kb := NewKeyBindings(m, nil)
	kb.Bind("Ctrl+Z", "undo")
	var actions []string
	kb.OnAction(func(a ActionEvent) { actions = append(actions, a.Action) })

	runner, err := LoadScript([]byte(`
steps:
  - {action: key, key: "Ctrl+Z"}
  - {action: keydown, key: "Shift"}
  - {action: keyup, key: "Shift"}
`))
	if err != nil {
		t.Fatal(err)
	}
	runner.Step(h)
	if fmt.Sprint(actions) != "[undo]" {
		t.Errorf("actions = %v, want [undo]", actions)
	}
	runner.Step(h)
	if !m.IsShiftPressed() {
		t.Error("keydown step should hold the key")
	}
	runner.Step(h)
	if m.IsKeyPressed(KeyShiftLeft) {
		t.Error("keyup step should release the key")
	}
}
