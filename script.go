package conduit

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	FromX  float64 `yaml:"fromX"`
	FromY  float64 `yaml:"fromY"`
	ToX    float64 `yaml:"toX"`
	ToY    float64 `yaml:"toY"`
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	Button string  `yaml:"button"`
	Key    string  `yaml:"key"`
	Frames int     `yaml:"frames"`

	button MouseButton
	chord  Chord
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner replays a scripted input sequence through a SyntheticHost,
// one host callback per frame. Drags are spread over their frame count so
// consumers see the same per-frame cadence as live input.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	pending   []func(h *SyntheticHost)
	done      bool
}

// LoadScript parses a YAML (or JSON) input script:
//
//	steps:
//	  - {action: click, x: 100, y: 200}
//	  - {action: drag, fromX: 10, fromY: 10, toX: 200, toY: 10, frames: 8}
//	  - {action: key, key: "Ctrl+Z"}
//	  - {action: wait, frames: 3}
//
// Actions are move, press, release, click, drag, scroll, key (a chord
// tap), keydown, keyup and wait. press, release, click and drag accept an
// optional button name.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func (st *scriptStep) validate() error {
	switch st.Action {
	case "move", "scroll", "wait":
	case "press", "release", "click", "drag":
		st.button = MouseButtonLeft
		if st.Button != "" {
			b, err := ParseMouseButton(st.Button)
			if err != nil {
				return err
			}
			st.button = b
		}
	case "key", "keydown", "keyup":
		if st.Key == "" {
			return fmt.Errorf("%s: missing key", st.Action)
		}
		c, err := ParseChord(st.Key)
		if err != nil {
			return err
		}
		st.chord = c
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool { return r.done }

// Step advances the script by one frame, firing at most one host callback
// on h. Call it once per tick before the frame's own input is polled.
func (r *ScriptRunner) Step(h *SyntheticHost) {
	if r.done {
		return
	}
	if len(r.pending) > 0 {
		r.runPending(h)
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		r.pending = st.expand()
		r.runPending(h)
		return
	}
	r.checkDone()
}

func (r *ScriptRunner) runPending(h *SyntheticHost) {
	fn := r.pending[0]
	r.pending[0] = nil
	r.pending = r.pending[1:]
	fn(h)
	r.checkDone()
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pending) == 0 {
		r.done = true
	}
}

// expand turns one step into its per-frame host calls.
func (st scriptStep) expand() []func(h *SyntheticHost) {
	b := st.button
	switch st.Action {
	case "move":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.Move(st.X, st.Y) }}
	case "press":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.PressButton(b, st.X, st.Y) }}
	case "release":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.ReleaseButton(b, st.X, st.Y) }}
	case "click":
		return []func(*SyntheticHost){
			func(h *SyntheticHost) { h.PressButton(b, st.X, st.Y) },
			func(h *SyntheticHost) { h.ReleaseButton(b, st.X, st.Y) },
		}
	case "scroll":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.Scroll(st.X, st.Y, st.DX, st.DY) }}
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		out := []func(*SyntheticHost){
			func(h *SyntheticHost) { h.PressButton(b, st.FromX, st.FromY) },
		}
		moves := frames - 1
		for i := 1; i <= moves; i++ {
			t := float64(i) / float64(moves)
			x := st.FromX + (st.ToX-st.FromX)*t
			y := st.FromY + (st.ToY-st.FromY)*t
			out = append(out, func(h *SyntheticHost) { h.Move(x, y) })
		}
		return append(out, func(h *SyntheticHost) { h.ReleaseButton(b, st.ToX, st.ToY) })
	case "key":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.Chord(st.chord) }}
	case "keydown":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.KeyDown(st.chord.Key) }}
	case "keyup":
		return []func(*SyntheticHost){func(h *SyntheticHost) { h.KeyUp(st.chord.Key) }}
	}
	return nil
}
