// Package conduit routes keyboard, pointer and wheel input for editor-style
// applications built on [Ebitengine] or a terminal.
//
// Conduit turns platform callbacks into one canonical event stream, tracks
// global input state, and arbitrates which part of the UI gets each event
// through a priority-ordered stack of input contexts. Per-element local
// managers turn the stream into clicks and drags.
//
// # Quick start
//
// Create a host for your platform and build a [Manager] on it:
//
//	host := conduit.NewEbitenHost()
//	mgr := conduit.NewManager(host)
//
//	viewport := conduit.NewContext("viewport", 0)
//	mgr.PushContext(viewport)
//
//	local := conduit.NewLocalManager(mgr, viewport, viewportRect, conduit.LocalConfig{Name: "viewport"})
//	local.OnDrag(func(pe conduit.PointerEvent) { orbit(pe.Delta) })
//
// Then call [EbitenHost.Update] once per tick from your Game.Update.
// Terminal frontends use the tcellhost package instead, and tests drive a
// [SyntheticHost] directly.
//
// # Events
//
// Hosts fire [RawInput] callbacks per [EventKind]. The [Normalizer] turns
// each into an [Event] with global and local positions, movement delta,
// wheel deltas and the modifier mask, and hands it to the manager. Key
// identifiers are W3C KeyboardEvent.code strings ("KeyA", "ShiftLeft");
// mouse buttons use W3C indices (left 0, middle 1, right 2).
//
// # Contexts
//
// Every routable (a [LocalManager], a [KeyBindings] table, or your own type
// implementing [Routable]) belongs to a [PriorityContext]. For each event
// the manager sorts routables by descending context priority, skips those
// whose context is disabled, and delivers to each one that wants the
// event. Once a routable in an exclusive context takes an event, lower
// priority routables never see it:
//
//	menu := conduit.NewExclusiveContext("menu", 100)
//	mgr.PushContext(menu)
//
// The stack itself answers [Manager.ActiveContext]; routing order depends
// only on priority.
//
// # Gestures
//
// A [LocalManager] claims pointer events inside its [Bounds] and runs a
// small drag machine: a press goes pending, movement past
// [LocalConfig.DragThreshold] starts a drag, and release ends it, or
// reports a click when the threshold was never crossed. While a gesture is
// in progress the element keeps receiving moves and the release even after
// the pointer leaves its bounds.
//
// # Debugging
//
// [Manager.SetDebugMode] logs every delivery, exclusive stop and context
// push or pop through the manager's logrus entry ([WithLogger]). Use of a
// disposed manager panics with an error wrapping [ErrDisposed].
//
// # Configuration and scripts
//
// [LoadConfig] reads a YAML description of contexts, local managers and
// key bindings. [LoadScript] reads a YAML or JSON list of input steps that
// a [ScriptRunner] replays through a [SyntheticHost], one host callback per
// frame.
//
// [Ebitengine]: https://ebitengine.org
package conduit
