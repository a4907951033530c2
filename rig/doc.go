// Package rig contains the editor's stock input consumers: the viewport
// OrbitRig, the Timeline ruler, the docking Splitter and the modal
// ContextMenu. Each one creates its own conduit context, registers local
// managers and key bindings against a shared *conduit.Manager, and cleans
// up in Dispose.
//
// They double as worked examples of composing contexts: the menu is an
// exclusive context above everything, the splitter an exclusive context
// above the panels it divides, and the viewport and timeline plain
// contexts that share the pointer stream by bounds.
package rig
