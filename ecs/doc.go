// Package ecs provides ECS adapters for conduit's local input managers.
//
// The primary adapter is [NewDonburiSink], which forwards the semantic
// events a [conduit.LocalManager] emits (clicks, drags, wheel) into a
// [Donburi] world as typed events. Subscribe to [PointerEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	local := conduit.NewLocalManager(mgr, ctx, bounds, conduit.LocalConfig{Name: "gizmo"})
//	local.SetSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
