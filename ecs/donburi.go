package ecs

import (
	"github.com/phanxgames/conduit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType is the Donburi event type for conduit pointer events.
// Subscribe to this in your ECS systems to receive clicks, drags and
// wheel gestures from any LocalManager using a DonburiSink.
var PointerEventType = events.NewEventType[conduit.PointerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on PointerEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) conduit.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitPointerEvent(ev conduit.PointerEvent) {
	PointerEventType.Publish(s.world, ev)
}
