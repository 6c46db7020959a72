package tsuiseki

import "reflect"

// MaxEventTypes is the number of distinct event types one bus can carry.
const MaxEventTypes = 256

// EventBus delivers typed events to subscribers synchronously, in
// subscription order. Publish is allocation-free once a type is registered.
type EventBus struct {
	typeMap  map[reflect.Type]uint8
	handlers [MaxEventTypes][]any
	nextID   uint8
}

// Subscribe registers handler for events of type T.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.eventTypeID(reflect.TypeOf((*T)(nil)).Elem())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish delivers event to every handler subscribed to T. Events with no
// subscribers are dropped.
func Publish[T any](bus *EventBus, event T) {
	if id, ok := bus.typeMap[reflect.TypeOf((*T)(nil)).Elem()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

func (bus *EventBus) eventTypeID(t reflect.Type) uint8 {
	if bus.typeMap == nil {
		bus.typeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.typeMap[t]; ok {
		return id
	}
	if len(bus.typeMap) >= MaxEventTypes {
		panic("ecs: too many event types")
	}
	id := bus.nextID
	bus.nextID++
	bus.typeMap[t] = id
	return id
}
