package events

import "reflect"

// Bus delivers typed events to subscribers synchronously, in subscription
// order. Handlers run on the emitting goroutine before Emit returns; a handler
// that emits an event of its own type recurses.
//
// A Bus is not safe for concurrent use.
type Bus struct {
	handlers map[reflect.Type][]any
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]any)}
}

// Subscriber is implemented by systems that react to events.
type Subscriber interface {
	SubscribeToEvents(bus *Bus)
}

// Subscribe registers handler for events of type E.
func Subscribe[E any](bus *Bus, handler func(E)) {
	t := reflect.TypeFor[E]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Emit calls every handler subscribed to E with event.
func Emit[E any](bus *Bus, event E) {
	hs := bus.handlers[reflect.TypeFor[E]()]
	for _, h := range hs {
		h.(func(E))(event)
	}
}

// SubscriberCount returns the number of handlers registered for E.
func SubscriberCount[E any](bus *Bus) int {
	return len(bus.handlers[reflect.TypeFor[E]()])
}

// Reset drops every subscription.
func (b *Bus) Reset() {
	clear(b.handlers)
}

// SubscribeAll resets the bus and lets each subscriber register again. Calling
// it once per frame keeps subscriptions from outliving the systems that made
// them.
func SubscribeAll(bus *Bus, subscribers ...Subscriber) {
	bus.Reset()
	for _, s := range subscribers {
		s.SubscribeToEvents(bus)
	}
}
