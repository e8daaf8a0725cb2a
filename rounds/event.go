package rounds

// Subscription identifies a listener registered on an Event. The zero value
// never matches a registered listener.
type Subscription uint64

type listener[T any] struct {
	id Subscription
	fn func(T)
}

// Event is an ordered list of listeners that all receive each emitted value.
type Event[T any] struct {
	listeners []listener[T]
	nextID    Subscription
}

// Subscribe appends fn to the listener list. A nil fn is ignored and the zero
// Subscription is returned.
func (e *Event[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return 0
	}

	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: fn})
	return e.nextID
}

// Unsubscribe removes the listener registered under sub and reports whether
// one was found.
func (e *Event[T]) Unsubscribe(sub Subscription) bool {
	for i, l := range e.listeners {
		if l.id == sub {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}

	return false
}

// Emit calls every listener with v, in the order they subscribed. Changes to
// the listener list made by a listener apply from the next Emit on.
func (e *Event[T]) Emit(v T) {
	snapshot := e.listeners
	for _, l := range snapshot {
		l.fn(v)
	}
}

func (e *Event[T]) Len() int {
	return len(e.listeners)
}

func (e *Event[T]) Clear() {
	e.listeners = nil
}

// Signal is an Event without a payload.
type Signal struct {
	event Event[struct{}]
}

func (s *Signal) Subscribe(fn func()) Subscription {
	if fn == nil {
		return 0
	}

	return s.event.Subscribe(func(struct{}) { fn() })
}

func (s *Signal) Unsubscribe(sub Subscription) bool {
	return s.event.Unsubscribe(sub)
}

func (s *Signal) Emit() {
	s.event.Emit(struct{}{})
}

func (s *Signal) Len() int {
	return s.event.Len()
}

func (s *Signal) Clear() {
	s.event.Clear()
}
