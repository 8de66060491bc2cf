package casement

import "log"

// Listener receives every event a window generates. Implementations must not
// panic across the delivery boundary; a panic that does escape is recovered
// and logged so remaining listeners still receive the event.
//
// Listeners are identified by interface equality, so the usual pattern is a
// pointer receiver. The window holds non-owning references only: remove a
// listener before discarding it.
type Listener interface {
	HandleEvent(event Event)
}

// ListenerFunc adapts a plain function to the Listener interface. Each call
// returns a distinct listener identity, so keep the returned value around if
// you intend to remove it later.
func ListenerFunc(fn func(Event)) Listener {
	return &listenerFunc{fn: fn}
}

type listenerFunc struct {
	fn func(Event)
}

func (l *listenerFunc) HandleEvent(event Event) { l.fn(event) }

// listenerRegistry is the ordered set of listeners attached to a window.
// Registration order is delivery order.
type listenerRegistry struct {
	listeners []Listener
}

// add appends a listener unless it is already registered.
func (r *listenerRegistry) add(l Listener) {
	if l == nil || r.contains(l) {
		return
	}
	r.listeners = append(r.listeners, l)
}

// remove erases a listener; removing one that is not registered is a no-op.
func (r *listenerRegistry) remove(l Listener) {
	for i := range r.listeners {
		if r.listeners[i] == l {
			copy(r.listeners[i:], r.listeners[i+1:])
			r.listeners[len(r.listeners)-1] = nil
			r.listeners = r.listeners[:len(r.listeners)-1]
			return
		}
	}
}

func (r *listenerRegistry) contains(l Listener) bool {
	for i := range r.listeners {
		if r.listeners[i] == l {
			return true
		}
	}
	return false
}

// dispatch delivers an event to every registered listener in registration
// order. The listener slice is snapshotted first so listeners may add or
// remove listeners mid-delivery; a listener removed during the pass is
// skipped, one added during the pass first sees the next event.
func (r *listenerRegistry) dispatch(event Event) {
	snapshot := append([]Listener(nil), r.listeners...)
	for _, l := range snapshot {
		if r.contains(l) {
			deliver(l, event)
		}
	}
}

// deliver invokes a single listener, containing any panic so the remaining
// listeners in the pass still run.
func deliver(l Listener, event Event) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("casement: listener panicked handling %v event: %v", event.Type, v)
		}
	}()
	l.HandleEvent(event)
}
