// Package notify provides the listener registry behind change
// notifications in gef.
//
// Listeners run synchronously on the goroutine that fires the event. A
// registry is not safe for concurrent use.
package notify

// Listeners is a registry of callbacks receiving values of type T.
// The zero value is ready to use.
type Listeners[T any] struct {
	entries []*entry[T]
}

type entry[T any] struct {
	fn     func(T)
	active bool
}

// Add registers fn and returns a function that removes it again.
// Calling the returned function more than once has no effect.
func (l *Listeners[T]) Add(fn func(T)) (cancel func()) {
	if fn == nil {
		panic("notify: nil listener")
	}
	e := &entry[T]{fn: fn, active: true}
	l.entries = append(l.entries, e)
	return func() {
		if !e.active {
			return
		}
		e.active = false
		for i, x := range l.entries {
			if x == e {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				break
			}
		}
	}
}

// Fire calls every registered listener with v, in registration order.
// Listeners added during Fire are not called for v; listeners removed
// during Fire are not called if they have not run yet.
func (l *Listeners[T]) Fire(v T) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := make([]*entry[T], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if e.active {
			e.fn(v)
		}
	}
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	return len(l.entries)
}
