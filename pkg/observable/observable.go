package observable

import (
	"sort"
	"sync"
)

// Observable is the minimal capability a component needs to take part in signal wiring.
type Observable interface {
	On(signal string, h *Handler)
	Off(signal string, h *Handler)
	Trigger(signal string, data ...any)
}

// Handler is a listener. Its pointer is its identity, so keep the pointer around to detach it.
type Handler struct {
	fn func(data ...any)
}

func Func(fn func(data ...any)) *Handler {
	return &Handler{fn: fn}
}

// Of adapts a handler that expects a single typed payload. A missing or mistyped payload
// arrives as the zero value.
func Of[T any](fn func(T)) *Handler {
	return Func(func(data ...any) {
		var t T
		if len(data) > 0 {
			if v, ok := data[0].(T); ok {
				t = v
			}
		}
		fn(t)
	})
}

func (h *Handler) Call(data ...any) {
	if h == nil || h.fn == nil {
		return
	}
	h.fn(data...)
}

// Emitter is the default Observable. Listeners of a signal run in the order they were added.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]*Handler
}

var _ Observable = (*Emitter)(nil)

func New() *Emitter {
	return &Emitter{
		listeners: map[string][]*Handler{},
	}
}

func (e *Emitter) On(signal string, h *Handler) {
	if h == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = map[string][]*Handler{}
	}
	e.listeners[signal] = append(e.listeners[signal], h)
}

// Off removes every registration of h for signal. A nil handler clears the signal.
func (e *Emitter) Off(signal string, h *Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if h == nil {
		delete(e.listeners, signal)
		return
	}

	hs := e.listeners[signal]
	kept := hs[:0]
	for _, l := range hs {
		if l != h {
			kept = append(kept, l)
		}
	}
	// clear the tail so removed handlers can be collected
	for i := len(kept); i < len(hs); i++ {
		hs[i] = nil
	}
	if len(kept) == 0 {
		delete(e.listeners, signal)
		return
	}
	e.listeners[signal] = kept
}

func (e *Emitter) Trigger(signal string, data ...any) {
	e.mu.RLock()
	hs := make([]*Handler, len(e.listeners[signal]))
	copy(hs, e.listeners[signal])
	e.mu.RUnlock()

	// called outside the lock, handlers are free to emit again
	for _, h := range hs {
		h.Call(data...)
	}
}

// Listeners returns how many handlers are registered for signal.
func (e *Emitter) Listeners(signal string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[signal])
}

// Count returns how many times h is registered for signal.
func (e *Emitter) Count(signal string, h *Handler) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, l := range e.listeners[signal] {
		if l == h {
			n++
		}
	}
	return n
}

// Signals lists the signals that currently have listeners.
func (e *Emitter) Signals() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
