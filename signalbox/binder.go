package signalbox

import (
	"reflect"
	"sort"
	"sync"

	"github.com/delaneyj/signalbox/pkg/observable"
)

type attachment struct {
	target  observable.Observable
	signal  string
	handler *observable.Handler
}

// binder attaches a view's bindings while it is mounted.
type binder struct {
	c         *Component
	onMount   *observable.Handler
	onUnmount *observable.Handler

	mu       sync.Mutex
	mounted  bool
	attached map[string]attachment
}

func newBinder(c *Component) *binder {
	b := &binder{
		c:        c,
		attached: map[string]attachment{},
	}
	b.onMount = observable.Func(func(...any) { b.mount() })
	b.onUnmount = observable.Func(func(...any) { b.unmount() })
	return b
}

// mount attaches every resolvable binding that is not attached yet.
func (b *binder) mount() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.c.bindings() {
		if _, ok := b.attached[e.key]; ok {
			continue
		}
		addr, err := ParseAddress(e.key)
		if err != nil {
			b.c.report("bind", err)
			continue
		}
		target, err := b.c.box.target(addr.Path, "bind")
		if err != nil {
			b.c.report("bind", err)
			continue
		}
		target.On(addr.Signal, e.handler)
		b.attached[e.key] = attachment{target: target, signal: addr.Signal, handler: e.handler}
	}
	b.mounted = true
}

// unmount detaches every binding, both from where it was attached and from where its
// path points now. A path that no longer resolves counts as detached.
func (b *binder) unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.mounted {
		return
	}

	for _, e := range b.c.bindings() {
		addr, err := ParseAddress(e.key)
		if err != nil {
			b.c.report("unbind", err)
			continue
		}

		prev, had := b.attached[e.key]
		delete(b.attached, e.key)
		if had {
			prev.target.Off(prev.signal, prev.handler)
		}

		target, err := b.c.box.target(addr.Path, "unbind")
		if err != nil {
			b.c.report("unbind", err)
			continue
		}
		if had && prev.handler == e.handler && sameTarget(prev.target, target) {
			continue
		}
		target.Off(addr.Signal, e.handler)
	}

	// anything left was attached under a key no longer declared
	for key, prev := range b.attached {
		prev.target.Off(prev.signal, prev.handler)
		delete(b.attached, key)
	}
	b.mounted = false
}

func (b *binder) isMounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

func (b *binder) attachedKeys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.attached))
	for k := range b.attached {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sameTarget compares two observables without panicking on uncomparable dynamic types.
func sameTarget(a, b observable.Observable) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
