package signalbox

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/delaneyj/signalbox/pkg/observable"
)

type Kind uint8

const (
	Controller Kind = iota
	View
)

func (k Kind) String() string {
	switch k {
	case Controller:
		return "controller"
	case View:
		return "view"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Lifecycle signals a host triggers on a view.
const (
	MountSignal   = "mount"
	UnmountSignal = "unmount"
)

// Signal describes something a component emits or accepts. Handler is only used by Accepts.
type Signal struct {
	Name    string
	Desc    string
	Data    string
	Handler *observable.Handler
}

// Bindings maps "dot.path:signal" to the handler to attach there.
type Bindings map[string]*observable.Handler

// ComponentOption configures a component at registration.
type ComponentOption func(*Component)

// WithObservable gives the component an existing capability instead of a fresh Emitter.
func WithObservable(obs observable.Observable) ComponentOption {
	return func(c *Component) {
		c.obs = obs
	}
}

// Component carries the declarations of one participant. Embed *Component into a type
// to make it addressable through the namespace.
type Component struct {
	box    *Box
	kind   Kind
	id     string
	obs    observable.Observable
	binder *binder

	mu      sync.Mutex
	emits   map[string]Signal
	accepts map[string]Signal
	binds   map[string]*observable.Handler
	invokes map[string]string
}

var _ observable.Observable = (*Component)(nil)

func newComponent(b *Box, kind Kind, opts []ComponentOption) *Component {
	c := &Component{
		box:     b,
		kind:    kind,
		emits:   map[string]Signal{},
		accepts: map[string]Signal{},
		binds:   map[string]*observable.Handler{},
		invokes: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.obs == nil {
		c.obs = observable.New()
	}
	return c
}

func (c *Component) signalComponent() *Component { return c }

// AsComponent finds the *Component behind v, including types that embed one.
func AsComponent(v any) (*Component, bool) {
	sc, ok := v.(interface{ signalComponent() *Component })
	if !ok {
		return nil, false
	}
	c := sc.signalComponent()
	return c, c != nil
}

func (c *Component) Kind() Kind { return c.kind }

// ID is the registry identity: a counter value for controllers, a tag derived name for views.
func (c *Component) ID() string { return c.id }

func (c *Component) Box() *Box { return c.box }

func (c *Component) Observable() observable.Observable { return c.obs }

// On, Off and Trigger do nothing on a nil component, so a nil entry left in the
// namespace behaves like a missing one.
func (c *Component) On(signal string, h *observable.Handler) {
	if c == nil || c.obs == nil {
		return
	}
	c.obs.On(signal, h)
}

func (c *Component) Off(signal string, h *observable.Handler) {
	if c == nil || c.obs == nil {
		return
	}
	c.obs.Off(signal, h)
}

func (c *Component) Trigger(signal string, data ...any) {
	if c == nil || c.obs == nil {
		return
	}
	c.obs.Trigger(signal, data...)
}

// Mount and Unmount are shorthands for triggering the lifecycle signals.
func (c *Component) Mount()   { c.obs.Trigger(MountSignal) }
func (c *Component) Unmount() { c.obs.Trigger(UnmountSignal) }

// Mounted reports whether a view is currently bound. Controllers are never mounted.
func (c *Component) Mounted() bool {
	if c.binder == nil {
		return false
	}
	return c.binder.isMounted()
}

// Attached lists the binding keys currently attached by the mount lifecycle.
func (c *Component) Attached() []string {
	if c.binder == nil {
		return nil
	}
	return c.binder.attachedKeys()
}

func (c *Component) report(op string, err error) {
	c.box.log.Error().
		Str("component", c.id).
		Stringer("kind", c.kind).
		Str("op", op).
		Msg(err.Error())
}

// Emits declares signals this component may emit. Redeclaring a name replaces it.
func (c *Component) Emits(sigs ...Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sig := range sigs {
		c.emits[sig.Name] = sig
	}
}

// Accepts declares signals this component handles and listens for them on itself right away.
func (c *Component) Accepts(sigs ...Signal) {
	c.mu.Lock()
	for _, sig := range sigs {
		c.accepts[sig.Name] = sig
	}
	c.mu.Unlock()

	for _, sig := range sigs {
		if sig.Handler != nil {
			c.obs.On(sig.Name, sig.Handler)
		}
	}
}

// Binds declares handlers for other components' signals. Controllers attach them now and
// keep them for good; views attach them on mount. Unresolvable entries are reported and
// skipped, the returned error joins those reports.
func (c *Component) Binds(table Bindings) error {
	keys := sortedKeys(table)

	c.mu.Lock()
	for _, key := range keys {
		c.binds[key] = table[key]
	}
	c.mu.Unlock()

	if c.kind != Controller {
		return nil
	}

	var errs []error
	for _, key := range keys {
		if _, err := c.attach(key, table[key], "bind"); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Component) attach(key string, h *observable.Handler, verb string) (observable.Observable, error) {
	addr, err := ParseAddress(key)
	if err != nil {
		c.report(verb, err)
		return nil, err
	}
	target, err := c.box.target(addr.Path, verb)
	if err != nil {
		c.report(verb, err)
		return nil, err
	}
	target.On(addr.Signal, h)
	return target, nil
}

// Invokes declares local names for signals accepted elsewhere, as name -> "dot.path:signal".
func (c *Component) Invokes(table map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, ref := range table {
		c.invokes[name] = ref
	}
}

// Emit triggers a declared signal on this component.
func (c *Component) Emit(name string, data ...any) error {
	c.mu.Lock()
	_, ok := c.emits[name]
	c.mu.Unlock()

	if !ok {
		err := fmt.Errorf("%w: %s", ErrUndeclaredSignal, name)
		c.report("emit", err)
		return err
	}
	c.obs.Trigger(name, data...)
	return nil
}

// Invoke triggers the signal a local name was declared for on its target.
// An undeclared name is reported but resolution is still attempted.
func (c *Component) Invoke(name string, data ...any) error {
	c.mu.Lock()
	ref, ok := c.invokes[name]
	c.mu.Unlock()

	var errs []error
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUndeclaredInvoke, name)
		c.report("invoke", err)
		errs = append(errs, err)
	}

	addr, err := ParseAddress(ref)
	if err != nil {
		c.report("invoke", err)
		return errors.Join(append(errs, err)...)
	}
	target, err := c.box.target(addr.Path, "invoke")
	if err != nil {
		c.report("invoke", err)
		return errors.Join(append(errs, err)...)
	}

	c.box.log.Debug().
		Str("component", c.id).
		Str("signal", addr.Signal).
		Str("path", addr.Path).
		Msg("triggering")
	target.Trigger(addr.Signal, data...)
	return errors.Join(errs...)
}

// Emitted returns the declared emits ordered by name.
func (c *Component) Emitted() []Signal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedSignals(c.emits)
}

// Accepted returns the declared accepts ordered by name.
func (c *Component) Accepted() []Signal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedSignals(c.accepts)
}

// Bound returns the declared binding keys in order.
func (c *Component) Bound() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedKeys(c.binds)
}

// Binding returns the handler declared for key.
func (c *Component) Binding(key string) (*observable.Handler, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.binds[key]
	return h, ok
}

// Invoked returns a copy of the declared invokes.
func (c *Component) Invoked() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.invokes))
	for k, v := range c.invokes {
		out[k] = v
	}
	return out
}

type binding struct {
	key     string
	handler *observable.Handler
}

func (c *Component) bindings() []binding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]binding, 0, len(c.binds))
	for _, key := range sortedKeys(c.binds) {
		out = append(out, binding{key: key, handler: c.binds[key]})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSignals(m map[string]Signal) []Signal {
	out := make([]Signal, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}
