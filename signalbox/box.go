package signalbox

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/delaneyj/signalbox/pkg/dotpath"
	"github.com/delaneyj/signalbox/pkg/observable"
	"github.com/rs/zerolog"
)

// Box is the registry every component of an application shares. It is meant to be
// created once and to live as long as the process; nothing is ever removed from it.
type Box struct {
	find func(path string) any
	log  zerolog.Logger

	mu          sync.Mutex
	counter     int
	controllers map[int]*Component
	views       map[string]*Component
}

// Option configures a Box.
type Option func(*Box)

// WithLogger sets where failed bindings, emits and invokes are reported.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Box) {
		b.log = log
	}
}

// New creates a box resolving dot paths against root.
func New(root any, opts ...Option) *Box {
	b := &Box{
		find:        dotpath.Finder(root),
		log:         zerolog.Nop(),
		controllers: map[int]*Component{},
		views:       map[string]*Component{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resolve looks path up in the application namespace.
func (b *Box) Resolve(path string) any {
	return b.find(path)
}

func (b *Box) target(path, verb string) (observable.Observable, error) {
	v := b.find(path)
	if v == nil {
		return nil, fmt.Errorf("%w: cannot find %s to %s", ErrUnresolved, path, verb)
	}
	if sc, ok := v.(interface{ signalComponent() *Component }); ok && sc.signalComponent() == nil {
		return nil, fmt.Errorf("%w: cannot find %s to %s", ErrUnresolved, path, verb)
	}
	obs, ok := v.(observable.Observable)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %T, cannot %s", ErrNotObservable, path, v, verb)
	}
	return obs, nil
}

func (b *Box) registerController(c *Component) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counter++
	id := b.counter
	c.id = strconv.Itoa(id)
	b.controllers[id] = c
	return id
}

func (b *Box) registerView(c *Component, preferred string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	name := preferred
	if _, taken := b.views[name]; name == "" || taken {
		base := preferred
		if base == "" {
			base = "unknownComponent"
		}
		for {
			b.counter++
			name = base + "." + strconv.Itoa(b.counter)
			if _, taken := b.views[name]; !taken {
				break
			}
		}
		if preferred != "" {
			err = fmt.Errorf("%w: %s, registered as %s", ErrNameTaken, preferred, name)
		}
	}
	c.id = name
	b.views[name] = c
	return name, err
}

// Controller looks a controller up by its counter id.
func (b *Box) Controller(id int) (*Component, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.controllers[id]
	return c, ok
}

// View looks a view up by its registered name.
func (b *Box) View(name string) (*Component, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.views[name]
	return c, ok
}

// Controllers returns every registered controller in registration order.
func (b *Box) Controllers() []*Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int, 0, len(b.controllers))
	for id := range b.controllers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Component, len(ids))
	for i, id := range ids {
		out[i] = b.controllers[id]
	}
	return out
}

// Views returns every registered view ordered by name.
func (b *Box) Views() []*Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.views))
	for name := range b.views {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Component, len(names))
	for i, name := range names {
		out[i] = b.views[name]
	}
	return out
}

// Counter is the last value handed out for auto naming.
func (b *Box) Counter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counter
}

// NewController registers a controller. Its bindings attach as soon as they are declared.
func (b *Box) NewController(opts ...ComponentOption) *Component {
	c := newComponent(b, Controller, opts)
	b.registerController(c)
	return c
}

// NewView registers a view named after tag, or an unknownComponent.N name when tag is empty.
// Its bindings attach on "mount" and detach on "unmount".
func (b *Box) NewView(tag string, opts ...ComponentOption) *Component {
	c := newComponent(b, View, opts)
	if _, err := b.registerView(c, tag); err != nil {
		c.report("register", err)
	}
	// registered first so bindings are in place before any other mount listener runs
	c.binder = newBinder(c)
	c.obs.On(MountSignal, c.binder.onMount)
	c.obs.On(UnmountSignal, c.binder.onUnmount)
	return c
}
