package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/delaneyj/signalbox/pkg/dotpath"
	"github.com/delaneyj/signalbox/pkg/observable"
	"github.com/delaneyj/signalbox/signalbox"
)

type ActionKind string

const (
	ActionNone   ActionKind = ""
	ActionLog    ActionKind = "log"
	ActionCount  ActionKind = "count"
	ActionEmit   ActionKind = "emit"
	ActionInvoke ActionKind = "invoke"
)

// Action is what a manifest handler does: "log", "count", "emit:<signal>" or "invoke:<name>".
type Action struct {
	Kind ActionKind
	Arg  string
}

func ParseAction(s string) (Action, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	a := Action{Kind: ActionKind(kind), Arg: arg}
	switch a.Kind {
	case ActionNone, ActionLog, ActionCount:
		if arg != "" {
			return Action{}, fmt.Errorf("%w: action %q takes no argument", ErrInvalid, s)
		}
	case ActionEmit, ActionInvoke:
		if arg == "" {
			return Action{}, fmt.Errorf("%w: action %q needs an argument", ErrInvalid, s)
		}
	default:
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrInvalid, s)
	}
	return a, nil
}

func (a Action) String() string {
	if a.Arg == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + a.Arg
}

// Entry is one line of a run trace.
type Entry struct {
	Step      int
	Component string
	Event     string
	Detail    string
}

func (e Entry) String() string {
	s := fmt.Sprintf("#%d %s %s", e.Step, e.Component, e.Event)
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return s
}

// Wiring is a manifest built into a box.
type Wiring struct {
	Box  *signalbox.Box
	Tree *dotpath.Tree

	components map[string]*signalbox.Component
	step       int
	trace      []Entry
	counts     map[string]int
}

// Build validates m, creates every component at its path and then applies the
// declarations, so bindings may refer to components declared later in the file.
func Build(m *Manifest, opts ...signalbox.Option) (*Wiring, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	tree := dotpath.NewTree()
	w := &Wiring{
		Box:        signalbox.New(tree, opts...),
		Tree:       tree,
		components: map[string]*signalbox.Component{},
		counts:     map[string]int{},
	}

	for _, decl := range m.Controllers {
		c := w.Box.NewController()
		tree.Set(decl.Path, c)
		w.components[decl.Path] = c
	}
	for _, decl := range m.Views {
		v := w.Box.NewView(decl.Tag)
		tree.Set(decl.Path, v)
		w.components[decl.Path] = v
	}

	var errs []error
	for _, decl := range append(append([]Component{}, m.Controllers...), m.Views...) {
		if err := w.declare(decl); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", decl.Path, err))
		}
	}
	// unresolved bindings are not fatal, the caller decides what to do with them
	return w, errors.Join(errs...)
}

func (w *Wiring) declare(decl Component) error {
	c := w.components[decl.Path]

	for _, s := range decl.Emits {
		c.Emits(signalbox.Signal{Name: s.Signal, Desc: s.Desc, Data: s.Data})
	}
	for _, s := range decl.Accepts {
		a, _ := ParseAction(s.Action)
		c.Accepts(signalbox.Signal{
			Name:    s.Signal,
			Desc:    s.Desc,
			Data:    s.Data,
			Handler: w.handler(decl.Path, c, s.Signal, a),
		})
	}
	if len(decl.Invokes) > 0 {
		c.Invokes(decl.Invokes)
	}

	table := signalbox.Bindings{}
	for key, action := range decl.Binds {
		a, _ := ParseAction(action)
		table[key] = w.handler(decl.Path, c, key, a)
	}
	if len(table) == 0 {
		return nil
	}
	return c.Binds(table)
}

func (w *Wiring) handler(path string, c *signalbox.Component, label string, a Action) *observable.Handler {
	switch a.Kind {
	case ActionLog:
		return observable.Func(func(data ...any) {
			w.record(path, "got "+label, formatData(data))
		})
	case ActionCount:
		return observable.Func(func(data ...any) {
			w.counts[path+" "+label]++
		})
	case ActionEmit:
		return observable.Func(func(data ...any) {
			if err := c.Emit(a.Arg, data...); err != nil {
				w.record(path, "error", err.Error())
			}
		})
	case ActionInvoke:
		return observable.Func(func(data ...any) {
			if err := c.Invoke(a.Arg, data...); err != nil {
				w.record(path, "error", err.Error())
			}
		})
	default:
		return nil
	}
}

func (w *Wiring) record(component, event, detail string) {
	w.trace = append(w.trace, Entry{Step: w.step, Component: component, Event: event, Detail: detail})
}

// Component returns the component built at path.
func (w *Wiring) Component(path string) (*signalbox.Component, bool) {
	c, ok := w.components[path]
	return c, ok
}

// Paths lists component paths in order.
func (w *Wiring) Paths() []string {
	paths := make([]string, 0, len(w.components))
	for p := range w.components {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Run executes steps in order. Failing emits and invokes are recorded in the trace and
// do not stop the run.
func (w *Wiring) Run(steps []Step) error {
	for _, s := range steps {
		w.step++
		c, ok := w.components[s.Target]
		if !ok {
			return fmt.Errorf("%w: step %d unknown target %q", ErrInvalid, w.step, s.Target)
		}

		var err error
		switch s.Op {
		case OpMount:
			w.record(s.Target, OpMount, "")
			c.Mount()
		case OpUnmount:
			w.record(s.Target, OpUnmount, "")
			c.Unmount()
		case OpEmit:
			w.record(s.Target, "emit "+s.Signal, formatData(s.Data))
			err = c.Emit(s.Signal, s.Data...)
		case OpInvoke:
			w.record(s.Target, "invoke "+s.Name, formatData(s.Data))
			err = c.Invoke(s.Name, s.Data...)
		case OpTrigger:
			w.record(s.Target, "trigger "+s.Signal, formatData(s.Data))
			c.Trigger(s.Signal, s.Data...)
		default:
			return fmt.Errorf("%w: step %d unknown op %q", ErrInvalid, w.step, s.Op)
		}
		if err != nil {
			w.record(s.Target, "error", err.Error())
		}
	}
	return nil
}

func (w *Wiring) Trace() []Entry {
	return append([]Entry(nil), w.trace...)
}

// Counts returns how often each "count" handler ran, keyed "<path> <signal or binding>".
func (w *Wiring) Counts() map[string]int {
	out := make(map[string]int, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

func formatData(data []any) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, len(data))
	for i, d := range data {
		parts[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
