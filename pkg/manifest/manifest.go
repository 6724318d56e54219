package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/signalbox/signalbox"
)

// Manifest describes components, where they live in the namespace, what they declare
// and a script of lifecycle and signal steps to run against them.
type Manifest struct {
	Controllers []Component `toml:"controller"`
	Views       []Component `toml:"view"`
	Steps       []Step      `toml:"step"`
}

type Component struct {
	Path    string            `toml:"path"`
	Tag     string            `toml:"tag"`
	Emits   []Signal          `toml:"emits"`
	Accepts []Signal          `toml:"accepts"`
	Binds   map[string]string `toml:"binds"`
	Invokes map[string]string `toml:"invokes"`
}

// Signal is a declaration. Action only matters for accepts.
type Signal struct {
	Signal string `toml:"signal"`
	Desc   string `toml:"desc"`
	Data   string `toml:"data"`
	Action string `toml:"action"`
}

type Step struct {
	Op     string `toml:"op"`
	Target string `toml:"target"`
	Signal string `toml:"signal"`
	Name   string `toml:"name"`
	Data   []any  `toml:"data"`
}

const (
	OpMount   = "mount"
	OpUnmount = "unmount"
	OpEmit    = "emit"
	OpInvoke  = "invoke"
	OpTrigger = "trigger"
)

var (
	ErrInvalid = errors.New("invalid manifest")

	knownOps = mapset.NewSet(OpMount, OpUnmount, OpEmit, OpInvoke, OpTrigger)
)

func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	if err := undecoded(meta); err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	return &m, nil
}

func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := undecoded(meta); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func undecoded(meta toml.MetaData) error {
	keys := meta.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(names, ", "))
}

// Validate checks paths are unique and not nested in one another, actions parse and steps point at declared components.
func (m *Manifest) Validate() error {
	var errs []error
	paths := mapset.NewThreadUnsafeSet[string]()
	views := mapset.NewThreadUnsafeSet[string]()

	check := func(kind string, i int, c Component) {
		where := fmt.Sprintf("%s[%d]", kind, i)
		if strings.TrimSpace(c.Path) == "" {
			errs = append(errs, fmt.Errorf("%w: %s has no path", ErrInvalid, where))
			return
		}
		if !paths.Add(c.Path) {
			errs = append(errs, fmt.Errorf("%w: %s path %q used twice", ErrInvalid, where, c.Path))
		}
		for _, s := range c.Emits {
			if s.Signal == "" {
				errs = append(errs, fmt.Errorf("%w: %s emits a signal without a name", ErrInvalid, where))
			}
		}
		for _, s := range c.Accepts {
			if s.Signal == "" {
				errs = append(errs, fmt.Errorf("%w: %s accepts a signal without a name", ErrInvalid, where))
			}
			if _, err := ParseAction(s.Action); err != nil {
				errs = append(errs, fmt.Errorf("%s accepts %s: %w", where, s.Signal, err))
			}
		}
		for key, action := range c.Binds {
			if _, err := signalbox.ParseAddress(key); err != nil {
				errs = append(errs, fmt.Errorf("%s binds: %w", where, err))
			}
			if _, err := ParseAction(action); err != nil {
				errs = append(errs, fmt.Errorf("%s binds %s: %w", where, key, err))
			}
		}
		for name, ref := range c.Invokes {
			if _, err := signalbox.ParseAddress(ref); err != nil {
				errs = append(errs, fmt.Errorf("%s invokes %s: %w", where, name, err))
			}
		}
	}
	for i, c := range m.Controllers {
		check("controller", i, c)
	}
	for i, c := range m.Views {
		check("view", i, c)
		views.Add(c.Path)
	}

	// a component cannot also be the namespace of another one
	all := paths.ToSlice()
	sort.Strings(all)
	for _, outer := range all {
		for _, inner := range all {
			if strings.HasPrefix(inner, outer+".") {
				errs = append(errs, fmt.Errorf("%w: path %q is nested under component %q", ErrInvalid, inner, outer))
			}
		}
	}

	for i, s := range m.Steps {
		where := fmt.Sprintf("step[%d]", i)
		if !knownOps.Contains(s.Op) {
			errs = append(errs, fmt.Errorf("%w: %s unknown op %q", ErrInvalid, where, s.Op))
			continue
		}
		if !paths.Contains(s.Target) {
			errs = append(errs, fmt.Errorf("%w: %s unknown target %q", ErrInvalid, where, s.Target))
			continue
		}
		switch s.Op {
		case OpMount, OpUnmount:
			if !views.Contains(s.Target) {
				errs = append(errs, fmt.Errorf("%w: %s %s targets controller %q", ErrInvalid, where, s.Op, s.Target))
			}
		case OpEmit, OpTrigger:
			if s.Signal == "" {
				errs = append(errs, fmt.Errorf("%w: %s %s needs a signal", ErrInvalid, where, s.Op))
			}
		case OpInvoke:
			if s.Name == "" {
				errs = append(errs, fmt.Errorf("%w: %s invoke needs a name", ErrInvalid, where))
			}
		}
	}
	return errors.Join(errs...)
}
