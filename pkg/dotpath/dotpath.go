package dotpath

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Container is anything a path segment can index into.
type Container interface {
	Lookup(name string) (any, bool)
}

// Resolve walks root one dot separated segment at a time. A segment indexes a
// Container or any map keyed by strings; anything else, like a struct, cannot be
// indexed. Any missing segment yields nil, and so do nil pointers, maps and
// interfaces, e.g. with {a: {b: {c: 42}}}:
//
//	Resolve(root, "a.b.c") -> 42
//	Resolve(root, "a.z.c") -> nil
func Resolve(root any, path string) any {
	cur := root
	for _, seg := range Split(path) {
		if isNil(cur) {
			return nil
		}
		next, ok := step(cur, seg)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func step(cur any, seg string) (any, bool) {
	var (
		v  any
		ok bool
	)
	switch c := cur.(type) {
	case Container:
		v, ok = c.Lookup(seg)
	case map[string]any:
		v, ok = c[seg]
	default:
		rv := reflect.ValueOf(cur)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		v, ok = mv.Interface(), true
	}
	if !ok || isNil(v) {
		return nil, false
	}
	return v, true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Finder binds Resolve to a root.
func Finder(root any) func(path string) any {
	return func(path string) any {
		return Resolve(root, path)
	}
}

func Split(path string) []string {
	return strings.Split(path, ".")
}

func Join(segments ...string) string {
	return strings.Join(segments, ".")
}

// Tree is a nested namespace safe for concurrent use.
type Tree struct {
	mu      sync.RWMutex
	entries map[string]any
}

var _ Container = (*Tree)(nil)

func NewTree() *Tree {
	return &Tree{entries: map[string]any{}}
}

func (t *Tree) Lookup(name string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[name]
	return v, ok
}

// Set places v at path, creating intermediate trees. An intermediate segment
// holding something other than a *Tree is replaced.
func (t *Tree) Set(path string, v any) {
	segs := Split(path)
	cur := t
	for _, seg := range segs[:len(segs)-1] {
		cur = cur.child(seg)
	}
	cur.mu.Lock()
	defer cur.mu.Unlock()
	if cur.entries == nil {
		cur.entries = map[string]any{}
	}
	cur.entries[segs[len(segs)-1]] = v
}

func (t *Tree) child(name string) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.entries == nil {
		t.entries = map[string]any{}
	}
	if sub, ok := t.entries[name].(*Tree); ok {
		return sub
	}
	sub := NewTree()
	t.entries[name] = sub
	return sub
}

// Delete removes the entry at path and reports whether it existed.
func (t *Tree) Delete(path string) bool {
	segs := Split(path)
	parent := t
	if len(segs) > 1 {
		p, ok := Resolve(t, Join(segs[:len(segs)-1]...)).(*Tree)
		if !ok {
			return false
		}
		parent = p
	}
	parent.mu.Lock()
	defer parent.mu.Unlock()
	last := segs[len(segs)-1]
	if _, ok := parent.entries[last]; !ok {
		return false
	}
	delete(parent.entries, last)
	return true
}

// Keys lists the direct children of t.
func (t *Tree) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Walk visits every leaf below t with its full path, in path order.
func (t *Tree) Walk(fn func(path string, v any)) {
	t.walk("", fn)
}

func (t *Tree) walk(prefix string, fn func(path string, v any)) {
	for _, k := range t.Keys() {
		v, ok := t.Lookup(k)
		if !ok {
			continue
		}
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if sub, ok := v.(*Tree); ok {
			sub.walk(p, fn)
			continue
		}
		fn(p, v)
	}
}
