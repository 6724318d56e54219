package signalbox

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

type SignalDoc struct {
	Name string
	Desc string
	Data string
}

type InvokeDoc struct {
	Name   string
	Target string
}

// ComponentDoc is a snapshot of what a component declared.
type ComponentDoc struct {
	Kind    Kind
	ID      string
	Mounted bool
	Emits   []SignalDoc
	Accepts []SignalDoc
	Binds   []string
	Invokes []InvokeDoc
	// BoundBy lists, per emitted signal, the ids of components binding to it.
	BoundBy     map[string][]string
	Fingerprint uint64
}

// Doc describes every registered component, controllers first.
func (b *Box) Doc() []ComponentDoc {
	comps := append(b.Controllers(), b.Views()...)

	// who binds to whom, keyed by target component then signal
	boundBy := map[*Component]map[string]mapset.Set[string]{}
	for _, binder := range comps {
		for _, key := range binder.Bound() {
			addr, err := ParseAddress(key)
			if err != nil {
				continue
			}
			target, ok := AsComponent(b.find(addr.Path))
			if !ok {
				continue
			}
			sigs, ok := boundBy[target]
			if !ok {
				sigs = map[string]mapset.Set[string]{}
				boundBy[target] = sigs
			}
			if sigs[addr.Signal] == nil {
				sigs[addr.Signal] = mapset.NewThreadUnsafeSet[string]()
			}
			sigs[addr.Signal].Add(binder.ID())
		}
	}

	docs := make([]ComponentDoc, 0, len(comps))
	for _, c := range comps {
		d := c.Doc()
		for sig, ids := range boundBy[c] {
			list := ids.ToSlice()
			sort.Strings(list)
			d.BoundBy[sig] = list
		}
		docs = append(docs, d)
	}
	return docs
}

// Doc describes this component alone; BoundBy is left empty.
func (c *Component) Doc() ComponentDoc {
	d := ComponentDoc{
		Kind:    c.kind,
		ID:      c.id,
		Mounted: c.Mounted(),
		Binds:   c.Bound(),
		BoundBy: map[string][]string{},
	}
	for _, s := range c.Emitted() {
		d.Emits = append(d.Emits, SignalDoc{Name: s.Name, Desc: s.Desc, Data: s.Data})
	}
	for _, s := range c.Accepted() {
		d.Accepts = append(d.Accepts, SignalDoc{Name: s.Name, Desc: s.Desc, Data: s.Data})
	}
	invokes := c.Invoked()
	for _, name := range sortedKeys(invokes) {
		d.Invokes = append(d.Invokes, InvokeDoc{Name: name, Target: invokes[name]})
	}
	d.Fingerprint = d.fingerprint()
	return d
}

// fingerprint changes whenever a declaration does; mount state is not part of it.
func (d ComponentDoc) fingerprint() uint64 {
	h := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			h.WriteString(strconv.Itoa(len(p)))
			h.WriteString(":")
			h.WriteString(p)
		}
	}
	write(d.Kind.String(), d.ID)
	write("emits")
	for _, s := range d.Emits {
		write(s.Name, s.Desc, s.Data)
	}
	write("accepts")
	for _, s := range d.Accepts {
		write(s.Name, s.Desc, s.Data)
	}
	write("binds")
	write(d.Binds...)
	write("invokes")
	for _, i := range d.Invokes {
		write(i.Name, i.Target)
	}
	return h.Sum64()
}
