package docs

import (
	"fmt"
	"io"
	"strings"

	"github.com/delaneyj/signalbox/signalbox"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders one row per declaration and returns the rendered text.
func Table(w io.Writer, docs []signalbox.ComponentDoc) string {
	tbl := table.NewWriter()
	tbl.SetTitle("Signals")
	if w != nil {
		tbl.SetOutputMirror(w)
	}
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"component", "kind", "decl", "name", "description", "data", "bound by"})

	for i, d := range docs {
		if i > 0 {
			tbl.AppendSeparator()
		}
		id := d.ID
		if d.Mounted {
			id += " (mounted)"
		}
		rows := Rows(d)
		if len(rows) == 0 {
			tbl.AppendRow(table.Row{id, d.Kind, "-", "", "", "", ""})
			continue
		}
		for _, r := range rows {
			tbl.AppendRow(table.Row{id, d.Kind, r.Decl, r.Name, r.Desc, r.Data, r.BoundBy})
		}
	}
	return tbl.Render()
}

type Row struct {
	Decl    string
	Name    string
	Desc    string
	Data    string
	BoundBy string
}

// Rows flattens a component's declarations in emits, accepts, binds, invokes order.
func Rows(d signalbox.ComponentDoc) []Row {
	var rows []Row
	for _, s := range d.Emits {
		rows = append(rows, Row{
			Decl:    "emits",
			Name:    s.Name,
			Desc:    s.Desc,
			Data:    s.Data,
			BoundBy: strings.Join(d.BoundBy[s.Name], ", "),
		})
	}
	for _, s := range d.Accepts {
		rows = append(rows, Row{Decl: "accepts", Name: s.Name, Desc: s.Desc, Data: s.Data})
	}
	for _, key := range d.Binds {
		rows = append(rows, Row{Decl: "binds", Name: key})
	}
	for _, inv := range d.Invokes {
		rows = append(rows, Row{Decl: "invokes", Name: inv.Name, Desc: inv.Target})
	}
	return rows
}

func Fingerprint(d signalbox.ComponentDoc) string {
	return fmt.Sprintf("%016x", d.Fingerprint)
}
