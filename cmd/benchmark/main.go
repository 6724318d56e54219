package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/delaneyj/signalbox/pkg/dotpath"
	"github.com/delaneyj/signalbox/pkg/observable"
	"github.com/delaneyj/signalbox/signalbox"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	views    = []int{1, 10, 100, 1_000}
	bindings = []int{1, 10, 100}
	iters    = flag.Int("iters", 100, "iterations per benchmark")
)

func main() {
	flag.Parse()

	log.Printf("warming up")
	benchmarkEmit(false)
	benchmarkMount(false)

	benchmarkEmit(true)
	benchmarkMount(true)
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "ops", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, ops int, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			humanize.Comma(int64(ops)),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// one store emitting to w mounted views, each bound h times to it
func benchmarkEmit(shouldRender bool) {
	tbl := newTable("Emit fan-out")

	for _, w := range views {
		for _, h := range bindings {
			tree := dotpath.NewTree()
			box := signalbox.New(tree)
			store := box.NewController()
			store.Emits(signalbox.Signal{Name: "updated"})
			tree.Set("store", store)

			delivered := 0
			for i := 0; i < w; i++ {
				v := box.NewView("view" + strconv.Itoa(i))
				binds := signalbox.Bindings{}
				for j := 0; j < h; j++ {
					sig := "updated"
					if j > 0 {
						sig = "updated" + strconv.Itoa(j)
						store.Emits(signalbox.Signal{Name: sig})
					}
					binds["store:"+sig] = observable.Func(func(...any) { delivered++ })
				}
				v.Binds(binds)
				v.Mount()
			}

			tach := tachymeter.New(&tachymeter.Config{Size: *iters})
			for i := 0; i < *iters; i++ {
				start := time.Now()
				store.Emit("updated", i)
				tach.AddTime(time.Since(start))
			}
			if delivered != w*(*iters) {
				log.Panicf("delivered %d, want %d", delivered, w*(*iters))
			}
			appendCalc(tbl, fmt.Sprintf("emit: %d views * %d bindings", w, h), delivered, tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// mount and unmount a view holding h bindings spread over w stores
func benchmarkMount(shouldRender bool) {
	tbl := newTable("Mount / unmount")

	for _, w := range views {
		for _, h := range bindings {
			tree := dotpath.NewTree()
			box := signalbox.New(tree)
			for i := 0; i < w; i++ {
				tree.Set(dotpath.Join("stores", "s"+strconv.Itoa(i)), box.NewController())
			}

			v := box.NewView("bench")
			binds := signalbox.Bindings{}
			for j := 0; j < h; j++ {
				key := fmt.Sprintf("stores.s%d:changed%d", j%w, j)
				binds[key] = observable.Func(func(...any) {})
			}
			v.Binds(binds)

			tach := tachymeter.New(&tachymeter.Config{Size: *iters})
			for i := 0; i < *iters; i++ {
				start := time.Now()
				v.Mount()
				v.Unmount()
				tach.AddTime(time.Since(start))
			}
			appendCalc(tbl, fmt.Sprintf("mount: %d stores * %d bindings", w, h), *iters*h*2, tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
