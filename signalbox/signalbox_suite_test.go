package signalbox_test

import (
	"bytes"
	"testing"

	"github.com/delaneyj/signalbox/pkg/dotpath"
	"github.com/delaneyj/signalbox/pkg/observable"
	"github.com/delaneyj/signalbox/signalbox"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

//go:generate mockgen -destination "mock_observable_test.go" -package $GOPACKAGE -write_package_comment=false github.com/delaneyj/signalbox/pkg/observable Observable

type fixture struct {
	tree *dotpath.Tree
	box  *signalbox.Box
	logs *bytes.Buffer
}

func newFixture() *fixture {
	f := &fixture{
		tree: dotpath.NewTree(),
		logs: &bytes.Buffer{},
	}
	f.box = signalbox.New(f.tree, signalbox.WithLogger(zerolog.New(f.logs)))
	return f
}

func emitterOf(t *testing.T, c *signalbox.Component) *observable.Emitter {
	t.Helper()
	e, ok := c.Observable().(*observable.Emitter)
	require.True(t, ok, "component %s has no default emitter", c.ID())
	return e
}

func counter(n *int) *observable.Handler {
	return observable.Func(func(...any) { *n++ })
}
