package manifest

import (
	"bytes"
	"testing"

	"github.com/delaneyj/signalbox/signalbox"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	m, err := Load("testdata/todo.toml")
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	require.Len(t, m.Controllers, 2)
	require.Len(t, m.Views, 2)
	require.Len(t, m.Steps, 6)
	assert.Equal(t, "stores.todo", m.Controllers[0].Path)
	assert.Equal(t, "emit:updated", m.Controllers[0].Accepts[0].Action)
	assert.Equal(t, map[string]string{"stores.todo:updated": "log"}, m.Views[0].Binds)
	assert.Equal(t, []any{"milk"}, m.Steps[1].Data)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
[[controller]]
path = "a"
colour = "red"
`))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "colour")
}

func TestValidate(t *testing.T) {
	m, err := Parse([]byte(`
[[controller]]
path = "a"
accepts = [{ signal = "x", action = "shout" }]
binds = { "nocolon" = "log" }

[[controller]]
path = "a"

[[view]]
path = "v"
invokes = { go = "v" }

[[step]]
op = "dance"
target = "a"

[[step]]
op = "mount"
target = "a"

[[step]]
op = "emit"
target = "missing"
signal = "x"

[[step]]
op = "invoke"
target = "v"
`))
	require.NoError(t, err)

	err = m.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`unknown action "shout"`,
		`malformed signal address: "nocolon"`,
		`path "a" used twice`,
		`invokes go`,
		`unknown op "dance"`,
		`mount targets controller "a"`,
		`unknown target "missing"`,
		`invoke needs a name`,
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidateRejectsNestedPaths(t *testing.T) {
	m, err := Parse([]byte(`
[[controller]]
path = "store"

[[controller]]
path = "store.items"

[[view]]
path = "store-list"
`))
	require.NoError(t, err)

	err = m.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, `path "store.items" is nested under component "store"`)
	assert.NotContains(t, err.Error(), "store-list")

	w, err := Build(m)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseAction(t *testing.T) {
	good := map[string]Action{
		"":             {Kind: ActionNone},
		"log":          {Kind: ActionLog},
		"count":        {Kind: ActionCount},
		"emit:updated": {Kind: ActionEmit, Arg: "updated"},
		"invoke:save":  {Kind: ActionInvoke, Arg: "save"},
	}
	for raw, want := range good {
		got, err := ParseAction(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
		assert.Equal(t, raw, got.String())
	}

	for _, raw := range []string{"emit", "invoke:", "log:loud", "count:1", "shout"} {
		_, err := ParseAction(raw)
		assert.ErrorIs(t, err, ErrInvalid, raw)
	}
}

func TestBuildAndRun(t *testing.T) {
	m, err := Load("testdata/todo.toml")
	require.NoError(t, err)

	var logs bytes.Buffer
	w, err := Build(m, signalbox.WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	assert.Equal(t, []string{"audit", "stores.todo", "views.form", "views.list"}, w.Paths())
	list, ok := w.Component("views.list")
	require.True(t, ok)
	assert.Equal(t, "todo-list", list.ID())
	assert.Equal(t, signalbox.View, list.Kind())

	require.NoError(t, w.Run(m.Steps))

	var lines []string
	for _, e := range w.Trace() {
		lines = append(lines, e.String())
	}
	assert.Equal(t, []string{
		"#1 views.list mount",
		"#2 views.form invoke save [milk]",
		"#2 views.list got stores.todo:updated [milk]",
		"#3 views.list unmount",
		"#4 views.form invoke save [eggs]",
		"#5 views.form invoke broken",
		"#5 views.form error path does not resolve: cannot find stores.gone to invoke",
		"#6 views.form emit undeclared",
		"#6 views.form error signal not declared with Emits: undeclared",
	}, lines)

	// the audit controller stays bound whether or not the list is mounted
	assert.Equal(t, map[string]int{"audit stores.todo:updated": 2}, w.Counts())
	assert.False(t, list.Mounted())
	assert.Contains(t, logs.String(), "cannot find stores.gone to invoke")
}

func TestBuildReportsUnresolvedControllerBinds(t *testing.T) {
	m, err := Parse([]byte(`
[[controller]]
path = "watcher"
binds = { "nowhere:changed" = "log" }
`))
	require.NoError(t, err)

	w, err := Build(m)
	assert.ErrorIs(t, err, signalbox.ErrUnresolved)
	require.NotNil(t, w)
	c, ok := w.Component("watcher")
	require.True(t, ok)
	assert.Equal(t, []string{"nowhere:changed"}, c.Bound())
}
