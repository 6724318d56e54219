package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"

	"github.com/delaneyj/signalbox/pkg/docs"
	"github.com/delaneyj/signalbox/pkg/logging"
	"github.com/delaneyj/signalbox/pkg/manifest"
	"github.com/delaneyj/signalbox/signalbox"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const (
	formatKey = "format"
	runKey    = "run"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
	}
	log := logging.New(os.Stderr, logging.ProfileRuntime)

	cmd := &cli.Command{
		Name:  "signalbox",
		Usage: "Wire components from a manifest and inspect their signals",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Build a manifest and run its steps",
				ArgsUsage: "<manifest.toml>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runManifest(os.Stdout, cmd.Args().First(), log)
				},
			},
			{
				Name:      "doc",
				Usage:     "Document every component of a manifest",
				ArgsUsage: "<manifest.toml>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  formatKey,
						Usage: "table or markdown",
						Value: "table",
					},
					&cli.BoolFlag{
						Name:  runKey,
						Usage: "Run the manifest steps before documenting",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return docManifest(os.Stdout, cmd.Args().First(), cmd.String(formatKey), cmd.Bool(runKey), log)
				},
			},
			{
				Name:      "registry",
				Usage:     "List registered controllers and views",
				ArgsUsage: "<manifest.toml>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return listRegistry(os.Stdout, cmd.Args().First(), log)
				},
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("signalbox failed")
	}
}

func build(path string, log zerolog.Logger) (*manifest.Manifest, *manifest.Wiring, error) {
	if path == "" {
		return nil, nil, errors.New("missing manifest path")
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	w, err := manifest.Build(m, signalbox.WithLogger(log))
	if w == nil {
		return nil, nil, err
	}
	if err != nil {
		log.Warn().Err(err).Msg("some bindings did not resolve")
	}
	return m, w, nil
}

func runManifest(out io.Writer, path string, log zerolog.Logger) error {
	m, w, err := build(path, log)
	if err != nil {
		return err
	}
	if err := w.Run(m.Steps); err != nil {
		return err
	}
	for _, e := range w.Trace() {
		fmt.Fprintln(out, e.String())
	}

	counts := w.Counts()
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "count %s = %s\n", k, humanize.Comma(int64(counts[k])))
	}
	return nil
}

func docManifest(out io.Writer, path, format string, run bool, log zerolog.Logger) error {
	m, w, err := build(path, log)
	if err != nil {
		return err
	}
	if run {
		if err := w.Run(m.Steps); err != nil {
			return err
		}
	}

	switch format {
	case "table", "":
		docs.Table(out, w.Box.Doc())
	case "markdown", "md":
		docs.WriteMarkdown(out, w.Box.Doc())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func listRegistry(out io.Writer, path string, log zerolog.Logger) error {
	_, w, err := build(path, log)
	if err != nil {
		return err
	}

	paths := map[*signalbox.Component]string{}
	for _, p := range w.Paths() {
		c, _ := w.Component(p)
		paths[c] = p
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"kind", "id", "path", "emits", "accepts", "binds", "invokes"})
	comps := append(w.Box.Controllers(), w.Box.Views()...)
	for _, c := range comps {
		table.Append([]string{
			c.Kind().String(),
			c.ID(),
			paths[c],
			strconv.Itoa(len(c.Emitted())),
			strconv.Itoa(len(c.Accepted())),
			strconv.Itoa(len(c.Bound())),
			strconv.Itoa(len(c.Invoked())),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "total", humanize.Comma(int64(len(comps)))})
	table.Render()
	return nil
}
