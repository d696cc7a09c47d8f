package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/internal/fileutil"
	"github.com/FocuswithJustin/conllu/internal/index"
	"github.com/FocuswithJustin/conllu/internal/logging"
)

// IndexFlag selects the index database.
type IndexFlag struct {
	Index string `name:"index" help:"Index database (default: index.path from config)" type:"path"`
}

// open opens the index for writing, creating it if needed. Read-only
// commands pass readOnly and never create a database.
func (f IndexFlag) open(env *Env, readOnly bool) (*index.Index, error) {
	path := f.Index
	if path == "" {
		path = env.Config.Index.Path
	}
	open := index.Open
	if readOnly {
		open = index.OpenReadOnly
	}
	ix, err := open(env.Ctx, path)
	if err != nil {
		return nil, err
	}
	logging.IndexEvent(env.Ctx, "open", path, "read_only", readOnly)
	return ix, nil
}

// IndexBuildCmd indexes files. Files are parsed concurrently and written
// one at a time.
type IndexBuildCmd struct {
	Files []string `arg:"" help:"CoNLL-U files, - for stdin"`
	IndexFlag
}

func (c *IndexBuildCmd) Run(env *Env) error {
	ix, err := c.open(env, false)
	if err != nil {
		return err
	}
	defer ix.Close()

	docs := make([]*conllu.Document, len(c.Files))
	err = env.each(c.Files, func(_ context.Context, i int, path string) error {
		doc, err := env.load(path)
		if err != nil {
			return err
		}
		docs[i] = doc
		return nil
	})
	if err != nil {
		return err
	}

	for i, path := range c.Files {
		source := sourceName(path)
		res, err := ix.Build(env.Ctx, source, docs[i])
		if err != nil {
			return err
		}
		logging.IndexEvent(env.Ctx, "build", ix.Path(),
			"source", source, "build_id", res.ID, "changed", res.Changed, "moved", res.Moved, "removed", res.Removed)
		fmt.Fprintf(env.Stdout, "%s: %d sentences, %d changed, %d removed (build %s)\n",
			source, res.Sentences, res.Changed, res.Removed, res.ID)
	}
	return nil
}

// sourceName keys a file in the index by its absolute path.
func sourceName(path string) string {
	if path == fileutil.Stdio {
		return "stdin"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// IndexLookupCmd prints the sentences with a sent_id.
type IndexLookupCmd struct {
	SentID string `arg:"" help:"sent_id to look up"`
	IndexFlag
}

func (c *IndexLookupCmd) Run(env *Env) error {
	ix, err := c.open(env, true)
	if err != nil {
		return err
	}
	defer ix.Close()

	entries, err := ix.Lookup(env.Ctx, c.SentID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(env.Stdout, "# source = %s:%d\n%s\n", e.Source, e.Sentence.StartLine+1, e.Sentence)
	}
	return nil
}

// IndexStatsCmd prints per-source counts.
type IndexStatsCmd struct {
	Format string `enum:"table,json" default:"table" help:"Output format (table, json)"`
	IndexFlag
}

func (c *IndexStatsCmd) Run(env *Env) error {
	ix, err := c.open(env, true)
	if err != nil {
		return err
	}
	defer ix.Close()

	stats, err := ix.Stats(env.Ctx)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if len(stats) == 0 {
		fmt.Fprintln(env.Stdout, "(empty index)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(env.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Sentences", "Tokens", "Builds", "Last build", "Built at"})
	for _, st := range stats {
		t.AppendRow(table.Row{st.Source, st.Sentences, st.Tokens, st.Builds, st.LastBuild, st.LastBuildAt.Format(time.RFC3339)})
	}
	t.Render()
	return nil
}
