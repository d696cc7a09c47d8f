package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FocuswithJustin/conllu/core/align"
	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/core/lint"
	"github.com/FocuswithJustin/conllu/internal/logging"
)

// ParseCmd parses files and prints their sizes.
type ParseCmd struct {
	Files   []string `arg:"" help:"CoNLL-U files, - for stdin"`
	Lenient bool     `help:"Skip sentences with malformed lines instead of failing"`
}

func (c *ParseCmd) Run(env *Env) error {
	lines := make([]string, len(c.Files))
	err := env.each(c.Files, func(ctx context.Context, i int, path string) error {
		if !c.Lenient {
			doc, err := env.load(path)
			if err != nil {
				return err
			}
			lines[i] = fmt.Sprintf("%s: %d sentences, %d tokens", path, len(doc.Sentences), doc.TokenCount())
			return nil
		}

		text, err := env.readText(path)
		if err != nil {
			return err
		}
		doc, errs := conllu.ParseLenient(text)
		if doc == nil {
			return errors.NewParse("CoNLL-U", path, errs[0])
		}
		for _, e := range errs {
			logging.WarnContext(ctx, "skipped malformed line", "source", path, "error", e)
		}
		lines[i] = fmt.Sprintf("%s: %d sentences, %d tokens, %d malformed lines skipped",
			path, len(doc.Sentences), doc.TokenCount(), len(errs))
		return nil
	})
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(env.Stdout, l)
	}
	return nil
}

// FmtCmd rewrites a file with single blank lines between sentences.
type FmtCmd struct {
	File string `arg:"" help:"CoNLL-U file, - for stdin"`
	Output
}

func (c *FmtCmd) Run(env *Env) error {
	doc, err := env.load(c.File)
	if err != nil {
		return err
	}
	return c.write(env, c.File, doc)
}

// ValidateCmd lints files.
type ValidateCmd struct {
	Files   []string `arg:"" help:"CoNLL-U files, - for stdin"`
	Format  string   `enum:"text,json" default:"text" help:"Output format (text, json)"`
	Disable []string `help:"Rule IDs or names to skip, in addition to the config"`
}

type fileReport struct {
	Path string `json:"path"`
	*lint.Report
}

func (c *ValidateCmd) Run(env *Env) error {
	opts, err := env.Config.LintOptions()
	if err != nil {
		return err
	}
	for _, key := range c.Disable {
		rule, ok := lint.LookupRule(key)
		if !ok {
			return errors.NewValidation("disable", fmt.Sprintf("unknown rule %q", key))
		}
		opts.Disabled[rule.ID] = true
	}

	reports := make([]fileReport, len(c.Files))
	err = env.each(c.Files, func(ctx context.Context, i int, path string) error {
		text, err := env.readText(path)
		if err != nil {
			return err
		}
		r := lint.Lint(text, opts)
		for _, d := range r.Diagnostics {
			logging.DiagnosticFound(ctx, path, d.Rule, d.Line, d.Message)
		}
		reports[i] = fileReport{Path: path, Report: r}
		return nil
	})
	if err != nil {
		return err
	}

	failed := false
	for _, fr := range reports {
		if fr.HasErrors() {
			failed = true
		}
	}

	if c.Format == "json" {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		errCount, warnCount := 0, 0
		for _, fr := range reports {
			for _, d := range fr.Diagnostics {
				fmt.Fprintf(env.Stdout, "%s:%s\n", fr.Path, d)
			}
			errCount += fr.Errors()
			warnCount += fr.Warnings()
		}
		fmt.Fprintf(env.Stdout, "%d errors, %d warnings in %d files\n", errCount, warnCount, len(reports))
	}

	if failed {
		return exitCode(1)
	}
	return nil
}

// AlignCmd prints a document with padded columns.
type AlignCmd struct {
	File string `arg:"" help:"CoNLL-U file, - for stdin"`
	Gap  int    `help:"Spaces between columns (default: align.gap from config)"`
}

func (c *AlignCmd) Run(env *Env) error {
	doc, err := env.load(c.File)
	if err != nil {
		return err
	}
	gap := c.Gap
	if gap == 0 {
		gap = env.Config.Align.Gap
	}
	for _, l := range align.AlignDocument(doc, align.Options{Gap: gap}) {
		fmt.Fprintln(env.Stdout, l)
	}
	return nil
}
