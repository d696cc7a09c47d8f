package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/internal/config"
	"github.com/FocuswithJustin/conllu/internal/fileutil"
	"github.com/FocuswithJustin/conllu/internal/logging"
)

// Env is bound into every command's Run method.
type Env struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config
}

func (e *Env) readText(path string) (string, error) {
	data, err := fileutil.ReadInput(path, e.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// load reads and strictly parses one file.
func (e *Env) load(path string) (*conllu.Document, error) {
	start := time.Now()
	text, err := e.readText(path)
	if err != nil {
		return nil, err
	}
	doc, err := conllu.Parse(text)
	if err != nil {
		return nil, errors.NewParse("CoNLL-U", path, err)
	}
	logging.DocumentLoaded(e.Ctx, path, len(doc.Sentences), doc.TokenCount(), time.Since(start))
	return doc, nil
}

// each runs fn for every path concurrently and stops at the first error.
// Callers index their results by i to keep output in argument order.
// Stdin can be read once, so "-" may appear at most once.
func (e *Env) each(paths []string, fn func(ctx context.Context, i int, path string) error) error {
	stdin := 0
	for _, path := range paths {
		if path == fileutil.Stdio {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.NewValidation("files", "stdin (-) given more than once")
	}

	g, ctx := errgroup.WithContext(e.Ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i, path)
		})
	}
	return g.Wait()
}

// Output selects where an edited document goes.
type Output struct {
	Output  string `name:"output" short:"o" help:"Write to this file instead of stdout (.xz and .gz are compressed)" default:"-"`
	InPlace bool   `name:"in-place" short:"i" help:"Overwrite the input file"`
}

func (o Output) write(env *Env, src string, doc *conllu.Document) error {
	target := o.Output
	if o.InPlace {
		if src == fileutil.Stdio {
			return errors.NewUnsupported("--in-place on stdin", "needs a file")
		}
		target = src
	}
	if err := fileutil.WriteOutput(target, []byte(doc.String()), env.Stdout); err != nil {
		return err
	}
	if target != fileutil.Stdio {
		logging.InfoContext(env.Ctx, "document written", "path", target, "sentences", len(doc.Sentences))
	}
	return nil
}

// Cursor addresses a source line, 1-based.
type Cursor struct {
	File string `arg:"" help:"CoNLL-U file, - for stdin"`
	Line int    `name:"line" short:"l" required:"" help:"1-based source line"`
}

// sentence loads the file and finds the sentence covering the cursor line.
// The returned index is the line's offset within the sentence.
func (c Cursor) sentence(env *Env) (*conllu.Document, int, int, error) {
	doc, err := env.load(c.File)
	if err != nil {
		return nil, 0, 0, err
	}
	s, si, ok := conllu.SentenceAt(doc, c.Line-1)
	if !ok {
		return nil, 0, 0, errors.NewNotFound("sentence at line", fmt.Sprint(c.Line))
	}
	return doc, si, c.Line - 1 - s.StartLine, nil
}

// token is like sentence but requires the line to be a token line.
func (c Cursor) token(env *Env) (*conllu.Document, int, int, error) {
	doc, si, li, err := c.sentence(env)
	if err != nil {
		return nil, 0, 0, err
	}
	if !doc.Sentences[si].Lines[li].IsToken() {
		return nil, 0, 0, errors.NewValidation("line", fmt.Sprintf("line %d is a comment", c.Line))
	}
	return doc, si, li, nil
}

// fieldIndex accepts a 1-based index or a column name such as HEAD.
func fieldIndex(s string) (int, error) {
	if i, ok := conllu.FieldIndex(s); ok {
		return i, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > conllu.FieldCount {
		return 0, errors.NewValidation("field", fmt.Sprintf("%q is not a field name or index 1-%d", s, conllu.FieldCount))
	}
	return i, nil
}
