package main

import (
	"fmt"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/internal/logging"
)

// FieldGetCmd prints one field.
type FieldGetCmd struct {
	Cursor
	Field string `name:"field" short:"f" required:"" help:"Field name (FORM, HEAD, ...) or 1-based index"`
}

func (c *FieldGetCmd) Run(env *Env) error {
	doc, si, li, err := c.token(env)
	if err != nil {
		return err
	}
	idx, err := fieldIndex(c.Field)
	if err != nil {
		return err
	}
	v, err := conllu.GetField(doc.Sentences[si].Lines[li].Token, idx)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, v)
	return nil
}

// FieldSetCmd replaces one field and writes the document.
type FieldSetCmd struct {
	Cursor
	Value string `arg:"" help:"New value"`
	Field string `name:"field" short:"f" required:"" help:"Field name (FORM, HEAD, ...) or 1-based index"`
	Output
}

func (c *FieldSetCmd) Run(env *Env) error {
	doc, si, li, err := c.token(env)
	if err != nil {
		return err
	}
	idx, err := fieldIndex(c.Field)
	if err != nil {
		return err
	}
	s := doc.Sentences[si]
	tok, err := conllu.SetField(s.Lines[li].Token, idx, c.Value)
	if err != nil {
		return err
	}
	return c.replace(env, doc, si, li, tok, c.Output)
}

// FieldClearCmd resets one field to "_" and writes the document.
type FieldClearCmd struct {
	Cursor
	Field string `name:"field" short:"f" required:"" help:"Field name (FORM, HEAD, ...) or 1-based index"`
	Output
}

func (c *FieldClearCmd) Run(env *Env) error {
	doc, si, li, err := c.token(env)
	if err != nil {
		return err
	}
	idx, err := fieldIndex(c.Field)
	if err != nil {
		return err
	}
	tok, old, err := conllu.ClearField(doc.Sentences[si].Lines[li].Token, idx)
	if err != nil {
		return err
	}
	logging.DebugContext(env.Ctx, "field cleared", "line", c.Line, "field", conllu.FieldName(idx), "old", old)
	return c.replace(env, doc, si, li, tok, c.Output)
}

// replace swaps in an edited token line and writes the result.
func (c Cursor) replace(env *Env, doc *conllu.Document, si, li int, tok conllu.TokenLine, out Output) error {
	s, err := doc.Sentences[si].WithToken(li, tok)
	if err != nil {
		return err
	}
	edited, err := doc.WithSentence(si, s)
	if err != nil {
		return err
	}
	return out.write(env, c.File, edited)
}

// FieldNextCmd prints the position of the field after the cursor.
type FieldNextCmd struct {
	Cursor
	Col int `name:"col" default:"1" help:"1-based character column"`
}

func (c *FieldNextCmd) Run(env *Env) error {
	return c.move(env, c.Col, conllu.NextField)
}

// FieldPrevCmd prints the position of the field before the cursor.
type FieldPrevCmd struct {
	Cursor
	Col int `name:"col" default:"1" help:"1-based character column"`
}

func (c *FieldPrevCmd) Run(env *Env) error {
	return c.move(env, c.Col, conllu.PreviousField)
}

func (c Cursor) move(env *Env, col int, step func(*conllu.Sentence, conllu.Position) (conllu.Position, bool)) error {
	doc, si, li, err := c.sentence(env)
	if err != nil {
		return err
	}
	s := doc.Sentences[si]
	p, ok := step(s, conllu.Position{Line: li, Char: col - 1})
	if !ok {
		return errors.NewNotFound("field", fmt.Sprintf("%d:%d", c.Line, col))
	}
	fmt.Fprintf(env.Stdout, "%d:%d\n", s.StartLine+p.Line+1, p.Char+1)
	return nil
}

// InsertCmd inserts empty token lines into the sentence at a line.
type InsertCmd struct {
	Cursor
	Count int  `name:"count" short:"n" default:"1" help:"Number of lines to insert"`
	After bool `help:"Insert after the line instead of before it"`
	Output
}

func (c *InsertCmd) Run(env *Env) error {
	doc, si, li, err := c.sentence(env)
	if err != nil {
		return err
	}
	pos := li
	if c.After {
		pos++
	}
	s, err := conllu.InsertTokenLines(doc.Sentences[si], pos, c.Count)
	if err != nil {
		return err
	}
	edited, err := doc.WithSentence(si, s)
	if err != nil {
		return err
	}
	return c.write(env, c.File, edited)
}
