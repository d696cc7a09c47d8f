package main

import (
	"fmt"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
)

// SentenceNextCmd prints the sentence after a line.
type SentenceNextCmd struct {
	File string `arg:"" help:"CoNLL-U file, - for stdin"`
	Line int    `name:"line" short:"l" help:"1-based source line (0 starts before the first sentence)"`
}

func (c *SentenceNextCmd) Run(env *Env) error {
	doc, err := env.load(c.File)
	if err != nil {
		return err
	}
	s, ok := conllu.NextSentence(doc, c.Line-1)
	if !ok {
		return errors.NewNotFound("sentence after line", fmt.Sprint(c.Line))
	}
	printSentence(env, s)
	return nil
}

// SentencePrevCmd prints the sentence before a line.
type SentencePrevCmd struct {
	File string `arg:"" help:"CoNLL-U file, - for stdin"`
	Line int    `name:"line" short:"l" required:"" help:"1-based source line"`
}

func (c *SentencePrevCmd) Run(env *Env) error {
	doc, err := env.load(c.File)
	if err != nil {
		return err
	}
	s, ok := conllu.PreviousSentence(doc, c.Line-1)
	if !ok {
		return errors.NewNotFound("sentence before line", fmt.Sprint(c.Line))
	}
	printSentence(env, s)
	return nil
}

// printSentence writes the 1-based start line, then the sentence.
func printSentence(env *Env, s *conllu.Sentence) {
	fmt.Fprintf(env.Stdout, "%d\n%s", s.StartLine+1, s.String())
}

// HeadCmd prints the governor of the token on a line.
type HeadCmd struct {
	Cursor
}

func (c *HeadCmd) Run(env *Env) error {
	doc, si, li, err := c.token(env)
	if err != nil {
		return err
	}
	s := doc.Sentences[si]
	h, err := conllu.ResolveHead(s, s.Lines[li].Token)
	if err != nil {
		return err
	}
	switch h.Kind {
	case conllu.HeadToken:
		fmt.Fprintf(env.Stdout, "%d\t%s\n", s.StartLine+h.Index+1, h.Token)
	default:
		fmt.Fprintln(env.Stdout, h.Kind)
	}
	return nil
}

// AtCmd prints the field under a line and column.
type AtCmd struct {
	Cursor
	Col int `name:"col" required:"" help:"1-based character column"`
}

func (c *AtCmd) Run(env *Env) error {
	doc, si, li, err := c.sentence(env)
	if err != nil {
		return err
	}
	_, field, ok := conllu.FieldAtOffset(doc.Sentences[si], li, c.Col-1)
	if !ok {
		return errors.NewNotFound("field at", fmt.Sprintf("%d:%d", c.Line, c.Col))
	}
	tok := doc.Sentences[si].Lines[li].Token
	fmt.Fprintf(env.Stdout, "%d\t%s\t%s\n", field, conllu.FieldName(field), tok[field-1])
	return nil
}
