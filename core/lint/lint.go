package lint

import (
	"errors"
	"fmt"

	"github.com/FocuswithJustin/conllu/core/conllu"
)

// checker accumulates diagnostics for one run.
type checker struct {
	opts   Options
	report *Report
}

func (c *checker) add(rule string, line, field int, format string, args ...interface{}) {
	if c.opts.Disabled[rule] {
		return
	}
	def := rulesByID[rule]
	sev := def.Severity
	if override, ok := c.opts.Severity[rule]; ok {
		sev = override
	}
	c.report.Diagnostics = append(c.report.Diagnostics, Diagnostic{
		Rule:     rule,
		Name:     def.Name,
		Severity: sev,
		Line:     line,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Lint validates CoNLL-U text. Sentences with malformed lines are reported
// line by line and skipped by the sentence-level rules.
func Lint(text string, opts Options) *Report {
	c := &checker{opts: opts, report: &Report{}}

	blocks := conllu.SplitBlocks(text)
	if len(blocks) == 0 {
		c.add(RuleEmptyDocument, 1, 0, "no sentences found")
		return c.report
	}

	for _, b := range blocks {
		s, errs := conllu.ParseBlock(b)
		if len(errs) > 0 {
			for _, err := range errs {
				var mal *conllu.MalformedLineError
				if errors.As(err, &mal) {
					c.add(RuleMalformedLine, mal.Line, 0, "expected %d fields, found %d", conllu.FieldCount, mal.Fields)
				}
			}
			continue
		}
		c.report.Sentences++
		c.checkSentence(s)
	}

	c.report.sort()
	return c.report
}

// LintDocument runs the sentence-level rules over an already parsed document.
func LintDocument(doc *conllu.Document, opts Options) *Report {
	c := &checker{opts: opts, report: &Report{}}
	if doc == nil || len(doc.Sentences) == 0 {
		c.add(RuleEmptyDocument, 1, 0, "no sentences found")
		return c.report
	}
	for _, s := range doc.Sentences {
		c.report.Sentences++
		c.checkSentence(s)
	}
	c.report.sort()
	return c.report
}

func (c *checker) checkSentence(s *conllu.Sentence) {
	first := s.StartLine + 1

	if _, ok := s.Meta("text"); !ok {
		c.add(RuleMissingText, first, 0, "no # text comment")
	}

	nextWord := 1
	roots := 0
	specifiedHeads := 0

	for i, l := range s.Lines {
		if !l.IsToken() {
			continue
		}
		c.report.Tokens++
		line := first + i
		tok := l.Token
		rawID := tok[conllu.ID-1]

		id, err := conllu.ParseID(rawID)
		if err != nil {
			c.add(RuleBadID, line, conllu.ID, "invalid ID %q", rawID)
			continue
		}

		switch id.Kind {
		case conllu.IDWord:
			if id.Start != nextWord {
				c.add(RuleIDSequence, line, conllu.ID, "expected word ID %d, found %s", nextWord, rawID)
			}
			nextWord = id.Start + 1
		case conllu.IDRange:
			if id.End <= id.Start {
				c.add(RuleBadID, line, conllu.ID, "range %s must end after it starts", rawID)
			} else if id.Start != nextWord {
				c.add(RuleIDSequence, line, conllu.ID, "range %s should start at word %d", rawID, nextWord)
			}
		case conllu.IDEmpty:
			if id.Minor == 0 {
				c.add(RuleBadID, line, conllu.ID, "empty node %s must have a minor part of at least 1", rawID)
			} else if id.Start != nextWord-1 {
				c.add(RuleIDSequence, line, conllu.ID, "empty node %s should follow word %d", rawID, nextWord-1)
			}
		}

		head := tok[conllu.HEAD-1]
		if head == conllu.Empty {
			continue
		}
		if !id.IsWord() {
			c.add(RuleBadHeadValue, line, conllu.HEAD, "%s token %s must have HEAD _", id.Kind, rawID)
			continue
		}
		hid, err := conllu.ParseID(head)
		if err != nil || !hid.IsWord() {
			c.add(RuleBadHeadValue, line, conllu.HEAD, "invalid HEAD %q", head)
			continue
		}

		specifiedHeads++
		if head == "0" {
			roots++
			continue
		}
		if head == rawID {
			c.add(RuleSelfHead, line, conllu.HEAD, "token %s is its own head", rawID)
			continue
		}
		if _, err := conllu.ResolveHead(s, tok); err != nil {
			var dangling *conllu.DanglingHeadReferenceError
			if errors.As(err, &dangling) {
				c.add(RuleDanglingHead, line, conllu.HEAD, "head %s of token %s not found", dangling.Head, dangling.TokenID)
			}
		}
	}

	if specifiedHeads > 0 && roots != 1 {
		c.add(RuleRootCount, first, 0, "expected exactly one root, found %d", roots)
	}
}
