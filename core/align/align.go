// Package align renders a sentence as padded columns for reading in a
// terminal. The output is not valid CoNLL-U.
package align

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/FocuswithJustin/conllu/core/conllu"
)

// DefaultGap is the number of spaces between columns.
const DefaultGap = 2

// Options controls alignment.
type Options struct {
	Gap int // spaces between columns; values below 1 use DefaultGap
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	w := runewidth.StringWidth(s)
	if w == 0 && s != "" {
		// Zero-width clusters still occupy a cell in most terminals.
		w = uniseg.StringWidth(s)
	}
	return w
}

// Columns returns the display width of each field across the token lines
// of s.
func Columns(s *conllu.Sentence) [conllu.FieldCount]int {
	var widths [conllu.FieldCount]int
	for _, l := range s.Lines {
		if !l.IsToken() {
			continue
		}
		for i, f := range l.Token {
			if w := Width(f); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Align returns one display line per line of s. Token fields are padded to
// their column width; comments are returned unchanged.
func Align(s *conllu.Sentence, opts Options) []string {
	gap := opts.Gap
	if gap < 1 {
		gap = DefaultGap
	}
	widths := Columns(s)
	sep := strings.Repeat(" ", gap)

	out := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		if !l.IsToken() {
			out = append(out, l.Comment)
			continue
		}
		var sb strings.Builder
		for i, f := range l.Token {
			sb.WriteString(f)
			if i == conllu.FieldCount-1 {
				break
			}
			sb.WriteString(strings.Repeat(" ", widths[i]-Width(f)))
			sb.WriteString(sep)
		}
		out = append(out, sb.String())
	}
	return out
}

// AlignDocument aligns every sentence of d, separating sentences with an
// empty line.
func AlignDocument(d *conllu.Document, opts Options) []string {
	var out []string
	for i, s := range d.Sentences {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, Align(s, opts)...)
	}
	return out
}
