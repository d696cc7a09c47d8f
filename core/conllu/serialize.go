package conllu

import (
	"io"
	"strings"
)

// String joins the fields with tabs.
func (t TokenLine) String() string {
	return strings.Join(t[:], "\t")
}

// String returns the raw line text.
func (l Line) String() string {
	if l.Kind == LineComment {
		return l.Comment
	}
	return l.Token.String()
}

// String serialises the sentence with a trailing newline after every line.
func (s *Sentence) String() string {
	var sb strings.Builder
	writeSentence(&sb, s)
	return sb.String()
}

// String serialises the document. Each sentence is followed by one blank
// line.
func (d *Document) String() string {
	var sb strings.Builder
	for _, s := range d.Sentences {
		writeSentence(&sb, s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes the serialised document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

func writeSentence(sb *strings.Builder, s *Sentence) {
	for _, l := range s.Lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
}
