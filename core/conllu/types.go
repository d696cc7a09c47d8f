package conllu

import "strings"

// FieldCount is the number of fields on every token line.
const FieldCount = 10

// Field indices, 1-based.
const (
	ID = iota + 1
	FORM
	LEMMA
	UPOS
	XPOS
	FEATS
	HEAD
	DEPREL
	DEPS
	MISC
)

// Empty is the placeholder value for an unspecified field.
const Empty = "_"

var fieldNames = [FieldCount]string{
	"ID", "FORM", "LEMMA", "UPOS", "XPOS", "FEATS", "HEAD", "DEPREL", "DEPS", "MISC",
}

// FieldName returns the canonical column name for a 1-based field index,
// or the empty string when the index is out of range.
func FieldName(index int) string {
	if index < 1 || index > FieldCount {
		return ""
	}
	return fieldNames[index-1]
}

// FieldIndex returns the 1-based index of a column name (case-insensitive).
func FieldIndex(name string) (int, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range fieldNames {
		if n == name {
			return i + 1, true
		}
	}
	return 0, false
}

// TokenLine holds the ten fields of a token line. Index 0 of the array is
// field 1 (ID); use GetField and SetField for 1-based access.
type TokenLine [FieldCount]string

// EmptyTokenLine returns a token line with every field set to "_".
func EmptyTokenLine() TokenLine {
	var t TokenLine
	for i := range t {
		t[i] = Empty
	}
	return t
}

// LineKind distinguishes comment lines from token lines.
type LineKind int

const (
	// LineToken is a ten-field token line.
	LineToken LineKind = iota
	// LineComment is a line starting with '#'.
	LineComment
)

func (k LineKind) String() string {
	switch k {
	case LineToken:
		return "token"
	case LineComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Line is one line of a sentence. Comment is set for LineComment and holds
// the raw text including the leading '#'; Token is set for LineToken.
type Line struct {
	Kind    LineKind
	Comment string
	Token   TokenLine
}

// CommentLine builds a comment line. A leading "# " is added when text does
// not already start with '#'.
func CommentLine(text string) Line {
	if !strings.HasPrefix(text, "#") {
		text = "# " + text
	}
	return Line{Kind: LineComment, Comment: text}
}

// NewTokenLine builds a token line.
func NewTokenLine(t TokenLine) Line {
	return Line{Kind: LineToken, Token: t}
}

// IsToken reports whether the line is a token line.
func (l Line) IsToken() bool {
	return l.Kind == LineToken
}

// Sentence is a block of consecutive lines bounded by blank lines.
type Sentence struct {
	// Lines holds the comment and token lines in source order.
	Lines []Line

	// StartLine is the 0-based line number of the first line in the text
	// the sentence was parsed from.
	StartLine int
}

// EndLine returns the 0-based line number of the last line.
func (s *Sentence) EndLine() int {
	if len(s.Lines) == 0 {
		return s.StartLine
	}
	return s.StartLine + len(s.Lines) - 1
}

// Contains reports whether a 0-based source line falls inside the sentence.
func (s *Sentence) Contains(line int) bool {
	return line >= s.StartLine && line <= s.EndLine()
}

// Tokens returns the token lines in order.
func (s *Sentence) Tokens() []TokenLine {
	tokens := make([]TokenLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.Kind == LineToken {
			tokens = append(tokens, l.Token)
		}
	}
	return tokens
}

// Comments returns the raw comment lines in order.
func (s *Sentence) Comments() []string {
	var comments []string
	for _, l := range s.Lines {
		if l.Kind == LineComment {
			comments = append(comments, l.Comment)
		}
	}
	return comments
}

// Meta returns the value of a "# key = value" comment.
func (s *Sentence) Meta(key string) (string, bool) {
	for _, l := range s.Lines {
		if l.Kind != LineComment {
			continue
		}
		k, v, ok := splitMeta(l.Comment)
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// ID returns the sent_id metadata, or the empty string.
func (s *Sentence) ID() string {
	v, _ := s.Meta("sent_id")
	return v
}

// Text returns the text metadata, or the empty string.
func (s *Sentence) Text() string {
	v, _ := s.Meta("text")
	return v
}

// splitMeta splits "# key = value" into its parts.
func splitMeta(comment string) (key, value string, ok bool) {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	key, value, ok = strings.Cut(body, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// Document is an ordered sequence of sentences.
type Document struct {
	Sentences []*Sentence
}

// TokenCount returns the number of token lines across all sentences.
func (d *Document) TokenCount() int {
	n := 0
	for _, s := range d.Sentences {
		for _, l := range s.Lines {
			if l.Kind == LineToken {
				n++
			}
		}
	}
	return n
}
