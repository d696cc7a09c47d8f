package conllu

import (
	"sort"
	"unicode/utf8"
)

// Position addresses a character inside a sentence: Line indexes
// Sentence.Lines and Char is a rune offset within that line.
type Position struct {
	Line int
	Char int
}

// HeadKind classifies the result of ResolveHead.
type HeadKind int

const (
	// HeadUnspecified means HEAD is "_".
	HeadUnspecified HeadKind = iota
	// HeadRoot means HEAD is "0".
	HeadRoot
	// HeadToken means HEAD names a token in the sentence.
	HeadToken
)

func (k HeadKind) String() string {
	switch k {
	case HeadUnspecified:
		return "unspecified"
	case HeadRoot:
		return "root"
	case HeadToken:
		return "token"
	default:
		return "unknown"
	}
}

// Head is the resolved governor of a token. Token and Index (the line index
// in Sentence.Lines) are only set for HeadToken.
type Head struct {
	Kind  HeadKind
	Token TokenLine
	Index int
}

// SentenceAt returns the sentence covering a 0-based source line and its
// index in the document.
func SentenceAt(doc *Document, line int) (*Sentence, int, bool) {
	i := firstEndingAtOrAfter(doc, line)
	if i < len(doc.Sentences) && doc.Sentences[i].Contains(line) {
		return doc.Sentences[i], i, true
	}
	return nil, -1, false
}

// NextSentence returns the sentence after the one containing fromLine. When
// fromLine lies outside every sentence, the first sentence starting after it
// is returned. The boolean is false at the end of the document.
func NextSentence(doc *Document, fromLine int) (*Sentence, bool) {
	i := firstEndingAtOrAfter(doc, fromLine)
	if i < len(doc.Sentences) && doc.Sentences[i].Contains(fromLine) {
		i++
	}
	if i >= len(doc.Sentences) {
		return nil, false
	}
	return doc.Sentences[i], true
}

// PreviousSentence returns the sentence before the one containing fromLine,
// or the last sentence ending before fromLine when it lies outside every
// sentence. The boolean is false at the start of the document.
func PreviousSentence(doc *Document, fromLine int) (*Sentence, bool) {
	i := firstEndingAtOrAfter(doc, fromLine) - 1
	if i < 0 {
		return nil, false
	}
	return doc.Sentences[i], true
}

// firstEndingAtOrAfter returns the index of the first sentence whose last
// line is at or after line.
func firstEndingAtOrAfter(doc *Document, line int) int {
	return sort.Search(len(doc.Sentences), func(i int) bool {
		return doc.Sentences[i].EndLine() >= line
	})
}

// TokenByID finds the token line whose ID field equals id.
func TokenByID(s *Sentence, id string) (TokenLine, int, bool) {
	for i, l := range s.Lines {
		if l.Kind == LineToken && l.Token[ID-1] == id {
			return l.Token, i, true
		}
	}
	return TokenLine{}, -1, false
}

// ResolveHead resolves the HEAD field of tok within s.
func ResolveHead(s *Sentence, tok TokenLine) (Head, error) {
	head := tok[HEAD-1]
	switch head {
	case Empty:
		return Head{Kind: HeadUnspecified, Index: -1}, nil
	case "0":
		return Head{Kind: HeadRoot, Index: -1}, nil
	}

	gov, idx, ok := TokenByID(s, head)
	if !ok {
		return Head{Index: -1}, &DanglingHeadReferenceError{Head: head, TokenID: tok[ID-1]}
	}
	return Head{Kind: HeadToken, Token: gov, Index: idx}, nil
}

// FieldAtOffset maps a rune offset on line lineOffset of s to the enclosing
// field index. A tab belongs to the field it ends, and the end of the line
// belongs to field 10. Comment lines and offsets outside the line report
// false.
func FieldAtOffset(s *Sentence, lineOffset, charOffset int) (TokenLine, int, bool) {
	if lineOffset < 0 || lineOffset >= len(s.Lines) || charOffset < 0 {
		return TokenLine{}, 0, false
	}
	l := s.Lines[lineOffset]
	if l.Kind != LineToken {
		return TokenLine{}, 0, false
	}

	pos := 0
	for i, f := range l.Token {
		n := utf8.RuneCountInString(f)
		if charOffset <= pos+n {
			return l.Token, i + 1, true
		}
		pos += n + 1
	}
	return TokenLine{}, 0, false
}

// NextField returns the start of the field after the one at p, moving to
// the first field of the next token line after field 10. On a comment line
// it moves to the next token line. Line -1 is before the first line.
func NextField(s *Sentence, p Position) (Position, bool) {
	if _, field, ok := FieldAtOffset(s, p.Line, p.Char); ok && field < FieldCount {
		start, _, _ := FieldSpan(s.Lines[p.Line].Token, field+1)
		return Position{Line: p.Line, Char: start}, true
	}
	if p.Line < -1 || p.Line >= len(s.Lines) {
		return Position{}, false
	}
	for i := p.Line + 1; i < len(s.Lines); i++ {
		if s.Lines[i].Kind == LineToken {
			return Position{Line: i, Char: 0}, true
		}
	}
	return Position{}, false
}

// PreviousField returns the start of the field before the one at p, moving
// to field 10 of the previous token line before field 1. Line len(s.Lines)
// is after the last line.
func PreviousField(s *Sentence, p Position) (Position, bool) {
	if _, field, ok := FieldAtOffset(s, p.Line, p.Char); ok && field > 1 {
		start, _, _ := FieldSpan(s.Lines[p.Line].Token, field-1)
		return Position{Line: p.Line, Char: start}, true
	}
	if p.Line < 0 || p.Line > len(s.Lines) {
		return Position{}, false
	}
	for i := p.Line - 1; i >= 0; i-- {
		if s.Lines[i].Kind == LineToken {
			start, _, _ := FieldSpan(s.Lines[i].Token, FieldCount)
			return Position{Line: i, Char: start}, true
		}
	}
	return Position{}, false
}
