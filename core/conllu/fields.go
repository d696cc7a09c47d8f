package conllu

import (
	"strings"
	"unicode/utf8"
)

func checkIndex(index int) error {
	if index < 1 || index > FieldCount {
		return &IndexOutOfRangeError{Index: index}
	}
	return nil
}

// GetField returns field index (1..10) of a token line.
func GetField(line TokenLine, index int) (string, error) {
	if err := checkIndex(index); err != nil {
		return "", err
	}
	return line[index-1], nil
}

// SetField returns a copy of line with field index set to value. Values
// containing a tab or line break are rejected.
func SetField(line TokenLine, index int, value string) (TokenLine, error) {
	if err := checkIndex(index); err != nil {
		return line, err
	}
	if strings.ContainsAny(value, "\t\n\r") {
		return line, &InvalidFieldValueError{Index: index, Value: value}
	}
	line[index-1] = value
	return line, nil
}

// ClearField sets field index to "_" and returns the updated line together
// with the previous value.
func ClearField(line TokenLine, index int) (TokenLine, string, error) {
	if err := checkIndex(index); err != nil {
		return line, "", err
	}
	old := line[index-1]
	line[index-1] = Empty
	return line, old, nil
}

// FieldSpan returns the rune offsets [start, end) of field index within the
// serialised line.
func FieldSpan(line TokenLine, index int) (start, end int, err error) {
	if err := checkIndex(index); err != nil {
		return 0, 0, err
	}
	for i := 0; i < index-1; i++ {
		start += utf8.RuneCountInString(line[i]) + 1
	}
	return start, start + utf8.RuneCountInString(line[index-1]), nil
}

// InsertTokenLines returns a copy of s with count empty token lines inserted
// before line position. Position 0 inserts before the first line and
// len(s.Lines) appends.
func InsertTokenLines(s *Sentence, position, count int) (*Sentence, error) {
	if count < 0 {
		return nil, &InvalidPositionError{Position: position, Count: count, Len: len(s.Lines)}
	}
	if position < 0 || position > len(s.Lines) {
		return nil, &InvalidPositionError{Position: position, Count: count, Len: len(s.Lines)}
	}

	lines := make([]Line, 0, len(s.Lines)+count)
	lines = append(lines, s.Lines[:position]...)
	for i := 0; i < count; i++ {
		lines = append(lines, NewTokenLine(EmptyTokenLine()))
	}
	lines = append(lines, s.Lines[position:]...)

	return &Sentence{Lines: lines, StartLine: s.StartLine}, nil
}

// WithLine returns a copy of s with line i replaced.
func (s *Sentence) WithLine(i int, line Line) (*Sentence, error) {
	if i < 0 || i >= len(s.Lines) {
		return nil, &InvalidPositionError{Position: i, Len: len(s.Lines)}
	}
	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	lines[i] = line
	return &Sentence{Lines: lines, StartLine: s.StartLine}, nil
}

// WithToken returns a copy of s with the token line at line index i replaced.
func (s *Sentence) WithToken(i int, t TokenLine) (*Sentence, error) {
	return s.WithLine(i, NewTokenLine(t))
}

// WithSentence returns a copy of d with sentence i replaced. The replacement
// takes the StartLine of the sentence it replaces, and every later sentence
// is shifted by the difference in line count.
func (d *Document) WithSentence(i int, s *Sentence) (*Document, error) {
	if i < 0 || i >= len(d.Sentences) {
		return nil, &InvalidPositionError{Position: i, Len: len(d.Sentences)}
	}

	old := d.Sentences[i]
	delta := len(s.Lines) - len(old.Lines)

	sentences := make([]*Sentence, len(d.Sentences))
	copy(sentences, d.Sentences[:i])
	sentences[i] = &Sentence{Lines: s.Lines, StartLine: old.StartLine}
	for j := i + 1; j < len(d.Sentences); j++ {
		moved := *d.Sentences[j]
		moved.StartLine += delta
		sentences[j] = &moved
	}
	return &Document{Sentences: sentences}, nil
}
