package conllu

import (
	"fmt"

	apperrors "github.com/FocuswithJustin/conllu/core/errors"
)

// EmptyDocumentError is returned when the input holds no sentences.
type EmptyDocumentError struct{}

func (e *EmptyDocumentError) Error() string {
	return "empty document"
}

func (e *EmptyDocumentError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// MalformedLineError is returned when a token line does not split into
// exactly ten tab-separated fields.
type MalformedLineError struct {
	Line   int    // 1-based source line number
	Fields int    // number of fields found
	Text   string // raw line
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: expected %d fields, found %d", e.Line, FieldCount, e.Fields)
}

func (e *MalformedLineError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// IndexOutOfRangeError is returned for a field index outside 1..10.
type IndexOutOfRangeError struct {
	Index int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("field index %d out of range 1..%d", e.Index, FieldCount)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return apperrors.ErrOutOfRange
}

// InvalidPositionError is returned when a line insertion position or count
// is outside the sentence.
type InvalidPositionError struct {
	Position int
	Count    int
	Len      int // number of lines in the sentence
}

func (e *InvalidPositionError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("invalid line count %d", e.Count)
	}
	return fmt.Sprintf("position %d out of range for %d lines", e.Position, e.Len)
}

func (e *InvalidPositionError) Unwrap() error {
	return apperrors.ErrOutOfRange
}

// InvalidFieldValueError is returned when a field value would break the
// line structure.
type InvalidFieldValueError struct {
	Index int
	Value string
}

func (e *InvalidFieldValueError) Error() string {
	return fmt.Sprintf("field %s: value %q contains a tab or newline", FieldName(e.Index), e.Value)
}

func (e *InvalidFieldValueError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// DanglingHeadReferenceError is returned when HEAD names an ID that no token
// in the sentence carries.
type DanglingHeadReferenceError struct {
	Head    string // HEAD value
	TokenID string // ID of the token whose HEAD dangles
}

func (e *DanglingHeadReferenceError) Error() string {
	return fmt.Sprintf("token %s: head %s not found in sentence", e.TokenID, e.Head)
}

func (e *DanglingHeadReferenceError) Unwrap() error {
	return apperrors.ErrNotFound
}
