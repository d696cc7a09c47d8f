package conllu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// IDKind classifies the value of the ID field.
type IDKind int

const (
	// IDWord is a plain word index such as "3".
	IDWord IDKind = iota
	// IDRange is a multiword token span such as "1-2".
	IDRange
	// IDEmpty is an empty node such as "5.1".
	IDEmpty
)

func (k IDKind) String() string {
	switch k {
	case IDWord:
		return "word"
	case IDRange:
		return "range"
	case IDEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// TokenID is a parsed ID field.
type TokenID struct {
	Kind  IDKind
	Start int // word index, range start, or empty node major part
	End   int // range end (IDRange only)
	Minor int // empty node minor part (IDEmpty only)
}

// idGrammar is the participle grammar for ID values.
// Examples: "3", "1-2", "5.1"
type idGrammar struct {
	Start  int       `parser:"@Int"`
	Suffix *idSuffix `parser:"@@?"`
}

type idSuffix struct {
	End   *int `parser:"  \"-\" @Int"`
	Minor *int `parser:"| \".\" @Int"`
}

var idLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[.\-]`},
})

var idParser = participle.MustBuild[idGrammar](
	participle.Lexer(idLexer),
)

// ParseID parses an ID field value.
func ParseID(s string) (TokenID, error) {
	if s == "" {
		return TokenID{}, fmt.Errorf("empty ID")
	}
	if strings.TrimSpace(s) != s {
		return TokenID{}, fmt.Errorf("invalid ID %q: surrounding whitespace", s)
	}

	parsed, err := idParser.ParseString("", s)
	if err != nil {
		return TokenID{}, fmt.Errorf("invalid ID %q: %w", s, err)
	}

	id := TokenID{Kind: IDWord, Start: parsed.Start}
	if parsed.Suffix != nil {
		switch {
		case parsed.Suffix.End != nil:
			id.Kind = IDRange
			id.End = *parsed.Suffix.End
		case parsed.Suffix.Minor != nil:
			id.Kind = IDEmpty
			id.Minor = *parsed.Suffix.Minor
		}
	}
	return id, nil
}

// String returns the canonical ID text.
func (id TokenID) String() string {
	switch id.Kind {
	case IDRange:
		return strconv.Itoa(id.Start) + "-" + strconv.Itoa(id.End)
	case IDEmpty:
		return strconv.Itoa(id.Start) + "." + strconv.Itoa(id.Minor)
	default:
		return strconv.Itoa(id.Start)
	}
}

// IsWord reports whether the ID is a plain word index.
func (id TokenID) IsWord() bool {
	return id.Kind == IDWord
}

// Covers reports whether a range ID spans the given word index.
func (id TokenID) Covers(word int) bool {
	if id.Kind != IDRange {
		return id.Kind == IDWord && id.Start == word
	}
	return word >= id.Start && word <= id.End
}
