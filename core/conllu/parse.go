package conllu

import (
	"strings"
)

// Parse parses CoNLL-U text into a Document.
//
// Sentences are separated by one or more blank (whitespace-only) lines.
// Leading and trailing blank lines are ignored. Parsing stops at the first
// token line that does not have exactly ten tab-separated fields.
func Parse(text string) (*Document, error) {
	doc, errs := parse(text, false)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return doc, nil
}

// ParseLenient parses like Parse but keeps going past malformed lines.
// A sentence with any malformed line is left out of the document and every
// malformed line is reported, so the returned sentences keep valid source
// positions.
func ParseLenient(text string) (*Document, []error) {
	return parse(text, true)
}

// Block is a run of non-blank raw lines.
type Block struct {
	StartLine int      // 0-based line number of the first line
	Lines     []string // raw lines without line terminators
}

// SplitBlocks splits text at blank lines. "\r\n" line endings are accepted.
func SplitBlocks(text string) []Block {
	var blocks []Block
	var cur *Block

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			if cur != nil {
				blocks = append(blocks, *cur)
				cur = nil
			}
			continue
		}
		if cur == nil {
			cur = &Block{StartLine: i}
		}
		cur.Lines = append(cur.Lines, raw)
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

// ParseLine classifies one raw line. lineNo is the 1-based source line
// number used in errors.
func ParseLine(raw string, lineNo int) (Line, error) {
	if strings.HasPrefix(raw, "#") {
		return Line{Kind: LineComment, Comment: raw}, nil
	}

	fields := strings.Split(raw, "\t")
	if len(fields) != FieldCount {
		return Line{}, &MalformedLineError{Line: lineNo, Fields: len(fields), Text: raw}
	}

	var t TokenLine
	copy(t[:], fields)
	return Line{Kind: LineToken, Token: t}, nil
}

// ParseBlock parses a block into a sentence, returning every malformed line.
func ParseBlock(b Block) (*Sentence, []error) {
	s := &Sentence{
		StartLine: b.StartLine,
		Lines:     make([]Line, 0, len(b.Lines)),
	}
	var errs []error
	for i, raw := range b.Lines {
		line, err := ParseLine(raw, b.StartLine+i+1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.Lines = append(s.Lines, line)
	}
	return s, errs
}

func parse(text string, lenient bool) (*Document, []error) {
	if strings.TrimSpace(text) == "" {
		return nil, []error{&EmptyDocumentError{}}
	}

	doc := &Document{}
	var errs []error
	for _, b := range SplitBlocks(text) {
		s, blockErrs := ParseBlock(b)
		if len(blockErrs) > 0 {
			if !lenient {
				return nil, blockErrs[:1]
			}
			errs = append(errs, blockErrs...)
			continue
		}
		doc.Sentences = append(doc.Sentences, s)
	}
	return doc, errs
}
