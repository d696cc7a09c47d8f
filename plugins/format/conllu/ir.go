package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/internal/fileutil"
	"github.com/FocuswithJustin/conllu/plugins/ipc"
)

// rawAttr holds the hex-encoded source text for L0 round trips.
const rawAttr = "_conllu_raw"

// IR token types.
const (
	tokenWord      = "word"
	tokenMultiword = "multiword"
	tokenEmpty     = "empty"
	tokenUnknown   = "unknown"
)

func handleExtractIR(args map[string]interface{}) (interface{}, error) {
	path, outputDir, err := ipc.PathAndOutputDir(args)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadInput(path, nil)
	if err != nil {
		return nil, err
	}
	doc, err := conllu.Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	artifactID := ipc.ArtifactIDFromPath(path)
	corpus := buildCorpus(artifactID, doc, data)

	irData, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize IR")
	}
	irPath := filepath.Join(outputDir, artifactID+".ir.json")
	if err := fileutil.WriteOutput(irPath, irData, nil); err != nil {
		return nil, err
	}

	return &ipc.ExtractIRResult{
		IRPath:    irPath,
		LossClass: ipc.LossL1,
		LossReport: &ipc.LossReport{
			SourceFormat: formatName,
			TargetFormat: "IR",
			LossClass:    ipc.LossL1,
		},
	}, nil
}

func buildCorpus(id string, doc *conllu.Document, raw []byte) *ipc.Corpus {
	d := &ipc.Document{
		ID:    id,
		Title: id,
		Order: 1,
		Attributes: map[string]string{
			"sentences": strconv.Itoa(len(doc.Sentences)),
			"tokens":    strconv.Itoa(doc.TokenCount()),
		},
	}
	for i, s := range doc.Sentences {
		d.ContentBlocks = append(d.ContentBlocks, sentenceBlock(i, s))
	}

	return &ipc.Corpus{
		ID:           id,
		Version:      "1.0.0",
		ModuleType:   "TREEBANK",
		Title:        id,
		SourceFormat: formatName,
		Documents:    []*ipc.Document{d},
		SourceHash:   ipc.ComputeHash(raw),
		LossClass:    ipc.LossL1,
		Attributes: map[string]string{
			rawAttr:         hex.EncodeToString(raw),
			"document_hash": conllu.HashDocument(doc),
		},
	}
}

// sentenceBlock converts one sentence. The block text is the "# text"
// comment, or the surface forms when the comment is missing.
func sentenceBlock(i int, s *conllu.Sentence) *ipc.ContentBlock {
	text, ok := s.Meta("text")
	if !ok {
		text = surfaceText(s)
	}

	block := &ipc.ContentBlock{
		ID:       fmt.Sprintf("s%d", i+1),
		Sequence: i + 1,
		Text:     text,
		Tokens:   sentenceTokens(s, text),
		Hash:     s.Fingerprint(),
		Attributes: map[string]interface{}{
			"start_line": s.StartLine + 1,
		},
	}
	if comments := s.Comments(); len(comments) > 0 {
		block.Attributes["comments"] = comments
	}
	if id := s.ID(); id != "" {
		block.Attributes["sent_id"] = id
	}
	return block
}

// sentenceTokens emits one IR token per token line. Words inside a
// multiword token share its span; empty nodes are zero-width.
func sentenceTokens(s *conllu.Sentence, text string) []*ipc.Token {
	runes := []rune(text)
	cursor := 0
	coveredUntil := 0
	var spanStart, spanEnd int

	var tokens []*ipc.Token
	for _, t := range s.Tokens() {
		raw := t[conllu.ID-1]
		tok := &ipc.Token{
			ID:         raw,
			Text:       t[conllu.FORM-1],
			Attributes: fieldAttributes(t),
		}

		id, err := conllu.ParseID(raw)
		switch {
		case err != nil:
			tok.Type = tokenUnknown
			tok.StartPos, tok.EndPos = cursor, cursor
		case id.Kind == conllu.IDRange:
			tok.Type = tokenMultiword
			spanStart, spanEnd = locate(runes, tok.Text, cursor)
			tok.StartPos, tok.EndPos = spanStart, spanEnd
			cursor = spanEnd
			coveredUntil = id.End
		case id.Kind == conllu.IDEmpty:
			tok.Type = tokenEmpty
			tok.StartPos, tok.EndPos = cursor, cursor
		case id.Start <= coveredUntil:
			tok.Type = tokenWord
			tok.StartPos, tok.EndPos = spanStart, spanEnd
		default:
			tok.Type = tokenWord
			tok.StartPos, tok.EndPos = locate(runes, tok.Text, cursor)
			cursor = tok.EndPos
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// locate finds form in runes at or after from and returns its rune span.
// A form that cannot be found gets an empty span at from.
func locate(runes []rune, form string, from int) (start, end int) {
	if from > len(runes) {
		from = len(runes)
	}
	rest := string(runes[from:])
	i := strings.Index(rest, form)
	if form == "" || i < 0 {
		return from, from
	}
	start = from + utf8.RuneCountInString(rest[:i])
	return start, start + utf8.RuneCountInString(form)
}

func fieldAttributes(t conllu.TokenLine) map[string]string {
	attrs := make(map[string]string, conllu.FieldCount)
	for i, v := range t {
		attrs[conllu.FieldName(i+1)] = v
	}
	return attrs
}

// surfaceText rebuilds sentence text from surface tokens, honouring
// SpaceAfter=No in MISC.
func surfaceText(s *conllu.Sentence) string {
	var sb strings.Builder
	coveredUntil := 0
	for _, t := range s.Tokens() {
		id, err := conllu.ParseID(t[conllu.ID-1])
		if err != nil || id.Kind == conllu.IDEmpty {
			continue
		}
		if id.Kind == conllu.IDWord && id.Start <= coveredUntil {
			continue
		}
		if id.Kind == conllu.IDRange {
			coveredUntil = id.End
		}
		sb.WriteString(t[conllu.FORM-1])
		if !noSpaceAfter(t[conllu.MISC-1]) {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func noSpaceAfter(misc string) bool {
	for _, item := range strings.Split(misc, "|") {
		if item == "SpaceAfter=No" {
			return true
		}
	}
	return false
}

func handleEmitNative(args map[string]interface{}) (interface{}, error) {
	irPath, err := ipc.StringArg(args, "ir_path")
	if err != nil {
		return nil, err
	}
	outputDir, err := ipc.StringArg(args, "output_dir")
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(irPath)
	if err != nil {
		return nil, errors.NewIO("read IR", irPath, err)
	}
	var corpus ipc.Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, errors.NewParse("IR", irPath, err)
	}

	outputPath := filepath.Join(outputDir, corpus.ID+".conllu")

	if raw, ok := corpus.Attributes[rawAttr]; ok {
		if b, err := hex.DecodeString(raw); err == nil {
			if err := fileutil.WriteOutput(outputPath, b, nil); err != nil {
				return nil, err
			}
			return &ipc.EmitNativeResult{
				OutputPath: outputPath,
				Format:     formatName,
				LossClass:  ipc.LossL0,
				LossReport: &ipc.LossReport{
					SourceFormat: "IR",
					TargetFormat: formatName,
					LossClass:    ipc.LossL0,
				},
			}, nil
		}
	}

	doc, report, err := corpusDocument(&corpus)
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteOutput(outputPath, []byte(doc.String()), nil); err != nil {
		return nil, err
	}
	return &ipc.EmitNativeResult{
		OutputPath: outputPath,
		Format:     formatName,
		LossClass:  report.LossClass,
		LossReport: report,
	}, nil
}

// corpusDocument regenerates CoNLL-U from IR. Blocks whose tokens carry all
// ten fields come back intact (L1); other blocks keep only their words (L3).
func corpusDocument(corpus *ipc.Corpus) (*conllu.Document, *ipc.LossReport, error) {
	report := &ipc.LossReport{
		SourceFormat: "IR",
		TargetFormat: formatName,
		LossClass:    ipc.LossL1,
	}
	doc := &conllu.Document{}
	for _, d := range corpus.Documents {
		for _, block := range d.ContentBlocks {
			s, full, err := blockSentence(block)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "block %s", block.ID)
			}
			if !full {
				report.LossClass = ipc.LossL3
				report.LostElements = append(report.LostElements, ipc.LostElement{
					Path:        d.ID + "/" + block.ID,
					ElementType: "annotation",
					Reason:      "tokens carry no CoNLL-U fields",
				})
			}
			if len(s.Lines) > 0 {
				doc.Sentences = append(doc.Sentences, s)
			}
		}
	}
	return doc, report, nil
}

func blockSentence(block *ipc.ContentBlock) (*conllu.Sentence, bool, error) {
	s := &conllu.Sentence{}

	comments := stringSlice(block.Attributes["comments"])
	for _, c := range comments {
		s.Lines = append(s.Lines, conllu.CommentLine(c))
	}
	if len(comments) == 0 {
		if id, ok := block.Attributes["sent_id"].(string); ok && id != "" {
			s.Lines = append(s.Lines, conllu.CommentLine("sent_id = "+id))
		}
		if block.Text != "" {
			s.Lines = append(s.Lines, conllu.CommentLine("text = "+block.Text))
		}
	}

	full := len(block.Tokens) > 0
	for _, t := range block.Tokens {
		if !hasAllFields(t) {
			full = false
			break
		}
	}

	if full {
		for _, t := range block.Tokens {
			var tl conllu.TokenLine
			for i := range tl {
				tl[i] = t.Attributes[conllu.FieldName(i+1)]
			}
			s.Lines = append(s.Lines, conllu.NewTokenLine(tl))
		}
		return s, true, nil
	}

	for i, w := range blockWords(block) {
		tl, err := conllu.SetField(conllu.EmptyTokenLine(), conllu.FORM, w)
		if err != nil {
			return nil, false, err
		}
		tl[conllu.ID-1] = strconv.Itoa(i + 1)
		s.Lines = append(s.Lines, conllu.NewTokenLine(tl))
	}
	return s, false, nil
}

func hasAllFields(t *ipc.Token) bool {
	for i := 1; i <= conllu.FieldCount; i++ {
		if _, ok := t.Attributes[conllu.FieldName(i)]; !ok {
			return false
		}
	}
	return true
}

// blockWords returns word token texts, or the whitespace-separated block
// text when there are none.
func blockWords(block *ipc.ContentBlock) []string {
	var words []string
	for _, t := range block.Tokens {
		if t.Type == tokenMultiword || t.Type == tokenEmpty || t.Text == "" {
			continue
		}
		words = append(words, t.Text)
	}
	if len(words) == 0 {
		words = strings.Fields(block.Text)
	}
	return words
}

// stringSlice accepts both []string and the []interface{} produced by JSON
// decoding.
func stringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
