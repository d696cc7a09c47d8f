// Package conllu provides a pure text model for CoNLL-U (Universal Dependencies)
// annotated files.
//
// Text is parsed into a Document of Sentences; each Sentence holds Lines that
// are either comments or ten-field token lines.
//
// # Field Layout
//
// Every token line has exactly ten tab-separated fields:
//
//	ID  FORM  LEMMA  UPOS  XPOS  FEATS  HEAD  DEPREL  DEPS  MISC
//
// Field indices are 1-based, matching the column numbers used in the
// Universal Dependencies guidelines. ID and HEAD have structural meaning: ID
// is a word index (3), a multiword range (1-2) or an empty node (5.1); HEAD
// names the ID of the governing word, 0 for the root, or _ when unspecified.
//
// # Positions
//
// Nothing in this package tracks a cursor. Navigation takes explicit line
// and character offsets, so an editor, linter or converter can translate its
// own notion of position into calls against the model.
//
// # Snapshots
//
// Values are never modified in place. TokenLine is an array and copies on
// assignment; the Sentence and Document mutators copy their slices and
// return a new value, leaving the receiver untouched.
//
// # Example
//
//	doc, err := conllu.Parse(text)
//	if err != nil {
//	    return err
//	}
//	s := doc.Sentences[0]
//	head, err := conllu.ResolveHead(s, s.Lines[1].Token)
package conllu
