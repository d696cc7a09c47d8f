// Package index keeps a SQLite table of sentences keyed by sent_id so that
// large treebanks can be searched without re-parsing them.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/core/sqlite"
)

// timeFormat sorts lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Index is an open sentence index.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens or creates the index database at path and migrates it.
func Open(ctx context.Context, path string) (*Index, error) {
	db, err := sqlite.OpenFile(ctx, path)
	if err != nil {
		return nil, errors.NewIO("open index", path, err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db, path: path}, nil
}

// OpenReadOnly opens an existing index for queries. It neither creates nor
// migrates the database.
func OpenReadOnly(ctx context.Context, path string) (*Index, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.NewIO("open index", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewIO("open index", path, err)
	}
	return &Index{db: db, path: path}, nil
}

// Close closes the database.
func (ix *Index) Close() error {
	if ix.db != nil {
		return ix.db.Close()
	}
	return nil
}

// Path returns the database file.
func (ix *Index) Path() string {
	return ix.path
}

// BuildResult summarizes one Build call.
type BuildResult struct {
	ID        string
	Source    string
	Sentences int
	Changed   int // sentences added or modified
	Moved     int // unchanged sentences whose start line shifted
	Removed   int // sentences no longer present
}

// Build replaces the indexed sentences of source with those of doc in a
// single transaction. Sentences are compared by fingerprint, so rebuilding
// an unchanged file reports zero changes.
func (ix *Index) Build(ctx context.Context, source string, doc *conllu.Document) (*BuildResult, error) {
	res := &BuildResult{
		ID:        uuid.New().String(),
		Source:    source,
		Sentences: len(doc.Sentences),
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	type stored struct {
		hash      string
		startLine int
	}
	old := make(map[int]stored)
	rows, err := tx.QueryContext(ctx, `SELECT seq, hash, start_line FROM sentences WHERE source = ?`, source)
	if err != nil {
		return nil, errors.Wrap(err, "query existing sentences")
	}
	for rows.Next() {
		var seq int
		var st stored
		if err := rows.Scan(&seq, &st.hash, &st.startLine); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan existing sentence")
		}
		old[seq] = st
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, errors.Wrap(err, "iterate existing sentences")
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO builds (id, source, sentences, changed, removed, created_at) VALUES (?, ?, ?, 0, 0, ?)`,
		res.ID, source, res.Sentences, time.Now().UTC().Format(timeFormat),
	); err != nil {
		return nil, errors.Wrap(err, "insert build")
	}

	upsert, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO sentences
		(source, seq, sent_id, text, tokens, start_line, hash, body, build_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare statement")
	}
	defer func() { _ = upsert.Close() }()

	for seq, s := range doc.Sentences {
		hash := s.Fingerprint()
		if prev, ok := old[seq]; ok && prev.hash == hash {
			// The fingerprint ignores position.
			if prev.startLine != s.StartLine {
				if _, err := tx.ExecContext(ctx,
					`UPDATE sentences SET start_line = ? WHERE source = ? AND seq = ?`, s.StartLine, source, seq,
				); err != nil {
					return nil, errors.Wrapf(err, "move sentence %d", seq)
				}
				res.Moved++
			}
			continue
		}
		res.Changed++
		if _, err := upsert.ExecContext(ctx,
			source, seq, s.ID(), s.Text(), len(s.Tokens()), s.StartLine, hash, s.String(), res.ID,
		); err != nil {
			return nil, errors.Wrapf(err, "insert sentence %d", seq)
		}
	}

	for seq := range old {
		if seq >= len(doc.Sentences) {
			res.Removed++
		}
	}
	if res.Removed > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sentences WHERE source = ? AND seq >= ?`, source, len(doc.Sentences),
		); err != nil {
			return nil, errors.Wrap(err, "delete removed sentences")
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE builds SET changed = ?, removed = ? WHERE id = ?`, res.Changed, res.Removed, res.ID,
	); err != nil {
		return nil, errors.Wrap(err, "update build")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit transaction")
	}
	return res, nil
}

// Entry is one indexed sentence.
type Entry struct {
	Source   string
	Seq      int
	SentID   string
	Text     string
	Tokens   int
	Hash     string
	BuildID  string
	Sentence *conllu.Sentence
}

// Lookup returns every indexed sentence whose sent_id equals sentID.
func (ix *Index) Lookup(ctx context.Context, sentID string) ([]Entry, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT source, seq, sent_id, text, tokens, start_line, hash, body, build_id
		FROM sentences
		WHERE sent_id = ?
		ORDER BY source, seq
	`, sentID)
	if err != nil {
		return nil, errors.Wrap(err, "query sentences")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			startLine int
			body      string
		)
		if err := rows.Scan(&e.Source, &e.Seq, &e.SentID, &e.Text, &e.Tokens, &startLine, &e.Hash, &body, &e.BuildID); err != nil {
			return nil, errors.Wrap(err, "scan sentence")
		}
		doc, err := conllu.Parse(body)
		if err != nil {
			return nil, errors.NewParse("CoNLL-U", e.Source, err)
		}
		if len(doc.Sentences) != 1 {
			return nil, fmt.Errorf("stored body for %s#%d holds %d sentences", e.Source, e.Seq, len(doc.Sentences))
		}
		e.Sentence = doc.Sentences[0]
		e.Sentence.StartLine = startLine
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate sentences")
	}
	if len(entries) == 0 {
		return nil, errors.NewNotFound("sentence", sentID)
	}
	return entries, nil
}

// SourceStats describes one indexed source.
type SourceStats struct {
	Source      string
	Sentences   int
	Tokens      int
	Builds      int
	LastBuild   string
	LastBuildAt time.Time
}

// Stats returns per-source counts ordered by source.
func (ix *Index) Stats(ctx context.Context) ([]SourceStats, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT b.source,
		       COALESCE((SELECT COUNT(*) FROM sentences s WHERE s.source = b.source), 0),
		       COALESCE((SELECT SUM(tokens) FROM sentences s WHERE s.source = b.source), 0),
		       COUNT(*),
		       (SELECT id FROM builds l WHERE l.source = b.source ORDER BY l.created_at DESC, l.rowid DESC LIMIT 1),
		       MAX(b.created_at)
		FROM builds b
		GROUP BY b.source
		ORDER BY b.source
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query stats")
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var st SourceStats
		var at string
		if err := rows.Scan(&st.Source, &st.Sentences, &st.Tokens, &st.Builds, &st.LastBuild, &at); err != nil {
			return nil, errors.Wrap(err, "scan stats")
		}
		if t, err := time.Parse(timeFormat, at); err == nil {
			st.LastBuildAt = t
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate stats")
	}
	return stats, nil
}
