package index

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/FocuswithJustin/conllu/core/conllu"
	apperrors "github.com/FocuswithJustin/conllu/core/errors"
)

const treebank = "# sent_id = s1\n" +
	"# text = Hi.\n" +
	"1\tHi\thi\tINTJ\t_\t_\t0\troot\t_\tSpaceAfter=No\n" +
	"2\t.\t.\tPUNCT\t_\t_\t1\tpunct\t_\t_\n" +
	"\n" +
	"# sent_id = s2\n" +
	"# text = Go.\n" +
	"1\tGo\tgo\tVERB\t_\t_\t0\troot\t_\tSpaceAfter=No\n" +
	"2\t.\t.\tPUNCT\t_\t_\t1\tpunct\t_\t_\n"

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(context.Background(), filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func parseDoc(t *testing.T, text string) *conllu.Document {
	t.Helper()
	doc, err := conllu.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestBuildCountsChanges(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)
	doc := parseDoc(t, treebank)

	first, err := ix.Build(ctx, "a.conllu", doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first.ID == "" {
		t.Error("Build() returned empty ID")
	}
	if first.Sentences != 2 || first.Changed != 2 || first.Removed != 0 {
		t.Errorf("first build = %+v, want 2 sentences, 2 changed", first)
	}

	again, err := ix.Build(ctx, "a.conllu", doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if again.Changed != 0 || again.Removed != 0 {
		t.Errorf("unchanged rebuild = %+v, want no changes", again)
	}
	if again.ID == first.ID {
		t.Error("builds share an ID")
	}

	tok, err := conllu.SetField(doc.Sentences[1].Lines[2].Token, conllu.LEMMA, "GO")
	if err != nil {
		t.Fatal(err)
	}
	edited, err := doc.Sentences[1].WithToken(2, tok)
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := doc.WithSentence(1, edited)
	if err != nil {
		t.Fatal(err)
	}
	third, err := ix.Build(ctx, "a.conllu", doc2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if third.Changed != 1 {
		t.Errorf("edited rebuild Changed = %d, want 1", third.Changed)
	}

	short := &conllu.Document{Sentences: doc2.Sentences[:1]}
	fourth, err := ix.Build(ctx, "a.conllu", short)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if fourth.Changed != 0 || fourth.Removed != 1 {
		t.Errorf("shrunk rebuild = %+v, want 1 removed", fourth)
	}
	if _, err := ix.Lookup(ctx, "s2"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Lookup(s2) after removal error = %v, want ErrNotFound", err)
	}
}

func TestBuildTracksShiftedLines(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)

	if _, err := ix.Build(ctx, "a.conllu", parseDoc(t, treebank)); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// s1 gains a line, which pushes s2 down without changing it.
	doc := parseDoc(t, strings.Replace(treebank, "# text = Hi.\n", "# text = Hi.\n# extra = x\n", 1))
	res, err := ix.Build(ctx, "a.conllu", doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if res.Changed != 1 || res.Moved != 1 {
		t.Errorf("rebuild = %+v, want 1 changed, 1 moved", res)
	}

	entries, err := ix.Lookup(ctx, "s2")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got, want := entries[0].Sentence.StartLine, doc.Sentences[1].StartLine; got != want {
		t.Errorf("StartLine = %d, want %d", got, want)
	}
}

func TestOpenReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")

	var ioErr *apperrors.IOError
	if _, err := OpenReadOnly(ctx, path); !errors.As(err, &ioErr) {
		t.Errorf("OpenReadOnly(missing) error = %v, want IOError", err)
	}

	ix, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := ix.Build(ctx, "a.conllu", parseDoc(t, treebank)); err != nil {
		t.Fatal(err)
	}
	ix.Close()

	ro, err := OpenReadOnly(ctx, path)
	if err != nil {
		t.Fatalf("OpenReadOnly() error = %v", err)
	}
	defer ro.Close()
	if _, err := ro.Lookup(ctx, "s1"); err != nil {
		t.Errorf("Lookup() error = %v", err)
	}
	if _, err := ro.Build(ctx, "a.conllu", parseDoc(t, treebank)); err == nil {
		t.Error("Build() on read-only index succeeded")
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)
	doc := parseDoc(t, treebank)

	if _, err := ix.Build(ctx, "b.conllu", doc); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := ix.Build(ctx, "a.conllu", doc); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	entries, err := ix.Lookup(ctx, "s2")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(Lookup()) = %d, want 2", len(entries))
	}
	if entries[0].Source != "a.conllu" || entries[1].Source != "b.conllu" {
		t.Errorf("sources = %s, %s; want sorted", entries[0].Source, entries[1].Source)
	}

	e := entries[0]
	if e.Seq != 1 || e.Text != "Go." || e.Tokens != 2 {
		t.Errorf("entry = %+v", e)
	}
	if e.Hash != doc.Sentences[1].Fingerprint() {
		t.Error("stored hash differs from fingerprint")
	}
	if e.Sentence.StartLine != doc.Sentences[1].StartLine {
		t.Errorf("StartLine = %d, want %d", e.Sentence.StartLine, doc.Sentences[1].StartLine)
	}
	if e.Sentence.String() != doc.Sentences[1].String() {
		t.Errorf("Sentence = %q, want %q", e.Sentence.String(), doc.Sentences[1].String())
	}

	_, err = ix.Lookup(ctx, "missing")
	var nf *apperrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Lookup(missing) error = %v, want NotFoundError", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)

	stats, err := ix.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("empty index stats = %+v", stats)
	}

	doc := parseDoc(t, treebank)
	if _, err := ix.Build(ctx, "a.conllu", doc); err != nil {
		t.Fatal(err)
	}
	last, err := ix.Build(ctx, "a.conllu", doc)
	if err != nil {
		t.Fatal(err)
	}

	stats, err = ix.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("len(Stats()) = %d, want 1", len(stats))
	}
	st := stats[0]
	if st.Source != "a.conllu" || st.Sentences != 2 || st.Tokens != 4 || st.Builds != 2 {
		t.Errorf("Stats() = %+v", st)
	}
	if st.LastBuild != last.ID {
		t.Errorf("LastBuild = %s, want %s", st.LastBuild, last.ID)
	}
	if st.LastBuildAt.IsZero() {
		t.Error("LastBuildAt is zero")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")

	ix, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := ix.Build(ctx, "a.conllu", parseDoc(t, treebank)); err != nil {
		t.Fatal(err)
	}
	ix.Close()

	ix, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer ix.Close()

	v, err := ix.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if v != 1 {
		t.Errorf("SchemaVersion() = %d, want 1", v)
	}
	if _, err := ix.Lookup(ctx, "s1"); err != nil {
		t.Errorf("Lookup() after reopen error = %v", err)
	}
	if ix.Path() != path {
		t.Errorf("Path() = %q", ix.Path())
	}
}

func TestBuildRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seq, hash, start_line FROM sentences").
		WithArgs("a.conllu").
		WillReturnRows(sqlmock.NewRows([]string{"seq", "hash", "start_line"}))
	mock.ExpectExec("INSERT INTO builds").WillReturnError(boom)
	mock.ExpectRollback()

	ix := &Index{db: db}
	_, err = ix.Build(context.Background(), "a.conllu", parseDoc(t, treebank))
	if !errors.Is(err, boom) {
		t.Errorf("Build() error = %v, want %v", err, boom)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStatsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	boom := errors.New("locked")
	mock.ExpectQuery("SELECT b.source").WillReturnError(boom)

	ix := &Index{db: db}
	if _, err := ix.Stats(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Stats() error = %v, want %v", err, boom)
	}
}
