package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const treebank = "# sent_id = a\n" +
	"# text = The dog barks\n" +
	"1\tThe\tthe\tDET\t_\t_\t2\tdet\t_\t_\n" +
	"2\tdog\tdog\tNOUN\t_\t_\t3\tnsubj\t_\t_\n" +
	"3\tbarks\tbark\tVERB\t_\t_\t0\troot\t_\t_\n" +
	"\n" +
	"# sent_id = b\n" +
	"# text = Hi\n" +
	"1\tHi\thi\tINTJ\t_\t_\t0\troot\t_\t_\n"

const sentenceB = "# sent_id = b\n# text = Hi\n1\tHi\thi\tINTJ\t_\t_\t0\troot\t_\t_\n"

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the command in-process with a quiet config file.
func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cfg := createTestFile(t, t.TempDir(), "conllu.yaml", "log:\n  level: error\n")
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--config", cfg}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVersion(t *testing.T) {
	r := runCLI(t, "", "version")
	if r.code != 0 || !strings.HasPrefix(r.stdout, "conllu version "+version+"\nsqlite driver: ") {
		t.Errorf("version = %d %q", r.code, r.stdout)
	}
}

func TestUnknownCommand(t *testing.T) {
	r := runCLI(t, "", "frobnicate")
	if r.code != 2 {
		t.Errorf("code = %d, want 2", r.code)
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	a := createTestFile(t, dir, "a.conllu", treebank)
	b := createTestFile(t, dir, "b.conllu", sentenceB)

	r := runCLI(t, "", "parse", a, b)
	if r.code != 0 {
		t.Fatalf("code = %d, stderr = %s", r.code, r.stderr)
	}
	want := a + ": 2 sentences, 4 tokens\n" + b + ": 1 sentences, 1 tokens\n"
	if r.stdout != want {
		t.Errorf("stdout = %q, want %q", r.stdout, want)
	}
}

func TestParseStdin(t *testing.T) {
	r := runCLI(t, treebank, "parse", "-")
	if r.stdout != "-: 2 sentences, 4 tokens\n" {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestStdinOnce(t *testing.T) {
	r := runCLI(t, treebank, "parse", "-", "-")
	if r.code != 1 || !strings.Contains(r.stderr, "stdin (-) given more than once") {
		t.Errorf("parse - -: code = %d, stderr = %q", r.code, r.stderr)
	}
	if r.stdout != "" {
		t.Errorf("stdout = %q", r.stdout)
	}
	if !strings.Contains(r.stderr, `msg="command failed" `) || !strings.Contains(r.stderr, "level=ERROR") {
		t.Errorf("failure not logged: %q", r.stderr)
	}

	r = runCLI(t, treebank, "field", "clear", "-", "--line", "3", "--field", "LEMMA", "--in-place")
	if r.code != 1 || !strings.Contains(r.stderr, "unsupported --in-place on stdin") {
		t.Errorf("in-place stdin: code = %d, stderr = %q", r.code, r.stderr)
	}
}

func TestParseMalformed(t *testing.T) {
	bad := treebank + "\n1\tbroken\n"
	path := createTestFile(t, t.TempDir(), "bad.conllu", bad)

	r := runCLI(t, "", "parse", path)
	if r.code != 1 || !strings.Contains(r.stderr, "failed to parse CoNLL-U") {
		t.Errorf("strict parse: code = %d, stderr = %q", r.code, r.stderr)
	}

	r = runCLI(t, "", "parse", "--lenient", path)
	if r.code != 0 || !strings.HasSuffix(r.stdout, ": 2 sentences, 4 tokens, 1 malformed lines skipped\n") {
		t.Errorf("lenient parse: code = %d, stdout = %q", r.code, r.stdout)
	}
}

func TestFmt(t *testing.T) {
	r := runCLI(t, "\n\n"+strings.Replace(treebank, "\n\n", "\n\n\n", 1), "fmt", "-")
	if r.code != 0 {
		t.Fatalf("code = %d, stderr = %s", r.code, r.stderr)
	}
	if r.stdout != treebank+"\n" {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := createTestFile(t, dir, "good.conllu", treebank)
	bad := createTestFile(t, dir, "bad.conllu",
		"# text = x\n1\ta\t_\t_\t_\t_\t0\troot\t_\t_\n2\tb\t_\t_\t_\t_\t9\tdep\t_\t_\n")

	r := runCLI(t, "", "validate", good)
	if r.code != 0 || r.stdout != "0 errors, 0 warnings in 1 files\n" {
		t.Errorf("good: code = %d, stdout = %q", r.code, r.stdout)
	}

	r = runCLI(t, "", "validate", good, bad)
	if r.code != 1 {
		t.Errorf("bad: code = %d, want 1", r.code)
	}
	if !strings.Contains(r.stdout, bad+":3: error L004 [dangling-head]") {
		t.Errorf("bad: stdout = %q", r.stdout)
	}

	r = runCLI(t, "", "validate", "--disable", "dangling-head", bad)
	if r.code != 0 {
		t.Errorf("disabled: code = %d, stdout = %q", r.code, r.stdout)
	}

	r = runCLI(t, "", "validate", "--format", "json", bad)
	var reports []struct {
		Path        string `json:"path"`
		Diagnostics []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &reports); err != nil {
		t.Fatalf("json output: %v\n%s", err, r.stdout)
	}
	if len(reports) != 1 || len(reports[0].Diagnostics) != 1 || reports[0].Diagnostics[0].Severity != "error" {
		t.Errorf("reports = %+v", reports)
	}
}

func TestAlign(t *testing.T) {
	r := runCLI(t, "# text = Hi\n1\tHi\thi\tINTJ\t_\t_\t0\troot\t_\t_\n", "align", "--gap", "1", "-")
	want := "# text = Hi\n1 Hi hi INTJ _ _ 0 root _ _\n"
	if r.stdout != want {
		t.Errorf("stdout = %q, want %q", r.stdout, want)
	}
}

func TestFieldGet(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "t.conllu", treebank)
	tests := []struct {
		line  string
		field string
		want  string
	}{
		{"4", "FORM", "dog\n"},
		{"4", "head", "3\n"},
		{"9", "8", "root\n"},
	}
	for _, tt := range tests {
		r := runCLI(t, "", "field", "get", path, "--line", tt.line, "--field", tt.field)
		if r.stdout != tt.want {
			t.Errorf("field get %s %s = %q, want %q (%s)", tt.line, tt.field, r.stdout, tt.want, r.stderr)
		}
	}

	if r := runCLI(t, "", "field", "get", path, "--line", "1", "--field", "FORM"); r.code != 1 {
		t.Errorf("comment line: code = %d", r.code)
	}
	if r := runCLI(t, "", "field", "get", path, "--line", "4", "--field", "11"); r.code != 1 {
		t.Errorf("field 11: code = %d", r.code)
	}
}

func TestFieldSetAndClear(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "t.conllu", treebank)
	out := filepath.Join(dir, "out.conllu")

	r := runCLI(t, "", "field", "set", path, "X", "--line", "4", "--field", "UPOS", "-o", out)
	if r.code != 0 {
		t.Fatalf("set: code = %d, stderr = %s", r.code, r.stderr)
	}
	got, _ := os.ReadFile(out)
	if !strings.Contains(string(got), "2\tdog\tdog\tX\t") {
		t.Errorf("set output = %q", got)
	}

	r = runCLI(t, "", "field", "set", path, "a\tb", "--line", "4", "--field", "UPOS")
	if r.code != 1 {
		t.Errorf("tab value: code = %d", r.code)
	}

	r = runCLI(t, "", "field", "clear", path, "--line", "3", "--field", "LEMMA", "--in-place")
	if r.code != 0 {
		t.Fatalf("clear: code = %d, stderr = %s", r.code, r.stderr)
	}
	got, _ = os.ReadFile(path)
	if !strings.Contains(string(got), "1\tThe\t_\tDET\t") {
		t.Errorf("cleared file = %q", got)
	}
}

func TestInsert(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "t.conllu", treebank)
	r := runCLI(t, "", "insert", path, "--line", "5", "--after")
	if r.code != 0 {
		t.Fatalf("code = %d, stderr = %s", r.code, r.stderr)
	}
	want := "3\tbarks\tbark\tVERB\t_\t_\t0\troot\t_\t_\n" +
		"_\t_\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"\n# sent_id = b\n"
	if !strings.Contains(r.stdout, want) {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestSentenceNavigation(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "t.conllu", treebank)

	r := runCLI(t, "", "sentence", "next", path, "--line", "3")
	if r.stdout != "7\n"+sentenceB {
		t.Errorf("next = %q", r.stdout)
	}
	r = runCLI(t, "", "sentence", "next", path)
	if !strings.HasPrefix(r.stdout, "1\n# sent_id = a\n") {
		t.Errorf("next from start = %q", r.stdout)
	}
	r = runCLI(t, "", "sentence", "prev", path, "--line", "8")
	if !strings.HasPrefix(r.stdout, "1\n# sent_id = a\n") {
		t.Errorf("prev = %q", r.stdout)
	}
	r = runCLI(t, "", "sentence", "next", path, "--line", "9")
	if r.code != 1 {
		t.Errorf("next at end: code = %d", r.code)
	}
}

func TestHead(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "t.conllu", treebank)

	r := runCLI(t, "", "head", path, "--line", "3")
	if r.stdout != "4\t2\tdog\tdog\tNOUN\t_\t_\t3\tnsubj\t_\t_\n" {
		t.Errorf("head = %q", r.stdout)
	}
	r = runCLI(t, "", "head", path, "--line", "5")
	if r.stdout != "root\n" {
		t.Errorf("head of root = %q", r.stdout)
	}
}

func TestCursorFields(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "t.conllu", treebank)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"at", path, "--line", "4", "--col", "5"}, "2\tFORM\tdog\n"},
		{[]string{"field", "next", path, "--line", "4", "--col", "1"}, "4:3\n"},
		{[]string{"field", "prev", path, "--line", "4", "--col", "3"}, "4:1\n"},
	}
	for _, tt := range tests {
		r := runCLI(t, "", tt.args...)
		if r.stdout != tt.want {
			t.Errorf("%v = %q, want %q (%s)", tt.args[:2], r.stdout, tt.want, r.stderr)
		}
	}

	if r := runCLI(t, "", "at", path, "--line", "1", "--col", "1"); r.code != 1 {
		t.Errorf("at on comment: code = %d", r.code)
	}
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "t.conllu", treebank)
	db := filepath.Join(dir, "index.db")

	r := runCLI(t, "", "index", "build", path, "--index", db)
	if r.code != 0 {
		t.Fatalf("build: code = %d, stderr = %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, ": 2 sentences, 2 changed, 0 removed") {
		t.Errorf("build stdout = %q", r.stdout)
	}

	r = runCLI(t, "", "index", "build", path, "--index", db)
	if !strings.Contains(r.stdout, ": 2 sentences, 0 changed, 0 removed") {
		t.Errorf("rebuild stdout = %q", r.stdout)
	}

	r = runCLI(t, "", "index", "lookup", "b", "--index", db)
	if !strings.Contains(r.stdout, ":7\n"+sentenceB) {
		t.Errorf("lookup stdout = %q", r.stdout)
	}

	r = runCLI(t, "", "index", "lookup", "zzz", "--index", db)
	if r.code != 1 {
		t.Errorf("missing lookup: code = %d", r.code)
	}

	r = runCLI(t, "", "index", "stats", "--format", "json", "--index", db)
	var stats []struct {
		Sentences int
		Tokens    int
		Builds    int
	}
	if err := json.Unmarshal([]byte(r.stdout), &stats); err != nil {
		t.Fatalf("stats json: %v\n%s", err, r.stdout)
	}
	if len(stats) != 1 || stats[0].Sentences != 2 || stats[0].Tokens != 4 || stats[0].Builds != 2 {
		t.Errorf("stats = %+v", stats)
	}

	r = runCLI(t, "", "index", "stats", "--index", db)
	if !strings.Contains(strings.ToUpper(r.stdout), "SENTENCES") {
		t.Errorf("stats table = %q", r.stdout)
	}

	createTestFile(t, dir, "t.conllu", "# note = moved\n"+treebank)
	r = runCLI(t, "", "index", "build", path, "--index", db)
	if !strings.Contains(r.stdout, ": 2 sentences, 1 changed, 0 removed") {
		t.Errorf("shifted rebuild stdout = %q", r.stdout)
	}
	r = runCLI(t, "", "index", "lookup", "b", "--index", db)
	if !strings.Contains(r.stdout, ":8\n"+sentenceB) {
		t.Errorf("lookup after shift stdout = %q", r.stdout)
	}

	missing := filepath.Join(dir, "missing.db")
	if r := runCLI(t, "", "index", "stats", "--index", missing); r.code != 1 {
		t.Errorf("stats on missing index: code = %d", r.code)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Errorf("stats created %s", missing)
	}
}
