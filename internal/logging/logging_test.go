package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// captureLogOutput points the logger at a buffer for the duration of f.
func captureLogOutput(t *testing.T, level Level, format Format, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	InitLogger(level, format)
	t.Cleanup(func() {
		SetOutput(nil)
		InitLogger(LevelInfo, FormatJSON)
	})
	f()
	return buf.String()
}

func decode(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return m
}

func TestInitLogger(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		level     Level
		format    Format
		logFunc   func()
		wantEmpty bool
		contains  string
	}{
		{
			name:     "json info",
			level:    LevelInfo,
			format:   FormatJSON,
			logFunc:  func() { InfoContext(ctx, "hello", "k", "v") },
			contains: `"msg":"hello"`,
		},
		{
			name:     "text info",
			level:    LevelInfo,
			format:   FormatText,
			logFunc:  func() { InfoContext(ctx, "hello", "k", "v") },
			contains: "msg=hello",
		},
		{
			name:      "debug filtered at info",
			level:     LevelInfo,
			format:    FormatJSON,
			logFunc:   func() { DebugContext(ctx, "hidden") },
			wantEmpty: true,
		},
		{
			name:      "warn filtered at error",
			level:     LevelError,
			format:    FormatJSON,
			logFunc:   func() { WarnContext(ctx, "hidden") },
			wantEmpty: true,
		},
		{
			name:     "debug shown at debug",
			level:    LevelDebug,
			format:   FormatJSON,
			logFunc:  func() { DebugContext(ctx, "shown") },
			contains: `"level":"DEBUG"`,
		},
		{
			name:     "error shown at warn",
			level:    LevelWarn,
			format:   FormatJSON,
			logFunc:  func() { ErrorContext(ctx, "boom") },
			contains: `"level":"ERROR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLogOutput(t, tt.level, tt.format, tt.logFunc)
			if tt.wantEmpty {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output %q does not contain %q", out, tt.contains)
			}
		})
	}
}

func TestTimestampFormat(t *testing.T) {
	out := captureLogOutput(t, LevelInfo, FormatJSON, func() { InfoContext(context.Background(), "tick") })
	m := decode(t, strings.TrimSpace(out))
	ts, ok := m["time"].(string)
	if !ok {
		t.Fatalf("time missing from %v", m)
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time %q is not RFC3339: %v", ts, err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error")
	}
}

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if got := GetRunID(ctx); got != "" {
		t.Errorf("GetRunID(empty) = %q", got)
	}
	ctx = WithRunID(ctx, "run-1")
	if got := GetRunID(ctx); got != "run-1" {
		t.Errorf("GetRunID() = %q, want run-1", got)
	}

	out := captureLogOutput(t, LevelDebug, FormatJSON, func() {
		InfoContext(ctx, "with id")
		DebugContext(context.Background(), "without id")
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if m := decode(t, lines[0]); m["run_id"] != "run-1" {
		t.Errorf("run_id = %v, want run-1", m["run_id"])
	}
	if m := decode(t, lines[1]); m["run_id"] != nil {
		t.Errorf("unexpected run_id %v", m["run_id"])
	}
}

func TestDomainHelpers(t *testing.T) {
	ctx := WithRunID(context.Background(), "r")

	tests := []struct {
		name    string
		logFunc func()
		msg     string
		key     string
		want    any
	}{
		{
			name:    "document loaded",
			logFunc: func() { DocumentLoaded(ctx, "a.conllu", 3, 12, 5*time.Millisecond) },
			msg:     "document_loaded",
			key:     "sentences",
			want:    float64(3),
		},
		{
			name:    "diagnostic found",
			logFunc: func() { DiagnosticFound(ctx, "a.conllu", "L004", 7, "dangling") },
			msg:     "diagnostic_found",
			key:     "rule",
			want:    "L004",
		},
		{
			name:    "index event",
			logFunc: func() { IndexEvent(ctx, "build", "idx.db", "changed", 2) },
			msg:     "index_event",
			key:     "changed",
			want:    float64(2),
		},
		{
			name:    "plugin error",
			logFunc: func() { PluginError("ingest", errors.New("bad input")) },
			msg:     "plugin_error",
			key:     "error",
			want:    "bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLogOutput(t, LevelDebug, FormatJSON, tt.logFunc)
			m := decode(t, strings.TrimSpace(out))
			if m["msg"] != tt.msg {
				t.Errorf("msg = %v, want %s", m["msg"], tt.msg)
			}
			if m[tt.key] != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, m[tt.key], tt.want)
			}
		})
	}
}
