package main

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/conllu/core/conllu"
	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/core/lint"
	"github.com/FocuswithJustin/conllu/internal/fileutil"
	"github.com/FocuswithJustin/conllu/plugins/ipc"
)

func handleDetect(args map[string]interface{}) (interface{}, error) {
	return ipc.Detect(args, formatName, extensions, probe)
}

// probe accepts content whose first non-comment line is a token line.
func probe(head []byte) bool {
	for _, line := range strings.Split(string(head), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l, err := conllu.ParseLine(line, 1)
		if err != nil || !l.IsToken() {
			return false
		}
		_, err = conllu.ParseID(l.Token[conllu.ID-1])
		return err == nil
	}
	return false
}

func handleIngest(args map[string]interface{}) (interface{}, error) {
	return ipc.Ingest(args, formatName, func(path string, data []byte) map[string]string {
		text, err := fileutil.Decompress(data)
		if err != nil {
			return nil
		}
		doc, _ := conllu.ParseLenient(string(text))
		if doc == nil {
			return map[string]string{"sentences": "0", "tokens": "0"}
		}
		return map[string]string{
			"sentences": strconv.Itoa(len(doc.Sentences)),
			"tokens":    strconv.Itoa(doc.TokenCount()),
		}
	})
}

func handleEnumerate(args map[string]interface{}) (interface{}, error) {
	return ipc.EnumerateSingleFile(args, formatName)
}

func handleLint(args map[string]interface{}) (interface{}, error) {
	path, err := ipc.StringArg(args, "path")
	if err != nil {
		return nil, err
	}
	data, err := fileutil.ReadInput(path, nil)
	if err != nil {
		return nil, err
	}

	opts := lint.DefaultOptions()
	for _, key := range strings.Split(ipc.StringArgOr(args, "disable", ""), ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		rule, ok := lint.LookupRule(key)
		if !ok {
			return nil, errors.NewNotFound("lint rule", key)
		}
		opts.Disabled[rule.ID] = true
	}

	report := lint.Lint(string(data), opts)
	result := &ipc.LintResult{
		Valid:     !report.HasErrors(),
		Errors:    report.Errors(),
		Warnings:  report.Warnings(),
		Sentences: report.Sentences,
		Tokens:    report.Tokens,
	}
	for _, d := range report.Diagnostics {
		result.Diagnostics = append(result.Diagnostics, ipc.LintFinding{
			Rule:     d.Rule,
			Name:     d.Name,
			Severity: d.Severity.String(),
			Line:     d.Line,
			Field:    d.Field,
			Message:  d.Message,
		})
	}
	return result, nil
}
