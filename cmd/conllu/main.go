// Command conllu reads, checks and edits CoNLL-U treebank files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/conllu/core/sqlite"
	"github.com/FocuswithJustin/conllu/internal/config"
	"github.com/FocuswithJustin/conllu/internal/logging"
)

const version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Config file (default: conllu.yaml searched upward from the working directory)" type:"path"`
	LogLevel  string `name:"log-level" help:"Override log.level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Override log.format (text, json)"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Parse    ParseCmd      `cmd:"" help:"Parse files and report sentence and token counts"`
	Fmt      FmtCmd        `cmd:"" help:"Rewrite a file in canonical form"`
	Validate ValidateCmd   `cmd:"" help:"Check files against the lint rules"`
	Align    AlignCmd      `cmd:"" help:"Print a file with columns padded to equal width"`
	Field    FieldGroup    `cmd:"" help:"Read, edit and move between token fields"`
	Insert   InsertCmd     `cmd:"" help:"Insert empty token lines"`
	Sentence SentenceGroup `cmd:"" help:"Move between sentences"`
	Head     HeadCmd       `cmd:"" help:"Show the head of a token"`
	At       AtCmd         `cmd:"" help:"Show the field under a cursor position"`
	Index    IndexGroup    `cmd:"" help:"Sentence index operations"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// FieldGroup contains field operations.
type FieldGroup struct {
	Get   FieldGetCmd   `cmd:"" help:"Print one field of a token line"`
	Set   FieldSetCmd   `cmd:"" help:"Replace one field of a token line"`
	Clear FieldClearCmd `cmd:"" help:"Reset one field of a token line to _"`
	Next  FieldNextCmd  `cmd:"" help:"Print the position of the next field"`
	Prev  FieldPrevCmd  `cmd:"" help:"Print the position of the previous field"`
}

// SentenceGroup contains sentence navigation.
type SentenceGroup struct {
	Next SentenceNextCmd `cmd:"" help:"Print the sentence after a line"`
	Prev SentencePrevCmd `cmd:"" help:"Print the sentence before a line"`
}

// IndexGroup contains sentence index operations.
type IndexGroup struct {
	Build  IndexBuildCmd  `cmd:"" help:"Index the sentences of one or more files"`
	Lookup IndexLookupCmd `cmd:"" help:"Print indexed sentences by sent_id"`
	Stats  IndexStatsCmd  `cmd:"" help:"Summarize the index"`
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(env.Stdout, "conllu version %s\n", version)
	fmt.Fprintf(env.Stdout, "sqlite driver: %s (%s)\n", info.Package, info.DriverType)
	return nil
}

// exitCode ends a command with a status and no further message.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// run parses args and runs the selected command. It returns the process
// exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exited := -1
	parser, err := kong.New(&cli,
		kong.Name("conllu"),
		kong.Description("CoNLL-U treebank tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exited = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "conllu: %v\n", err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if exited >= 0 {
		return exited
	}
	if err != nil {
		fmt.Fprintf(stderr, "conllu: error: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(cli.Globals)
	if err != nil {
		fmt.Fprintf(stderr, "conllu: %v\n", err)
		return 2
	}
	logging.SetOutput(stderr)
	cfg.ApplyLogging()

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	env := &Env{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
	}

	if err := kctx.Run(env); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			return int(code)
		}
		logging.ErrorContext(ctx, "command failed", "command", kctx.Command(), "error", err.Error())
		return 1
	}
	return 0
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig(g Globals) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{File: g.Config})
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
