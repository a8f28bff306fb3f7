// Package cli dispatches command-line invocations of the sheet generator.
package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ebina4yaka/coc-cli-tool/internal/config"
	"github.com/ebina4yaka/coc-cli-tool/internal/game/character"
	"github.com/ebina4yaka/coc-cli-tool/internal/game/dice"
	"github.com/ebina4yaka/coc-cli-tool/internal/game/ruleset"
	"github.com/ebina4yaka/coc-cli-tool/internal/observability"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitError          = 1
	ExitUsage          = 2
	ExitNotImplemented = 3
)

const usage = `usage: coc <command> [flags]

commands:
  char    create a character sheet
  help    show this message
`

// App runs the command line against injected output streams.
type App struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Registry *ruleset.Registry
	// Source overrides the entropy source; nil uses crypto/rand.
	Source dice.Source
}

// New returns an App writing sheets to stdout and diagnostics to stderr.
//
// Precondition: stdout and stderr must be non-nil.
func New(stdout, stderr io.Writer) *App {
	return &App{
		Stdout:   stdout,
		Stderr:   stderr,
		Registry: ruleset.DefaultRegistry(),
	}
}

// Run executes args (without the program name) and returns the process exit code.
// Nothing is written to Stdout unless the whole sheet was built successfully.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.Stderr, usage)
		return ExitUsage
	}
	switch args[0] {
	case "char":
		return a.runChar(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.Stdout, usage)
		return ExitOK
	default:
		fmt.Fprintf(a.Stderr, "coc: unknown command %q\n\n%s", args[0], usage)
		return ExitUsage
	}
}

type charOptions struct {
	configPath string
	rule       string
	table      string
	format     string
	seed       int64
	concurrent bool
	set        map[string]bool
}

func (a *App) parseChar(args []string) (charOptions, error) {
	var opts charOptions
	fs := flag.NewFlagSet("char", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to configuration file")
	fs.StringVar(&opts.rule, "rule", "", "rules edition: "+strings.Join(a.Registry.IDs(), ", "))
	fs.StringVar(&opts.rule, "r", "", "shorthand for -rule")
	fs.StringVar(&opts.table, "table", "", "path to a YAML attribute table overriding the edition's")
	fs.StringVar(&opts.format, "format", "", "output format: text or yaml")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for reproducible rolls")
	fs.BoolVar(&opts.concurrent, "concurrent", false, "roll attributes in parallel")
	if err := fs.Parse(args); err != nil {
		return charOptions{}, err
	}
	if fs.NArg() > 0 {
		return charOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	if opts.set["r"] {
		opts.set["rule"] = true
	}
	if opts.set["format"] && opts.format != "text" && opts.format != "yaml" {
		return charOptions{}, fmt.Errorf("invalid -format %q: must be text or yaml", opts.format)
	}
	return opts, nil
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(opts charOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.set["rule"] {
		cfg.Sheet.Edition = opts.rule
	}
	if opts.set["table"] {
		cfg.Sheet.Table = opts.table
	}
	if opts.set["format"] {
		cfg.Sheet.Format = opts.format
	}
	if opts.set["concurrent"] {
		cfg.Sheet.Concurrent = opts.concurrent
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (a *App) runChar(ctx context.Context, args []string) int {
	start := time.Now()

	opts, err := a.parseChar(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintf(a.Stderr, "coc char: %v\n", err)
		return ExitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(a.Stderr, "coc char: loading config: %v\n", err)
		return ExitError
	}

	logger, err := observability.NewLogger(cfg.Logging, a.Stderr)
	if err != nil {
		fmt.Fprintf(a.Stderr, "coc char: initializing logger: %v\n", err)
		return ExitError
	}
	defer func() { _ = logger.Sync() }()

	ed, err := a.Registry.Lookup(cfg.Sheet.Edition)
	if err != nil {
		fmt.Fprintf(a.Stderr, "coc char: %v\n", err)
		logger.Debug("edition rejected", zap.String("edition", cfg.Sheet.Edition), zap.Error(err))
		if errors.Is(err, ruleset.ErrUnsupportedEdition) {
			return ExitNotImplemented
		}
		return ExitUsage
	}

	if cfg.Sheet.Table != "" {
		table, err := ruleset.LoadTable(cfg.Sheet.Table)
		if err == nil {
			ed, err = ed.WithTable(table)
		}
		if err != nil {
			fmt.Fprintf(a.Stderr, "coc char: %v\n", err)
			return ExitError
		}
		logger.Info("attribute table loaded", zap.String("path", cfg.Sheet.Table))
	}

	src := a.Source
	switch {
	case opts.set["seed"]:
		src = dice.NewSeededSource(opts.seed)
	case src == nil:
		src = dice.NewCryptoSource()
	}

	builder, err := character.NewBuilder(ed.ID, ed.Table, dice.NewLoggedRoller(src, logger))
	if err != nil {
		fmt.Fprintf(a.Stderr, "coc char: %v\n", err)
		return ExitError
	}

	var sheet *character.Sheet
	if cfg.Sheet.Concurrent {
		sheet, err = builder.BuildConcurrent(ctx)
		if err != nil {
			fmt.Fprintf(a.Stderr, "coc char: %v\n", err)
			return ExitError
		}
	} else {
		sheet = builder.Build()
	}

	out, err := format(ed, sheet, cfg.Sheet.Format)
	if err != nil {
		fmt.Fprintf(a.Stderr, "coc char: %v\n", err)
		return ExitError
	}
	if _, err := a.Stdout.Write(out); err != nil {
		fmt.Fprintf(a.Stderr, "coc char: writing sheet: %v\n", err)
		return ExitError
	}

	logger.Info("sheet generated",
		zap.String("sheet_id", sheet.ID.String()),
		zap.String("edition", ed.ID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ExitOK
}

func format(ed *ruleset.Edition, sheet *character.Sheet, kind string) ([]byte, error) {
	switch kind {
	case "text":
		var buf bytes.Buffer
		buf.WriteString(ed.Header())
		buf.WriteByte('\n')
		for _, line := range character.RenderSheet(sheet) {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	case "yaml":
		return character.MarshalYAML(sheet)
	default:
		return nil, fmt.Errorf("unknown output format %q", kind)
	}
}
