package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/mcncl/coercekit/internal/analyzer"
	"github.com/mcncl/coercekit/internal/config"
	"github.com/mcncl/coercekit/internal/corpus"
	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/formatter"
	"github.com/mcncl/coercekit/internal/generator"
	"github.com/mcncl/coercekit/internal/harness"
	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/parser"
	"github.com/mcncl/coercekit/internal/probe"
	"github.com/mcncl/coercekit/internal/report"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .coercekit.yml." type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	List     ListCmd     `cmd:"" help:"List the fixture categories and their sizes."`
	Show     ShowCmd     `cmd:"" help:"Show the fixtures of one category."`
	Run      RunCmd      `cmd:"" help:"Run fixtures through the decoder probes and report agreement."`
	Check    CheckCmd    `cmd:"" help:"Check the lenient decoder against every expected outcome."`
	Export   ExportCmd   `cmd:"" help:"Generate Go source declaring the fixtures."`
	Validate ValidateCmd `cmd:"" help:"Verify that valid fixtures parse and invalid ones do not."`
}

// Context holds the runtime context
type Context struct {
	Ctx    context.Context
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("coercekit"),
		kong.Description("Lenient JSON coercion fixtures and decoder conformance checks"),
		kong.UsageOnError(),
		kong.Vars{"version": "coercekit version " + Version},
	)

	kctx, err := app.Parse(os.Args[1:])
	app.FatalIfErrorf(err)

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	appCtx, err := newContext(signalCtx, CLI.Config, CLI.Debug, os.Stdout, os.Stderr)
	if err == nil {
		err = kctx.Run(appCtx)
	}
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// newContext loads the config file, searching upwards when configPath is
// empty, and sets up logging.
func newContext(ctx context.Context, configPath string, debug bool, stdout, stderr io.Writer) (*Context, error) {
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{Debug: debug})
	if err != nil {
		return nil, err
	}
	logger := newLogger(stderr, cfg.Dev.Debug)
	if configPath != "" {
		logger.Debug("configuration loaded", "path", configPath)
	}
	return &Context{
		Ctx:    ctx,
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: logger,
		Stdout: stdout,
		Stderr: stderr,
	}, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ListCmd prints every category with its case count
type ListCmd struct{}

// Run implements the list command
func (c *ListCmd) Run(ctx *Context) error {
	tw := tabwriter.NewWriter(ctx.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCASES")
	for _, t := range corpus.Categories() {
		cases, _ := corpus.Get(t)
		fmt.Fprintf(tw, "%s\t%d\n", t, len(cases))
	}
	if err := tw.Flush(); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// ShowCmd prints the cases of one category
type ShowCmd struct {
	Category string `arg:"" help:"Category to show, e.g. integer32, int or null-field."`
	Raw      bool   `help:"Print the path and raw input of each case." short:"r"`
}

// Run implements the show command
func (c *ShowCmd) Run(ctx *Context) error {
	cases, err := lookupCategory(c.Category)
	if err != nil {
		return err
	}
	for _, tc := range cases {
		fmt.Fprintf(ctx.Stdout, "%s\n    given:  %s\n    expect: %s\n", tc.Label, analyzer.Analyze(tc), describeOutcome(tc.Expect))
		if c.Raw {
			path := tc.Path
			if path == "" {
				path = "(document)"
			}
			fmt.Fprintf(ctx.Stdout, "    path:   %s\n    input:  %s\n", path, indent(tc.RawInput, "            "))
		}
	}
	return nil
}

func lookupCategory(name string) ([]models.TestCase, error) {
	if t, ok := models.ParseTargetType(name); ok {
		if cases, found := corpus.All().Lookup(t); found {
			return cases, nil
		}
	}
	return nil, errors.NewCategoryError(fmt.Sprintf("no such category %q", name), errors.ErrNoSuchCategory)
}

func describeOutcome(o models.Outcome) string {
	if o.Kind != models.OutcomeExact {
		return string(o.Kind)
	}
	return fmt.Sprintf("%s %#v", o.Kind, o.Value)
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// RunCmd runs the harness across probes
type RunCmd struct {
	Category []string `help:"Categories to run. Repeatable; defaults to all."`
	Probe    []string `help:"Probes to run (lenient, encoding/json, go-json, jsoniter). Repeatable; defaults to all."`
	Format   string   `help:"Report format: text, json or yaml." short:"f"`
	Output   string   `help:"Write the report to this file instead of stdout." short:"o" type:"path"`
}

// Run implements the run command
func (c *RunCmd) Run(ctx *Context) error {
	cfg, err := withOverrides(ctx.Config, config.Overrides{
		Categories: c.Category,
		Probes:     c.Probe,
		Format:     c.Format,
		Output:     c.Output,
	})
	if err != nil {
		return err
	}
	probers, err := probe.DefaultRegistry().Resolve(cfg.Probes)
	if err != nil {
		return err
	}
	_, err = runHarness(ctx, cfg, probers)
	return err
}

// CheckCmd verifies the lenient reference decoder
type CheckCmd struct {
	Category []string `help:"Categories to check. Repeatable; defaults to all."`
	Format   string   `help:"Report format: text, json or yaml." short:"f"`
	Output   string   `help:"Write the report to this file instead of stdout." short:"o" type:"path"`
}

// Run implements the check command
func (c *CheckCmd) Run(ctx *Context) error {
	cfg, err := withOverrides(ctx.Config, config.Overrides{
		Categories: c.Category,
		Format:     c.Format,
		Output:     c.Output,
	})
	if err != nil {
		return err
	}
	rep, err := runHarness(ctx, cfg, []probe.Prober{probe.Lenient{}})
	if err != nil {
		return err
	}
	if failures := rep.ReferenceFailures(); len(failures) > 0 {
		return errors.NewOracleError(fmt.Sprintf("%d case(s) deviate from their expected outcome", len(failures)), errors.ErrReferenceFailed)
	}
	return nil
}

// ExportCmd writes the fixtures as Go source
type ExportCmd struct {
	Category []string `help:"Categories to export. Repeatable; defaults to all."`
	Package  string   `help:"Package name for generated code." short:"p"`
	Output   string   `help:"Path to output Go file. If not specified, writes to stdout." short:"o" type:"path"`
}

// Run implements the export command
func (c *ExportCmd) Run(ctx *Context) error {
	cfg, err := withOverrides(ctx.Config, config.Overrides{Categories: c.Category, Package: c.Package})
	if err != nil {
		return err
	}
	selected, err := selectCorpus(cfg)
	if err != nil {
		return err
	}

	code, err := generator.NewGenerator().GenerateCorpus(selected, cfg.Export.Package)
	if err != nil {
		return err
	}
	code, err = formatter.NewFormatter().Format(code)
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = cfg.Export.Output
	}
	return writeOutput(ctx, []byte(code), output, "Generated Go fixtures")
}

// ValidateCmd checks every raw input against its expected parse result
type ValidateCmd struct {
	Files    []string `arg:"" optional:"" help:"JSON documents to parse instead of the fixtures." type:"path"`
	Category []string `help:"Categories to validate. Repeatable; defaults to all."`
}

// Run implements the validate command
func (c *ValidateCmd) Run(ctx *Context) error {
	if len(c.Files) > 0 {
		return c.validateFiles(ctx)
	}
	cfg, err := withOverrides(ctx.Config, config.Overrides{Categories: c.Category})
	if err != nil {
		return err
	}
	selected, err := selectCorpus(cfg)
	if err != nil {
		return err
	}

	validators := []struct {
		name  string
		valid func(string) bool
	}{
		{"parser", parser.Valid},
		{"encoding/json", func(s string) bool { return json.Valid([]byte(s)) }},
	}

	problems := 0
	for _, cat := range selected {
		for _, tc := range cat.Cases {
			wantValid := tc.Expect.Kind != models.OutcomeFailure
			for _, v := range validators {
				if v.valid(tc.RawInput) == wantValid {
					continue
				}
				problems++
				verdict := "does not parse"
				if !wantValid {
					verdict = "parses but should not"
				}
				fmt.Fprintf(ctx.Stdout, "%s: %s: %s with %s\n", cat.Target, tc.Label, verdict, v.name)
			}
		}
	}
	fmt.Fprintf(ctx.Stdout, "%d cases checked, %d problems\n", selected.Len(), problems)
	if problems > 0 {
		return errors.NewParsingError(fmt.Sprintf("%d fixture(s) do not match their expected validity", problems), errors.ErrInvalidJSON)
	}
	return nil
}

// validateFiles parses each document and prints the kind of its root value.
func (c *ValidateCmd) validateFiles(ctx *Context) error {
	var failed error
	for _, path := range c.Files {
		ir, err := parser.ParseFile(path)
		if err != nil {
			fmt.Fprintf(ctx.Stdout, "%s: %s\n", path, errors.UserFriendlyError(err))
			ctx.Logger.Debug("document rejected", "path", path, "error", err)
			if failed == nil {
				failed = err
			}
			continue
		}
		fmt.Fprintf(ctx.Stdout, "%s: ok (%s)\n", path, analyzer.Classify(ir.Root))
	}
	return failed
}

// withOverrides applies command flags to a copy of the loaded config.
func withOverrides(base *config.Config, o config.Overrides) (*config.Config, error) {
	cfg := *base
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// selectCorpus returns the configured categories minus skipped cases.
func selectCorpus(cfg *config.Config) (models.Corpus, error) {
	targets, err := cfg.Targets()
	if err != nil {
		return nil, err
	}
	selected := corpus.All()
	if len(targets) > 0 {
		selected = corpus.Select(targets)
	}
	if len(cfg.Skip) == 0 {
		return selected, nil
	}

	filtered := make(models.Corpus, 0, len(selected))
	for _, cat := range selected {
		kept := make([]models.TestCase, 0, len(cat.Cases))
		for _, tc := range cat.Cases {
			if !cfg.SkipCase(tc.Label) {
				kept = append(kept, tc)
			}
		}
		filtered = append(filtered, models.Category{Target: cat.Target, Cases: kept})
	}
	return filtered, nil
}

func runHarness(ctx *Context, cfg *config.Config, probers []probe.Prober) (*harness.Report, error) {
	selected, err := selectCorpus(cfg)
	if err != nil {
		return nil, err
	}
	ctx.Logger.Debug("running harness", "categories", len(selected), "cases", selected.Len(), "probes", len(probers))

	rep, err := harness.Run(ctx.Ctx, selected, probers, harness.Options{Logger: ctx.Logger})
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	if err := report.Render(&buf, rep, cfg.Format); err != nil {
		return nil, err
	}
	if err := writeOutput(ctx, []byte(buf.String()), cfg.Output, "Report"); err != nil {
		return nil, err
	}
	return rep, nil
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(ctx *Context, data []byte, path, what string) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(ctx.Stderr, "%s written to %s\n", what, path)
		return nil
	}
	if _, err := ctx.Stdout.Write(data); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
