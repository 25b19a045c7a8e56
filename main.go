package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ifcstep/ifcstep/internal/config"
	"github.com/ifcstep/ifcstep/internal/ctxlog"
	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/export"
	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/ifc"
	"github.com/ifcstep/ifcstep/internal/loader"
	"github.com/ifcstep/ifcstep/internal/step"
	"github.com/ifcstep/ifcstep/internal/target"
	"github.com/ifcstep/ifcstep/internal/watch"
)

type opts struct {
	Config      string
	Output      string
	JSONOut     string
	PBOut       string
	ExampleOut  string
	NoVerify    bool
	DumpTokens  bool
	Watch       bool
	LogLevel    string
	LogFormat   string
	Concurrency int
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func newLogger(level slog.Level, format string, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	op := &opts{}
	flags := pflag.NewFlagSet("ifcstep", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&op.Config, "config", "", "YAML file with default settings.")
	flags.StringVar(&op.Output, "output", "", "Directory to write re-serialized files to, or - for STDOUT.")
	flags.StringVar(&op.JSONOut, "json-out", "", "Directory to write a JSON export of each file to.")
	flags.StringVar(&op.PBOut, "pb-out", "", "Directory to write a binary protobuf Struct export of each file to.")
	flags.StringVar(&op.ExampleOut, "example-out", "", "Writes a small generated model to FILE, or - for STDOUT.")
	flags.BoolVar(&op.NoVerify, "no-verify", false, "Skip reference type verification.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream of each file to STDERR.")
	flags.BoolVar(&op.Watch, "watch", false, "Parse again whenever an input file changes.")
	flags.StringVar(&op.LogLevel, "log-level", "", "One of debug, info, warn, error.")
	flags.StringVar(&op.LogFormat, "log-format", "", "One of text, json.")
	flags.IntVar(&op.Concurrency, "concurrency", 0, "Maximum number of files parsed at once.")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	targets := flags.Args()

	cfg := config.DefaultConfig()
	if op.Config != "" {
		loaded, err := config.LoadFromFile(op.Config)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 2
		}
		cfg = loaded
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = op.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = op.LogFormat
	}
	if flags.Changed("concurrency") {
		cfg.Parse.Concurrency = op.Concurrency
	}
	if op.NoVerify {
		cfg.Parse.Verify = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	logger := newLogger(cfg.SlogLevel(), cfg.Log.Format, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	if op.ExampleOut != "" {
		if err := writeExample(ctx, cfg, op.ExampleOut, stdout); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
	}
	if len(targets) == 0 {
		if op.ExampleOut != "" {
			return 0
		}
		fmt.Fprintln(stderr, "usage: ifcstep [flags] FILE|DIR|- ...")
		flags.PrintDefaults()
		return 2
	}

	l, err := loader.New(
		loader.OptionWithRegistry(ifc.Registry()),
		loader.OptionWithMaxConcurrency(cfg.Parse.Concurrency),
		loader.OptionWithTokenWriter(stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	p := &processor{op: op, cfg: cfg, loader: l, stdout: stdout}

	failed := report(stderr, p.process(ctx, targets))
	if !op.Watch {
		if failed {
			return 1
		}
		return 0
	}
	for _, t := range targets {
		if t == target.Stdin {
			fmt.Fprintln(stderr, "cannot watch standard input")
			return 2
		}
	}
	logger.Info("watching for changes", "targets", targets)
	err = watch.Watch(ctx, targets, func(ctx context.Context, path string) error {
		if report(stderr, p.process(ctx, []string{path})) {
			return errors.New("parse failed")
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}

// report prints every exception in err and tells whether there were any.
func report(w io.Writer, err error) bool {
	if err == nil {
		return false
	}
	for _, e := range exc.Flatten(exc.Location{}, err) {
		fmt.Fprintln(w, e.Error())
	}
	return true
}

type processor struct {
	op     *opts
	cfg    *config.Config
	loader *loader.Loader
	stdout io.Writer
}

func (p *processor) process(ctx context.Context, targets []string) error {
	logger := ctxlog.FromContext(ctx)
	resp, err := p.loader.Load(ctx, &loader.Request{
		Files:      targets,
		SkipVerify: !p.cfg.Parse.Verify,
		DumpTokens: p.op.DumpTokens,
	})
	if resp == nil {
		return err
	}
	var writeErrs exc.MultiException
	for _, result := range resp.Results {
		if result.Err != nil {
			continue
		}
		logger.Info("parsed", "uri", result.URI, "records", result.Model.Data.Len())
		if werr := p.write(ctx, result.URI, result.Model); werr != nil {
			writeErrs = append(writeErrs, exc.Flatten(exc.Location{URI: result.URI}, werr)...)
		}
	}
	if err == nil && len(writeErrs) == 0 {
		return nil
	}
	caught := exc.Flatten(exc.Location{}, err)
	return exc.MultiException(append(caught, writeErrs...))
}

func outputName(uri string, ext string) string {
	base := filepath.Base(uri)
	if uri == target.Stdin {
		base = "stdin.ifc"
	}
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func writeTo(ctx context.Context, dir string, name string, content string) error {
	out, err := fs.NewFileSystemLocal(dir)
	if err != nil {
		return err
	}
	return out.Write(ctx, name, content)
}

func (p *processor) write(ctx context.Context, uri string, model *step.Model) error {
	if p.op.Output == target.Stdin {
		if _, err := model.WriteTo(p.stdout); err != nil {
			return err
		}
	} else if p.op.Output != "" {
		if err := writeTo(ctx, p.op.Output, outputName(uri, ""), model.String()); err != nil {
			return err
		}
	}
	if p.op.JSONOut != "" {
		b, err := export.MarshalJSON(ctx, model)
		if err != nil {
			return err
		}
		if err := writeTo(ctx, p.op.JSONOut, outputName(uri, ".json"), string(b)); err != nil {
			return err
		}
	}
	if p.op.PBOut != "" {
		b, err := export.MarshalBinary(ctx, model)
		if err != nil {
			return err
		}
		if err := writeTo(ctx, p.op.PBOut, outputName(uri, ".pb"), string(b)); err != nil {
			return err
		}
	}
	return nil
}

func writeExample(ctx context.Context, cfg *config.Config, path string, stdout io.Writer) error {
	name := "example.ifc"
	if path != target.Stdin {
		name = filepath.Base(path)
	}
	b := ifc.NewBuilder(append(cfg.BuilderOptions(), ifc.WithFileName(name))...)
	b.Project("Example")
	b.Site("Site")
	b.Building("Building")
	b.Storey("Ground Floor", 0)
	wall := b.Wall("Wall", ifc.Vec3{})
	b.Opening(wall.ID(), "Opening", ifc.Vec3{1, 0, 1})
	b.Window("Window", ifc.Vec3{1, 0, 1}, 1.2, 0.9)
	b.Slab("Floor", ifc.Vec3{})
	model := b.Build()
	if err := model.Verify(ctx, name); err != nil {
		return err
	}
	if path == target.Stdin {
		_, err := model.WriteTo(stdout)
		return err
	}
	return writeTo(ctx, filepath.Dir(path), filepath.Base(path), model.String())
}
