// Package main is the flatstruct command: it generates Go implementations of
// annotated interfaces or YAML descriptors, checks descriptors, and prints the
// types they synthesize to.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"flatstruct/descriptor"
	"flatstruct/gen"
	"flatstruct/synth"
)

type CLI struct {
	Verbose bool `help:"Log debug output to stderr." short:"v"`

	Gen      GenCmd      `cmd:"" help:"Generate Go implementations of descriptors."`
	Check    CheckCmd    `cmd:"" help:"Lint descriptors without generating files."`
	Describe DescribeCmd `cmd:"" help:"Print synthesized type names, fields and methods."`
	Version  VersionCmd  `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintln(out, Version())
	return err
}

type GenCmd struct {
	Out        string   `help:"Output directory for generated files." required:"" short:"o" type:"path"`
	Package    string   `help:"Package name of the generated files." default:"flatstructs" short:"p"`
	ImportPath string   `help:"Import path of the output package." name:"import-path"`
	Flavor     string   `help:"Synthesizer: structure or value." default:"value" enum:"structure,value" short:"f"`
	Sources    []string `arg:"" help:"YAML descriptor files or Go package patterns."`
}

func (c *GenCmd) Run(logger *slog.Logger, out io.Writer) error {
	ds, err := loadSources(logger, c.Sources)
	if err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		PackageName: c.Package,
		ImportPath:  c.ImportPath,
		Flavor:      c.Flavor,
		DebugDir:    c.Out,
	})

	files, err := g.Generate(ds...)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, c.Out); err != nil {
		return err
	}

	for _, f := range files {
		logger.Debug("generated", slog.String("type", f.TypeName), slog.String("file", f.Filename))
	}

	_, err = fmt.Fprintf(out, "wrote %d files to %s\n", len(files), c.Out)

	return err
}

type CheckCmd struct {
	Sources []string `arg:"" help:"YAML descriptor files or Go package patterns."`
}

func (c *CheckCmd) Run(logger *slog.Logger, out io.Writer) error {
	ds, err := loadSources(logger, c.Sources)
	if err != nil {
		return err
	}

	failed := 0

	for _, d := range ds {
		diags := descriptor.Lint(d)
		for _, diag := range diags.All() {
			if _, err := fmt.Fprintf(out, "%s: %s\n", diag.Severity, diag); err != nil {
				return err
			}
		}

		if diags.HasErrors() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d descriptors have errors", failed, len(ds))
	}

	_, err = fmt.Fprintf(out, "%d descriptors ok\n", len(ds))

	return err
}

type DescribeCmd struct {
	Flavor  string   `help:"Synthesizer: structure or value." default:"value" enum:"structure,value" short:"f"`
	Sources []string `arg:"" help:"YAML descriptor files or Go package patterns."`
}

func (c *DescribeCmd) Run(logger *slog.Logger, out io.Writer) error {
	ds, err := loadSources(logger, c.Sources)
	if err != nil {
		return err
	}

	s, err := gen.Config{Flavor: c.Flavor}.Synthesizer()
	if err != nil {
		return err
	}

	f := synth.NewFactory(s, synth.WithLogger(logger))

	for _, d := range ds {
		t, err := f.GetImpl(d)
		if err != nil {
			return err
		}

		describe(out, t)
	}

	return nil
}

func describe(out io.Writer, t *synth.Type) {
	fmt.Fprintf(out, "%s (%s)\n", t.Name(), t.Descriptor().QualifiedName())
	fmt.Fprintln(out, "  fields:")

	for _, f := range t.Fields() {
		volatile := ""
		if f.Volatile {
			volatile = " volatile"
		}

		fmt.Fprintf(out, "    %d %s %s%s\n", f.Index, f.Name, f.Kind.Name(), volatile)
	}

	fmt.Fprintln(out, "  methods:")

	for _, m := range t.Methods() {
		fmt.Fprintf(out, "    %s\n", m)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("flatstruct"),
		kong.Description("Synthesize data-holding implementations of field and accessor descriptors."),
		kong.UsageOnError(),
	)

	ctx.BindTo(os.Stdout, (*io.Writer)(nil))

	err := ctx.Run(newLogger(os.Stderr, cli.Verbose))
	ctx.FatalIfErrorf(err)
}
