package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"dto-generator/internal/analyze"
	"dto-generator/internal/config"
	"dto-generator/internal/diagnostic"
	"dto-generator/internal/gen"
	"dto-generator/internal/plan"
)

// CLI is the root command structure parsed by kong.
type CLI struct {
	Config  string `help:"Path to the dtogen config file." type:"path" placeholder:"dtogen.yaml"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Gen   GenCmd   `cmd:"" help:"Generate converter functions for annotated structs."`
	Check CheckCmd `cmd:"" help:"Validate mappings without writing files."`
}

// Context carries the shared dependencies of all subcommands.
type Context struct {
	Logger *slog.Logger
	Config *config.File
	Stdout io.Writer
	Stderr io.Writer
}

// GenCmd runs the full pipeline and writes generated files.
type GenCmd struct {
	Packages []string `arg:"" optional:"" help:"Package patterns to analyze (overrides config)."`
}

// CheckCmd runs the full pipeline but writes nothing.
type CheckCmd struct {
	Packages []string `arg:"" optional:"" help:"Package patterns to analyze (overrides config)."`
	DumpPlan bool     `help:"Dump the resolved plans for debugging."`
}

// result is the outcome of one pipeline run.
type result struct {
	graph *analyze.TypeGraph
	plans []*plan.StructPlan
	diags diagnostic.Diagnostics
}

// errMappingFailed signals that diagnostics were reported; the listing itself
// already went to stderr.
var errMappingFailed = errors.New("mapping validation failed")

// Run generates converter files. Declarations with diagnostics are reported
// and skipped; clean declarations still emit, and the process exits nonzero
// whenever anything was reported.
func (c *GenCmd) Run(ctx *Context) error {
	res, err := runPipeline(ctx, c.Packages)
	if err != nil {
		return err
	}

	generator := gen.NewGenerator(generatorConfig(ctx.Config), res.graph)

	files, err := generator.Generate(res.plans)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		ctx.Logger.Info("wrote converter", "dir", f.Dir, "file", f.Filename)
	}

	fmt.Fprintf(ctx.Stdout, "generated %d converter(s) for %d declaration(s)\n",
		len(files), len(res.plans))

	if res.diags.HasErrors() {
		RenderDiagnostics(ctx.Stderr, res.diags)
		return errMappingFailed
	}

	return nil
}

// Run validates all annotated declarations and reports every problem found.
func (c *CheckCmd) Run(ctx *Context) error {
	res, err := runPipeline(ctx, c.Packages)
	if err != nil {
		return err
	}

	if c.DumpPlan {
		spew.Fdump(ctx.Stdout, res.plans)
	}

	if res.diags.HasErrors() {
		RenderDiagnostics(ctx.Stderr, res.diags)
		return errMappingFailed
	}

	fmt.Fprintf(ctx.Stdout, "ok: %d declaration(s) validated\n", len(res.plans))

	return nil
}

// runPipeline loads packages, resolves, and validates.
func runPipeline(ctx *Context, patterns []string) (*result, error) {
	if len(patterns) == 0 {
		patterns = ctx.Config.Packages
	}

	ctx.Logger.Debug("loading packages", "patterns", patterns)

	analyzer := analyze.NewAnalyzer()

	graph, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	decls := analyzer.Declarations()
	ctx.Logger.Debug("analyzed packages",
		"types", len(graph.Types), "declarations", len(decls))

	plans := plan.NewResolver(graph).ResolveAll(decls)
	diags := plan.Validate(plans)

	return &result{graph: graph, plans: plans, diags: diags}, nil
}

// generatorConfig maps file configuration onto the generator.
func generatorConfig(f *config.File) gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	cfg.FileSuffix = f.Output.FileSuffix
	cfg.GenerateComments = f.Output.CommentsEnabled()

	return cfg
}
