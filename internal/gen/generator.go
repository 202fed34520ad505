package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"dto-generator/internal/analyze"
	"dto-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the generated file's base name.
	FileSuffix string
	// GenerateComments enables per-assignment strategy comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_gen.go",
		GenerateComments: true,
	}
}

// Generator renders validated conversion plans into Go source files. It
// performs no validation of its own: plans that carry diagnostics are skipped
// by the caller via StructPlan.CanEmit.
type Generator struct {
	config GeneratorConfig
	graph  *analyze.TypeGraph

	// contextPkgPath is the package the current file is generated into.
	// Types from that package are referenced without a qualifier.
	contextPkgPath string
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, graph *analyze.TypeGraph) *Generator {
	return &Generator{config: config, graph: graph}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in (the target's package dir).
	Dir string
	// Filename is the base name (e.g. "user_view_from_user_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per emittable plan. Conversion functions are
// generated into the target type's own package, mirroring where a hand-written
// constructor would live.
func (g *Generator) Generate(plans []*plan.StructPlan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, p := range plans {
		if !p.CanEmit() {
			continue
		}

		file, err := g.generatePlan(p)
		if err != nil {
			return nil, fmt.Errorf("generating %s from %s: %w", p.Target.ID, p.Source.ID, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// generatePlan renders a single conversion function.
func (g *Generator) generatePlan(p *plan.StructPlan) (*GeneratedFile, error) {
	g.contextPkgPath = p.Target.ID.PkgPath

	imports := make(map[string]importSpec)

	data := &templateData{
		PackageName:      g.getPkgName(p.Target.ID.PkgPath),
		FunctionName:     g.FunctionName(p),
		TargetType:       g.typeRefString(p.Target, imports),
		SourceType:       g.typeRefString(p.Source, imports),
		GenerateComments: g.config.GenerateComments,
	}

	for i := range p.Fields {
		data.Assignments = append(data.Assignments, g.buildAssignment(&p.Fields[i], imports))
	}

	data.Imports = sortedImports(imports)

	var buf bytes.Buffer
	if err := converterTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}

	return &GeneratedFile{
		Dir:      g.targetDir(p),
		Filename: g.Filename(p),
		Content:  formatted,
	}, nil
}

// buildAssignment renders the expression implied by one field's strategy.
func (g *Generator) buildAssignment(fp *plan.FieldPlan, imports map[string]importSpec) assignmentData {
	a := assignmentData{
		TargetField: fp.TargetField.Name,
		Strategy:    fp.Strategy,
	}

	srcExpr := "in." + fp.SourceField

	switch fp.Strategy {
	case plan.StrategyDirect, plan.StrategyRenamed:
		a.SourceExpr = srcExpr

	case plan.StrategyTransformed:
		a.SourceExpr = g.funcRefExpr(fp, imports) + "(" + srcExpr + ")"

	case plan.StrategyConverted:
		// A plain Go conversion; whether it exists is checked when the
		// generated file itself is compiled.
		a.SourceExpr = g.typeRefString(fp.TargetField.Type, imports) + "(" + srcExpr + ")"
		a.Comment = "converted from " + g.describeType(fp.SourceType)

	case plan.StrategySkipped:
		a.SourceExpr = g.zeroValue(fp.TargetField.Type, imports)
		a.Comment = "skipped; zero value"
	}

	return a
}

// funcRefExpr renders a transform function reference, importing its package
// when it lives outside the generated file's package.
func (g *Generator) funcRefExpr(fp *plan.FieldPlan, imports map[string]importSpec) string {
	ref := fp.Transform
	if ref.PkgPath == "" || ref.PkgPath == g.contextPkgPath {
		return ref.Name
	}

	g.addImport(imports, ref.PkgPath)

	return g.getPkgName(ref.PkgPath) + "." + ref.Name
}

// describeType renders a type for comments only; never affects imports.
func (g *Generator) describeType(t *analyze.TypeInfo) string {
	if t == nil {
		return "source"
	}

	return g.typeRefString(t, nil)
}

// FunctionName returns the converter's name, e.g. "UserViewFromUser".
func (g *Generator) FunctionName(p *plan.StructPlan) string {
	return p.Target.ID.Name + "From" + p.Source.ID.Name
}

// Filename returns the generated file's base name, e.g.
// "user_view_from_user_gen.go".
func (g *Generator) Filename(p *plan.StructPlan) string {
	return camelToSnake(p.Target.ID.Name) + "_from_" + camelToSnake(p.Source.ID.Name) + g.config.FileSuffix
}

// targetDir returns the directory of the target type's package.
func (g *Generator) targetDir(p *plan.StructPlan) string {
	if g.graph != nil {
		if pkgInfo, ok := g.graph.Packages[p.Target.ID.PkgPath]; ok {
			return pkgInfo.Dir
		}
	}

	return "."
}

// camelToSnake converts "UserView" to "user_view".
func camelToSnake(s string) string {
	var sb strings.Builder

	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// sortedImports returns imports in deterministic path order.
func sortedImports(imports map[string]importSpec) []importSpec {
	result := make([]importSpec, 0, len(imports))
	for _, spec := range imports {
		result = append(result, spec)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result
}

// templateData holds all data needed for the converter template.
type templateData struct {
	PackageName      string
	Imports          []importSpec
	FunctionName     string
	SourceType       string
	TargetType       string
	Assignments      []assignmentData
	GenerateComments bool
}

// assignmentData represents a single field assignment in the converter.
type assignmentData struct {
	TargetField string
	SourceExpr  string
	Comment     string
	Strategy    plan.Strategy
}

// Template for the converter file.

var converterTemplate = template.Must(template.New("converter").Parse(`// Code generated by dtogen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.FunctionName}} builds a {{.TargetType}} from a {{.SourceType}}.
func {{.FunctionName}}(in {{.SourceType}}) {{.TargetType}} {
	out := {{.TargetType}}{}
{{range .Assignments}}	out.{{.TargetField}} = {{.SourceExpr}}{{if and $.GenerateComments .Comment}} // {{.Comment}}{{end}}
{{end}}
	return out
}
`))
