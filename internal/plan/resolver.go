package plan

import (
	"fmt"
	"go/token"

	"dto-generator/internal/analyze"
	"dto-generator/internal/annotation"
	"dto-generator/internal/diagnostic"
	"dto-generator/internal/match"
)

// maxSuggestions bounds the number of close-name candidates attached to an
// unknown source field diagnostic.
const maxSuggestions = 3

// Resolver turns annotated declarations into conversion plans.
type Resolver struct {
	graph *analyze.TypeGraph
}

// NewResolver creates a new Resolver over the given type graph.
func NewResolver(graph *analyze.TypeGraph) *Resolver {
	return &Resolver{graph: graph}
}

// ResolveAll resolves every declaration independently. A failing declaration
// never affects its siblings; each plan carries its own diagnostic pool.
func (r *Resolver) ResolveAll(decls []analyze.Declaration) []*StructPlan {
	plans := make([]*StructPlan, 0, len(decls))

	for i := range decls {
		plans = append(plans, r.Resolve(&decls[i]))
	}

	return plans
}

// Resolve produces the conversion plan for one declaration. Field plans are
// built even in the presence of errors so that every problem in the
// declaration surfaces in a single run; the diagnostic pool decides whether
// the plan may be emitted.
func (r *Resolver) Resolve(decl *analyze.Declaration) *StructPlan {
	p := &StructPlan{
		Target: decl.Type,
		Pos:    decl.Pos,
	}

	if !decl.Type.IsSchema() {
		p.Diagnostics.AddError(diagnostic.CodeSchemaKind,
			fmt.Sprintf("dto target %s must be a named-field struct, got %s kind",
				decl.Name(), decl.Type.Kind), decl.Pos)

		return p
	}

	sa := annotation.ParseDirectives(decl.Directives, &p.Diagnostics)

	if sa.From == nil {
		// No source schema means no field can be resolved; stop here instead
		// of producing a cascade of per-field errors.
		p.Diagnostics.AddError(diagnostic.CodeMissingRequiredAttribute,
			fmt.Sprintf("struct %s is missing the required //dto:from directive", decl.Name()),
			decl.Pos)

		return p
	}

	p.Source = r.resolveSource(sa.From, &p.Diagnostics)
	if p.Source == nil {
		return p
	}

	for i := range decl.Type.Fields {
		p.Fields = append(p.Fields, r.resolveField(&decl.Type.Fields[i], p.Source, &p.Diagnostics))
	}

	return p
}

// resolveSource looks up the from directive's type reference and enforces the
// named-field restriction on the source schema.
func (r *Resolver) resolveSource(from *annotation.Raw, diags *diagnostic.Diagnostics) *analyze.TypeInfo {
	src := analyze.ResolveTypeRef(from.Value, r.graph)
	if src == nil {
		diags.AddError(diagnostic.CodeSchemaKind,
			fmt.Sprintf("source type %q not found in loaded packages", from.Value), from.Pos)

		return nil
	}

	if !src.IsSchema() {
		diags.AddError(diagnostic.CodeSchemaKind,
			fmt.Sprintf("source type %s must be a named-field struct, got %s kind",
				src.ID, src.Kind), from.Pos)

		return nil
	}

	return src
}

// resolveField combines a field's annotations into exactly one FieldPlan,
// applying the strategy priority: skip, then transform_fn/into over the
// resolved source field, then renamed/direct moves.
func (r *Resolver) resolveField(field *analyze.FieldInfo, src *analyze.TypeInfo, diags *diagnostic.Diagnostics) FieldPlan {
	raws := annotation.ParseFieldTag(field, diags)

	byKind := make(map[annotation.Kind]*annotation.Raw, len(raws))
	spans := make([]token.Position, 0, len(raws))

	for i := range raws {
		byKind[raws[i].Kind] = &raws[i]
		spans = append(spans, raws[i].Pos)
	}

	if skip := byKind[annotation.KindSkip]; skip != nil {
		if len(byKind) > 1 {
			diags.AddError(diagnostic.CodeConflictingAttribute,
				"`skip` cannot be combined with `rename`, `transform_fn`, or `into`", skip.Pos)
		}

		return FieldPlan{
			TargetField: field,
			Strategy:    StrategySkipped,
			Spans:       spans,
		}
	}

	sourceName := field.Name
	accessPos := field.Pos

	if rename := byKind[annotation.KindRename]; rename != nil {
		sourceName = rename.Value
		accessPos = rename.Pos
	}

	srcField := src.Field(sourceName)
	if srcField == nil {
		diags.AddErrorWithSuggestions(diagnostic.CodeUnknownSourceField,
			fmt.Sprintf("source field %q not found in %s", sourceName, src.ID),
			accessPos, match.Suggest(sourceName, src.FieldNames(), maxSuggestions))
	}

	p := FieldPlan{
		TargetField: field,
		SourceField: sourceName,
		Spans:       append([]token.Position{accessPos}, spans...),
	}

	if srcField != nil {
		p.SourceType = srcField.Type
	}

	transform := byKind[annotation.KindTransformFn]
	into := byKind[annotation.KindInto]

	if transform != nil && into != nil {
		diags.AddError(diagnostic.CodeConflictingAttribute,
			"`transform_fn` conflicts with `into`", into.Pos)
	}

	switch {
	case transform != nil:
		p.Strategy = StrategyTransformed
		p.Transform = transform.Func
	case into != nil:
		p.Strategy = StrategyConverted
	case sourceName != field.Name:
		p.Strategy = StrategyRenamed
	default:
		p.Strategy = StrategyDirect
	}

	return p
}
