package plan

import (
	"go/token"

	"dto-generator/internal/analyze"
	"dto-generator/internal/annotation"
	"dto-generator/internal/common"
	"dto-generator/internal/diagnostic"
)

// Strategy describes how one target field receives its value.
type Strategy int

const (
	// StrategyDirect - plain move from the same-named source field.
	StrategyDirect Strategy = iota
	// StrategyRenamed - plain move from a differently named source field.
	StrategyRenamed
	// StrategyTransformed - call a transform function on the source field.
	StrategyTransformed
	// StrategySkipped - no source field; the zero value is used.
	StrategySkipped
	// StrategyConverted - apply a one-argument conversion to the source field.
	StrategyConverted
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyRenamed:
		return "renamed"
	case StrategyTransformed:
		return "transformed"
	case StrategySkipped:
		return "skipped"
	case StrategyConverted:
		return "converted"
	default:
		return common.UnknownStr
	}
}

// FieldPlan is the resolved mapping for one target field. Exactly one exists
// per target field once resolution succeeds; plans are immutable values.
type FieldPlan struct {
	// TargetField is the field being populated.
	TargetField *analyze.FieldInfo
	// Strategy selected for this field.
	Strategy Strategy
	// SourceField is the resolved source field name. Empty for Skipped.
	SourceField string
	// SourceType is the declared type of the source field, recorded for
	// downstream diagnostics. Nil for Skipped or unresolved sources.
	SourceType *analyze.TypeInfo
	// Transform is the function reference for Transformed.
	Transform annotation.FuncRef
	// Spans lists the positions of every annotation consulted, for
	// diagnostic attribution. The first span anchors type mismatches.
	Spans []token.Position
}

// Span returns the primary position for diagnostics about this plan,
// falling back to the target field's own position.
func (p *FieldPlan) Span() token.Position {
	if len(p.Spans) > 0 && p.Spans[0].IsValid() {
		return p.Spans[0]
	}

	return p.TargetField.Pos
}

// StructPlan is the complete conversion plan for one target declaration.
type StructPlan struct {
	// Target is the struct being derived.
	Target *analyze.TypeInfo
	// Source is the struct named by the from directive. Nil when the
	// directive is absent or unresolvable.
	Source *analyze.TypeInfo
	// Fields holds one plan per target field, in declared order.
	Fields []FieldPlan
	// Pos is the position of the target type name.
	Pos token.Position
	// Diagnostics pools every problem found for this declaration, across
	// parsing, resolution, and validation.
	Diagnostics diagnostic.Diagnostics
}

// CanEmit reports whether code generation may proceed for this declaration.
// Any diagnostic suppresses emission; there are no soft errors.
func (p *StructPlan) CanEmit() bool {
	return p.Source != nil && p.Diagnostics.IsValid()
}
