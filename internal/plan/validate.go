package plan

import (
	"fmt"

	"dto-generator/internal/analyze"
	"dto-generator/internal/diagnostic"
)

// Validate cross-checks every resolved plan against its schemas and closes
// each declaration's diagnostic pool: after this call a plan either emits or
// reports. The returned pool aggregates all declarations, sorted by source
// order, for one-shot reporting.
func Validate(plans []*StructPlan) diagnostic.Diagnostics {
	var all diagnostic.Diagnostics

	for _, p := range plans {
		validatePlan(p)

		p.Diagnostics.SortBySource()
		all.Merge(p.Diagnostics)
	}

	all.SortBySource()

	return all
}

// validatePlan enforces the cross-checks of one declaration.
func validatePlan(p *StructPlan) {
	if p.Source == nil {
		// Resolution already reported why there is no source schema.
		return
	}

	// Every target field must hold exactly one plan. Resolution constructs
	// plans in field order, so a mismatch indicates a pipeline defect rather
	// than a user error; it is still reported, never swallowed.
	if len(p.Fields) != len(p.Target.Fields) {
		p.Diagnostics.AddError(diagnostic.CodeSchemaKind,
			fmt.Sprintf("plan for %s covers %d of %d fields",
				p.Target.ID, len(p.Fields), len(p.Target.Fields)), p.Pos)

		return
	}

	for i := range p.Fields {
		validateFieldPlan(p, &p.Fields[i])
	}
}

// validateFieldPlan enforces strategy-specific preconditions for one field.
func validateFieldPlan(p *StructPlan, fp *FieldPlan) {
	if fp.Strategy == StrategySkipped {
		return
	}

	srcField := p.Source.Field(fp.SourceField)
	if srcField == nil {
		// Already reported at resolution time with the annotation's span.
		return
	}

	// Direct and renamed moves require declared type identity; transform and
	// convert strategies defer signature checking to the generated code's own
	// compilation. No implicit coercion is ever attempted.
	switch fp.Strategy {
	case StrategyDirect, StrategyRenamed:
		if !analyze.Identical(srcField.Type, fp.TargetField.Type) {
			p.Diagnostics.AddError(diagnostic.CodeIncompatibleType,
				fmt.Sprintf("cannot move %s.%s to field %q: differing types with no transform_fn or into",
					p.Source.ID.Name, fp.SourceField, fp.TargetField.Name), fp.Span())
		}
	}
}
