// Package plan resolves annotated target declarations into conversion plans
// and validates them before code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph + annotated declarations
//  2. Parse each declaration's directives and field tags
//  3. For each target field, combine its annotations into exactly one
//     FieldPlan (skip wins, then transform_fn/into, then renamed/direct)
//  4. Validate the plan set against both schemas; any pooled diagnostic
//     suppresses that declaration's emission
//
// Declarations are independent: a failing one never blocks its siblings, and
// all diagnostics surface together in source order.
package plan
