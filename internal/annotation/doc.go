// Package annotation parses the surface syntax of dto annotations: struct
// doc-comment directives (//dto:from ...) and per-field dto struct tags.
//
// The grammar is closed. Unknown keys, repeated single-valued keys, and
// value-shape violations are rejected here with positions pointing at the
// offending occurrence; combining rules between recognized annotations are
// the resolver's concern.
package annotation
