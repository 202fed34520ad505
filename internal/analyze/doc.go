// Package analyze loads Go packages and builds the schema model consumed by
// the rest of the pipeline: a graph of types with ordered, position-annotated
// fields, plus the list of target declarations carrying dto: directives.
//
// The graph is read-only once loaded; nothing downstream mutates it.
package analyze
