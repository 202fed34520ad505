// Package gen renders validated conversion plans into Go source files: one
// converter function per target declaration, written into the target's own
// package and gofmt-formatted.
//
// Generation is purely mechanical. Anything that can fail a mapping failed
// earlier in the pipeline; plans carrying diagnostics are never rendered.
package gen
