package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strings"

	"dto-generator/internal/common"
)

// Diagnostic codes emitted by the pipeline. The set is closed: every
// mapping error maps to exactly one of these.
const (
	CodeSchemaKind               = "SchemaKind"
	CodeMissingRequiredAttribute = "MissingRequiredAttribute"
	CodeUnknownAttribute         = "UnknownAttribute"
	CodeDuplicateAttribute       = "DuplicateAttribute"
	CodeMalformedAttribute       = "MalformedAttribute"
	CodeConflictingAttribute     = "ConflictingAttribute"
	CodeUnknownSourceField       = "UnknownSourceField"
	CodeIncompatibleType         = "IncompatibleType"
)

// Diagnostics accumulates all diagnostic information for one compilation run.
// It is write-only during the pipeline; nothing is dropped or truncated.
type Diagnostics struct {
	Errors []Diagnostic
}

// Diagnostic represents a single located diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic. The pipeline currently emits errors only.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos anchors the diagnostic to the offending annotation or declaration.
	Pos token.Position
	// Suggestions are potential fixes or alternatives (e.g. close field names).
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, pos token.Position) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Pos:      pos,
	})
}

// AddErrorWithSuggestions adds an error diagnostic carrying candidate fixes.
func (d *Diagnostics) AddErrorWithSuggestions(code, message string, pos token.Position, suggestions []string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     message,
		Pos:         pos,
		Suggestions: suggestions,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
}

// SortBySource orders diagnostics by file, then byte offset, then code.
// Diagnostics without a position sort before located ones in the same file.
func (d *Diagnostics) SortBySource() {
	sort.SliceStable(d.Errors, func(i, j int) bool {
		a, b := d.Errors[i], d.Errors[j]
		if a.Pos.Filename != b.Pos.Filename {
			return a.Pos.Filename < b.Pos.Filename
		}

		if a.Pos.Offset != b.Pos.Offset {
			return a.Pos.Offset < b.Pos.Offset
		}

		return a.Code < b.Code
	})
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string: "file:line:col: [Code] message".
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, " or ") + "?)"
	}

	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + msg
	}

	return msg
}
