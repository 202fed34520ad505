package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"dto-generator/internal/diagnostic"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	posLabel   = color.New(color.Bold)
	hintLabel  = color.New(color.FgCyan)
)

// RenderDiagnostics prints a source-ordered error listing:
//
//	examples/view/types.go:14:22: error[UnknownSourceField]: source field "nmae" not found in store.User
//	    hint: did you mean Name?
//
// Color is dropped automatically when w is not a terminal.
func RenderDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		if d.Pos.IsValid() {
			posLabel.Fprintf(w, "%s: ", d.Pos)
		}

		errorLabel.Fprintf(w, "%s[%s]:", d.Severity, d.Code)
		fmt.Fprintf(w, " %s\n", d.Message)

		if len(d.Suggestions) > 0 {
			hintLabel.Fprintf(w, "    hint: did you mean %s?\n", strings.Join(d.Suggestions, " or "))
		}
	}

	if n := len(diags.Errors); n > 0 {
		fmt.Fprintf(w, "%d error(s)\n", n)
	}
}
