// Package termcolor is the narrow terminal-color collaborator spec.md §1
// calls out as external to the core pipeline: nothing in internal/lexer,
// internal/parser, internal/interp, or internal/ir imports it. Its users
// are internal/cerrors's pretty-printer and internal/dag's tree view and
// -v timing log, each of which takes an explicit color flag.
package termcolor

import "github.com/fatih/color"

var (
	errorColor = color.New(color.FgRed, color.Bold)
	okColor    = color.New(color.FgGreen)
	dimColor   = color.New(color.Faint)
)

// Error renders s in bold red, matching the original implementation's
// RED/RESET escape-constant convention in main.rs/dag.rs.
func Error(s string) string {
	return errorColor.Sprint(s)
}

// OK renders s in green, used for DAG tree headers (original dag.rs's
// GREEN constant).
func OK(s string) string {
	return okColor.Sprint(s)
}

// Dim renders s faint, used for verbose timing annotations.
func Dim(s string) string {
	return dimColor.Sprint(s)
}
