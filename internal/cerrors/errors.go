// Package cerrors implements the fatal error taxonomy of spec §7 plus
// source-context formatting in the style of the teacher's
// internal/errors package: a caret pointing at the offending line/column,
// optionally colorized for a terminal.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/blocklang/blocklang/internal/lexer"
	"github.com/blocklang/blocklang/internal/termcolor"
)

// Kind is one row of the spec §7 error taxonomy.
type Kind int

const (
	FileMissing Kind = iota
	DuplicateBlockID
	MissingDependency
	Cycle
	UnmatchedBraces
	UnexpectedChar
	UnterminatedString
	ParseError
	UndefinedVariable
	UndefinedFunction
	TypeMismatch
	DivideByZero
)

func (k Kind) String() string {
	switch k {
	case FileMissing:
		return "FileMissing"
	case DuplicateBlockID:
		return "DuplicateBlockId"
	case MissingDependency:
		return "MissingDependency"
	case Cycle:
		return "Cycle"
	case UnmatchedBraces:
		return "UnmatchedBraces"
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnterminatedString:
		return "UnterminatedString"
	case ParseError:
		return "ParseError"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedFunction:
		return "UndefinedFunction"
	case TypeMismatch:
		return "TypeMismatch"
	case DivideByZero:
		return "DivideByZero"
	default:
		return "UnknownError"
	}
}

// CompilerError is a single fatal condition, carrying enough context to
// render a caret-pointing source snippet.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     lexer.Position // zero value when position is not applicable
}

func New(kind Kind, message string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message}
}

func (e *CompilerError) WithPos(pos lexer.Position) *CompilerError {
	e.Pos = pos
	return e
}

func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a `[Kind] message` header, followed by
// the offending source line and a caret, when position/source are known.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if color {
		header = termcolor.Error(header)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	if e.File != "" && e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("  --> %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else if e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("  --> line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+maxInt(e.Pos.Column-1, 0)))
		caret := "^"
		if color {
			caret = termcolor.Error(caret)
		}
		sb.WriteString(caret)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FromLexError converts a *lexer.Error into the matching taxonomy Kind.
func FromLexError(err *lexer.Error) *CompilerError {
	kind := UnexpectedChar
	if err.Kind == lexer.ErrUnterminatedString {
		kind = UnterminatedString
	}
	return New(kind, err.Msg).WithPos(err.Pos)
}
