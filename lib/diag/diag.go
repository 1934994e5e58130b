// Package diag defines the fatal errors a TinyLang program can run into.
//
// Every error carries the source line it was detected on. The message
// formats match the ones users of the language already know, so scripts
// that compare interpreter output keep working.
package diag

import (
	"errors"
	"fmt"
)

type Kind int

const (
	SyntaxError Kind = iota
	UndefinedVariable
	IllegalGoto
	InputError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case UndefinedVariable:
		return "UndefinedVariableError"
	case IllegalGoto:
		return "IllegalGotoError"
	case InputError:
		return "InputError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a fatal diagnostic. Name is the offending variable or label for
// UndefinedVariable and IllegalGoto. Reason is an optional detail for
// syntax errors; it is not part of Error() but tools may show it.
type Error struct {
	Kind   Kind
	Line   int
	Name   string
	Reason string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("Undefined variable %s at line %d.", e.Name, e.Line)
	case IllegalGoto:
		return fmt.Sprintf("Illegal goto %s at line %d.", e.Name, e.Line)
	case InputError:
		return fmt.Sprintf("Illegal or missing input at line %d.", e.Line)
	default:
		return fmt.Sprintf("Syntax error on line %d.", e.Line)
	}
}

// Detail returns the message followed by the reason, if there is one.
func (e *Error) Detail() string {
	if e.Reason == "" {
		return e.Error()
	}
	return e.Error() + " (" + e.Reason + ")"
}

func Syntax(line int, reason string, args ...interface{}) *Error {
	return &Error{Kind: SyntaxError, Line: line, Reason: fmt.Sprintf(reason, args...)}
}

func Undefined(name string, line int) *Error {
	return &Error{Kind: UndefinedVariable, Line: line, Name: name}
}

func Goto(label string, line int) *Error {
	return &Error{Kind: IllegalGoto, Line: line, Name: label}
}

func Input(line int) *Error {
	return &Error{Kind: InputError, Line: line}
}

// Is reports whether err is a diagnostic of kind k.
func Is(err error, k Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == k
}
