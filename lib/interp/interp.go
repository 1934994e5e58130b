// Package interp runs loaded TinyLang programs.
//
// Execution is a fetch-execute loop over line numbers: the statement on the
// current line runs, then control moves to the next line or to the line a
// taken goto named. The program ends when the line number passes the last
// line. Every error is fatal and is returned to the caller unchanged.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/vyPal/tli/lib/parser"
)

type Config struct {
	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer

	// Trace, when set, receives a "Doing: <statement>" line before each
	// statement runs.
	Trace io.Writer

	// MaxSteps stops a run after that many statements. Zero means no limit.
	MaxSteps int

	// Prompt is written before every input read.
	Prompt string
}

// StepLimitError is returned when a run exceeds Config.MaxSteps.
type StepLimitError struct {
	Limit int
	Line  int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit %d exceeded at line %d", e.Limit, e.Line)
}

type Interpreter struct {
	prog *parser.Program
	syms *SymbolTable

	in     *bufio.Reader
	out    io.Writer
	trace  io.Writer
	prompt string

	maxSteps int
	steps    int
}

var traceColor = color.New(color.FgHiBlack)

func New(prog *parser.Program, conf Config) *Interpreter {
	if conf.Stdin == nil {
		conf.Stdin = os.Stdin
	}
	if conf.Stdout == nil {
		conf.Stdout = os.Stdout
	}

	syms := NewSymbolTable()
	for name, line := range prog.Labels {
		syms.DefineLabel(name, line)
	}

	return &Interpreter{
		prog:     prog,
		syms:     syms,
		in:       bufio.NewReader(conf.Stdin),
		out:      conf.Stdout,
		trace:    conf.Trace,
		prompt:   conf.Prompt,
		maxSteps: conf.MaxSteps,
	}
}

// Symbols exposes the interpreter's symbol table.
func (in *Interpreter) Symbols() *SymbolTable {
	return in.syms
}

// Steps returns how many statements have run.
func (in *Interpreter) Steps() int {
	return in.steps
}

// Run executes the program from line 1 until it falls off the end or a
// statement fails.
func (in *Interpreter) Run() error {
	line := 1
	for line <= in.prog.Len() {
		s := in.prog.At(line)
		if s == nil {
			line++
			continue
		}

		if in.maxSteps > 0 && in.steps >= in.maxSteps {
			return &StepLimitError{Limit: in.maxSteps, Line: line}
		}
		in.steps++
		if in.trace != nil {
			traceColor.Fprintf(in.trace, "Doing: %s\n", s)
		}

		target, jump, err := in.Exec(s)
		if err != nil {
			return err
		}
		if jump {
			line = target
		} else {
			line++
		}
	}
	return nil
}
