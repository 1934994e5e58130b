package parser

import (
	"io"
	"os"
	"strings"

	"github.com/vyPal/tli/lib/diag"
	tllex "github.com/vyPal/tli/lib/lexer"
)

// ParseFile loads a program from a file.
func ParseFile(filename string) (*Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(filename, f)
}

// ParseString loads a program from source text.
func ParseString(name, src string) (*Program, error) {
	return Parse(name, strings.NewReader(src))
}

// Parse loads a program: every line is parsed and every label recorded
// before anything runs, so jumps may go forwards as well as backwards.
// Loading stops at the first malformed line.
func Parse(name string, r io.Reader) (*Program, error) {
	lines, err := tllex.Lex(name, r)
	if err != nil {
		return nil, err
	}

	prog := &Program{
		Name:       name,
		Labels:     make(map[string]int),
		stmts:      make([]Stmt, len(lines)),
		lineLabels: make([]string, len(lines)),
	}
	defs := make(map[string][]int)

	for _, l := range lines {
		if l.Empty() {
			continue
		}
		words := l.Words()
		if strings.HasSuffix(words[0], ":") {
			label := strings.TrimSuffix(words[0], ":")
			if label == "" {
				return nil, diag.Syntax(l.Number, "empty label")
			}
			prog.Labels[label] = l.Number
			prog.lineLabels[l.Number-1] = label
			defs[label] = append(defs[label], l.Number)
			words = words[1:]
			if len(words) == 0 {
				return nil, diag.Syntax(l.Number, "label %s has no statement", label)
			}
		}

		stmt, err := ParseStatement(words, l.Number)
		if err != nil {
			return nil, err
		}
		prog.stmts[l.Number-1] = stmt
	}

	for label, at := range defs {
		if len(at) > 1 {
			if prog.redefined == nil {
				prog.redefined = make(map[string][]int)
			}
			prog.redefined[label] = at
		}
	}
	return prog, nil
}
