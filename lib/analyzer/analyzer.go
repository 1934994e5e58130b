// Package analyzer looks for likely mistakes in a loaded program without
// running it. Its findings are warnings only: a program that loads always
// runs, and problems on paths that are never taken never stop it.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/vyPal/tli/lib/parser"
)

type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

func Analyze(prog *parser.Program) []Warning {
	syms := ScanSymbols(prog)
	var warnings []Warning

	for label, lines := range syms.Gotos {
		if _, ok := prog.Label(label); !ok {
			for _, line := range lines {
				warnings = append(warnings, Warning{line, fmt.Sprintf("goto target %q is never defined", label)})
			}
		}
	}

	for label, lines := range prog.Redefinitions() {
		for _, line := range lines[:len(lines)-1] {
			warnings = append(warnings, Warning{line, fmt.Sprintf("label %q is redefined on line %d", label, lines[len(lines)-1])})
		}
	}

	for name, lines := range syms.Read {
		if _, ok := syms.Assigned[name]; !ok {
			warnings = append(warnings, Warning{lines[0], fmt.Sprintf("variable %q is never assigned", name)})
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Line != warnings[j].Line {
			return warnings[i].Line < warnings[j].Line
		}
		return warnings[i].Message < warnings[j].Message
	})
	return warnings
}
