package analyzer

import "github.com/vyPal/tli/lib/parser"

// Symbols records where names are written, read and jumped to.
type Symbols struct {
	Assigned map[string][]int
	Read     map[string][]int
	Gotos    map[string][]int
}

func ScanSymbols(prog *parser.Program) *Symbols {
	syms := &Symbols{
		Assigned: make(map[string][]int),
		Read:     make(map[string][]int),
		Gotos:    make(map[string][]int),
	}
	for line := 1; line <= prog.Len(); line++ {
		switch s := prog.At(line).(type) {
		case *parser.Let:
			syms.read(s.Expr, line)
			syms.Assigned[s.Target] = append(syms.Assigned[s.Target], line)
		case *parser.Input:
			syms.Assigned[s.Target] = append(syms.Assigned[s.Target], line)
		case *parser.If:
			syms.read(s.Cond, line)
			syms.Gotos[s.Label] = append(syms.Gotos[s.Label], line)
		case *parser.Print:
			for _, item := range s.Items {
				if !item.Literal {
					syms.read(item.Expr, line)
				}
			}
		}
	}
	return syms
}

func (s *Symbols) read(e parser.Expr, line int) {
	switch e := e.(type) {
	case *parser.Variable:
		s.Read[e.Name] = append(s.Read[e.Name], line)
	case *parser.Binary:
		s.read(e.Left, line)
		s.read(e.Right, line)
	}
}
