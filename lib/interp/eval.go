package interp

import (
	"github.com/vyPal/tli/lib/diag"
	"github.com/vyPal/tli/lib/parser"
)

// Eval computes the value of an expression for the statement on line.
func (in *Interpreter) Eval(e parser.Expr, line int) (float64, error) {
	switch e := e.(type) {
	case *parser.Variable:
		v, ok := in.syms.Get(e.Name)
		if !ok {
			return 0, diag.Undefined(e.Name, line)
		}
		return v, nil
	case *parser.Number:
		v, err := parser.ParseNumber(e.Text)
		if err != nil {
			return 0, diag.Syntax(line, "invalid number %q", e.Text)
		}
		return v, nil
	case *parser.Binary:
		l, err := in.Eval(e.Left, line)
		if err != nil {
			return 0, err
		}
		r, err := in.Eval(e.Right, line)
		if err != nil {
			return 0, err
		}
		return apply(e.Op, l, r), nil
	case *parser.StringLit:
		return 0, diag.Syntax(line, "string %s used as a number", e.Text)
	}
	return 0, diag.Syntax(line, "unknown expression %T", e)
}

func apply(op parser.Op, l, r float64) float64 {
	switch op {
	case parser.Add:
		return l + r
	case parser.Sub:
		return l - r
	case parser.Mul:
		return l * r
	case parser.Div:
		return l / r
	case parser.Less:
		return truth(l < r)
	case parser.Greater:
		return truth(l > r)
	case parser.LessEq:
		return truth(l <= r)
	case parser.GreaterEq:
		return truth(l >= r)
	case parser.Equal:
		return truth(l == r)
	case parser.NotEqual:
		return truth(l != r)
	}
	panic("interp: unknown operator " + op.String())
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
