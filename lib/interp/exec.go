package interp

import (
	"io"
	"strings"

	"github.com/vyPal/tli/lib/diag"
	"github.com/vyPal/tli/lib/parser"
)

// Exec performs one statement. When the statement transfers control it
// returns the target line and jump set to true.
func (in *Interpreter) Exec(s parser.Stmt) (target int, jump bool, err error) {
	line := s.Line()
	switch s := s.(type) {
	case *parser.Let:
		v, err := in.Eval(s.Expr, line)
		if err != nil {
			return 0, false, err
		}
		in.syms.Set(s.Target, v)
	case *parser.If:
		cond, err := in.Eval(s.Cond, line)
		if err != nil {
			return 0, false, err
		}
		if cond == 0 {
			return 0, false, nil
		}
		target, ok := in.syms.Label(s.Label)
		if !ok {
			return 0, false, diag.Goto(s.Label, line)
		}
		return target, true, nil
	case *parser.Print:
		return 0, false, in.print(s)
	case *parser.Input:
		v, err := in.readNumber(line)
		if err != nil {
			return 0, false, err
		}
		in.syms.Set(s.Target, v)
	default:
		return 0, false, diag.Syntax(line, "unknown statement %T", s)
	}
	return 0, false, nil
}

// print writes every item followed by a single space, then a newline.
// Nothing is written if an item fails to evaluate.
func (in *Interpreter) print(s *parser.Print) error {
	var sb strings.Builder
	for _, item := range s.Items {
		if item.Literal {
			sb.WriteString(item.Text)
		} else {
			v, err := in.Eval(item.Expr, s.SrcLine)
			if err != nil {
				return err
			}
			sb.WriteString(FormatNumber(v))
		}
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(in.out, sb.String())
	return err
}

func (in *Interpreter) readNumber(line int) (float64, error) {
	if in.prompt != "" {
		if _, err := io.WriteString(in.out, in.prompt); err != nil {
			return 0, err
		}
	}
	text, err := in.in.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return 0, diag.Input(line)
	}
	v, err := parser.ParseNumber(strings.TrimSpace(text))
	if err != nil {
		return 0, diag.Input(line)
	}
	return v, nil
}
