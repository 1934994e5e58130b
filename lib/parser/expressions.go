package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vyPal/tli/lib/diag"
)

// ParseExpr parses the words of an expression. An expression is a single
// term or exactly one operator between two terms; there is no nesting and no
// precedence.
func ParseExpr(tokens []string, line int) (Expr, error) {
	switch len(tokens) {
	case 1:
		return parseTerm(tokens[0], line)
	case 3:
		op, ok := LookupOp(tokens[1])
		if !ok {
			return nil, diag.Syntax(line, "unknown operator %q", tokens[1])
		}
		left, err := parseTerm(tokens[0], line)
		if err != nil {
			return nil, err
		}
		right, err := parseTerm(tokens[2], line)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil
	case 0:
		return nil, diag.Syntax(line, "missing expression")
	default:
		return nil, diag.Syntax(line, "expected 1 or 3 terms in expression, found %d", len(tokens))
	}
}

func parseTerm(tok string, line int) (Expr, error) {
	first, _ := utf8.DecodeRuneInString(tok)
	if unicode.IsLetter(first) {
		return &Variable{Name: tok}, nil
	}
	if strings.Contains(tok, `"`) {
		return &StringLit{Text: tok}, nil
	}
	if _, err := ParseNumber(tok); err != nil {
		return nil, diag.Syntax(line, "invalid number %q", tok)
	}
	return &Number{Text: tok}, nil
}

// ParseNumber converts numeric text to a float64. Literals too large for a
// float64 become infinities rather than errors. Hexadecimal forms are
// rejected.
func ParseNumber(text string) (float64, error) {
	if strings.ContainsAny(text, "xX") {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}
