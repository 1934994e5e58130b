package parser

import (
	"strings"

	"github.com/vyPal/tli/lib/diag"
	tllex "github.com/vyPal/tli/lib/lexer"
)

// ParseStatement parses the words of a line whose label, if any, has already
// been removed.
func ParseStatement(tokens []string, line int) (Stmt, error) {
	if len(tokens) == 0 {
		return nil, diag.Syntax(line, "missing statement")
	}
	switch tokens[0] {
	case "let":
		return parseLet(tokens, line)
	case "if":
		return parseIf(tokens, line)
	case "print":
		return parsePrint(tokens, line)
	case "input":
		return parseInput(tokens, line)
	}
	return nil, diag.Syntax(line, "unknown statement %q", tokens[0])
}

// let NAME = EXPR
func parseLet(tokens []string, line int) (Stmt, error) {
	if len(tokens) < 4 || tokens[2] != "=" {
		return nil, diag.Syntax(line, "expected let NAME = EXPR")
	}
	expr, err := ParseExpr(tokens[3:], line)
	if err != nil {
		return nil, err
	}
	return &Let{SrcLine: line, Target: tokens[1], Expr: expr}, nil
}

// if EXPR goto LABEL. The word before the label is not checked.
func parseIf(tokens []string, line int) (Stmt, error) {
	if len(tokens) < 4 {
		return nil, diag.Syntax(line, "expected if EXPR goto LABEL")
	}
	cond, err := ParseExpr(tokens[1:len(tokens)-2], line)
	if err != nil {
		return nil, err
	}
	return &If{SrcLine: line, Cond: cond, Label: tokens[len(tokens)-1]}, nil
}

// print ITEM, ITEM, ...
func parsePrint(tokens []string, line int) (Stmt, error) {
	joined := strings.Join(tokens[1:], " ")
	var items []PrintItem
	for _, raw := range strings.Split(joined, ",") {
		if strings.Contains(raw, `"`) {
			text, ok := quoted(raw)
			if !ok {
				return nil, diag.Syntax(line, "unterminated string %s", strings.TrimSpace(raw))
			}
			items = append(items, PrintItem{Literal: true, Text: text})
			continue
		}
		expr, err := ParseExpr(strings.FieldsFunc(raw, tllex.IsSpace), line)
		if err != nil {
			return nil, err
		}
		items = append(items, PrintItem{Expr: expr})
	}
	return &Print{SrcLine: line, Items: items}, nil
}

// quoted returns the text between the first pair of double quotes in s.
func quoted(s string) (string, bool) {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return s[start+1 : start+1+end], true
}

// input NAME
func parseInput(tokens []string, line int) (Stmt, error) {
	if len(tokens) != 2 {
		return nil, diag.Syntax(line, "expected input NAME")
	}
	return &Input{SrcLine: line, Target: tokens[1]}, nil
}
