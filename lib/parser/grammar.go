package parser

import "strings"

type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Less
	Greater
	LessEq
	GreaterEq
	Equal
	NotEqual
)

var opText = [...]string{
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	Less:      "<",
	Greater:   ">",
	LessEq:    "<=",
	GreaterEq: ">=",
	Equal:     "==",
	NotEqual:  "!=",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return "?"
}

// IsComparison reports whether the operator yields a truth value.
func (o Op) IsComparison() bool {
	return o >= Less
}

// LookupOp maps operator text to its Op.
func LookupOp(s string) (Op, bool) {
	for i, text := range opText {
		if text == s {
			return Op(i), true
		}
	}
	return 0, false
}

// Expr is one of Variable, Number, StringLit or Binary.
type Expr interface {
	expr()
	String() string
}

type Variable struct {
	Name string
}

type Number struct {
	Text string
}

// StringLit is quoted text, quotes included. It is only meaningful as a
// print item and cannot be evaluated.
type StringLit struct {
	Text string
}

// Binary is a single operator applied to two single-token terms.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (*Variable) expr()  {}
func (*Number) expr()    {}
func (*StringLit) expr() {}
func (*Binary) expr()    {}

func (v *Variable) String() string  { return v.Name }
func (n *Number) String() string    { return n.Text }
func (s *StringLit) String() string { return s.Text }
func (b *Binary) String() string {
	return b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}

// Stmt is one of Let, If, Print or Input.
type Stmt interface {
	stmt()
	Line() int
	String() string
}

type Let struct {
	SrcLine int
	Target  string
	Expr    Expr
}

// If jumps to Label when Cond is nonzero.
type If struct {
	SrcLine int
	Cond    Expr
	Label   string
}

type Print struct {
	SrcLine int
	Items   []PrintItem
}

// PrintItem is either literal text (Literal set, quotes removed) or an
// expression.
type PrintItem struct {
	Literal bool
	Text    string
	Expr    Expr
}

type Input struct {
	SrcLine int
	Target  string
}

func (*Let) stmt()   {}
func (*If) stmt()    {}
func (*Print) stmt() {}
func (*Input) stmt() {}

func (s *Let) Line() int   { return s.SrcLine }
func (s *If) Line() int    { return s.SrcLine }
func (s *Print) Line() int { return s.SrcLine }
func (s *Input) Line() int { return s.SrcLine }

func (s *Let) String() string {
	return "let " + s.Target + " = " + s.Expr.String()
}

func (s *If) String() string {
	return "if " + s.Cond.String() + " goto " + s.Label
}

func (s *Print) String() string {
	items := make([]string, len(s.Items))
	for i, item := range s.Items {
		items[i] = item.String()
	}
	return "print " + strings.Join(items, ", ")
}

func (s *Input) String() string {
	return "input " + s.Target
}

func (p PrintItem) String() string {
	if p.Literal {
		return `"` + p.Text + `"`
	}
	return p.Expr.String()
}

// Program is a loaded source file: one statement slot per physical line and
// the line number of every label.
type Program struct {
	Name   string
	Labels map[string]int

	stmts      []Stmt
	lineLabels []string
	redefined  map[string][]int
}

// Len returns the number of source lines.
func (p *Program) Len() int {
	return len(p.stmts)
}

// At returns the statement on a 1-indexed line, or nil for a blank line or a
// line outside the program.
func (p *Program) At(line int) Stmt {
	if line < 1 || line > len(p.stmts) {
		return nil
	}
	return p.stmts[line-1]
}

// LabelAt returns the label defined on a line, if any.
func (p *Program) LabelAt(line int) string {
	if line < 1 || line > len(p.lineLabels) {
		return ""
	}
	return p.lineLabels[line-1]
}

// Label returns the line a label was defined on.
func (p *Program) Label(name string) (int, bool) {
	line, ok := p.Labels[name]
	return line, ok
}

// Redefinitions returns, for every label defined more than once, all the
// lines that define it. The last one is the one jumps go to.
func (p *Program) Redefinitions() map[string][]int {
	return p.redefined
}

// Source renders the program back into source text, one statement per line.
func (p *Program) Source() string {
	var sb strings.Builder
	for i := 1; i <= p.Len(); i++ {
		if label := p.LabelAt(i); label != "" {
			sb.WriteString(label + ": ")
		}
		if s := p.At(i); s != nil {
			sb.WriteString(s.String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
