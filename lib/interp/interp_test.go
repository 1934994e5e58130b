package interp

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/vyPal/tli/lib/diag"
	"github.com/vyPal/tli/lib/parser"
)

func init() {
	color.NoColor = true
}

func runSource(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	prog, err := parser.ParseString("test.tl", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var out bytes.Buffer
	err = New(prog, Config{Stdin: strings.NewReader(stdin), Stdout: &out}).Run()
	return out.String(), err
}

func TestPrograms(t *testing.T) {
	cases := []struct {
		name, src, in, out string
	}{
		{"counting loop", `let x = 0
loop: let x = x + 1
print x
if x < 5 goto loop
`, "", "1.0 \n2.0 \n3.0 \n4.0 \n5.0 \n"},
		{"mixed print", "let a = 3\nprint \"value:\", a", "", "value: 3.0 \n"},
		{"single item", "print 7", "", "7.0 \n"},
		{"literal only", `print "hello world"`, "", "hello world \n"},
		{"many items", `print 1, "two", 3 / 4`, "", "1.0 two 0.75 \n"},
		{"forward jump", "if 1 goto end\nprint 1\nend: print 2", "", "2.0 \n"},
		{"false condition falls through", "if 0 goto end\nprint 1\nend: print 2", "", "1.0 \n2.0 \n"},
		{"blank lines", "\nlet a = 1\n\n\nprint a\n\n", "", "1.0 \n"},
		{"jump onto blank neighbour", "let i = 0\ntop: let i = i + 1\n\nif i < 3 goto top\n\nprint i", "", "3.0 \n"},
		{"input", "input n\nlet d = n * 2\nprint d", "21\n", "42.0 \n"},
		{"input without newline", "input n\nprint n", "  2.5", "2.5 \n"},
		{"two inputs", "input a\ninput b\nprint a + b", "1\n2\n", "3.0 \n"},
		{"division by zero", "let z = 0\nprint 1 / z, -1 / z, z / z", "", "inf -inf nan \n"},
		{"nan is truthy", "let z = 0\nlet n = z / z\nif n goto yes\nprint 0\nyes: print 1", "", "1.0 \n"},
		{"unreached bad label", "if 0 goto nowhere\nprint 1", "", "1.0 \n"},
		{"unreached undefined", "if 0 goto skip\nskip: print 1\nlet a = 2", "", "1.0 \n"},
		{"later label wins", "if 1 goto a\na: print 1\na: print 2", "", "2.0 \n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := runSource(t, c.src, c.in)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if out != c.out {
				t.Errorf("got %q, want %q", out, c.out)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		name, src, in string
		kind          diag.Kind
		line          int
		ident         string
		out           string
	}{
		{"undefined variable", "print y", "", diag.UndefinedVariable, 1, "y", ""},
		{"undefined in later item", "print 1, y", "", diag.UndefinedVariable, 1, "y", ""},
		{"illegal goto", "if 1 < 2 goto nowhere", "", diag.IllegalGoto, 1, "nowhere", ""},
		{"output before error", "print 1\nlet b = a + 1", "", diag.UndefinedVariable, 2, "a", "1.0 \n"},
		{"string in arithmetic", `let a = "x" + 1`, "", diag.SyntaxError, 1, "", ""},
		{"missing input", "input a", "", diag.InputError, 1, "", ""},
		{"bad input", "print 0\ninput a", "abc\n", diag.InputError, 2, "", "0.0 \n"},
		{"empty input line", "input a", "\n", diag.InputError, 1, "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := runSource(t, c.src, c.in)
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("expected a diagnostic, got %v", err)
			}
			if de.Kind != c.kind || de.Line != c.line || de.Name != c.ident {
				t.Errorf("got %v line %d name %q, want %v line %d name %q",
					de.Kind, de.Line, de.Name, c.kind, c.line, c.ident)
			}
			if out != c.out {
				t.Errorf("output %q, want %q", out, c.out)
			}
		})
	}
}

func TestOperators(t *testing.T) {
	in := New(&parser.Program{}, Config{})
	in.Symbols().Set("a", 6)
	in.Symbols().Set("b", 4)

	cases := []struct {
		expr string
		want float64
	}{
		{"a + b", 10},
		{"a - b", 2},
		{"a * b", 24},
		{"a / b", 1.5},
		{"a < b", 0},
		{"a > b", 1},
		{"a <= 6", 1},
		{"a >= 7", 0},
		{"a == 6", 1},
		{"a != 6", 0},
		{"0.1 + 0.2", 0.30000000000000004},
	}
	for _, c := range cases {
		expr, err := parser.ParseExpr(strings.Fields(c.expr), 1)
		if err != nil {
			t.Fatalf("%q: %v", c.expr, err)
		}
		got, err := in.Eval(expr, 1)
		if err != nil {
			t.Fatalf("%q: %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("%q = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestComparisonsAreZeroOrOne(t *testing.T) {
	values := []float64{-2, 0, 0.5, 3, math.Inf(1), math.NaN()}
	ops := []parser.Op{parser.Less, parser.Greater, parser.LessEq, parser.GreaterEq, parser.Equal, parser.NotEqual}
	for _, op := range ops {
		for _, l := range values {
			for _, r := range values {
				if v := apply(op, l, r); v != 0 && v != 1 {
					t.Errorf("%v %v %v = %v", l, op, r, v)
				}
			}
		}
	}
}

func TestTrace(t *testing.T) {
	prog, err := parser.ParseString("", "let a = 1\n\nprint a")
	if err != nil {
		t.Fatal(err)
	}
	var out, trace bytes.Buffer
	if err := New(prog, Config{Stdout: &out, Trace: &trace}).Run(); err != nil {
		t.Fatal(err)
	}
	want := "Doing: let a = 1\nDoing: print a\n"
	if trace.String() != want {
		t.Errorf("trace %q, want %q", trace.String(), want)
	}
}

func TestStepLimit(t *testing.T) {
	prog, err := parser.ParseString("", "top: let a = 1\nif 1 goto top")
	if err != nil {
		t.Fatal(err)
	}
	in := New(prog, Config{Stdout: &bytes.Buffer{}, MaxSteps: 10})
	err = in.Run()
	var sl *StepLimitError
	if !errors.As(err, &sl) {
		t.Fatalf("expected step limit error, got %v", err)
	}
	if sl.Limit != 10 || sl.Line != 1 || in.Steps() != 10 {
		t.Errorf("unexpected limit state: %+v after %d steps", sl, in.Steps())
	}
}

func TestPrompt(t *testing.T) {
	prog, err := parser.ParseString("", "input a\nprint a")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	conf := Config{Stdin: strings.NewReader("5\n"), Stdout: &out, Prompt: "? "}
	if err := New(prog, conf).Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "? 5.0 \n" {
		t.Errorf("got %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPromptWriteError(t *testing.T) {
	prog, err := parser.ParseString("", "input a\n")
	if err != nil {
		t.Fatal(err)
	}
	in := New(prog, Config{Stdin: strings.NewReader("5\n"), Stdout: failingWriter{}, Prompt: "? "})
	err = in.Run()
	if err == nil || err.Error() != "closed" {
		t.Fatalf("expected the write error, got %v", err)
	}
	if _, ok := in.Symbols().Get("a"); ok {
		t.Errorf("input should not have been read")
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{0.5, "0.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{123.25, "123.25"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e16, "1.5e+16"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{1e300, "1e+300"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.v); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestSymbolTable(t *testing.T) {
	s := NewSymbolTable()
	s.Set("loop", 3)
	s.DefineLabel("loop", 7)
	if v, ok := s.Get("loop"); !ok || v != 3 {
		t.Errorf("variable loop = %v, %v", v, ok)
	}
	if l, ok := s.Label("loop"); !ok || l != 7 {
		t.Errorf("label loop = %v, %v", l, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Errorf("missing variable found")
	}
	vars := s.Vars()
	vars["loop"] = 0
	if v, _ := s.Get("loop"); v != 3 {
		t.Errorf("Vars should return a copy")
	}
}
