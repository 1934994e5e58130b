package compiler

import (
	"strings"
	"testing"

	"github.com/vyPal/tli/lib/parser"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseString("test.tl", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	comp := NewCompiler(prog)
	if err := comp.Compile(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return comp.Module.String()
}

func TestCompileCountingLoop(t *testing.T) {
	ll := compile(t, "let x = 0\nloop: let x = x + 1\nprint x\nif x < 5 goto loop\n")

	for _, want := range []string{
		"define i32 @main()",
		"declare void @tl_print_num(double",
		"declare void @tl_undefined(i8*",
		"line1:",
		"line4:",
		"exit:",
		"ret i32 0",
		"fadd double",
		"fcmp olt double",
		"fcmp une double",
		"br label %line2",
		"call void @tl_print_end()",
		"@var.0 = global double",
		"@set.0 = global i1 false",
	} {
		if !strings.Contains(ll, want) {
			t.Errorf("expected IR to contain %q\n%s", want, ll)
		}
	}
	if strings.Contains(ll, "call void @tl_illegal_goto") {
		t.Errorf("no illegal goto call expected for a defined label")
	}
}

func TestCompileIllegalGoto(t *testing.T) {
	ll := compile(t, "if 1 < 2 goto nowhere")
	if !strings.Contains(ll, "call void @tl_illegal_goto") {
		t.Errorf("expected a call to tl_illegal_goto\n%s", ll)
	}
	if !strings.Contains(ll, `c"nowhere\00"`) {
		t.Errorf("expected the label name as a string constant\n%s", ll)
	}
}

func TestCompilePrintAndInput(t *testing.T) {
	ll := compile(t, "input a\nprint \"value:\", a, \"value:\"")
	if !strings.Contains(ll, "call double @tl_input(i32 1)") {
		t.Errorf("expected input call\n%s", ll)
	}
	if n := strings.Count(ll, `c"value:\00"`); n != 1 {
		t.Errorf("expected one shared string constant, found %d\n%s", n, ll)
	}
	if n := strings.Count(ll, "call void @tl_print_str"); n != 2 {
		t.Errorf("expected two string prints, found %d", n)
	}
}

func TestCompileStringInArithmetic(t *testing.T) {
	ll := compile(t, `let a = "x" + 1`)
	if !strings.Contains(ll, "call void @tl_syntax_error(i32 1)") {
		t.Errorf("expected a syntax error call\n%s", ll)
	}
}

func TestCompileEmptyProgram(t *testing.T) {
	ll := compile(t, "")
	if !strings.Contains(ll, "br label %exit") {
		t.Errorf("empty program should branch straight to exit\n%s", ll)
	}
}
