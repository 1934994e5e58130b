package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// runtimeFuncs are the entry points of c_files/tl_runtime.c.
type runtimeFuncs struct {
	printStr    *ir.Func
	printNum    *ir.Func
	printEnd    *ir.Func
	input       *ir.Func
	undefined   *ir.Func
	illegalGoto *ir.Func
	syntaxError *ir.Func
}

func declareRuntime(m *ir.Module) runtimeFuncs {
	noreturn := func(f *ir.Func) *ir.Func {
		f.FuncAttrs = append(f.FuncAttrs, enum.FuncAttrNoReturn)
		return f
	}
	return runtimeFuncs{
		printStr: m.NewFunc("tl_print_str", types.Void, ir.NewParam("s", types.I8Ptr)),
		printNum: m.NewFunc("tl_print_num", types.Void, ir.NewParam("v", types.Double)),
		printEnd: m.NewFunc("tl_print_end", types.Void),
		input:    m.NewFunc("tl_input", types.Double, ir.NewParam("line", types.I32)),
		undefined: noreturn(m.NewFunc("tl_undefined", types.Void,
			ir.NewParam("name", types.I8Ptr), ir.NewParam("line", types.I32))),
		illegalGoto: noreturn(m.NewFunc("tl_illegal_goto", types.Void,
			ir.NewParam("label", types.I8Ptr), ir.NewParam("line", types.I32))),
		syntaxError: noreturn(m.NewFunc("tl_syntax_error", types.Void, ir.NewParam("line", types.I32))),
	}
}

// cString returns a pointer to a NUL terminated constant holding s. Equal
// strings share one global.
func (c *Compiler) cString(s string) value.Value {
	g, ok := c.strings[s]
	if !ok {
		g = c.Module.NewGlobalDef(fmt.Sprintf("str.%d", len(c.strings)), constant.NewCharArrayFromString(s+"\x00"))
		g.Immutable = true
		c.strings[s] = g
	}
	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}

func lineConst(line int) *constant.Int {
	return constant.NewInt(types.I32, int64(line))
}

// fail ends the current block with a call to a runtime function that does
// not return, then continues in a fresh block nothing branches to.
func (ctx *Context) fail(f *ir.Func, args ...value.Value) {
	ctx.NewCall(f, args...)
	ctx.NewUnreachable()
	ctx.Block = ctx.main.NewBlock("")
}
