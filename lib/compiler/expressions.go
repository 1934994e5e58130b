package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/tli/lib/parser"
)

var fpreds = map[parser.Op]enum.FPred{
	parser.Less:      enum.FPredOLT,
	parser.Greater:   enum.FPredOGT,
	parser.LessEq:    enum.FPredOLE,
	parser.GreaterEq: enum.FPredOGE,
	parser.Equal:     enum.FPredOEQ,
	parser.NotEqual:  enum.FPredUNE,
}

func (ctx *Context) compileExpression(e parser.Expr) (value.Value, error) {
	switch e := e.(type) {
	case *parser.Variable:
		return ctx.compileVariable(e), nil
	case *parser.Number:
		v, err := parser.ParseNumber(e.Text)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid number %q", ctx.line, e.Text)
		}
		return constant.NewFloat(types.Double, v), nil
	case *parser.Binary:
		return ctx.compileBinary(e)
	case *parser.StringLit:
		ctx.fail(ctx.rt.syntaxError, lineConst(ctx.line))
		return constant.NewFloat(types.Double, 0), nil
	}
	return nil, fmt.Errorf("line %d: unknown expression %T", ctx.line, e)
}

// compileVariable loads a variable after checking that it has been assigned.
func (ctx *Context) compileVariable(v *parser.Variable) value.Value {
	slot := ctx.lookupVariable(v.Name)
	set := ctx.NewLoad(types.I1, slot.set)

	ok := ctx.main.NewBlock("")
	bad := ctx.main.NewBlock("")
	ctx.NewCondBr(set, ok, bad)

	bad.NewCall(ctx.rt.undefined, ctx.cString(v.Name), lineConst(ctx.line))
	bad.NewUnreachable()

	ctx.Block = ok
	return ctx.NewLoad(types.Double, slot.value)
}

func (ctx *Context) compileBinary(b *parser.Binary) (value.Value, error) {
	left, err := ctx.compileExpression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := ctx.compileExpression(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case parser.Add:
		return ctx.NewFAdd(left, right), nil
	case parser.Sub:
		return ctx.NewFSub(left, right), nil
	case parser.Mul:
		return ctx.NewFMul(left, right), nil
	case parser.Div:
		return ctx.NewFDiv(left, right), nil
	}
	pred, ok := fpreds[b.Op]
	if !ok {
		return nil, fmt.Errorf("line %d: unknown operator %s", ctx.line, b.Op)
	}
	cmp := ctx.NewFCmp(pred, left, right)
	return ctx.NewUIToFP(cmp, types.Double), nil
}
