package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/vyPal/tli/lib/parser"
)

// compileStatement emits one line and terminates its last block with a
// branch to the next line or, for a taken goto, to the label's line.
func (ctx *Context) compileStatement(s parser.Stmt) error {
	next := ctx.blockFor(ctx.line + 1)

	switch s := s.(type) {
	case *parser.Let:
		val, err := ctx.compileExpression(s.Expr)
		if err != nil {
			return err
		}
		slot := ctx.lookupVariable(s.Target)
		ctx.NewStore(val, slot.value)
		ctx.NewStore(constant.True, slot.set)
	case *parser.If:
		return ctx.compileIf(s, next)
	case *parser.Print:
		if err := ctx.compilePrint(s); err != nil {
			return err
		}
	case *parser.Input:
		val := ctx.NewCall(ctx.rt.input, lineConst(ctx.line))
		slot := ctx.lookupVariable(s.Target)
		ctx.NewStore(val, slot.value)
		ctx.NewStore(constant.True, slot.set)
	default:
		return fmt.Errorf("line %d: unknown statement %T", ctx.line, s)
	}

	ctx.NewBr(next)
	return nil
}

func (ctx *Context) compileIf(s *parser.If, next *ir.Block) error {
	cond, err := ctx.compileExpression(s.Cond)
	if err != nil {
		return err
	}
	taken := ctx.NewFCmp(enum.FPredUNE, cond, constant.NewFloat(types.Double, 0))

	var target *ir.Block
	if line, ok := ctx.prog.Label(s.Label); ok {
		target = ctx.blockFor(line)
	} else {
		target = ctx.main.NewBlock("")
		target.NewCall(ctx.rt.illegalGoto, ctx.cString(s.Label), lineConst(ctx.line))
		target.NewUnreachable()
	}
	ctx.NewCondBr(taken, target, next)
	return nil
}

func (ctx *Context) compilePrint(s *parser.Print) error {
	for _, item := range s.Items {
		if item.Literal {
			ctx.NewCall(ctx.rt.printStr, ctx.cString(item.Text))
			continue
		}
		val, err := ctx.compileExpression(item.Expr)
		if err != nil {
			return err
		}
		ctx.NewCall(ctx.rt.printNum, val)
	}
	ctx.NewCall(ctx.rt.printEnd)
	return nil
}
