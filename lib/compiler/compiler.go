// Package compiler translates a loaded program into an LLVM IR module.
//
// Every source line becomes a basic block and a goto becomes a branch, so
// the generated code follows the same line-number control flow as the
// interpreter. Printing, input and fatal errors are calls into a small C
// runtime that is linked with the module.
package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/vyPal/tli/lib/parser"
)

// Context is the block code is currently being emitted into, along with the
// source line being compiled. Checks that may fail split the block, so
// compile methods move Block forward as they go.
type Context struct {
	*ir.Block
	*Compiler
	line int
}

type variable struct {
	value *ir.Global
	set   *ir.Global
}

type Compiler struct {
	Module *ir.Module

	prog    *parser.Program
	main    *ir.Func
	lines   []*ir.Block
	exit    *ir.Block
	vars    map[string]*variable
	strings map[string]*ir.Global
	rt      runtimeFuncs
}

func NewCompiler(prog *parser.Program) *Compiler {
	return &Compiler{
		Module:  ir.NewModule(),
		prog:    prog,
		vars:    make(map[string]*variable),
		strings: make(map[string]*ir.Global),
	}
}

// Compile emits the whole program into c.Module.
func (c *Compiler) Compile() error {
	if c.prog.Name != "" {
		c.Module.SourceFilename = c.prog.Name
	}
	c.rt = declareRuntime(c.Module)

	c.main = c.Module.NewFunc("main", types.I32)
	entry := c.main.NewBlock("entry")
	c.lines = make([]*ir.Block, c.prog.Len())
	for i := range c.lines {
		c.lines[i] = c.main.NewBlock(fmt.Sprintf("line%d", i+1))
	}
	c.exit = c.main.NewBlock("exit")
	c.exit.NewRet(constant.NewInt(types.I32, 0))

	entry.NewBr(c.blockFor(1))

	for line := 1; line <= c.prog.Len(); line++ {
		ctx := &Context{Block: c.lines[line-1], Compiler: c, line: line}
		s := c.prog.At(line)
		if s == nil {
			ctx.NewBr(c.blockFor(line + 1))
			continue
		}
		if err := ctx.compileStatement(s); err != nil {
			return err
		}
	}
	return nil
}

// blockFor returns the block for a line, or the exit block past the end.
func (c *Compiler) blockFor(line int) *ir.Block {
	if line < 1 || line > len(c.lines) {
		return c.exit
	}
	return c.lines[line-1]
}

func (c *Compiler) lookupVariable(name string) *variable {
	if v, ok := c.vars[name]; ok {
		return v
	}
	id := len(c.vars)
	v := &variable{
		value: c.Module.NewGlobalDef(fmt.Sprintf("var.%d", id), constant.NewFloat(types.Double, 0)),
		set:   c.Module.NewGlobalDef(fmt.Sprintf("set.%d", id), constant.False),
	}
	c.vars[name] = v
	return v
}
