package internal

import (
	"fmt"

	"github.com/xiaobogaga/jackc/vmcode"
)

// CompilationContext holds everything the code generator knows while it walks one class.
// A new context is made for every class so nothing leaks from one class to the next.
type CompilationContext struct {
	className    string
	symbols      *SymbolTable
	instructions []vmcode.Instruction
	subroutine   *subroutineContext
}

func NewCompilationContext() *CompilationContext {
	return &CompilationContext{symbols: NewSymbolTable()}
}

func (ctx *CompilationContext) Instructions() []vmcode.Instruction {
	return ctx.instructions
}

func (ctx *CompilationContext) Symbols() *SymbolTable {
	return ctx.symbols
}

// subroutineContext is the state of the subroutine under generation. Label nonces restart
// at 0 for every subroutine, labels only have to be unique inside one function.
type subroutineContext struct {
	kind       SubroutineKind
	name       string
	labelNonce int
}

// enterSubroutine drops the previous argument and local symbols and starts a new subroutine.
func (ctx *CompilationContext) enterSubroutine(kind SubroutineKind, name string) {
	ctx.symbols.ResetSubroutineScope()
	ctx.subroutine = &subroutineContext{kind: kind, name: name}
}

// nextLabels returns two labels sharing one construct, like IF_TRUE0 and IF_END1.
func (ctx *CompilationContext) nextLabels(first, second string) (string, string) {
	nonce := ctx.subroutine.labelNonce
	ctx.subroutine.labelNonce += 2
	return fmt.Sprintf("%s%d", first, nonce), fmt.Sprintf("%s%d", second, nonce+1)
}

// hasReceiver tells whether pointer 0 holds an object in the current subroutine.
func (ctx *CompilationContext) hasReceiver() bool {
	return ctx.subroutine != nil && ctx.subroutine.kind != FunctionKind
}

func (ctx *CompilationContext) emit(ins vmcode.Instruction, line int) error {
	if err := ins.Validate(); err != nil {
		return makeCodegenError(line, "%s", err.Error())
	}
	ctx.instructions = append(ctx.instructions, ins)
	return nil
}

func (ctx *CompilationContext) push(segment vmcode.Segment, index int, line int) error {
	return ctx.emit(vmcode.PushInstruction(segment, index), line)
}

func (ctx *CompilationContext) pop(segment vmcode.Segment, index int, line int) error {
	return ctx.emit(vmcode.PopInstruction(segment, index), line)
}

// Instructions below can not fail validation, so they are appended directly.

func (ctx *CompilationContext) arithmetic(command vmcode.Command) {
	ctx.instructions = append(ctx.instructions, vmcode.ArithmeticInstruction(command))
}

func (ctx *CompilationContext) label(name string) {
	ctx.instructions = append(ctx.instructions, vmcode.LabelInstruction(name))
}

func (ctx *CompilationContext) gotoLabel(name string) {
	ctx.instructions = append(ctx.instructions, vmcode.GotoInstruction(name))
}

func (ctx *CompilationContext) ifGoto(name string) {
	ctx.instructions = append(ctx.instructions, vmcode.IfGotoInstruction(name))
}

func (ctx *CompilationContext) call(name string, nArgs int) {
	ctx.instructions = append(ctx.instructions, vmcode.CallInstruction(name, nArgs))
}
