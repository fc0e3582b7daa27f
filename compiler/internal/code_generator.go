package internal

import (
	"github.com/xiaobogaga/jackc/vmcode"
)

var binaryOpCommands = map[string]vmcode.Command{
	"+": vmcode.Add,
	"-": vmcode.Sub,
	"&": vmcode.And,
	"|": vmcode.Or,
	"<": vmcode.Lt,
	">": vmcode.Gt,
	"=": vmcode.Eq,
}

// Multiply and divide have no vm command, they are calls into the Math class.
var binaryOpCalls = map[string]string{
	"*": "Math.multiply",
	"/": "Math.divide",
}

// GenerateClass walks class and appends its instructions to ctx. ctx should be new.
func GenerateClass(ctx *CompilationContext, class *ClassAst) error {
	ctx.className = class.Name
	for _, dec := range class.ClassVarDecs {
		kind := StaticKind
		if dec.Kind == FieldClassVar {
			kind = FieldKind
		}
		for _, name := range dec.Names {
			ctx.symbols.Declare(name, kind, dec.Type.Name)
		}
	}
	for _, subroutine := range class.SubroutineDecs {
		err := ctx.generateSubroutineCode(subroutine)
		if err != nil {
			return err
		}
	}
	return nil
}

// function className.subroutineName nLocals
// constructor: push constant nFields, call Memory.alloc 1, pop pointer 0
// method: push argument 0, pop pointer 0
// statements
func (ctx *CompilationContext) generateSubroutineCode(subroutine *SubroutineDecAst) error {
	ctx.enterSubroutine(subroutine.Kind, subroutine.Name)
	// The receiver of a method is its first argument.
	if subroutine.Kind == MethodKind {
		ctx.symbols.Declare("this", ArgumentKind, ctx.className)
	}
	for _, param := range subroutine.Parameters {
		ctx.symbols.Declare(param.Name, ArgumentKind, param.Type.Name)
	}
	nLocals := 0
	for _, varDec := range subroutine.Body.VarDecs {
		for _, name := range varDec.Names {
			ctx.symbols.Declare(name, LocalKind, varDec.Type.Name)
			nLocals++
		}
	}
	err := ctx.emit(vmcode.FunctionInstruction(ctx.className+"."+subroutine.Name, nLocals), subroutine.Line)
	if err != nil {
		return err
	}
	switch subroutine.Kind {
	case ConstructorKind:
		err = ctx.push(vmcode.Constant, ctx.symbols.Count(FieldKind), subroutine.Line)
		if err != nil {
			return err
		}
		ctx.call("Memory.alloc", 1)
		err = ctx.pop(vmcode.Pointer, 0, subroutine.Line)
	case MethodKind:
		err = ctx.push(vmcode.Argument, 0, subroutine.Line)
		if err != nil {
			return err
		}
		err = ctx.pop(vmcode.Pointer, 0, subroutine.Line)
	}
	if err != nil {
		return err
	}
	return ctx.generateStatementsCode(subroutine.Body.Statements)
}

func (ctx *CompilationContext) generateStatementsCode(statements []StatementAst) error {
	for _, stm := range statements {
		err := ctx.generateStatementCode(stm)
		if err != nil {
			return err
		}
	}
	return nil
}

func (ctx *CompilationContext) generateStatementCode(statement StatementAst) error {
	switch stm := statement.(type) {
	case *LetStatementAst:
		return ctx.generateLetStatementCode(stm)
	case *IfStatementAst:
		return ctx.generateIfStatementCode(stm)
	case *WhileStatementAst:
		return ctx.generateWhileStatementCode(stm)
	case *DoStatementAst:
		return ctx.generateDoStatementCode(stm)
	case *ReturnStatementAst:
		return ctx.generateReturnStatementCode(stm)
	}
	return makeCodegenError(statement.Line(), "unknown statement %T", statement)
}

func (ctx *CompilationContext) resolve(name string, line int) (Symbol, error) {
	symbol, ok := ctx.symbols.Resolve(name)
	if !ok {
		return symbol, makeCodegenError(line, "undeclared identifier %s", name)
	}
	return symbol, nil
}

// let varName = expression:
// expression
// pop segment index
//
// let varName[index] = expression:
// index expression
// push varName
// add
// expression
// pop temp 0
// pop pointer 1
// push temp 0
// pop that 0
// The value is parked in temp 0 since evaluating it may itself move pointer 1.
func (ctx *CompilationContext) generateLetStatementCode(stm *LetStatementAst) error {
	switch target := stm.Target.(type) {
	case *VarNameTerm:
		symbol, err := ctx.resolve(target.Name, target.line)
		if err != nil {
			return err
		}
		err = ctx.generateExpressionCode(stm.Value)
		if err != nil {
			return err
		}
		return ctx.pop(symbol.Kind.Segment(), symbol.Index, stm.line)
	case *ArrayAccessTerm:
		err := ctx.generateArrayAddressCode(target)
		if err != nil {
			return err
		}
		err = ctx.generateExpressionCode(stm.Value)
		if err != nil {
			return err
		}
		steps := []struct {
			pop     bool
			segment vmcode.Segment
			index   int
		}{
			{true, vmcode.Temp, 0},
			{true, vmcode.Pointer, 1},
			{false, vmcode.Temp, 0},
			{true, vmcode.That, 0},
		}
		for _, step := range steps {
			if step.pop {
				err = ctx.pop(step.segment, step.index, stm.line)
			} else {
				err = ctx.push(step.segment, step.index, stm.line)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	return makeCodegenError(stm.line, "invalid let target %T", stm.Target)
}

// condition
// if-goto IF_TRUEn
// else statements
// goto IF_ENDn+1
// label IF_TRUEn
// if statements
// label IF_ENDn+1
// The goto is there even without an else branch, otherwise a false condition would fall
// into the if statements.
func (ctx *CompilationContext) generateIfStatementCode(stm *IfStatementAst) error {
	err := ctx.generateExpressionCode(stm.Condition)
	if err != nil {
		return err
	}
	trueLabel, endLabel := ctx.nextLabels("IF_TRUE", "IF_END")
	ctx.ifGoto(trueLabel)
	err = ctx.generateStatementsCode(stm.ElseStatements)
	if err != nil {
		return err
	}
	ctx.gotoLabel(endLabel)
	ctx.label(trueLabel)
	err = ctx.generateStatementsCode(stm.IfTrueStatements)
	if err != nil {
		return err
	}
	ctx.label(endLabel)
	return nil
}

// label WHILE_EXPn
// condition
// not
// if-goto WHILE_ENDn+1
// statements
// goto WHILE_EXPn
// label WHILE_ENDn+1
func (ctx *CompilationContext) generateWhileStatementCode(stm *WhileStatementAst) error {
	expLabel, endLabel := ctx.nextLabels("WHILE_EXP", "WHILE_END")
	ctx.label(expLabel)
	err := ctx.generateExpressionCode(stm.Condition)
	if err != nil {
		return err
	}
	ctx.arithmetic(vmcode.Not)
	ctx.ifGoto(endLabel)
	err = ctx.generateStatementsCode(stm.Statements)
	if err != nil {
		return err
	}
	ctx.gotoLabel(expLabel)
	ctx.label(endLabel)
	return nil
}

// The returned value of a do call is thrown away into temp 0.
func (ctx *CompilationContext) generateDoStatementCode(stm *DoStatementAst) error {
	err := ctx.generateSubroutineCallCode(stm.Call)
	if err != nil {
		return err
	}
	return ctx.pop(vmcode.Temp, 0, stm.line)
}

// A void subroutine still returns a value, 0.
func (ctx *CompilationContext) generateReturnStatementCode(stm *ReturnStatementAst) error {
	var err error
	if stm.Value != nil {
		err = ctx.generateExpressionCode(stm.Value)
	} else {
		err = ctx.push(vmcode.Constant, 0, stm.line)
	}
	if err != nil {
		return err
	}
	ctx.instructions = append(ctx.instructions, vmcode.ReturnInstruction())
	return nil
}

// generateExpressionCode: for example a + b * c
// push a
// push b
// add
// push c
// call Math.multiply 2
// Jack has no operator priority, terms are folded from left to right.
func (ctx *CompilationContext) generateExpressionCode(expr *ExpressionAst) error {
	err := ctx.generateTermCode(expr.Head)
	if err != nil {
		return err
	}
	for _, opTerm := range expr.Tail {
		err = ctx.generateTermCode(opTerm.Term)
		if err != nil {
			return err
		}
		err = ctx.generateOpCode(opTerm.Op)
		if err != nil {
			return err
		}
	}
	return nil
}

func (ctx *CompilationContext) generateOpCode(op OpAst) error {
	if command, ok := binaryOpCommands[op.Symbol]; ok {
		ctx.arithmetic(command)
		return nil
	}
	if name, ok := binaryOpCalls[op.Symbol]; ok {
		ctx.call(name, 2)
		return nil
	}
	return makeCodegenError(op.Line, "unknown operator %s", op.Symbol)
}

func (ctx *CompilationContext) generateTermCode(term TermAst) error {
	switch t := term.(type) {
	case *IntegerConstantTerm:
		return ctx.push(vmcode.Constant, t.Value, t.line)
	case *StringConstantTerm:
		return ctx.generateStringConstantCode(t)
	case *KeywordConstantTerm:
		return ctx.generateKeywordConstantCode(t)
	case *VarNameTerm:
		symbol, err := ctx.resolve(t.Name, t.line)
		if err != nil {
			return err
		}
		return ctx.push(symbol.Kind.Segment(), symbol.Index, t.line)
	case *ArrayAccessTerm:
		err := ctx.generateArrayAddressCode(t)
		if err != nil {
			return err
		}
		err = ctx.pop(vmcode.Pointer, 1, t.line)
		if err != nil {
			return err
		}
		return ctx.push(vmcode.That, 0, t.line)
	case *SubroutineCallTerm:
		return ctx.generateSubroutineCallCode(t)
	case *SubExpressionTerm:
		return ctx.generateExpressionCode(t.Expr)
	case *UnaryOpTerm:
		err := ctx.generateTermCode(t.Term)
		if err != nil {
			return err
		}
		switch t.Op.Symbol {
		case "-":
			ctx.arithmetic(vmcode.Neg)
		case "~":
			ctx.arithmetic(vmcode.Not)
		default:
			return makeCodegenError(t.Op.Line, "unknown unary operator %s", t.Op.Symbol)
		}
		return nil
	}
	return makeCodegenError(term.Line(), "unknown term %T", term)
}

// index expression
// push base
// add
func (ctx *CompilationContext) generateArrayAddressCode(term *ArrayAccessTerm) error {
	symbol, err := ctx.resolve(term.Name, term.line)
	if err != nil {
		return err
	}
	err = ctx.generateExpressionCode(term.Index)
	if err != nil {
		return err
	}
	err = ctx.push(symbol.Kind.Segment(), symbol.Index, term.line)
	if err != nil {
		return err
	}
	ctx.arithmetic(vmcode.Add)
	return nil
}

// push constant len
// call String.new 1
// push constant c
// call String.appendChar 2
// ...
// String.appendChar returns the string, so it stays on the stack for the next character.
func (ctx *CompilationContext) generateStringConstantCode(term *StringConstantTerm) error {
	err := ctx.push(vmcode.Constant, len(term.Value), term.line)
	if err != nil {
		return err
	}
	ctx.call("String.new", 1)
	for i := 0; i < len(term.Value); i++ {
		err = ctx.push(vmcode.Constant, int(term.Value[i]), term.line)
		if err != nil {
			return err
		}
		ctx.call("String.appendChar", 2)
	}
	return nil
}

// false and null are 0, true is -1 (not 0), this is the object in pointer 0.
func (ctx *CompilationContext) generateKeywordConstantCode(term *KeywordConstantTerm) error {
	switch term.Keyword {
	case "true":
		err := ctx.push(vmcode.Constant, 0, term.line)
		if err != nil {
			return err
		}
		ctx.arithmetic(vmcode.Not)
		return nil
	case "false", "null":
		return ctx.push(vmcode.Constant, 0, term.line)
	case "this":
		return ctx.push(vmcode.Pointer, 0, term.line)
	}
	return makeCodegenError(term.line, "unknown keyword constant %s", term.Keyword)
}

// Three kinds of calls:
// * var.name(args): var is a declared variable, it is pushed as the receiver and the call
//   goes to Type.name with nArgs+1.
// * name(args): a method of the current class, inside a method or constructor pointer 0 is
//   pushed as the receiver. Inside a function there is no receiver.
// * Class.name(args): a function or constructor of another class, no receiver.
func (ctx *CompilationContext) generateSubroutineCallCode(call *SubroutineCallTerm) error {
	nArgs := len(call.Arguments)
	var target string
	switch {
	case call.Qualifier == "":
		target = ctx.className + "." + call.Name
		if ctx.hasReceiver() {
			err := ctx.push(vmcode.Pointer, 0, call.line)
			if err != nil {
				return err
			}
			nArgs++
		}
	default:
		symbol, ok := ctx.symbols.Resolve(call.Qualifier)
		if !ok {
			target = call.Qualifier + "." + call.Name
			break
		}
		err := ctx.push(symbol.Kind.Segment(), symbol.Index, call.line)
		if err != nil {
			return err
		}
		target = symbol.Type + "." + call.Name
		nArgs++
	}
	for _, arg := range call.Arguments {
		err := ctx.generateExpressionCode(arg)
		if err != nil {
			return err
		}
	}
	ctx.call(target, nArgs)
	return nil
}
