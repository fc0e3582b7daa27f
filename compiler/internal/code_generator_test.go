package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaobogaga/jackc/vmcode"
)

func compileToLines(t *testing.T, source string) []string {
	class, err := CompileClass(source)
	require.Nil(t, err)
	return vmcode.Lines(class.Instructions)
}

func vmLines(code string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(code), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func TestCodeGenerator_Constructor(t *testing.T) {
	source := `class Point {
    field int x, y;
    constructor Point new(int ax, int ay) {
        let x = ax;
        let y = ay;
        return this;
    }
}`
	expected := `
function Point.new 0
push constant 2
call Memory.alloc 1
pop pointer 0
push argument 0
pop this 0
push argument 1
pop this 1
push pointer 0
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_Method(t *testing.T) {
	source := `class Counter {
    static int total;
    field int value;
    method int add(int delta) {
        let value = value + delta;
        let total = total + 1;
        return value;
    }
}`
	expected := `
function Counter.add 0
push argument 0
pop pointer 0
push this 0
push argument 1
add
pop this 0
push static 0
push constant 1
add
pop static 0
push this 0
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_IfElse(t *testing.T) {
	source := `class T {
    function void f(boolean x) {
        var int y;
        if (x) { let y = 1; } else { let y = 2; }
        if (x) { let y = 3; }
        return;
    }
}`
	expected := `
function T.f 1
push argument 0
if-goto IF_TRUE0
push constant 2
pop local 0
goto IF_END1
label IF_TRUE0
push constant 1
pop local 0
label IF_END1
push argument 0
if-goto IF_TRUE2
goto IF_END3
label IF_TRUE2
push constant 3
pop local 0
label IF_END3
push constant 0
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_While(t *testing.T) {
	source := `class W {
    function int f() {
        var int i;
        while (i < 10) { let i = i + 1; }
        return i;
    }
    function int g() {
        while (true) { return 1; }
        return 0;
    }
}`
	expected := `
function W.f 1
label WHILE_EXP0
push local 0
push constant 10
lt
not
if-goto WHILE_END1
push local 0
push constant 1
add
pop local 0
goto WHILE_EXP0
label WHILE_END1
push local 0
return
function W.g 0
label WHILE_EXP0
push constant 0
not
not
if-goto WHILE_END1
push constant 1
return
goto WHILE_EXP0
label WHILE_END1
push constant 0
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_NestedLabelsAreUnique(t *testing.T) {
	source := `class N {
    function void f(int n) {
        while (n > 0) {
            if (n = 1) { let n = 0; }
            while (n > 5) { let n = n - 1; }
        }
        return;
    }
}`
	lines := compileToLines(t, source)
	seen := map[string]bool{}
	for _, line := range lines {
		if !strings.HasPrefix(line, "label ") {
			continue
		}
		assert.False(t, seen[line], line)
		seen[line] = true
	}
	assert.Equal(t, 6, len(seen))
	assert.True(t, seen["label WHILE_EXP0"])
	assert.True(t, seen["label IF_TRUE2"])
	assert.True(t, seen["label WHILE_END5"])
}

func TestCodeGenerator_Expressions(t *testing.T) {
	testData := []struct {
		expression string
		expected   string
	}{
		{expression: "10 - 3 * 2", expected: "push constant 10\npush constant 3\nsub\npush constant 2\ncall Math.multiply 2"},
		{expression: "10 - (3 * 2)", expected: "push constant 10\npush constant 3\npush constant 2\ncall Math.multiply 2\nsub"},
		{expression: "8 / 2", expected: "push constant 8\npush constant 2\ncall Math.divide 2"},
		{expression: "a & b | a", expected: "push argument 0\npush argument 1\nand\npush argument 0\nor"},
		{expression: "a < b = (a > b)", expected: "push argument 0\npush argument 1\nlt\npush argument 0\npush argument 1\ngt\neq"},
		{expression: "-a", expected: "push argument 0\nneg"},
		{expression: "~a", expected: "push argument 0\nnot"},
		{expression: "true", expected: "push constant 0\nnot"},
		{expression: "false", expected: "push constant 0"},
		{expression: "null", expected: "push constant 0"},
		{expression: `"hi"`, expected: "push constant 2\ncall String.new 1\npush constant 104\ncall String.appendChar 2\npush constant 105\ncall String.appendChar 2"},
		{expression: `""`, expected: "push constant 0\ncall String.new 1"},
		{expression: "a[b]", expected: "push argument 1\npush argument 0\nadd\npop pointer 1\npush that 0"},
	}
	for _, data := range testData {
		source := "class E { function int f(int a, int b) { return " + data.expression + "; } }"
		lines := compileToLines(t, source)
		expected := append([]string{"function E.f 0"}, vmLines(data.expected)...)
		expected = append(expected, "return")
		assert.Equal(t, expected, lines, data.expression)
	}
}

func TestCodeGenerator_ArrayLet(t *testing.T) {
	source := `class A {
    function void copy() {
        var Array a, b;
        var int i, j;
        let a[i] = b[j];
        return;
    }
}`
	expected := `
function A.copy 4
push local 2
push local 0
add
push local 3
push local 1
add
pop pointer 1
push that 0
pop temp 0
pop pointer 1
push temp 0
pop that 0
push constant 0
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_Calls(t *testing.T) {
	source := `class C {
    field Point p;
    method void m() {
        do p.move(1);
        do draw();
        do Screen.clear();
        return;
    }
    function void f() {
        var Point q;
        do q.move();
        do helper(2);
        return;
    }
    constructor C new() {
        do draw();
        return this;
    }
}`
	expected := `
function C.m 0
push argument 0
pop pointer 0
push this 0
push constant 1
call Point.move 2
pop temp 0
push pointer 0
call C.draw 1
pop temp 0
call Screen.clear 0
pop temp 0
push constant 0
return
function C.f 1
push local 0
call Point.move 1
pop temp 0
push constant 2
call C.helper 1
pop temp 0
push constant 0
return
function C.new 0
push constant 1
call Memory.alloc 1
pop pointer 0
push pointer 0
call C.draw 1
pop temp 0
push pointer 0
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_CallInExpression(t *testing.T) {
	source := "class M { function int f(int x) { return Math.max(x, 2) + g(); } }"
	expected := `
function M.f 0
push argument 0
push constant 2
call Math.max 2
call M.g 0
add
return`
	assert.Equal(t, vmLines(expected), compileToLines(t, source))
}

func TestCodeGenerator_Errors(t *testing.T) {
	testData := []struct {
		source      string
		expectedMsg string
	}{
		{source: "class U { function void f() { let z = 1; return; } }", expectedMsg: "undeclared identifier z"},
		{source: "class U { function int f() { return z; } }", expectedMsg: "undeclared identifier z"},
		{source: "class U { function int f() { return z[0]; } }", expectedMsg: "undeclared identifier z"},
		{source: "class U { function void f() { let z[0] = 1; return; } }", expectedMsg: "undeclared identifier z"},
		// Arguments of one subroutine are gone in the next one.
		{source: "class U { function void f(int a) { return; } function int g() { return a; } }", expectedMsg: "undeclared identifier a"},
	}
	for _, data := range testData {
		class, err := CompileClass(data.source)
		assert.Nil(t, class)
		require.NotNil(t, err, data.source)
		compileErr := err.(*CompileError)
		assert.Equal(t, CodegenError, compileErr.Category)
		assert.Equal(t, 1, compileErr.Line)
		assert.Contains(t, compileErr.Msg, data.expectedMsg)
	}
}

func TestCodeGenerator_InvalidAst(t *testing.T) {
	subroutine := func(value *ExpressionAst) *ClassAst {
		return &ClassAst{Name: "X", SubroutineDecs: []*SubroutineDecAst{{
			Kind: FunctionKind,
			Name: "f",
			Body: &SubroutineBodyAst{Statements: []StatementAst{&ReturnStatementAst{Value: value, line: 4}}},
		}}}
	}
	testData := []struct {
		expr        *ExpressionAst
		expectedMsg string
	}{
		{
			expr:        &ExpressionAst{Head: &IntegerConstantTerm{Value: 1}, Tail: []OpTerm{{Op: OpAst{Symbol: "%", Line: 4}, Term: &IntegerConstantTerm{Value: 2}}}},
			expectedMsg: "unknown operator %",
		},
		{
			expr:        &ExpressionAst{Head: &UnaryOpTerm{Op: OpAst{Symbol: "!", Line: 4}, Term: &IntegerConstantTerm{Value: 2}}},
			expectedMsg: "unknown unary operator !",
		},
		{
			expr:        &ExpressionAst{Head: &IntegerConstantTerm{Value: 40000, line: 4}},
			expectedMsg: "constant is larger than 32767",
		},
		{
			expr:        &ExpressionAst{Head: &KeywordConstantTerm{Keyword: "self", line: 4}},
			expectedMsg: "unknown keyword constant self",
		},
	}
	for _, data := range testData {
		err := GenerateClass(NewCompilationContext(), subroutine(data.expr))
		require.NotNil(t, err)
		compileErr := err.(*CompileError)
		assert.Equal(t, CodegenError, compileErr.Category)
		assert.Equal(t, 4, compileErr.Line)
		assert.Contains(t, compileErr.Msg, data.expectedMsg)
	}
}

func TestCompile_NoLeakBetweenClasses(t *testing.T) {
	sources := []string{
		"class A { field int x; method int get() { if (x) { return 1; } return x; } }",
		"class B { method int get() { if (true) { return 2; } return x; } }",
	}
	classes, err := Compile(sources)
	assert.Nil(t, classes)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "undeclared identifier x")

	sources[1] = "class B { function int get() { if (true) { return 2; } return 0; } }"
	classes, err = Compile(sources)
	require.Nil(t, err)
	require.Equal(t, 2, len(classes))
	assert.Equal(t, "A", classes[0].Name)
	assert.Equal(t, "B", classes[1].Name)
	lines := vmcode.Lines(classes[1].Instructions)
	assert.Contains(t, lines, "if-goto IF_TRUE0")
	assert.Contains(t, lines, "label IF_END1")
}

func TestCompile_ReportsFirstFailure(t *testing.T) {
	_, err := Compile([]string{"class A {}", "class B { let }", "class C { field int 40000; }"})
	require.NotNil(t, err)
	assert.Equal(t, SyntaxError, err.(*CompileError).Category)

	_, err = Compile([]string{"class C { field int 40000; }"})
	require.NotNil(t, err)
	assert.Equal(t, LexicalError, err.(*CompileError).Category)
}
