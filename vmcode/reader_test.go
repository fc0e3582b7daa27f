package vmcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_getNextToken(t *testing.T) {
	reader := &Reader{}
	testData := []struct {
		line          string
		expectedToken string
		expectedRest  string
	}{
		{line: "  push constant 1", expectedToken: "push", expectedRest: " constant 1"},
		{line: "return\n", expectedToken: "return", expectedRest: ""},
		{line: "\t\t", expectedToken: "", expectedRest: ""},
	}
	for _, data := range testData {
		token, rest := reader.getNextToken([]byte(data.line))
		assert.Equal(t, data.expectedToken, token)
		assert.Equal(t, data.expectedRest, string(rest))
	}
}

func TestParse(t *testing.T) {
	source := `// Main.vm
function Main.main 1
    PUSH CONSTANT 7   // seven
    pop local 0

label LOOP
push local 0
if-goto LOOP
call Output.printInt 1
return`
	instructions, err := Parse(strings.NewReader(source))
	require.Nil(t, err)
	expected := []Instruction{
		FunctionInstruction("Main.main", 1),
		PushInstruction(Constant, 7),
		PopInstruction(Local, 0),
		LabelInstruction("LOOP"),
		PushInstruction(Local, 0),
		IfGotoInstruction("LOOP"),
		CallInstruction("Output.printInt", 1),
		ReturnInstruction(),
	}
	assert.Equal(t, expected, instructions)
}

func TestParse_Errors(t *testing.T) {
	testData := []struct {
		source      string
		expectedErr string
	}{
		{source: "push constant", expectedErr: "syntax error near \"\" at line 1"},
		{source: "push heap 1", expectedErr: "syntax error near \"heap\""},
		{source: "add\njump x", expectedErr: "syntax error near \"jump\" at line 2"},
		{source: "push constant x", expectedErr: "syntax error near \"x\""},
		{source: "return 1", expectedErr: "syntax error near \"1\""},
		{source: "\n\npop pointer 2", expectedErr: "line 3"},
		{source: "goto", expectedErr: "syntax error"},
	}
	for _, data := range testData {
		instructions, err := Parse(strings.NewReader(data.source))
		assert.Nil(t, instructions)
		require.NotNil(t, err, data.source)
		assert.Contains(t, err.Error(), data.expectedErr, data.source)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	instructions := []Instruction{
		FunctionInstruction("Point.new", 0),
		PushInstruction(Constant, 2),
		CallInstruction("Memory.alloc", 1),
		PopInstruction(Pointer, 0),
		PushInstruction(Argument, 0),
		PopInstruction(This, 0),
		ArithmeticInstruction(Sub),
		GotoInstruction("END"),
		PushInstruction(Pointer, 0),
		ReturnInstruction(),
	}
	buf := &bytes.Buffer{}
	require.Nil(t, Write(buf, instructions))
	parsed, err := Parse(buf)
	require.Nil(t, err)
	assert.Equal(t, instructions, parsed)
}
