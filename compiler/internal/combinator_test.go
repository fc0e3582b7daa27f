package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cursorOf(t *testing.T, source string) TokenCursor {
	tokens, err := Tokenize(source)
	require.Nil(t, err)
	return NewTokenCursor(FilterComments(tokens))
}

func TestTokenCursor(t *testing.T) {
	cursor := cursorOf(t, "a\nb")
	assert.Equal(t, "a", cursor.Current().Content())
	assert.Equal(t, "b", cursor.Lookahead(1).Content())
	assert.Nil(t, cursor.Lookahead(2))
	next := cursor.Next().Next()
	assert.True(t, next.AtEnd())
	assert.Nil(t, next.Current())
	assert.Equal(t, next, next.Next())
	assert.Equal(t, 0, cursor.Pos())
	assert.Equal(t, 2, cursor.LineAt(5))
	assert.Equal(t, 0, NewTokenCursor(nil).LineAt(0))
}

func TestLiteral(t *testing.T) {
	testData := []struct {
		source   string
		literal  string
		expected bool
	}{
		{source: "class", literal: "class", expected: true},
		{source: "{", literal: "{", expected: true},
		{source: "klass", literal: "class", expected: false},
		{source: `"class"`, literal: "class", expected: false},
		{source: "", literal: "class", expected: false},
	}
	for _, data := range testData {
		cursor := cursorOf(t, data.source)
		result := Literal(data.literal)(cursor)
		assert.Equal(t, data.expected, result.OK, data.source)
		if !result.OK {
			assert.Equal(t, cursor, result.Rest)
		}
	}
}

func TestEither(t *testing.T) {
	rule := Either(Literal("a"), Literal("b"))
	result := rule(cursorOf(t, "b"))
	require.True(t, result.OK)
	assert.Equal(t, "b", result.Node.Content())
	assert.True(t, result.Rest.AtEnd())

	cursor := cursorOf(t, "c")
	result = rule(cursor)
	assert.False(t, result.OK)
	assert.Equal(t, cursor, result.Rest)
}

func TestSequence(t *testing.T) {
	rule := Sequence(Required(Literal("a")), Optional(Literal("b")), Required(Literal("c")))

	result := rule(cursorOf(t, "a b c"))
	require.True(t, result.OK)
	assert.Equal(t, 3, len(result.Node))
	assert.Equal(t, "b", result.Node[1].(*Token).Content())

	result = rule(cursorOf(t, "a c"))
	require.True(t, result.OK)
	assert.Nil(t, result.Node[1])

	// A failed sequence hands back the cursor it started from but remembers how far it got.
	cursor := cursorOf(t, "a b d")
	result = rule(cursor)
	assert.False(t, result.OK)
	assert.Equal(t, cursor, result.Rest)
	assert.Equal(t, 2, result.Furthest())
}

func TestZeroOrMore(t *testing.T) {
	rule := ZeroOrMore(Literal("a"))
	result := rule(cursorOf(t, "a a a b"))
	require.True(t, result.OK)
	assert.Equal(t, 3, len(result.Node))
	assert.Equal(t, "b", result.Rest.Current().Content())

	result = rule(cursorOf(t, "b"))
	assert.True(t, result.OK)
	assert.Equal(t, 0, len(result.Node))
	assert.Equal(t, 0, result.Rest.Pos())
}

func TestOneOrMore(t *testing.T) {
	rule := OneOrMore(Literal("a"))
	assert.True(t, rule(cursorOf(t, "a")).OK)
	assert.False(t, rule(cursorOf(t, "b")).OK)
}

func TestSeparatedBy(t *testing.T) {
	rule := SeparatedBy(identifier, ",")
	result := rule(cursorOf(t, "x, y, z"))
	require.True(t, result.OK)
	assert.Equal(t, 3, len(result.Node))
	assert.True(t, result.Rest.AtEnd())

	// The dangling separator stays in the input.
	result = rule(cursorOf(t, "x, y,"))
	require.True(t, result.OK)
	assert.Equal(t, 2, len(result.Node))
	assert.Equal(t, ",", result.Rest.Current().Content())

	assert.False(t, rule(cursorOf(t, ", x")).OK)
}

func TestMap(t *testing.T) {
	rule := Map(integerConstant, func(token *Token) int { return token.IntValue() * 2 })
	result := rule(cursorOf(t, "21"))
	require.True(t, result.OK)
	assert.Equal(t, 42, result.Node)
	assert.False(t, rule(cursorOf(t, "x")).OK)
}
