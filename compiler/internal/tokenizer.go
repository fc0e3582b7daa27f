package internal

import (
	"strconv"
	"strings"

	"github.com/xiaobogaga/jackc/util"
)

// A simple Tokenizer for jack.

// Jack language has those elements:
// * KeyWord: class, constructor, function, method, field, static, var, int, char, boolean, void, true,
// 			false, null, this, let, do, if, else, while, return.
// * Symbol: {, }, (, ), [, ], ., ,, ;, +, -, *, /, &, |, <, >, =, ~.
// * Constant: integer (0..32767), string ("xxx", never spans lines)
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /**/, //.

type TokenType int

const (
	KeywordTP    TokenType = iota // class
	SymbolTP                      // {
	IdentifierTP                  // varA
	IntegerTP                     // 1010
	StringTP                      // "xxx"
	CommentTP                     // // xxx or /* xxx */
)

func (tp TokenType) String() string {
	switch tp {
	case KeywordTP:
		return "keyword"
	case SymbolTP:
		return "symbol"
	case IdentifierTP:
		return "identifier"
	case IntegerTP:
		return "integerConstant"
	case StringTP:
		return "stringConstant"
	case CommentTP:
		return "comment"
	}
	return "unknown"
}

// MaxInteger is the largest integer constant a jack program can write.
const MaxInteger = 32767

var keyWords = map[string]bool{
	"class":       true,
	"constructor": true,
	"function":    true,
	"method":      true,
	"field":       true,
	"static":      true,
	"var":         true,
	"int":         true,
	"char":        true,
	"boolean":     true,
	"void":        true,
	"true":        true,
	"false":       true,
	"null":        true,
	"this":        true,
	"let":         true,
	"do":          true,
	"if":          true,
	"else":        true,
	"while":       true,
	"return":      true,
}

type Token struct {
	content string
	line    int
	tp      TokenType
}

func (t *Token) Content() string {
	return t.content
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Type() TokenType {
	return t.tp
}

// IntValue is only meaningful for IntegerTP tokens, the tokenizer already checked the range.
func (t *Token) IntValue() int {
	v, _ := strconv.Atoi(t.content)
	return v
}

// Source returns the text the token was scanned from.
func (t *Token) Source() string {
	if t.tp == StringTP {
		return `"` + t.content + `"`
	}
	return t.content
}

func (t *Token) String() string {
	return t.tp.String() + " " + strconv.Quote(t.content)
}

// FilterComments drops comment tokens, the parser never wants them.
func FilterComments(tokens []*Token) []*Token {
	ret := make([]*Token, 0, len(tokens))
	for _, token := range tokens {
		if token.tp == CommentTP {
			continue
		}
		ret = append(ret, token)
	}
	return ret
}

type Tokenizer struct {
	source      string
	currentPos  int
	currentLine int
	tokens      []*Token
}

func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{source: source, currentLine: 1}
}

// Tokenize splits source into tokens, comments included. Any error it returns is fatal.
func Tokenize(source string) ([]*Token, error) {
	return NewTokenizer(source).Tokenize()
}

// Tokenize is the main method of this tokenizer. It can be called again after Reset.
func (tokenizer *Tokenizer) Tokenize() ([]*Token, error) {
	for {
		tokenizer.trimSpace()
		if !tokenizer.hasRemainCharacters() {
			return tokenizer.tokens, nil
		}
		token, err := tokenizer.getNextToken()
		if err != nil {
			return nil, err
		}
		tokenizer.tokens = append(tokenizer.tokens, token)
	}
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.currentLine = 0, 1
	tokenizer.tokens = nil
}

// getNextToken tries integer, comments, string, word and symbol in that order.
func (tokenizer *Tokenizer) getNextToken() (*Token, error) {
	b := tokenizer.source[tokenizer.currentPos]
	switch {
	case util.IsNumber(b):
		return tokenizer.tokenNumber()
	case tokenizer.lookingAt("//"):
		return tokenizer.tokenSingleLineComment(), nil
	case tokenizer.lookingAt("/*"):
		return tokenizer.tokenMultipleLineComment()
	case b == '"':
		return tokenizer.tokenString()
	case util.IsLetterOrUnderscore(b):
		return tokenizer.toKeywordOrIdentifier(), nil
	case util.IsSymbol(b):
		return tokenizer.tokenSimpleSymbol(), nil
	}
	return nil, makeLexicalError(tokenizer.currentLine, "unexpected character %q", b)
}

// trimSpace will step forward and skip all continuous space, counting line breaks on the way.
func (tokenizer *Tokenizer) trimSpace() {
	for tokenizer.hasRemainCharacters() {
		b := tokenizer.source[tokenizer.currentPos]
		if !util.IsSpace(b) {
			break
		}
		if b == '\n' {
			tokenizer.currentLine++
		}
		tokenizer.currentPos++
	}
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.source)
}

func (tokenizer *Tokenizer) lookingAt(prefix string) bool {
	return strings.HasPrefix(tokenizer.source[tokenizer.currentPos:], prefix)
}

func (tokenizer *Tokenizer) makeToken(tp TokenType, content string, line int) *Token {
	return &Token{content: content, line: line, tp: tp}
}

func (tokenizer *Tokenizer) tokenNumber() (*Token, error) {
	startPos := tokenizer.currentPos
	for tokenizer.hasRemainCharacters() && util.IsNumber(tokenizer.source[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
	// A number directly followed by letters, like 12ab, is left for the parser to reject.
	content := tokenizer.source[startPos:tokenizer.currentPos]
	v, err := strconv.Atoi(content)
	if err != nil || v > MaxInteger {
		return nil, makeLexicalError(tokenizer.currentLine, "integer %s is not in the range 0..%d", content, MaxInteger)
	}
	return tokenizer.makeToken(IntegerTP, content, tokenizer.currentLine), nil
}

// The line break is not part of the comment.
func (tokenizer *Tokenizer) tokenSingleLineComment() *Token {
	startPos := tokenizer.currentPos
	end := strings.IndexByte(tokenizer.source[startPos:], '\n')
	if end < 0 {
		tokenizer.currentPos = len(tokenizer.source)
	} else {
		tokenizer.currentPos = startPos + end
	}
	content := strings.TrimRight(tokenizer.source[startPos:tokenizer.currentPos], "\r")
	return tokenizer.makeToken(CommentTP, content, tokenizer.currentLine)
}

func (tokenizer *Tokenizer) tokenMultipleLineComment() (*Token, error) {
	startPos, startLine := tokenizer.currentPos, tokenizer.currentLine
	end := strings.Index(tokenizer.source[startPos+2:], "*/")
	if end < 0 {
		return nil, makeLexicalError(startLine, "unterminated block comment")
	}
	tokenizer.currentPos = startPos + 2 + end + 2
	content := tokenizer.source[startPos:tokenizer.currentPos]
	tokenizer.currentLine += strings.Count(content, "\n")
	return tokenizer.makeToken(CommentTP, content, startLine), nil
}

func (tokenizer *Tokenizer) tokenString() (*Token, error) {
	// Looking forward to find a closing quote on the same line.
	startPos := tokenizer.currentPos
	tokenizer.currentPos++
	for tokenizer.hasRemainCharacters() {
		switch tokenizer.source[tokenizer.currentPos] {
		case '"':
			tokenizer.currentPos++
			return tokenizer.makeToken(StringTP, tokenizer.source[startPos+1:tokenizer.currentPos-1], tokenizer.currentLine), nil
		case '\n', '\r':
			return nil, makeLexicalError(tokenizer.currentLine, "string literal contains a line break")
		}
		tokenizer.currentPos++
	}
	return nil, makeLexicalError(tokenizer.currentLine, "unterminated string literal")
}

func (tokenizer *Tokenizer) toKeywordOrIdentifier() *Token {
	startPos := tokenizer.currentPos
	for tokenizer.hasRemainCharacters() && util.IsLetterOrUnderscoreOrNumber(tokenizer.source[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
	word := tokenizer.source[startPos:tokenizer.currentPos]
	if keyWords[word] {
		return tokenizer.makeToken(KeywordTP, word, tokenizer.currentLine)
	}
	return tokenizer.makeToken(IdentifierTP, word, tokenizer.currentLine)
}

func (tokenizer *Tokenizer) tokenSimpleSymbol() *Token {
	symbol := tokenizer.source[tokenizer.currentPos : tokenizer.currentPos+1]
	tokenizer.currentPos++
	return tokenizer.makeToken(SymbolTP, symbol, tokenizer.currentLine)
}
