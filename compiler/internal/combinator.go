package internal

// Grammar combinators. Every rule takes a cursor and either succeeds with a node and
// an advanced cursor, or fails and hands back the cursor it was given. Cursors are
// values, so a failed alternative can never disturb the next one.

// TokenCursor is a read-only position in a token list.
type TokenCursor struct {
	tokens []*Token
	pos    int
}

func NewTokenCursor(tokens []*Token) TokenCursor {
	return TokenCursor{tokens: tokens}
}

// Current returns the token under the cursor, nil at the end.
func (cursor TokenCursor) Current() *Token {
	return cursor.Lookahead(0)
}

// Lookahead returns the token n positions after the cursor, nil when out of range.
func (cursor TokenCursor) Lookahead(n int) *Token {
	if cursor.pos+n >= len(cursor.tokens) || cursor.pos+n < 0 {
		return nil
	}
	return cursor.tokens[cursor.pos+n]
}

func (cursor TokenCursor) Next() TokenCursor {
	if cursor.AtEnd() {
		return cursor
	}
	return TokenCursor{tokens: cursor.tokens, pos: cursor.pos + 1}
}

func (cursor TokenCursor) AtEnd() bool {
	return cursor.pos >= len(cursor.tokens)
}

func (cursor TokenCursor) Pos() int {
	return cursor.pos
}

// LineAt returns the line of the token at pos, or of the last token when pos is past the end.
func (cursor TokenCursor) LineAt(pos int) int {
	if len(cursor.tokens) == 0 {
		return 0
	}
	if pos >= len(cursor.tokens) {
		pos = len(cursor.tokens) - 1
	}
	if pos < 0 {
		pos = 0
	}
	return cursor.tokens[pos].line
}

// Result is the outcome of a rule. On failure Rest is the cursor the rule started from.
// furthest is the largest token position any attempt inside the rule looked at; it is
// only used to name a line when the whole class fails to parse.
type Result[T any] struct {
	Node     T
	Rest     TokenCursor
	OK       bool
	furthest int
}

func succeed[T any](node T, rest TokenCursor, furthest int) Result[T] {
	return Result[T]{Node: node, Rest: rest, OK: true, furthest: maxInt(furthest, rest.pos)}
}

func fail[T any](cursor TokenCursor, furthest int) Result[T] {
	return Result[T]{Rest: cursor, furthest: maxInt(furthest, cursor.pos)}
}

func (result Result[T]) Furthest() int {
	return result.furthest
}

type Rule[T any] func(cursor TokenCursor) Result[T]

// SingleToken matches one token satisfying match.
func SingleToken(match func(token *Token) bool) Rule[*Token] {
	return func(cursor TokenCursor) Result[*Token] {
		token := cursor.Current()
		if token == nil || !match(token) {
			return fail[*Token](cursor, cursor.pos)
		}
		return succeed(token, cursor.Next(), cursor.pos)
	}
}

// Literal matches one token whose text is literal, whatever its type.
func Literal(literal string) Rule[*Token] {
	return SingleToken(func(token *Token) bool {
		return token.content == literal && token.tp != StringTP && token.tp != CommentTP
	})
}

// Either tries rules in order and returns the first success.
func Either[T any](rules ...Rule[T]) Rule[T] {
	return func(cursor TokenCursor) Result[T] {
		furthest := cursor.pos
		for _, rule := range rules {
			result := rule(cursor)
			if result.OK {
				result.furthest = maxInt(result.furthest, furthest)
				return result
			}
			furthest = maxInt(furthest, result.furthest)
		}
		return fail[T](cursor, furthest)
	}
}

// Element is one entry of a Sequence.
type Element struct {
	rule     Rule[interface{}]
	optional bool
}

func erase[T any](rule Rule[T]) Rule[interface{}] {
	return func(cursor TokenCursor) Result[interface{}] {
		result := rule(cursor)
		if !result.OK {
			return fail[interface{}](cursor, result.furthest)
		}
		return Result[interface{}]{Node: result.Node, Rest: result.Rest, OK: true, furthest: result.furthest}
	}
}

func Required[T any](rule Rule[T]) Element {
	return Element{rule: erase(rule)}
}

func Optional[T any](rule Rule[T]) Element {
	return Element{rule: erase(rule), optional: true}
}

// Sequence matches elements one after another. The result holds one node per element,
// nil for an optional element that did not match. When a required element fails the
// whole sequence fails at the cursor it started from.
func Sequence(elements ...Element) Rule[[]interface{}] {
	return func(cursor TokenCursor) Result[[]interface{}] {
		nodes := make([]interface{}, 0, len(elements))
		rest, furthest := cursor, cursor.pos
		for _, element := range elements {
			result := element.rule(rest)
			furthest = maxInt(furthest, result.furthest)
			if !result.OK {
				if !element.optional {
					return fail[[]interface{}](cursor, furthest)
				}
				nodes = append(nodes, nil)
				continue
			}
			nodes = append(nodes, result.Node)
			rest = result.Rest
		}
		return succeed(nodes, rest, furthest)
	}
}

// ZeroOrMore applies rule until it fails. It always succeeds.
func ZeroOrMore[T any](rule Rule[T]) Rule[[]T] {
	return func(cursor TokenCursor) Result[[]T] {
		var nodes []T
		rest, furthest := cursor, cursor.pos
		for {
			result := rule(rest)
			furthest = maxInt(furthest, result.furthest)
			if !result.OK || result.Rest.pos == rest.pos {
				return succeed(nodes, rest, furthest)
			}
			nodes = append(nodes, result.Node)
			rest = result.Rest
		}
	}
}

// OneOrMore is ZeroOrMore that fails on zero matches.
func OneOrMore[T any](rule Rule[T]) Rule[[]T] {
	many := ZeroOrMore(rule)
	return func(cursor TokenCursor) Result[[]T] {
		result := many(cursor)
		if len(result.Node) == 0 {
			return fail[[]T](cursor, result.furthest)
		}
		return result
	}
}

// SeparatedBy matches rule (separator rule)*, at least once. A separator that is not
// followed by rule is left unconsumed.
func SeparatedBy[T any](rule Rule[T], separator string) Rule[[]T] {
	tail := ZeroOrMore(Map(Sequence(Required(Literal(separator)), Required(rule)), func(nodes []interface{}) T {
		return nodes[1].(T)
	}))
	return func(cursor TokenCursor) Result[[]T] {
		first := rule(cursor)
		if !first.OK {
			return fail[[]T](cursor, first.furthest)
		}
		rest := tail(first.Rest)
		nodes := append([]T{first.Node}, rest.Node...)
		return succeed(nodes, rest.Rest, maxInt(first.furthest, rest.furthest))
	}
}

// Map converts the node of a successful match.
func Map[T, U any](rule Rule[T], fn func(T) U) Rule[U] {
	return func(cursor TokenCursor) Result[U] {
		result := rule(cursor)
		if !result.OK {
			return fail[U](cursor, result.furthest)
		}
		return succeed(fn(result.Node), result.Rest, result.furthest)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
