package internal

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "&": true, "|": true, "<": true, ">": true, "=": true,
}

var keywordConstants = map[string]bool{
	"true": true, "false": true, "null": true, "this": true,
}

var (
	integerConstant = SingleToken(func(token *Token) bool { return token.tp == IntegerTP })
	stringConstant  = SingleToken(func(token *Token) bool { return token.tp == StringTP })
	keywordConstant = SingleToken(func(token *Token) bool {
		return token.tp == KeywordTP && keywordConstants[token.content]
	})
	identifier = SingleToken(func(token *Token) bool { return token.tp == IdentifierTP })
	binaryOp   = SingleToken(func(token *Token) bool { return token.tp == SymbolTP && binaryOps[token.content] })
	unaryOp    = SingleToken(func(token *Token) bool {
		return token.tp == SymbolTP && (token.content == "-" || token.content == "~")
	})
)

// Identifiers have different roles but are the same token, the names only document the grammar.
var (
	varName        = identifier
	className      = identifier
	subroutineName = identifier
)

func asTerm[T TermAst](rule Rule[T]) Rule[TermAst] {
	return Map(rule, func(term T) TermAst { return term })
}

// expression: term (op term)*
// A trailing op without a term, like `7 + 5 -`, is not consumed.
func parseExpression(cursor TokenCursor) Result[*ExpressionAst] {
	head := parseTerm(cursor)
	if !head.OK {
		return fail[*ExpressionAst](cursor, head.furthest)
	}
	opTerm := Map(Sequence(Required(binaryOp), Required(Rule[TermAst](parseTerm))), func(nodes []interface{}) OpTerm {
		token := nodes[0].(*Token)
		return OpTerm{Op: OpAst{Symbol: token.content, Line: token.line}, Term: nodes[1].(TermAst)}
	})
	tail := ZeroOrMore(opTerm)(head.Rest)
	return succeed(&ExpressionAst{Head: head.Node, Tail: tail.Node}, tail.Rest, maxInt(head.furthest, tail.furthest))
}

// expressionList: (expression (, expression)*)?
func parseExpressionList(cursor TokenCursor) Result[[]*ExpressionAst] {
	result := SeparatedBy(Rule[*ExpressionAst](parseExpression), ",")(cursor)
	if !result.OK {
		return succeed[[]*ExpressionAst](nil, cursor, result.furthest)
	}
	return result
}

// The order matters: a variable, an array access and a call all start with an identifier,
// the identifier rules below look at the next token to pick the right one.
func parseTerm(cursor TokenCursor) Result[TermAst] {
	return Either(
		asTerm(Rule[*IntegerConstantTerm](parseIntegerConstantTerm)),
		asTerm(Rule[*StringConstantTerm](parseStringConstantTerm)),
		asTerm(Rule[*SubroutineCallTerm](parseSubroutineCall)),
		asTerm(Rule[*KeywordConstantTerm](parseKeywordConstantTerm)),
		asTerm(Rule[*ArrayAccessTerm](parseArrayAccessTerm)),
		asTerm(Rule[*VarNameTerm](parseVarNameTerm)),
		asTerm(Rule[*SubExpressionTerm](parseSubExpressionTerm)),
		asTerm(Rule[*UnaryOpTerm](parseUnaryOpTerm)),
	)(cursor)
}

func parseIntegerConstantTerm(cursor TokenCursor) Result[*IntegerConstantTerm] {
	return Map(integerConstant, func(token *Token) *IntegerConstantTerm {
		return &IntegerConstantTerm{Value: token.IntValue(), line: token.line}
	})(cursor)
}

func parseStringConstantTerm(cursor TokenCursor) Result[*StringConstantTerm] {
	return Map(stringConstant, func(token *Token) *StringConstantTerm {
		return &StringConstantTerm{Value: token.content, line: token.line}
	})(cursor)
}

func parseKeywordConstantTerm(cursor TokenCursor) Result[*KeywordConstantTerm] {
	return Map(keywordConstant, func(token *Token) *KeywordConstantTerm {
		return &KeywordConstantTerm{Keyword: token.content, line: token.line}
	})(cursor)
}

func nextIs(cursor TokenCursor, symbols ...string) bool {
	next := cursor.Lookahead(1)
	if next == nil || next.tp != SymbolTP {
		return false
	}
	for _, symbol := range symbols {
		if next.content == symbol {
			return true
		}
	}
	return false
}

// varName, only when it's not followed by ( . or [
func parseVarNameTerm(cursor TokenCursor) Result[*VarNameTerm] {
	if nextIs(cursor, "(", ".", "[") {
		return fail[*VarNameTerm](cursor, cursor.pos+1)
	}
	return Map(varName, func(token *Token) *VarNameTerm {
		return &VarNameTerm{Name: token.content, line: token.line}
	})(cursor)
}

// varName [ expression ]
func parseArrayAccessTerm(cursor TokenCursor) Result[*ArrayAccessTerm] {
	if !nextIs(cursor, "[") {
		return fail[*ArrayAccessTerm](cursor, cursor.pos)
	}
	rule := Sequence(Required(varName), Required(Literal("[")), Required(Rule[*ExpressionAst](parseExpression)), Required(Literal("]")))
	return Map(rule, func(nodes []interface{}) *ArrayAccessTerm {
		name := nodes[0].(*Token)
		return &ArrayAccessTerm{Name: name.content, Index: nodes[2].(*ExpressionAst), line: name.line}
	})(cursor)
}

// subroutineName ( expressionList ) | (varName | className) . subroutineName ( expressionList )
func parseSubroutineCall(cursor TokenCursor) Result[*SubroutineCallTerm] {
	if nextIs(cursor, ".") {
		rule := Sequence(
			Required(Either(varName, className)),
			Required(Literal(".")),
			Required(subroutineName),
			Required(Literal("(")),
			Required(Rule[[]*ExpressionAst](parseExpressionList)),
			Required(Literal(")")),
		)
		return Map(rule, func(nodes []interface{}) *SubroutineCallTerm {
			qualifier := nodes[0].(*Token)
			return &SubroutineCallTerm{
				Qualifier: qualifier.content,
				Name:      nodes[2].(*Token).content,
				Arguments: nodes[4].([]*ExpressionAst),
				line:      qualifier.line,
			}
		})(cursor)
	}
	if !nextIs(cursor, "(") {
		return fail[*SubroutineCallTerm](cursor, cursor.pos)
	}
	rule := Sequence(
		Required(subroutineName),
		Required(Literal("(")),
		Required(Rule[[]*ExpressionAst](parseExpressionList)),
		Required(Literal(")")),
	)
	return Map(rule, func(nodes []interface{}) *SubroutineCallTerm {
		name := nodes[0].(*Token)
		return &SubroutineCallTerm{Name: name.content, Arguments: nodes[2].([]*ExpressionAst), line: name.line}
	})(cursor)
}

// ( expression )
func parseSubExpressionTerm(cursor TokenCursor) Result[*SubExpressionTerm] {
	rule := Sequence(Required(Literal("(")), Required(Rule[*ExpressionAst](parseExpression)), Required(Literal(")")))
	return Map(rule, func(nodes []interface{}) *SubExpressionTerm {
		return &SubExpressionTerm{Expr: nodes[1].(*ExpressionAst), line: nodes[0].(*Token).line}
	})(cursor)
}

// Note: 5 + -2 is accepted, the unary op binds to the term right after it.
func parseUnaryOpTerm(cursor TokenCursor) Result[*UnaryOpTerm] {
	rule := Sequence(Required(unaryOp), Required(Rule[TermAst](parseTerm)))
	return Map(rule, func(nodes []interface{}) *UnaryOpTerm {
		op := nodes[0].(*Token)
		return &UnaryOpTerm{Op: OpAst{Symbol: op.content, Line: op.line}, Term: nodes[1].(TermAst), line: op.line}
	})(cursor)
}
