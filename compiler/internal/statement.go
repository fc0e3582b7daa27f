package internal

func asStatement[T StatementAst](rule Rule[T]) Rule[StatementAst] {
	return Map(rule, func(statement T) StatementAst { return statement })
}

// No statement starts with the same keyword as another, so the order here is not important.
func parseStatement(cursor TokenCursor) Result[StatementAst] {
	return Either(
		asStatement(Rule[*IfStatementAst](parseIfStatement)),
		asStatement(Rule[*WhileStatementAst](parseWhileStatement)),
		asStatement(Rule[*DoStatementAst](parseDoStatement)),
		asStatement(Rule[*LetStatementAst](parseLetStatement)),
		asStatement(Rule[*ReturnStatementAst](parseReturnStatement)),
	)(cursor)
}

func parseStatements(cursor TokenCursor) Result[[]StatementAst] {
	return ZeroOrMore(Rule[StatementAst](parseStatement))(cursor)
}

// { statement+ }
// An empty block is not accepted, the whole if or while fails to parse instead.
func parseBlock(cursor TokenCursor) Result[[]StatementAst] {
	rule := Sequence(Required(Literal("{")), Required(OneOrMore(Rule[StatementAst](parseStatement))), Required(Literal("}")))
	return Map(rule, func(nodes []interface{}) []StatementAst {
		return nodes[1].([]StatementAst)
	})(cursor)
}

// let varName ([ expression ])? = expression ;
func parseLetStatement(cursor TokenCursor) Result[*LetStatementAst] {
	target := Either(
		asTerm(Rule[*ArrayAccessTerm](parseArrayAccessTerm)),
		asTerm(Rule[*VarNameTerm](parseVarNameTerm)),
	)
	rule := Sequence(
		Required(Literal("let")),
		Required(target),
		Required(Literal("=")),
		Required(Rule[*ExpressionAst](parseExpression)),
		Required(Literal(";")),
	)
	return Map(rule, func(nodes []interface{}) *LetStatementAst {
		return &LetStatementAst{
			Target: nodes[1].(TermAst),
			Value:  nodes[3].(*ExpressionAst),
			line:   nodes[0].(*Token).line,
		}
	})(cursor)
}

// if ( expression ) { statements } (else { statements })?
func parseIfStatement(cursor TokenCursor) Result[*IfStatementAst] {
	elseBlock := Map(Sequence(Required(Literal("else")), Required(Rule[[]StatementAst](parseBlock))), func(nodes []interface{}) []StatementAst {
		return nodes[1].([]StatementAst)
	})
	rule := Sequence(
		Required(Literal("if")),
		Required(Literal("(")),
		Required(Rule[*ExpressionAst](parseExpression)),
		Required(Literal(")")),
		Required(Rule[[]StatementAst](parseBlock)),
		Optional(elseBlock),
	)
	return Map(rule, func(nodes []interface{}) *IfStatementAst {
		stm := &IfStatementAst{
			Condition:        nodes[2].(*ExpressionAst),
			IfTrueStatements: nodes[4].([]StatementAst),
			line:             nodes[0].(*Token).line,
		}
		if elseStatements, ok := nodes[5].([]StatementAst); ok {
			stm.ElseStatements = elseStatements
		}
		return stm
	})(cursor)
}

// while ( expression ) { statements }
func parseWhileStatement(cursor TokenCursor) Result[*WhileStatementAst] {
	rule := Sequence(
		Required(Literal("while")),
		Required(Literal("(")),
		Required(Rule[*ExpressionAst](parseExpression)),
		Required(Literal(")")),
		Required(Rule[[]StatementAst](parseBlock)),
	)
	return Map(rule, func(nodes []interface{}) *WhileStatementAst {
		return &WhileStatementAst{
			Condition:  nodes[2].(*ExpressionAst),
			Statements: nodes[4].([]StatementAst),
			line:       nodes[0].(*Token).line,
		}
	})(cursor)
}

// do subroutineCall ;
func parseDoStatement(cursor TokenCursor) Result[*DoStatementAst] {
	rule := Sequence(Required(Literal("do")), Required(Rule[*SubroutineCallTerm](parseSubroutineCall)), Required(Literal(";")))
	return Map(rule, func(nodes []interface{}) *DoStatementAst {
		return &DoStatementAst{Call: nodes[1].(*SubroutineCallTerm), line: nodes[0].(*Token).line}
	})(cursor)
}

// return expression? ;
func parseReturnStatement(cursor TokenCursor) Result[*ReturnStatementAst] {
	rule := Sequence(Required(Literal("return")), Optional(Rule[*ExpressionAst](parseExpression)), Required(Literal(";")))
	return Map(rule, func(nodes []interface{}) *ReturnStatementAst {
		stm := &ReturnStatementAst{line: nodes[0].(*Token).line}
		if value, ok := nodes[1].(*ExpressionAst); ok {
			stm.Value = value
		}
		return stm
	})(cursor)
}
