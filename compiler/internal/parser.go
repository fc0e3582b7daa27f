package internal

// ParseClass parses one class from tokens, comments must already be filtered. The class has
// to use up every token; a failure is reported at the furthest token the parser reached.
func ParseClass(tokens []*Token) (*ClassAst, error) {
	cursor := NewTokenCursor(tokens)
	result := parseClass(cursor)
	if !result.OK {
		return nil, makeParseError(cursor, result.furthest)
	}
	if !result.Rest.AtEnd() {
		return nil, makeParseError(cursor, result.Rest.pos)
	}
	return result.Node, nil
}

func makeParseError(cursor TokenCursor, pos int) error {
	token := cursor.Lookahead(pos)
	if token == nil {
		return makeSyntaxError(cursor.LineAt(pos), "unexpected end of input")
	}
	return makeSyntaxError(token.line, "syntax error near %s", token.Source())
}

// class className { classVarDec* subroutineDec* }
func parseClass(cursor TokenCursor) Result[*ClassAst] {
	rule := Sequence(
		Required(Literal("class")),
		Required(className),
		Required(Literal("{")),
		Required(ZeroOrMore(Rule[*ClassVarDecAst](parseClassVarDec))),
		Required(ZeroOrMore(Rule[*SubroutineDecAst](parseSubroutineDec))),
		Required(Literal("}")),
	)
	return Map(rule, func(nodes []interface{}) *ClassAst {
		return &ClassAst{
			Name:           nodes[1].(*Token).content,
			ClassVarDecs:   nodes[3].([]*ClassVarDecAst),
			SubroutineDecs: nodes[4].([]*SubroutineDecAst),
			Line:           nodes[0].(*Token).line,
		}
	})(cursor)
}

// int | char | boolean | className
func parseType(cursor TokenCursor) Result[TypeAst] {
	rule := Either(Literal("int"), Literal("char"), Literal("boolean"), className)
	return Map(rule, func(token *Token) TypeAst { return TypeAst{Name: token.content} })(cursor)
}

// varName (, varName)*
func parseVarNames(cursor TokenCursor) Result[[]string] {
	return Map(SeparatedBy(varName, ","), func(tokens []*Token) []string {
		names := make([]string, 0, len(tokens))
		for _, token := range tokens {
			names = append(names, token.content)
		}
		return names
	})(cursor)
}

// (static | field) type varName (, varName)* ;
func parseClassVarDec(cursor TokenCursor) Result[*ClassVarDecAst] {
	rule := Sequence(
		Required(Either(Literal("static"), Literal("field"))),
		Required(Rule[TypeAst](parseType)),
		Required(Rule[[]string](parseVarNames)),
		Required(Literal(";")),
	)
	return Map(rule, func(nodes []interface{}) *ClassVarDecAst {
		decorator := nodes[0].(*Token)
		kind := StaticClassVar
		if decorator.content == "field" {
			kind = FieldClassVar
		}
		return &ClassVarDecAst{
			Kind:  kind,
			Type:  nodes[1].(TypeAst),
			Names: nodes[2].([]string),
			Line:  decorator.line,
		}
	})(cursor)
}

// var type varName (, varName)* ;
func parseVarDec(cursor TokenCursor) Result[*VarDecAst] {
	rule := Sequence(
		Required(Literal("var")),
		Required(Rule[TypeAst](parseType)),
		Required(Rule[[]string](parseVarNames)),
		Required(Literal(";")),
	)
	return Map(rule, func(nodes []interface{}) *VarDecAst {
		return &VarDecAst{Type: nodes[1].(TypeAst), Names: nodes[2].([]string), Line: nodes[0].(*Token).line}
	})(cursor)
}

// type varName
func parseParameter(cursor TokenCursor) Result[*ParameterAst] {
	rule := Sequence(Required(Rule[TypeAst](parseType)), Required(varName))
	return Map(rule, func(nodes []interface{}) *ParameterAst {
		return &ParameterAst{Type: nodes[0].(TypeAst), Name: nodes[1].(*Token).content}
	})(cursor)
}

// (constructor | function | method) (void | type) subroutineName ( parameterList ) subroutineBody
func parseSubroutineDec(cursor TokenCursor) Result[*SubroutineDecAst] {
	returnType := Either(Map(Literal("void"), func(token *Token) TypeAst { return TypeAst{Name: "void"} }), Rule[TypeAst](parseType))
	rule := Sequence(
		Required(Either(Literal("constructor"), Literal("function"), Literal("method"))),
		Required(returnType),
		Required(subroutineName),
		Required(Literal("(")),
		Optional(SeparatedBy(Rule[*ParameterAst](parseParameter), ",")),
		Required(Literal(")")),
		Required(Rule[*SubroutineBodyAst](parseSubroutineBody)),
	)
	return Map(rule, func(nodes []interface{}) *SubroutineDecAst {
		kindToken := nodes[0].(*Token)
		dec := &SubroutineDecAst{
			Kind:       subroutineKinds[kindToken.content],
			ReturnType: nodes[1].(TypeAst),
			Name:       nodes[2].(*Token).content,
			Body:       nodes[6].(*SubroutineBodyAst),
			Line:       kindToken.line,
		}
		if params, ok := nodes[4].([]*ParameterAst); ok {
			dec.Parameters = params
		}
		return dec
	})(cursor)
}

var subroutineKinds = map[string]SubroutineKind{
	"constructor": ConstructorKind,
	"function":    FunctionKind,
	"method":      MethodKind,
}

// { varDec* statement* }
func parseSubroutineBody(cursor TokenCursor) Result[*SubroutineBodyAst] {
	rule := Sequence(
		Required(Literal("{")),
		Required(ZeroOrMore(Rule[*VarDecAst](parseVarDec))),
		Required(Rule[[]StatementAst](parseStatements)),
		Required(Literal("}")),
	)
	return Map(rule, func(nodes []interface{}) *SubroutineBodyAst {
		return &SubroutineBodyAst{
			VarDecs:    nodes[1].([]*VarDecAst),
			Statements: nodes[2].([]StatementAst),
		}
	})(cursor)
}
