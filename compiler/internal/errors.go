package internal

import (
	"fmt"
)

type ErrorCategory int

const (
	LexicalError ErrorCategory = iota
	SyntaxError
	CodegenError
)

func (category ErrorCategory) String() string {
	switch category {
	case LexicalError:
		return "lexical"
	case SyntaxError:
		return "syntax"
	case CodegenError:
		return "codegen"
	}
	return "unknown"
}

// CompileError is the only error the compiler core returns. A class that fails with
// a CompileError produced no usable instructions.
type CompileError struct {
	Category ErrorCategory
	Line     int
	Msg      string
}

func (err *CompileError) Error() string {
	if err.Line <= 0 {
		return fmt.Sprintf("%s error: %s", err.Category, err.Msg)
	}
	return fmt.Sprintf("%s error at line %d: %s", err.Category, err.Line, err.Msg)
}

func makeLexicalError(line int, format string, args ...interface{}) *CompileError {
	return &CompileError{Category: LexicalError, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func makeSyntaxError(line int, format string, args ...interface{}) *CompileError {
	return &CompileError{Category: SyntaxError, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func makeCodegenError(line int, format string, args ...interface{}) *CompileError {
	return &CompileError{Category: CodegenError, Line: line, Msg: fmt.Sprintf(format, args...)}
}
