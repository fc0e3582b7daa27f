package internal

import (
	"github.com/xiaobogaga/jackc/vmcode"
)

type CompiledClass struct {
	Name         string
	Instructions []vmcode.Instruction
}

// CompileClass compiles the source of one .jack file. Every call starts from a new
// compilation context.
func CompileClass(source string) (*CompiledClass, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	class, err := ParseClass(FilterComments(tokens))
	if err != nil {
		return nil, err
	}
	ctx := NewCompilationContext()
	err = GenerateClass(ctx, class)
	if err != nil {
		return nil, err
	}
	return &CompiledClass{Name: class.Name, Instructions: ctx.Instructions()}, nil
}

// Compile compiles sources in order and stops at the first failure.
func Compile(sources []string) ([]*CompiledClass, error) {
	classes := make([]*CompiledClass, 0, len(sources))
	for _, source := range sources {
		class, err := CompileClass(source)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, nil
}
