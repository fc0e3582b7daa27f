package vmcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// The stack machine language the compiler emits. There are four kinds of vm commands:
// * Arithmetic commands: add, sub, neg, eq, gt, lt, and, or, not.
// * Memory access commands: push segment index, pop segment index, where segment can be
//   argument, local, static, constant, this, that, pointer, temp.
// * Program flow commands: label name, if-goto name, goto name.
// * Function calling commands: function f nLocals, call f nArgs, return.
// One instruction is written per line.

type Command int

const (
	Push Command = iota
	Pop
	Add
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not
	Label
	Goto
	IfGoto
	Function
	Call
	Return
)

var commandNames = map[Command]string{
	Push:     "push",
	Pop:      "pop",
	Add:      "add",
	Sub:      "sub",
	Neg:      "neg",
	Eq:       "eq",
	Gt:       "gt",
	Lt:       "lt",
	And:      "and",
	Or:       "or",
	Not:      "not",
	Label:    "label",
	Goto:     "goto",
	IfGoto:   "if-goto",
	Function: "function",
	Call:     "call",
	Return:   "return",
}

func (command Command) String() string {
	return commandNames[command]
}

func (command Command) IsArithmetic() bool {
	return command >= Add && command <= Not
}

type Segment int

const (
	Constant Segment = iota
	Argument
	Local
	Static
	This
	That
	Pointer
	Temp
)

var segmentNames = map[Segment]string{
	Constant: "constant",
	Argument: "argument",
	Local:    "local",
	Static:   "static",
	This:     "this",
	That:     "that",
	Pointer:  "pointer",
	Temp:     "temp",
}

func (segment Segment) String() string {
	return segmentNames[segment]
}

const (
	MaxConstant = 32767
	PointerSize = 2
	TempSize    = 8
)

// Instruction is one vm command. Segment and Index belong to push and pop, Name and Index
// (nLocals or nArgs) to function and call, Name alone to label, goto and if-goto.
type Instruction struct {
	Command Command
	Segment Segment
	Index   int
	Name    string
}

func PushInstruction(segment Segment, index int) Instruction {
	return Instruction{Command: Push, Segment: segment, Index: index}
}

func PopInstruction(segment Segment, index int) Instruction {
	return Instruction{Command: Pop, Segment: segment, Index: index}
}

func ArithmeticInstruction(command Command) Instruction {
	return Instruction{Command: command}
}

func LabelInstruction(name string) Instruction {
	return Instruction{Command: Label, Name: name}
}

func GotoInstruction(name string) Instruction {
	return Instruction{Command: Goto, Name: name}
}

func IfGotoInstruction(name string) Instruction {
	return Instruction{Command: IfGoto, Name: name}
}

func FunctionInstruction(name string, nLocals int) Instruction {
	return Instruction{Command: Function, Name: name, Index: nLocals}
}

func CallInstruction(name string, nArgs int) Instruction {
	return Instruction{Command: Call, Name: name, Index: nArgs}
}

func ReturnInstruction() Instruction {
	return Instruction{Command: Return}
}

func (ins Instruction) String() string {
	switch ins.Command {
	case Push, Pop:
		return fmt.Sprintf("%s %s %d", ins.Command, ins.Segment, ins.Index)
	case Label, Goto, IfGoto:
		return fmt.Sprintf("%s %s", ins.Command, ins.Name)
	case Function, Call:
		return fmt.Sprintf("%s %s %d", ins.Command, ins.Name, ins.Index)
	}
	return ins.Command.String()
}

// Validate checks the index ranges the vm translator relies on.
func (ins Instruction) Validate() error {
	switch ins.Command {
	case Push, Pop:
		if ins.Index < 0 {
			return makeError(ins, "negative index")
		}
		switch ins.Segment {
		case Constant:
			if ins.Command == Pop {
				return makeError(ins, "cannot pop to constant segment")
			}
			if ins.Index > MaxConstant {
				return makeError(ins, fmt.Sprintf("constant is larger than %d", MaxConstant))
			}
		case Pointer:
			if ins.Index >= PointerSize {
				return makeError(ins, "pointer index must be 0 or 1")
			}
		case Temp:
			if ins.Index >= TempSize {
				return makeError(ins, fmt.Sprintf("temp index must be less than %d", TempSize))
			}
		}
	case Label, Goto, IfGoto, Function, Call:
		if ins.Name == "" {
			return makeError(ins, "missing name")
		}
		if ins.Index < 0 {
			return makeError(ins, "negative count")
		}
	}
	return nil
}

func makeError(ins Instruction, msg string) error {
	return errors.New(fmt.Sprintf("vmcode: invalid instruction %q: %s", ins.String(), msg))
}

// Write writes one instruction per line.
func Write(w io.Writer, instructions []Instruction) error {
	bw := bufio.NewWriter(w)
	for _, ins := range instructions {
		_, err := bw.WriteString(ins.String() + "\n")
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Lines returns the text form of instructions.
func Lines(instructions []Instruction) []string {
	lines := make([]string, 0, len(instructions))
	for _, ins := range instructions {
		lines = append(lines, ins.String())
	}
	return lines
}
