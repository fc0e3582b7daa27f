package vmcode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A simple reader to turn vm text back into instructions.
// All possible syntax are:
// Memory access commands: push|pop segment integer.
// Arithmetic commands: add, sub, neg, eq, gt, lt, and, or, not
// Program flow commands: label name, if-goto name, goto name.
// Function calling commands: function name integer, call name integer, return.
// Everything after // is a comment. Keywords are not case sensitive.

var keyWordsMap = map[string]Command{
	"PUSH":     Push,
	"POP":      Pop,
	"ADD":      Add,
	"SUB":      Sub,
	"NEG":      Neg,
	"EQ":       Eq,
	"GT":       Gt,
	"LT":       Lt,
	"AND":      And,
	"OR":       Or,
	"NOT":      Not,
	"LABEL":    Label,
	"IF-GOTO":  IfGoto,
	"GOTO":     Goto,
	"FUNCTION": Function,
	"CALL":     Call,
	"RETURN":   Return,
}

var segmentsMap = map[string]Segment{
	"CONSTANT": Constant,
	"ARGUMENT": Argument,
	"LOCAL":    Local,
	"STATIC":   Static,
	"THIS":     This,
	"THAT":     That,
	"POINTER":  Pointer,
	"TEMP":     Temp,
}

type Reader struct {
	lineCounter  int
	instructions []Instruction
}

// Parse reads every instruction from rd and validates it.
func Parse(rd io.Reader) ([]Instruction, error) {
	reader := &Reader{}
	return reader.Parse(rd)
}

func (reader *Reader) Parse(rd io.Reader) ([]Instruction, error) {
	bfReader := bufio.NewReader(rd)
	for {
		line, err := bfReader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		reader.lineCounter++
		if parseErr := reader.parseLine(line); parseErr != nil {
			return nil, parseErr
		}
		if err == io.EOF {
			return reader.instructions, nil
		}
	}
}

// getNextToken returns the next space separated word of line and the rest of line.
func (reader *Reader) getNextToken(line []byte) (string, []byte) {
	line = bytes.TrimSpace(line)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
			return string(line[:i]), line[i:]
		}
	}
	return string(line), nil
}

func (reader *Reader) parseLine(line []byte) error {
	if i := bytes.Index(line, []byte("//")); i >= 0 {
		line = line[:i]
	}
	token, line := reader.getNextToken(line)
	if len(token) == 0 {
		return nil
	}
	command, exist := keyWordsMap[strings.ToUpper(token)]
	if !exist {
		return reader.makeError(token)
	}
	ins := Instruction{Command: command}
	var err error
	switch command {
	case Push, Pop:
		ins.Segment, line, err = reader.parseSegment(line)
		if err != nil {
			return err
		}
		ins.Index, line, err = reader.getIntegerValue(line)
	case Label, Goto, IfGoto:
		ins.Name, line, err = reader.parseName(line)
	case Function, Call:
		ins.Name, line, err = reader.parseName(line)
		if err != nil {
			return err
		}
		ins.Index, line, err = reader.getIntegerValue(line)
	}
	if err != nil {
		return err
	}
	if err = reader.parseRemainContent(line); err != nil {
		return err
	}
	if err = ins.Validate(); err != nil {
		return fmt.Errorf("line %d: %w", reader.lineCounter, err)
	}
	reader.instructions = append(reader.instructions, ins)
	return nil
}

func (reader *Reader) parseSegment(line []byte) (Segment, []byte, error) {
	token, line := reader.getNextToken(line)
	segment, exist := segmentsMap[strings.ToUpper(token)]
	if !exist {
		return 0, nil, reader.makeError(token)
	}
	return segment, line, nil
}

func (reader *Reader) parseName(line []byte) (string, []byte, error) {
	token, line := reader.getNextToken(line)
	if len(token) == 0 {
		return "", nil, reader.makeError(token)
	}
	return token, line, nil
}

func (reader *Reader) getIntegerValue(line []byte) (int, []byte, error) {
	token, line := reader.getNextToken(line)
	if len(token) == 0 {
		return -1, nil, reader.makeError(token)
	}
	ret, err := strconv.Atoi(token)
	if err != nil {
		return -1, nil, reader.makeError(token)
	}
	return ret, line, nil
}

func (reader *Reader) parseRemainContent(line []byte) error {
	token, _ := reader.getNextToken(line)
	if len(token) != 0 {
		return reader.makeError(token)
	}
	return nil
}

func (reader *Reader) makeError(near string) error {
	return errors.New(fmt.Sprintf("vmcode: syntax error near %q at line %d", near, reader.lineCounter))
}
