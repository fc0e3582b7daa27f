package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xiaobogaga/jackc/vmcode"
)

func TestSymbolTable_Declare(t *testing.T) {
	table := NewSymbolTable()
	testData := []struct {
		name          string
		kind          SymbolKind
		tp            string
		expectedIndex int
	}{
		{name: "a", kind: StaticKind, tp: "int", expectedIndex: 0},
		{name: "b", kind: FieldKind, tp: "int", expectedIndex: 0},
		{name: "c", kind: StaticKind, tp: "boolean", expectedIndex: 1},
		{name: "d", kind: FieldKind, tp: "Point", expectedIndex: 1},
		{name: "e", kind: ArgumentKind, tp: "int", expectedIndex: 0},
		{name: "f", kind: LocalKind, tp: "char", expectedIndex: 0},
		{name: "g", kind: LocalKind, tp: "char", expectedIndex: 1},
	}
	for _, data := range testData {
		symbol := table.Declare(data.name, data.kind, data.tp)
		assert.Equal(t, data.expectedIndex, symbol.Index, data.name)
		resolved, ok := table.Resolve(data.name)
		assert.True(t, ok)
		assert.Equal(t, Symbol{Name: data.name, Kind: data.kind, Index: data.expectedIndex, Type: data.tp}, resolved)
	}
	assert.Equal(t, 2, table.Count(StaticKind))
	assert.Equal(t, 2, table.Count(FieldKind))
	assert.Equal(t, 1, table.Count(ArgumentKind))
	assert.Equal(t, 2, table.Count(LocalKind))
}

// Declaring a name twice in one scope keeps the first declaration and its slot.
func TestSymbolTable_DuplicateDeclaration(t *testing.T) {
	table := NewSymbolTable()
	table.Declare("a", StaticKind, "int")
	again := table.Declare("a", StaticKind, "boolean")
	assert.Equal(t, 0, again.Index)
	assert.Equal(t, "int", again.Type)
	assert.Equal(t, 1, table.Count(StaticKind))

	// A field with the same name as a static is still a duplicate in the class scope.
	table.Declare("a", FieldKind, "int")
	assert.Equal(t, 0, table.Count(FieldKind))
	symbol, _ := table.Resolve("a")
	assert.Equal(t, StaticKind, symbol.Kind)
}

func TestSymbolTable_Shadowing(t *testing.T) {
	table := NewSymbolTable()
	table.Declare("x", FieldKind, "int")
	table.Declare("x", LocalKind, "boolean")
	symbol, ok := table.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, LocalKind, symbol.Kind)

	table.ResetSubroutineScope()
	symbol, ok = table.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, FieldKind, symbol.Kind)
}

func TestSymbolTable_ResetSubroutineScope(t *testing.T) {
	table := NewSymbolTable()
	table.Declare("s", StaticKind, "int")
	table.Declare("p", ArgumentKind, "int")
	table.Declare("l", LocalKind, "int")
	table.ResetSubroutineScope()

	_, ok := table.Resolve("p")
	assert.False(t, ok)
	_, ok = table.Resolve("l")
	assert.False(t, ok)
	_, ok = table.Resolve("s")
	assert.True(t, ok)
	assert.Equal(t, 0, table.Count(ArgumentKind))
	assert.Equal(t, 0, table.Count(LocalKind))
	assert.Equal(t, 0, table.Declare("q", ArgumentKind, "int").Index)
}

func TestSymbolKind_Segment(t *testing.T) {
	assert.Equal(t, vmcode.Static, StaticKind.Segment())
	assert.Equal(t, vmcode.This, FieldKind.Segment())
	assert.Equal(t, vmcode.Argument, ArgumentKind.Segment())
	assert.Equal(t, vmcode.Local, LocalKind.Segment())
	assert.Equal(t, "field", FieldKind.String())
}
