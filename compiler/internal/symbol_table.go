package internal

import (
	"github.com/xiaobogaga/jackc/vmcode"
)

type SymbolKind int

const (
	StaticKind SymbolKind = iota
	FieldKind
	ArgumentKind
	LocalKind
)

func (kind SymbolKind) String() string {
	switch kind {
	case StaticKind:
		return "static"
	case FieldKind:
		return "field"
	case ArgumentKind:
		return "argument"
	case LocalKind:
		return "local"
	}
	return ""
}

// Segment is where a symbol of this kind lives. A field is reached through the receiver,
// so it maps to this.
func (kind SymbolKind) Segment() vmcode.Segment {
	switch kind {
	case StaticKind:
		return vmcode.Static
	case FieldKind:
		return vmcode.This
	case ArgumentKind:
		return vmcode.Argument
	default:
		return vmcode.Local
	}
}

func (kind SymbolKind) isClassScope() bool {
	return kind == StaticKind || kind == FieldKind
}

type Symbol struct {
	Name  string
	Kind  SymbolKind
	Index int
	Type  string
}

type scope struct {
	symbols map[string]Symbol
	counts  map[SymbolKind]int
}

func newScope() *scope {
	return &scope{symbols: map[string]Symbol{}, counts: map[SymbolKind]int{}}
}

// SymbolTable has a class scope for static and field symbols and a subroutine scope for
// argument and local symbols. Indexes are dense per kind and per scope, starting at 0.
type SymbolTable struct {
	class      *scope
	subroutine *scope
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{class: newScope(), subroutine: newScope()}
}

// Declare gives name the next index of kind. Declaring a name that already exists in the
// same scope does nothing and the first declaration keeps its index.
func (table *SymbolTable) Declare(name string, kind SymbolKind, tp string) Symbol {
	s := table.subroutine
	if kind.isClassScope() {
		s = table.class
	}
	if symbol, ok := s.symbols[name]; ok {
		return symbol
	}
	symbol := Symbol{Name: name, Kind: kind, Index: s.counts[kind], Type: tp}
	s.counts[kind]++
	s.symbols[name] = symbol
	return symbol
}

// Resolve looks in the subroutine scope first, then in the class scope.
func (table *SymbolTable) Resolve(name string) (Symbol, bool) {
	if symbol, ok := table.subroutine.symbols[name]; ok {
		return symbol, true
	}
	symbol, ok := table.class.symbols[name]
	return symbol, ok
}

// ResetSubroutineScope throws away every argument and local symbol and their counters.
func (table *SymbolTable) ResetSubroutineScope() {
	table.subroutine = newScope()
}

// Count returns how many symbols of kind are declared in its scope.
func (table *SymbolTable) Count(kind SymbolKind) int {
	if kind.isClassScope() {
		return table.class.counts[kind]
	}
	return table.subroutine.counts[kind]
}
