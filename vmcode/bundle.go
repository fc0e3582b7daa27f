package vmcode

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Bundle carries every class compiled in one run, so a translator can pick them up
// from a single file instead of a directory of .vm files.
type Bundle struct {
	ID    string `cbor:"id"`
	Units []Unit `cbor:"units"`
}

// Unit is one compiled class, its instructions kept in text form.
type Unit struct {
	Class        string   `cbor:"class"`
	Instructions []string `cbor:"instructions"`
}

func NewBundle() *Bundle {
	return &Bundle{ID: uuid.NewString()}
}

func (bundle *Bundle) Add(class string, instructions []Instruction) {
	bundle.Units = append(bundle.Units, Unit{Class: class, Instructions: Lines(instructions)})
}

// Parse turns the text of unit back into instructions.
func (unit Unit) Parse() ([]Instruction, error) {
	var buf bytes.Buffer
	for _, line := range unit.Instructions {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	instructions, err := Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("vmcode: unit %s: %w", unit.Class, err)
	}
	return instructions, nil
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vmcode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalBundle encodes bundle as canonical CBOR, the same bundle always gives the same bytes.
func MarshalBundle(bundle *Bundle) ([]byte, error) {
	return cborEncMode.Marshal(bundle)
}

func UnmarshalBundle(data []byte) (*Bundle, error) {
	var bundle Bundle
	if err := cbor.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("vmcode: unmarshal bundle: %w", err)
	}
	return &bundle, nil
}
