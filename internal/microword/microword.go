// Package microword projects raw control words onto the named fields of a microinstruction.
package microword

import "github.com/retroenv/ucexplorer/internal/ucode"

// Half selects the 64-bit half of a control word that a field is read from.
type Half int

const (
	Low  Half = iota // bits 0-63
	High             // bits 64-111
)

func (h Half) String() string {
	if h == High {
		return "high"
	}
	return "low"
}

// Field describes the location of a named field inside a control word.
type Field struct {
	Name   string
	Half   Half
	Offset uint // bit offset inside the half
	Width  uint // width in bits, 1-14
}

// Extract returns the value of the field from the given half value.
func (f Field) Extract(value uint64) uint64 {
	return value >> f.Offset & (1<<f.Width - 1)
}

// Max returns the largest value that the field can hold.
func (f Field) Max() uint64 {
	return 1<<f.Width - 1
}

// Fields is the layout of a control word in display order.
// Some fields overlap, A-Mem-R-Base shares its bits with A-Mem-Read-Address,
// and low bits 12-13 are not assigned to any field.
var Fields = []Field{
	{Name: "A-Mem-Read-Address", Half: Low, Offset: 0, Width: 12},
	{Name: "A-Mem-R-Base", Half: Low, Offset: 9, Width: 2},
	{Name: "Stack-Control", Half: Low, Offset: 14, Width: 2},
	{Name: "Special-Function", Half: Low, Offset: 16, Width: 3},
	{Name: "Special-Enable", Half: Low, Offset: 19, Width: 1},
	{Name: "X-Bus-Select", Half: Low, Offset: 20, Width: 2},
	{Name: "Y-Bus-Select", Half: Low, Offset: 22, Width: 2},
	{Name: "Obus-Type-Select", Half: Low, Offset: 24, Width: 2},
	{Name: "Obus-CDR-Select", Half: Low, Offset: 26, Width: 2},
	{Name: "Obus-High-Select", Half: Low, Offset: 28, Width: 2},
	{Name: "Sequencer-Function", Half: Low, Offset: 30, Width: 2},
	{Name: "B-Mem-Read-Address", Half: Low, Offset: 32, Width: 8},
	{Name: "B-Mem-Write-Address", Half: Low, Offset: 40, Width: 8},
	{Name: "Memory-Control", Half: Low, Offset: 48, Width: 2},
	{Name: "Memory-Start", Half: Low, Offset: 50, Width: 1},
	{Name: "Type-Check-Enable", Half: Low, Offset: 51, Width: 1},
	{Name: "Trap-Enable", Half: Low, Offset: 52, Width: 1},
	{Name: "Magic-Number", Half: Low, Offset: 53, Width: 4},
	{Name: "Condition-Select", Half: Low, Offset: 57, Width: 5},
	{Name: "Condition-Function", Half: Low, Offset: 62, Width: 2},

	{Name: "ALU-Function", Half: High, Offset: 0, Width: 4},
	{Name: "Byte-Function", Half: High, Offset: 4, Width: 2},
	{Name: "Byte-Rotate", Half: High, Offset: 6, Width: 5},
	{Name: "Byte-Size", Half: High, Offset: 11, Width: 5},
	{Name: "Next-Address-Field", Half: High, Offset: 16, Width: 14},
	{Name: "Clock-Speed", Half: High, Offset: 30, Width: 2},
	{Name: "Type-Map-Select", Half: High, Offset: 32, Width: 6},
	{Name: "FPA-Control", Half: High, Offset: 38, Width: 8},
	{Name: "Breakpoint", Half: High, Offset: 46, Width: 1},
	{Name: "Parity-Bit", Half: High, Offset: 47, Width: 1},
}

// Value is a projected field value.
type Value struct {
	Field Field
	Value uint64
}

// MicroInstruction is the decoded view of one control word.
type MicroInstruction struct {
	Address uint16
	Values  []Value // in the order of Fields
}

// Project extracts every field of the control word. All bit patterns are valid.
func Project(word ucode.ControlWord) MicroInstruction {
	values := make([]Value, len(Fields))
	for i, field := range Fields {
		half := word.Low
		if field.Half == High {
			half = word.High
		}
		values[i] = Value{
			Field: field,
			Value: field.Extract(half),
		}
	}

	return MicroInstruction{
		Address: word.Address,
		Values:  values,
	}
}

// Get returns the value of the field with the given name.
func (m MicroInstruction) Get(name string) (uint64, bool) {
	for _, value := range m.Values {
		if value.Field.Name == name {
			return value.Value, true
		}
	}
	return 0, false
}
