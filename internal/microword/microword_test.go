package microword

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/ucexplorer/internal/ucode"
)

func TestFields_Layout(t *testing.T) {
	assert.Equal(t, 30, len(Fields))

	names := make(map[string]struct{}, len(Fields))
	widths := map[Half]uint{}
	for _, field := range Fields {
		_, duplicate := names[field.Name]
		assert.False(t, duplicate, "duplicate field %s", field.Name)
		names[field.Name] = struct{}{}

		assert.True(t, field.Width >= 1 && field.Width <= 14, "width of %s", field.Name)
		limit := uint(64)
		if field.Half == High {
			limit = 48
		}
		assert.True(t, field.Offset+field.Width <= limit, "%s exceeds its half", field.Name)
		widths[field.Half] += field.Width
	}

	assert.Equal(t, uint(64), widths[Low])
	assert.Equal(t, uint(48), widths[High])
}

func TestProject_AllOnes(t *testing.T) {
	word := ucode.ControlWord{
		Low:  ^uint64(0),
		High: 1<<48 - 1,
	}
	inst := Project(word)

	assert.Equal(t, len(Fields), len(inst.Values))
	for _, value := range inst.Values {
		assert.Equal(t, value.Field.Max(), value.Value, value.Field.Name)
	}

	aluFunction, ok := inst.Get("ALU-Function")
	assert.True(t, ok)
	assert.Equal(t, uint64(15), aluFunction)
	naf, _ := inst.Get("Next-Address-Field")
	assert.Equal(t, uint64(0o37777), naf)
}

func TestProject_LowOnesOnly(t *testing.T) {
	inst := Project(ucode.ControlWord{Low: ^uint64(0)})

	for _, value := range inst.Values {
		if value.Field.Half == Low {
			assert.Equal(t, value.Field.Max(), value.Value, value.Field.Name)
		} else {
			assert.Equal(t, uint64(0), value.Value, value.Field.Name)
		}
	}
}

func TestProject_Fields(t *testing.T) {
	tests := []struct {
		name     string
		word     ucode.ControlWord
		field    string
		expected uint64
	}{
		{"A-mem read address", ucode.ControlWord{Low: 0o7777}, "A-Mem-Read-Address", 0o7777},
		{"A-mem read address masks", ucode.ControlWord{Low: 0o17777}, "A-Mem-Read-Address", 0o7777},
		{"R-base overlaps read address", ucode.ControlWord{Low: 0b11 << 9}, "A-Mem-R-Base", 3},
		{"R-base read address view", ucode.ControlWord{Low: 0b11 << 9}, "A-Mem-Read-Address", 0b11 << 9},
		{"sequencer function", ucode.ControlWord{Low: 0b10 << 30}, "Sequencer-Function", 2},
		{"B-mem read address", ucode.ControlWord{Low: 0xA5 << 32}, "B-Mem-Read-Address", 0xA5},
		{"magic number", ucode.ControlWord{Low: 0b1001 << 53}, "Magic-Number", 9},
		{"condition select", ucode.ControlWord{Low: 0b10101 << 57}, "Condition-Select", 21},
		{"condition function", ucode.ControlWord{Low: 1 << 63}, "Condition-Function", 2},
		{"ALU function", ucode.ControlWord{High: 0xC}, "ALU-Function", 12},
		{"byte function", ucode.ControlWord{High: 0b01 << 4}, "Byte-Function", 1},
		{"next address field", ucode.ControlWord{High: 0o12345 << 16}, "Next-Address-Field", 0o12345},
		{"clock speed", ucode.ControlWord{High: 0b11 << 30}, "Clock-Speed", 3},
		{"type map select", ucode.ControlWord{High: 0o52 << 32}, "Type-Map-Select", 0o52},
		{"FPA control", ucode.ControlWord{High: 0xF0 << 38}, "FPA-Control", 0xF0},
		{"parity bit", ucode.ControlWord{High: 1 << 47}, "Parity-Bit", 1},
		{"parity ignores breakpoint", ucode.ControlWord{High: 1 << 46}, "Parity-Bit", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := Project(tt.word).Get(tt.field)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestProject_Address(t *testing.T) {
	inst := Project(ucode.ControlWord{Address: 0o1234})
	assert.Equal(t, uint16(0o1234), inst.Address)

	_, ok := inst.Get("No-Such-Field")
	assert.False(t, ok)
}

func TestHalf_String(t *testing.T) {
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "high", High.String())
}
