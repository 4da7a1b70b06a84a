// Package ucodetest builds microcode files for tests.
package ucodetest

import (
	"os"
	"path/filepath"
	"testing"
)

// Section tags of the file format.
const (
	TagHeader    = 1
	TagVersion   = 2
	TagComment   = 3
	TagAMem      = 4
	TagBMem      = 5
	TagCMem      = 6
	TagTypeMap   = 7
	TagEOF       = 8
	TagPicoStore = 10

	HeaderMagic   = 5
	PicoStoreSize = 255
)

// AddressRun is a run of A or B memory words starting at an address.
type AddressRun struct {
	Start    uint16
	Payloads []uint64
}

// ControlRun is a run of control words starting at an address.
type ControlRun struct {
	Start uint16
	Words []ControlWord
}

// ControlWord is the raw content of a control word and its trailer bytes.
// Extension must not contain zero bytes.
type ControlWord struct {
	Low       uint64
	High      uint64
	Extension []byte
}

// PicoEntry is one pico store entry.
type PicoEntry struct {
	Address uint16
	Data    uint32
}

// Builder appends file sections in the order they are called.
type Builder struct {
	data []byte
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Minimal returns a valid file with the given version and every section empty.
func Minimal(version uint16) []byte {
	return New().
		Header().
		Version(version).
		Comment("").
		AMem().
		BMem().
		CMem().
		TypeMap().
		EOF().
		Bytes()
}

// Bytes returns the encoded file.
func (b *Builder) Bytes() []byte {
	return b.data
}

// Raw appends raw bytes.
func (b *Builder) Raw(data ...byte) *Builder {
	b.data = append(b.data, data...)
	return b
}

// Uint16 appends a little-endian 16-bit value.
func (b *Builder) Uint16(value uint16) *Builder {
	return b.le(uint64(value), 2)
}

// Uint32 appends a little-endian 32-bit value.
func (b *Builder) Uint32(value uint32) *Builder {
	return b.le(uint64(value), 4)
}

// Header appends the header tag and magic.
func (b *Builder) Header() *Builder {
	return b.Raw(TagHeader, HeaderMagic)
}

// Version appends the version section.
func (b *Builder) Version(version uint16) *Builder {
	return b.Raw(TagVersion).Uint16(version)
}

// Comment appends the comment section, the text is truncated to 255 bytes.
func (b *Builder) Comment(text string) *Builder {
	if len(text) > 255 {
		text = text[:255]
	}
	return b.Raw(TagComment, byte(len(text))).Raw([]byte(text)...)
}

// AMem appends an A memory section with the given runs.
func (b *Builder) AMem(runs ...AddressRun) *Builder {
	return b.Raw(TagAMem).addressRuns(runs)
}

// BMem appends a B memory section with the given runs.
func (b *Builder) BMem(runs ...AddressRun) *Builder {
	return b.Raw(TagBMem).addressRuns(runs)
}

// CMem appends a C memory section with the given runs.
func (b *Builder) CMem(runs ...ControlRun) *Builder {
	b.Raw(TagCMem)
	for _, run := range runs {
		b.Uint16(uint16(len(run.Words))).Uint16(run.Start)
		for _, word := range run.Words {
			b.le(word.Low, 8).le(word.High, 6)
			b.Raw(word.Extension...).Raw(0)
		}
	}
	return b.Uint16(0)
}

// TypeMap appends a type map section with zero padding and terminator.
func (b *Builder) TypeMap(entries ...byte) *Builder {
	return b.Raw(TagTypeMap).
		Uint16(uint16(len(entries))).
		Uint16(0).
		Raw(entries...).
		Uint16(0)
}

// PicoStore appends a pico store section with the given entries, the 0xFFFF
// sentinel and the end of file tag. No entry count check is done.
func (b *Builder) PicoStore(entries ...PicoEntry) *Builder {
	b.Raw(TagPicoStore)
	for _, entry := range entries {
		b.Uint16(entry.Address).Uint32(entry.Data)
	}
	return b.Uint16(0xFFFF).EOF()
}

// EOF appends the end of file tag.
func (b *Builder) EOF() *Builder {
	return b.Raw(TagEOF)
}

// PicoEntries returns count pico store entries with ascending addresses and data.
func PicoEntries(count int) []PicoEntry {
	entries := make([]PicoEntry, count)
	for i := range entries {
		entries[i] = PicoEntry{
			Address: uint16(i),
			Data:    uint32(i) * 0x01010101,
		}
	}
	return entries
}

// WriteFile writes data to a file in a test temporary directory and returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func (b *Builder) addressRuns(runs []AddressRun) *Builder {
	for _, run := range runs {
		b.Uint16(uint16(len(run.Payloads))).Uint16(run.Start)
		for _, payload := range run.Payloads {
			b.le(payload, 5)
		}
	}
	return b.Uint16(0)
}

func (b *Builder) le(value uint64, width int) *Builder {
	for range width {
		b.data = append(b.data, byte(value))
		value >>= 8
	}
	return b
}
