// Package ucode decodes sectioned microcode image files into an immutable in-memory image.
package ucode

import "slices"

// PicoStoreSize is the number of entries of a pico store section.
const PicoStoreSize = 255

// AddressedWord is a 40-bit word of the A or B memory.
type AddressedWord struct {
	Address uint16
	Payload uint64
}

// ControlWord is a 112-bit horizontal microcode instruction of the C memory.
type ControlWord struct {
	Address uint16
	Low     uint64 // bits 0-63
	High    uint64 // bits 64-111, zero extended

	// Extension holds the raw trailer bytes that follow the word in the file,
	// without the terminating zero byte. Their meaning is unknown.
	Extension []byte
}

// PicoStoreEntry is one entry of the floating point adjunct control table.
type PicoStoreEntry struct {
	Address uint16
	Data    uint32
}

// Image is a decoded microcode file. It is only created by a successful load
// and does not change afterwards, all accessors return copies.
type Image struct {
	path    string
	version uint16
	comment string

	aMem      []AddressedWord
	bMem      []AddressedWord
	cMem      []ControlWord
	typeMap   []uint8
	picoStore []PicoStoreEntry
}

// Path returns the path that the image was loaded from.
func (img *Image) Path() string { return img.path }

// Version returns the microcode version.
func (img *Image) Version() uint16 { return img.version }

// Comment returns the comment embedded in the file.
func (img *Image) Comment() string { return img.comment }

// AMem returns the A memory words in file order.
func (img *Image) AMem() []AddressedWord { return slices.Clone(img.aMem) }

// BMem returns the B memory words in file order.
func (img *Image) BMem() []AddressedWord { return slices.Clone(img.bMem) }

// CMem returns the control words in file order.
func (img *Image) CMem() []ControlWord {
	words := slices.Clone(img.cMem)
	for i := range words {
		words[i].Extension = slices.Clone(words[i].Extension)
	}
	return words
}

// TypeMap returns the type map entries, indexed by position.
func (img *Image) TypeMap() []uint8 { return slices.Clone(img.typeMap) }

// PicoStore returns the pico store entries, empty if the file has none.
func (img *Image) PicoStore() []PicoStoreEntry { return slices.Clone(img.picoStore) }

// ControlWord returns the last control word decoded for the given address.
func (img *Image) ControlWord(address uint16) (ControlWord, bool) {
	for i := len(img.cMem) - 1; i >= 0; i-- {
		word := img.cMem[i]
		if word.Address == address {
			word.Extension = slices.Clone(word.Extension)
			return word, true
		}
	}
	return ControlWord{}, false
}

// Sizes contains the number of entries of every section.
type Sizes struct {
	AMem      int
	BMem      int
	CMem      int
	TypeMap   int
	PicoStore int
}

// Sizes returns the number of entries of every section without copying them.
func (img *Image) Sizes() Sizes {
	return Sizes{
		AMem:      len(img.aMem),
		BMem:      len(img.bMem),
		CMem:      len(img.cMem),
		TypeMap:   len(img.typeMap),
		PicoStore: len(img.picoStore),
	}
}
