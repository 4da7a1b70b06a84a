package ucode

import (
	"fmt"

	"github.com/retroenv/ucexplorer/internal/cursor"
)

// Tag is the byte that introduces a section in a microcode file.
type Tag uint8

// Section tags in file order, the pico store tag being the only optional one.
const (
	TagHeader    Tag = 1
	TagVersion   Tag = 2
	TagComment   Tag = 3
	TagAMem      Tag = 4
	TagBMem      Tag = 5
	TagCMem      Tag = 6
	TagTypeMap   Tag = 7
	TagEOF       Tag = 8
	TagPicoStore Tag = 10
)

// HeaderMagic follows the header tag.
const HeaderMagic = 5

// Section identifies a logical part of the file for error reporting.
type Section int

const (
	SectionHeader Section = iota
	SectionVersion
	SectionComment
	SectionAMem
	SectionBMem
	SectionCMem
	SectionTypeMap
	SectionPicoStore
)

var sectionNames = [...]string{
	SectionHeader:    "header",
	SectionVersion:   "version",
	SectionComment:   "comment",
	SectionAMem:      "A-mem",
	SectionBMem:      "B-mem",
	SectionCMem:      "C-mem",
	SectionTypeMap:   "type map",
	SectionPicoStore: "pico store",
}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

// sectionErrors maps every section to the error returned when its framing is violated.
var sectionErrors = [...]error{
	SectionHeader:    ErrInvalidHeader,
	SectionVersion:   ErrInvalidVersion,
	SectionComment:   ErrInvalidComment,
	SectionAMem:      ErrInvalidMemorySection,
	SectionBMem:      ErrInvalidMemorySection,
	SectionCMem:      ErrInvalidControlMemory,
	SectionTypeMap:   ErrInvalidTypeMap,
	SectionPicoStore: ErrInvalidPicoStore,
}

// expectTag reads one tag byte and fails with the section error if it does not match.
func expectTag(c *cursor.Cursor, section Section, expected Tag) error {
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading %s tag: %w", section, err)
	}
	if Tag(tag) != expected {
		return formatError(section, offset, sectionErrors[section],
			"expected tag %d, found %d", expected, tag)
	}
	return nil
}

// expectZero reads a 16-bit word that has to be zero.
func expectZero(c *cursor.Cursor, section Section, what string) error {
	offset := c.Offset()
	value, err := c.ReadUint16()
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", section, what, err)
	}
	if value != 0 {
		return formatError(section, offset, sectionErrors[section],
			"%s is 0x%04X instead of 0", what, value)
	}
	return nil
}
