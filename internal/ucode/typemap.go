package ucode

import (
	"fmt"

	"github.com/retroenv/ucexplorer/internal/cursor"
)

// decodeTypeMap decodes the type map section: tag, entry count, a zero padding word,
// one byte per entry and a zero terminator word.
func decodeTypeMap(c *cursor.Cursor) ([]uint8, error) {
	if err := expectTag(c, SectionTypeMap, TagTypeMap); err != nil {
		return nil, err
	}

	count, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("reading type map size: %w", err)
	}

	if err := expectZero(c, SectionTypeMap, "padding"); err != nil {
		return nil, err
	}

	entries, err := c.ReadBytes(int(count))
	if err != nil {
		return nil, fmt.Errorf("reading type map entries: %w", err)
	}

	if err := expectZero(c, SectionTypeMap, "terminator"); err != nil {
		return nil, err
	}
	return entries, nil
}
