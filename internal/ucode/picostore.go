package ucode

import (
	"fmt"

	"github.com/retroenv/ucexplorer/internal/cursor"
)

// picoStoreSentinel follows the last pico store entry.
const picoStoreSentinel = 0xFFFF

// decodePicoStoreOrEOF decodes the final part of the file, which is either the
// end of file tag or a pico store section followed by the end of file tag.
// A file without pico store results in a nil slice.
func decodePicoStoreOrEOF(c *cursor.Cursor) ([]PicoStoreEntry, error) {
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading pico store tag: %w", err)
	}

	switch Tag(tag) {
	case TagEOF:
		return nil, nil
	case TagPicoStore:
	default:
		return nil, formatError(SectionPicoStore, offset, ErrInvalidPicoStore,
			"expected tag %d or %d, found %d", TagPicoStore, TagEOF, tag)
	}

	entries := make([]PicoStoreEntry, 0, PicoStoreSize)
	for i := range PicoStoreSize {
		offset = c.Offset()
		address, err := c.ReadUint16()
		if err != nil {
			return nil, picoStoreReadError(offset, err, "entry %d address", i)
		}
		data, err := c.ReadUint32()
		if err != nil {
			return nil, picoStoreReadError(offset, err, "entry %d data", i)
		}
		entries = append(entries, PicoStoreEntry{
			Address: address,
			Data:    data,
		})
	}

	offset = c.Offset()
	sentinel, err := c.ReadUint16()
	if err != nil {
		return nil, picoStoreReadError(offset, err, "terminator")
	}
	if sentinel != picoStoreSentinel {
		return nil, formatError(SectionPicoStore, offset, ErrInvalidPicoStoreTerminator,
			"found 0x%04X", sentinel)
	}

	offset = c.Offset()
	tag, err = c.ReadUint8()
	if err != nil {
		return nil, picoStoreReadError(offset, err, "end of file tag")
	}
	if Tag(tag) != TagEOF {
		return nil, formatError(SectionPicoStore, offset, ErrInvalidPicoStoreEOF,
			"found tag %d", tag)
	}
	return entries, nil
}

// picoStoreReadError reports a pico store that ended early. The result matches
// both ErrInvalidPicoStore and the underlying read error.
func picoStoreReadError(offset int64, err error, what string, args ...any) error {
	return &FormatError{
		Section: SectionPicoStore,
		Offset:  offset,
		Err:     fmt.Errorf("%w: reading "+what+": %w", append(append([]any{ErrInvalidPicoStore}, args...), err)...),
	}
}
