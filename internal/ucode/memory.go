package ucode

import (
	"fmt"

	"github.com/retroenv/ucexplorer/internal/cursor"
)

const (
	addressedWordBytes = 5  // 40-bit A/B memory payload
	controlWordBytes   = 14 // 64-bit low half followed by the 48-bit high half
)

// wordDecoder decodes a single word of a run and assigns it the given address.
type wordDecoder func(c *cursor.Cursor, address uint16) error

// decodeRuns decodes a memory section made of address runs. Every run starts with a
// 16-bit word count and a 16-bit start address, a count of 0 ends the section.
// Runs are decoded in file order and may overlap or go backwards.
func decodeRuns(c *cursor.Cursor, section Section, decodeWord wordDecoder) error {
	for {
		count, err := c.ReadUint16()
		if err != nil {
			return fmt.Errorf("reading %s run length: %w", section, err)
		}
		if count == 0 {
			return nil
		}

		start, err := c.ReadUint16()
		if err != nil {
			return fmt.Errorf("reading %s run start address: %w", section, err)
		}

		for i := range count {
			address := start + i
			if err := decodeWord(c, address); err != nil {
				return fmt.Errorf("decoding %s word at address 0x%04X: %w", section, address, err)
			}
		}
	}
}

// decodeAddressedMemory decodes an A or B memory section including its tag.
func decodeAddressedMemory(c *cursor.Cursor, section Section, tag Tag) ([]AddressedWord, error) {
	if err := expectTag(c, section, tag); err != nil {
		return nil, err
	}

	var words []AddressedWord
	err := decodeRuns(c, section, func(c *cursor.Cursor, address uint16) error {
		payload, err := c.ReadUint(addressedWordBytes)
		if err != nil {
			return err
		}
		words = append(words, AddressedWord{
			Address: address,
			Payload: payload,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// decodeControlMemory decodes the C memory section including its tag.
func decodeControlMemory(c *cursor.Cursor) ([]ControlWord, error) {
	if err := expectTag(c, SectionCMem, TagCMem); err != nil {
		return nil, err
	}

	var words []ControlWord
	err := decodeRuns(c, SectionCMem, func(c *cursor.Cursor, address uint16) error {
		low, high, err := c.ReadWide(controlWordBytes)
		if err != nil {
			return err
		}
		extension, err := readExtension(c)
		if err != nil {
			return err
		}
		words = append(words, ControlWord{
			Address:   address,
			Low:       low,
			High:      high,
			Extension: extension,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// readExtension consumes the trailer of a control word up to and including
// the terminating zero byte and returns the bytes before it.
func readExtension(c *cursor.Cursor) ([]byte, error) {
	var extension []byte
	for {
		b, err := c.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("reading control word extension: %w", err)
		}
		if b == 0 {
			return extension, nil
		}
		extension = append(extension, b)
	}
}
