package ucode

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/ucexplorer/internal/cursor"
)

// Load reads and decodes the microcode file at the given path.
// The returned image is only valid if no error is returned.
func Load(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	img, err := Decode(bufio.NewReader(file), path)
	if err != nil {
		return nil, fmt.Errorf("decoding file %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes a complete microcode file from the reader. The path is only
// recorded in the image. Decoding stops at the first framing or read error,
// in which case no image is returned.
func Decode(reader io.Reader, path string) (*Image, error) {
	c := cursor.New(reader)
	img := &Image{path: path}

	if err := decodeHeader(c); err != nil {
		return nil, err
	}

	var err error
	if img.version, err = decodeVersion(c); err != nil {
		return nil, err
	}
	if img.comment, err = decodeComment(c); err != nil {
		return nil, err
	}
	if img.aMem, err = decodeAddressedMemory(c, SectionAMem, TagAMem); err != nil {
		return nil, err
	}
	if img.bMem, err = decodeAddressedMemory(c, SectionBMem, TagBMem); err != nil {
		return nil, err
	}
	if img.cMem, err = decodeControlMemory(c); err != nil {
		return nil, err
	}
	if img.typeMap, err = decodeTypeMap(c); err != nil {
		return nil, err
	}
	if img.picoStore, err = decodePicoStoreOrEOF(c); err != nil {
		return nil, err
	}

	return img, nil
}

func decodeHeader(c *cursor.Cursor) error {
	if err := expectTag(c, SectionHeader, TagHeader); err != nil {
		return err
	}

	offset := c.Offset()
	magic, err := c.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading header magic: %w", err)
	}
	if magic != HeaderMagic {
		return formatError(SectionHeader, offset, ErrInvalidHeader,
			"expected magic %d, found %d", HeaderMagic, magic)
	}
	return nil
}

func decodeVersion(c *cursor.Cursor) (uint16, error) {
	if err := expectTag(c, SectionVersion, TagVersion); err != nil {
		return 0, err
	}

	version, err := c.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("reading version: %w", err)
	}
	return version, nil
}

func decodeComment(c *cursor.Cursor) (string, error) {
	if err := expectTag(c, SectionComment, TagComment); err != nil {
		return "", err
	}

	length, err := c.ReadUint8()
	if err != nil {
		return "", fmt.Errorf("reading comment length: %w", err)
	}
	text, err := c.ReadBytes(int(length))
	if err != nil {
		return "", fmt.Errorf("reading comment text: %w", err)
	}
	return string(text), nil
}
