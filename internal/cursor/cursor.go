// Package cursor implements forward-only reading of little-endian integers from a byte source.
package cursor

import (
	"errors"
	"fmt"
	"io"
)

// maxWideBytes is the largest width that ReadWide can assemble into a low/high pair.
const maxWideBytes = 16

var (
	// ErrUnexpectedEndOfInput is returned when fewer bytes remain than a read requested.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	// ErrInvalidWidth is returned for an unsupported integer width.
	ErrInvalidWidth = errors.New("invalid integer width")
)

// IOError wraps a failure of the underlying reader that is not an end of input.
type IOError struct {
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading at offset 0x%X: %v", e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Cursor reads exact byte counts from a reader and tracks the number of bytes consumed.
// After any error the position is unspecified and the cursor should be abandoned.
type Cursor struct {
	reader io.Reader
	offset int64
	buf    [maxWideBytes]byte
}

// New returns a cursor that reads from the given reader.
func New(reader io.Reader) *Cursor {
	return &Cursor{reader: reader}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int64 {
	return c.offset
}

// ReadUint8 reads a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.fill(1); err != nil {
		return 0, err
	}
	return c.buf[0], nil
}

// ReadUint16 reads a 16-bit little-endian value.
func (c *Cursor) ReadUint16() (uint16, error) {
	value, err := c.ReadUint(2)
	return uint16(value), err
}

// ReadUint32 reads a 32-bit little-endian value.
func (c *Cursor) ReadUint32() (uint32, error) {
	value, err := c.ReadUint(4)
	return uint32(value), err
}

// ReadUint reads width bytes, least significant byte first, into an unsigned integer.
// The width has to be between 1 and 8.
func (c *Cursor) ReadUint(width int) (uint64, error) {
	if width < 1 || width > 8 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidWidth, width)
	}
	if err := c.fill(width); err != nil {
		return 0, err
	}
	return littleEndian(c.buf[:width]), nil
}

// ReadWide reads width bytes, least significant byte first, into a 128-bit value that is
// returned as its low and high 64-bit halves. The width has to be between 1 and 16.
func (c *Cursor) ReadWide(width int) (low, high uint64, err error) {
	if width < 1 || width > maxWideBytes {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrInvalidWidth, width)
	}
	if err := c.fill(width); err != nil {
		return 0, 0, err
	}

	data := c.buf[:width]
	if width <= 8 {
		return littleEndian(data), 0, nil
	}
	return littleEndian(data[:8]), littleEndian(data[8:]), nil
}

// ReadBytes reads exactly n bytes into a newly allocated slice.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	data := make([]byte, n)
	if err := c.read(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Cursor) fill(width int) error {
	return c.read(c.buf[:width])
}

func (c *Cursor) read(data []byte) error {
	n, err := io.ReadFull(c.reader, data)
	c.offset += int64(n)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: needed %d bytes at offset 0x%X, got %d",
			ErrUnexpectedEndOfInput, len(data), c.offset-int64(n), n)
	default:
		return &IOError{Offset: c.offset, Err: err}
	}
}

func littleEndian(data []byte) uint64 {
	var value uint64
	for i := len(data) - 1; i >= 0; i-- {
		value = value<<8 | uint64(data[i])
	}
	return value
}
