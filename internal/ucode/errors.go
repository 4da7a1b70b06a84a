package ucode

import (
	"errors"
	"fmt"
)

// Section framing errors, one per section contract.
var (
	ErrInvalidHeader        = errors.New("invalid header")
	ErrInvalidVersion       = errors.New("invalid version")
	ErrInvalidComment       = errors.New("invalid comment")
	ErrInvalidMemorySection = errors.New("invalid memory section")
	ErrInvalidControlMemory = errors.New("invalid control memory")
	ErrInvalidTypeMap       = errors.New("invalid type map")
	ErrInvalidPicoStore     = errors.New("invalid pico store")

	// Pico store specific errors wrap ErrInvalidPicoStore.
	ErrInvalidPicoStoreTerminator = fmt.Errorf("%w: bad terminator", ErrInvalidPicoStore)
	ErrInvalidPicoStoreEOF        = fmt.Errorf("%w: missing end of file tag", ErrInvalidPicoStore)
)

// FormatError describes a violated section contract.
type FormatError struct {
	Section Section
	Offset  int64 // offset of the first byte that violated the contract
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s section at offset 0x%X: %v", e.Section, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(section Section, offset int64, err error, detail string, args ...any) error {
	if detail != "" {
		err = fmt.Errorf("%w: "+detail, append([]any{err}, args...)...)
	}
	return &FormatError{
		Section: section,
		Offset:  offset,
		Err:     err,
	}
}
