// Package writer renders microcode images as summary and disassembly text.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/ucexplorer/internal/microword"
	"github.com/retroenv/ucexplorer/internal/ucode"
)

const typeMapEntriesPerLine = 8

type lineWriterFunc func(line string, index int) error

// Writer renders a microcode image.
type Writer struct {
	img    *ucode.Image
	writer io.Writer
}

// New creates a new writer for the image.
func New(img *ucode.Image, writer io.Writer) *Writer {
	return &Writer{
		img:    img,
		writer: writer,
	}
}

// WriteSummary writes the image overview to w.
func WriteSummary(w io.Writer, img *ucode.Image) error {
	return New(img, w).Summary()
}

// WriteDisassembly writes the complete disassembly of the image to w.
func WriteDisassembly(w io.Writer, img *ucode.Image) error {
	return New(img, w).Disassembly()
}

// Summary writes the source path, version, comment and section sizes.
func (w Writer) Summary() error {
	sizes := w.img.Sizes()
	lines := []struct {
		label string
		value string
	}{
		{"Loaded From", w.img.Path()},
		{"Version", fmt.Sprintf("0x%04X", w.img.Version())},
		{"Comment", w.img.Comment()},
		{"A-Mem Size", fmt.Sprintf("%d words", sizes.AMem)},
		{"B-Mem Size", fmt.Sprintf("%d words", sizes.BMem)},
		{"C-Mem Size", fmt.Sprintf("%d words", sizes.CMem)},
		{"Type Map Size", fmt.Sprintf("%d words", sizes.TypeMap)},
		{"Pico Store Size", fmt.Sprintf("%d words", sizes.PicoStore)},
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w.writer, "%-16s %s\n", line.label+":", line.value); err != nil {
			return fmt.Errorf("writing summary line: %w", err)
		}
	}
	return nil
}

// Disassembly writes a header followed by every section of the image.
func (w Writer) Disassembly() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	if err := w.writeAddressedMemory("A-Mem", w.img.AMem()); err != nil {
		return err
	}
	if err := w.writeAddressedMemory("B-Mem", w.img.BMem()); err != nil {
		return err
	}
	if err := w.writeControlMemory(); err != nil {
		return err
	}
	if err := w.writeTypeMap(); err != nil {
		return err
	}
	return w.writePicoStore()
}

// WriteCommentHeader writes the source, version and comment as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; Source: %s\n", w.img.Path()); err != nil {
		return fmt.Errorf("writing source: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Version: 0x%04X\n", w.img.Version()); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Comment: %s\n", w.img.Comment()); err != nil {
		return fmt.Errorf("writing comment: %w", err)
	}
	return nil
}

// WriteControlWord writes the address, raw halves and all projected fields of a control word.
func (w Writer) WriteControlWord(word ucode.ControlWord) error {
	if _, err := fmt.Fprintf(w.writer, "\n%06o: %022o %016o\n", word.Address, word.Low, word.High); err != nil {
		return fmt.Errorf("writing control word: %w", err)
	}

	inst := microword.Project(word)
	for _, value := range inst.Values {
		if _, err := fmt.Fprintf(w.writer, "  %-20s %o\n", value.Field.Name, value.Value); err != nil {
			return fmt.Errorf("writing field %s: %w", value.Field.Name, err)
		}
	}

	if len(word.Extension) > 0 {
		if _, err := fmt.Fprintf(w.writer, "  %-20s % X\n", "Extension", word.Extension); err != nil {
			return fmt.Errorf("writing extension: %w", err)
		}
	}
	return nil
}

func (w Writer) writeSectionHeader(name string, count int) error {
	if _, err := fmt.Fprintf(w.writer, "\n; %s: %d words\n", name, count); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	return nil
}

func (w Writer) writeAddressedMemory(name string, words []ucode.AddressedWord) error {
	if err := w.writeSectionHeader(name, len(words)); err != nil {
		return err
	}
	for _, word := range words {
		if _, err := fmt.Fprintf(w.writer, "%04X: %010X\n", word.Address, word.Payload); err != nil {
			return fmt.Errorf("writing %s word: %w", name, err)
		}
	}
	return nil
}

func (w Writer) writeControlMemory() error {
	words := w.img.CMem()
	if err := w.writeSectionHeader("C-Mem", len(words)); err != nil {
		return err
	}
	for _, word := range words {
		if err := w.WriteControlWord(word); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeTypeMap() error {
	entries := w.img.TypeMap()
	if err := w.writeSectionHeader("Type Map", len(entries)); err != nil {
		return err
	}

	lineWriter := func(line string, index int) error {
		if _, err := fmt.Fprintf(w.writer, "%06o: %s\n", index, line); err != nil {
			return fmt.Errorf("writing type map line: %w", err)
		}
		return nil
	}
	return BundleEntries(entries, typeMapEntriesPerLine, lineWriter)
}

func (w Writer) writePicoStore() error {
	entries := w.img.PicoStore()
	if err := w.writeSectionHeader("Pico Store", len(entries)); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w.writer, "%06o: %011o\n", entry.Address, entry.Data); err != nil {
			return fmt.Errorf("writing pico store entry: %w", err)
		}
	}
	return nil
}

// BundleEntries formats perLine byte entries per line in octal and passes every line
// together with the index of its first entry to the line writer.
func BundleEntries(data []byte, perLine int, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, perLine)

		buf := &strings.Builder{}
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "%03o ", data[i+j]); err != nil {
				return fmt.Errorf("writing entry: %w", err)
			}
		}

		if err := lineWriter(strings.TrimRight(buf.String(), " "), i); err != nil {
			return err
		}

		i += toWrite
		remaining -= toWrite
	}
	return nil
}
