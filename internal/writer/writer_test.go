package writer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/ucexplorer/internal/ucode"
	"github.com/retroenv/ucexplorer/internal/ucodetest"
)

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func loadImage(t *testing.T, data []byte) *ucode.Image {
	t.Helper()

	img, err := ucode.Decode(bytes.NewReader(data), "test.mcr")
	assert.NoError(t, err)
	return img
}

func testImage(t *testing.T) *ucode.Image {
	t.Helper()

	data := ucodetest.New().
		Header().Version(0xBEEF).Comment("system 127").
		AMem(ucodetest.AddressRun{Start: 0x10, Payloads: []uint64{0x0102030405}}).
		BMem(ucodetest.AddressRun{Start: 0x20, Payloads: []uint64{0xFFFFFFFFFF, 1}}).
		CMem(ucodetest.ControlRun{Start: 0o100, Words: []ucodetest.ControlWord{
			{Low: 0o17, High: 0xC, Extension: []byte{0xAB, 0xCD}},
		}}).
		TypeMap(0o1, 0o2, 0o3, 0o4, 0o5, 0o6, 0o7, 0o10, 0o377).
		EOF().
		Bytes()
	return loadImage(t, data)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteSummary(&buf, testImage(t)))

	expected := strings.Join([]string{
		"Loaded From:     test.mcr",
		"Version:         0xBEEF",
		"Comment:         system 127",
		"A-Mem Size:      1 words",
		"B-Mem Size:      2 words",
		"C-Mem Size:      1 words",
		"Type Map Size:   9 words",
		"Pico Store Size: 0 words",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteDisassembly(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteDisassembly(&buf, testImage(t)))
	output := buf.String()

	assert.Contains(t, output, "; Version: 0xBEEF")
	assert.Contains(t, output, "; Comment: system 127")

	// A and B memory in hexadecimal
	assert.Contains(t, output, "; A-Mem: 1 words\n0010: 0102030405\n")
	assert.Contains(t, output, "0020: FFFFFFFFFF\n0021: 0000000001\n")

	// control words and fields in octal
	assert.Contains(t, output, "\n000100: 0000000000000000000017 0000000000000014\n")
	assert.Contains(t, output, "  A-Mem-Read-Address   17\n")
	assert.Contains(t, output, "  ALU-Function         14\n")
	assert.Contains(t, output, "  Parity-Bit           0\n")
	assert.Contains(t, output, "  Extension            AB CD\n")

	// type map bundled per line, index in octal
	assert.Contains(t, output, "000000: 001 002 003 004 005 006 007 010\n000010: 377\n")
	assert.Contains(t, output, "; Pico Store: 0 words\n")
}

func TestWriteDisassembly_PicoStore(t *testing.T) {
	data := ucodetest.New().
		Header().Version(1).Comment("").
		AMem().BMem().CMem().TypeMap().
		PicoStore(ucodetest.PicoEntries(ucodetest.PicoStoreSize)...).
		Bytes()

	var buf bytes.Buffer
	assert.NoError(t, WriteDisassembly(&buf, loadImage(t, data)))
	output := buf.String()

	assert.Contains(t, output, "; Pico Store: 255 words\n")
	assert.Contains(t, output, "000001: 00100200401\n")
}

func TestWriteErrors(t *testing.T) {
	img := testImage(t)

	err := WriteSummary(failingWriter{}, img)
	assert.True(t, errors.Is(err, errWrite))

	err = WriteDisassembly(failingWriter{}, img)
	assert.True(t, errors.Is(err, errWrite))
}

func TestBundleEntries(t *testing.T) {
	var lines []string
	var indexes []int
	lineWriter := func(line string, index int) error {
		lines = append(lines, line)
		indexes = append(indexes, index)
		return nil
	}

	assert.NoError(t, BundleEntries([]byte{1, 2, 3, 4, 5}, 2, lineWriter))
	assert.Equal(t, []string{"001 002", "003 004", "005"}, lines)
	assert.Equal(t, []int{0, 2, 4}, indexes)

	lines = nil
	assert.NoError(t, BundleEntries(nil, 2, lineWriter))
	assert.Equal(t, 0, len(lines))
}
