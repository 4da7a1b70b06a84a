package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/ucexplorer/internal/ucodetest"
)

func testFile(t *testing.T) string {
	t.Helper()

	data := ucodetest.New().
		Header().Version(0x0102).Comment("test").
		AMem(ucodetest.AddressRun{Start: 0, Payloads: []uint64{1, 2}}).
		BMem().
		CMem(ucodetest.ControlRun{Start: 0o10, Words: []ucodetest.ControlWord{
			{Low: 0o7777, High: 0xF},
		}}).
		TypeMap(1).
		EOF().
		Bytes()
	return ucodetest.WriteFile(t, "ucode.mcr", data)
}

func newShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	return New(log.NewTestLogger(t), &buf, nil), &buf
}

func run(t *testing.T, s *Shell, input string) {
	t.Helper()

	console := NewScannerConsole(strings.NewReader(input), s.out)
	assert.NoError(t, s.Run(context.Background(), console))
}

func TestShell_LoadAndShow(t *testing.T) {
	s, buf := newShell(t)
	path := testFile(t)

	run(t, s, "load "+path+"\nshow\n")

	output := buf.String()
	assert.Contains(t, output, Prompt)
	assert.Contains(t, output, "Loading file "+path)
	assert.Contains(t, output, "Version:         0x0102")
	assert.Contains(t, output, "A-Mem Size:      2 words")
	assert.Contains(t, output, "C-Mem Size:      1 words")
	assert.NotNil(t, s.Image())
}

func TestShell_FailedLoadKeepsImage(t *testing.T) {
	s, buf := newShell(t)
	path := testFile(t)
	broken := ucodetest.WriteFile(t, "broken.mcr", []byte{1, 5, 2})

	run(t, s, "load "+path+"\nload "+broken+"\n")

	assert.Contains(t, buf.String(), "Command failed.\ndecoding file ")
	assert.Equal(t, path, s.Image().Path())
}

func TestShell_Dump(t *testing.T) {
	s, buf := newShell(t)
	path := testFile(t)
	output := filepath.Join(t.TempDir(), "ucode.dis")

	run(t, s, "load "+path+"\ndump "+output+"\n")

	assert.Contains(t, buf.String(), "Dumping to file "+output+"...")
	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "000010: ")
	assert.Contains(t, string(data), "  A-Mem-Read-Address   7777\n")
}

func TestShell_DumpFailure(t *testing.T) {
	s, buf := newShell(t)
	path := testFile(t)
	output := filepath.Join(t.TempDir(), "missing", "ucode.dis")

	run(t, s, "load "+path+"\ndump "+output+"\n")

	assert.Contains(t, buf.String(), "Command failed.\ncreating output file ")
	_, err := os.Stat(output)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestShell_Disasm(t *testing.T) {
	s, buf := newShell(t)
	path := testFile(t)

	run(t, s, "load "+path+"\ndisasm 10\ndisasm 11\ndisasm 9\n")

	output := buf.String()
	assert.Contains(t, output, "  ALU-Function         17\n")
	assert.Contains(t, output, "Command failed.\nno control word at address 11\n")
	assert.Contains(t, output, "Command failed.\nparsing octal address '9'")
}

func TestShell_Commands(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unknown command", "frobnicate\n", "?\n"},
		{"empty line", "\n", Prompt + Prompt},
		{"load usage", "load\n", "usage: load [file]\n"},
		{"dump usage", "dump a b\n", "usage: dump [file]\n"},
		{"show without image", "show\n", "Command failed.\nno microcode loaded\n"},
		{"dump without image", "dump out.dis\n", "Command failed.\nno microcode loaded\n"},
		{"help", "help\n", "q,quit              Leave the shell.\n"},
		{"help load", "help\n", "load [file]         Load a Microcode file.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := newShell(t)
			run(t, s, tt.input)
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestShell_Quit(t *testing.T) {
	for _, command := range []string{"quit", "q"} {
		t.Run(command, func(t *testing.T) {
			s, buf := newShell(t)
			run(t, s, command+"\nhelp\n")
			assert.False(t, strings.Contains(buf.String(), "Show this help."))
		})
	}
}

func TestShell_CancelledContext(t *testing.T) {
	s, buf := newShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	console := NewScannerConsole(strings.NewReader("help\n"), s.out)
	assert.NoError(t, s.Run(ctx, console))
	assert.Equal(t, "", buf.String())
}
