package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Console is the line based input and output device of the shell.
type Console interface {
	LineReader
	io.Writer
	Close() error
}

// OpenConsole returns a console for the given input and output files. If the input
// is a terminal it is switched to raw mode and gets line editing, history and tab
// completion, otherwise lines are read unmodified.
func OpenConsole(in, out *os.File) (Console, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return NewScannerConsole(in, out), nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	screen := struct {
		io.Reader
		io.Writer
	}{in, out}
	terminal := term.NewTerminal(screen, Prompt)
	terminal.AutoCompleteCallback = Complete

	if width, height, err := term.GetSize(fd); err == nil {
		_ = terminal.SetSize(width, height)
	}

	return &terminalConsole{
		Terminal: terminal,
		fd:       fd,
		oldState: oldState,
	}, nil
}

type terminalConsole struct {
	*term.Terminal
	fd       int
	oldState *term.State
}

func (c *terminalConsole) Close() error {
	if c.oldState == nil {
		return nil
	}
	err := term.Restore(c.fd, c.oldState)
	c.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}
	return nil
}

// scannerConsole reads lines from a non terminal input such as a pipe.
type scannerConsole struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerConsole returns a console that prints the prompt to out and reads
// newline separated commands from in.
func NewScannerConsole(in io.Reader, out io.Writer) Console {
	return &scannerConsole{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (c *scannerConsole) ReadLine() (string, error) {
	if _, err := io.WriteString(c.out, Prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading line: %w", err)
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

func (c *scannerConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *scannerConsole) Close() error {
	return nil
}
