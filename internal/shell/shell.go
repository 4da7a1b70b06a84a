// Package shell implements the interactive command shell of the microcode explorer.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/ucexplorer/internal/ucode"
	"github.com/retroenv/ucexplorer/internal/writer"
)

// Prompt is shown before every command line.
const Prompt = "uc-explorer> "

var (
	errQuit           = errors.New("quit")
	errUnknownCommand = errors.New("unknown command")
	errNoImage        = errors.New("no microcode loaded")
	errNoControlWord  = errors.New("no control word at address")
)

// LineReader reads command lines. It returns io.EOF when the input ends.
type LineReader interface {
	ReadLine() (string, error)
}

type command struct {
	name    string
	args    string
	help    string
	minArgs int
	maxArgs int
	handler func(s *Shell, args []string) error
}

// commands is set in init as the help handler refers to it.
var commands []command

func init() {
	commands = []command{
		{name: "help", help: "Show this help.", handler: (*Shell).help},
		{name: "load", args: "[file]", help: "Load a Microcode file.", minArgs: 1, maxArgs: 1, handler: (*Shell).load},
		{name: "dump", args: "[file]", help: "Disassemble to file.", minArgs: 1, maxArgs: 1, handler: (*Shell).dump},
		{name: "show", help: "Show microcode overview.", handler: (*Shell).show},
		{name: "disasm", args: "[address]", help: "Disassemble one or all C-Mem words.", maxArgs: 1, handler: (*Shell).disasm},
		{name: "quit", help: "Leave the shell.", handler: (*Shell).quit},
		{name: "q", handler: (*Shell).quit},
	}
}

// usageError is returned when a command has been called with wrong arguments.
type usageError struct {
	cmd command
}

func (e *usageError) Error() string {
	return fmt.Sprintf("usage: %s %s", e.cmd.name, e.cmd.args)
}

// Shell executes explorer commands on the currently loaded microcode image.
type Shell struct {
	logger *log.Logger
	out    io.Writer
	img    *ucode.Image
}

// New creates a new shell that writes to out. The image can be nil.
func New(logger *log.Logger, out io.Writer, img *ucode.Image) *Shell {
	return &Shell{
		logger: logger,
		out:    out,
		img:    img,
	}
}

// Image returns the currently loaded image or nil.
func (s *Shell) Image() *ucode.Image {
	return s.img
}

// Run reads and executes commands until the input ends, a quit command is
// entered or the context is cancelled.
func (s *Shell) Run(ctx context.Context, reader LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading command: %w", err)
		}

		if quit := s.Execute(line); quit {
			return nil
		}
	}
}

// Execute runs a single command line and prints its result or failure.
// It returns true if the shell should be left.
func (s *Shell) Execute(line string) bool {
	err := s.dispatch(strings.Fields(line))
	if err == nil {
		return false
	}

	var usageErr *usageError
	switch {
	case errors.Is(err, errQuit):
		return true
	case errors.Is(err, errUnknownCommand):
		s.println("?")
	case errors.As(err, &usageErr):
		s.println(usageErr.Error())
	default:
		s.logger.Debug("Command failed", log.String("command", line), log.Err(err))
		s.println("Command failed.")
		s.println(err.Error())
	}
	return false
}

func (s *Shell) dispatch(words []string) error {
	if len(words) == 0 {
		return nil
	}

	name, args := words[0], words[1:]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
			return &usageError{cmd: cmd}
		}
		return cmd.handler(s, args)
	}
	return errUnknownCommand
}

func (s *Shell) help(_ []string) error {
	for _, cmd := range commands {
		if cmd.help == "" {
			continue
		}
		name := cmd.name
		if cmd.name == "quit" {
			name = "q,quit"
		}
		s.println(fmt.Sprintf("%-19s %s", strings.TrimSpace(name+" "+cmd.args), cmd.help))
	}
	return nil
}

func (s *Shell) load(args []string) error {
	path := args[0]
	s.println("Loading file " + path)

	img, err := ucode.Load(path)
	if err != nil {
		return err
	}
	s.img = img

	sizes := img.Sizes()
	s.logger.Debug("Microcode loaded",
		log.String("file", path),
		log.Int("c_mem_words", sizes.CMem))
	return nil
}

func (s *Shell) dump(args []string) error {
	if s.img == nil {
		return errNoImage
	}

	path := args[0]
	s.println(fmt.Sprintf("Dumping to file %s...", path))

	return writer.WriteDisassemblyFile(path, s.img)
}

func (s *Shell) show(_ []string) error {
	if s.img == nil {
		return errNoImage
	}
	if err := writer.WriteSummary(s.out, s.img); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func (s *Shell) disasm(args []string) error {
	if s.img == nil {
		return errNoImage
	}

	if len(args) == 0 {
		if err := writer.WriteDisassembly(s.out, s.img); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	address, err := strconv.ParseUint(args[0], 8, 16)
	if err != nil {
		return fmt.Errorf("parsing octal address '%s': %w", args[0], err)
	}
	word, ok := s.img.ControlWord(uint16(address))
	if !ok {
		return fmt.Errorf("%w %o", errNoControlWord, address)
	}
	if err := writer.New(s.img, s.out).WriteControlWord(word); err != nil {
		return fmt.Errorf("writing control word: %w", err)
	}
	return nil
}

func (s *Shell) quit(_ []string) error {
	return errQuit
}

func (s *Shell) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
