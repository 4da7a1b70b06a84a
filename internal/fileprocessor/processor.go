// Package fileprocessor runs the non-interactive modes on microcode files.
package fileprocessor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/ucexplorer/internal/options"
	"github.com/retroenv/ucexplorer/internal/ucode"
	"github.com/retroenv/ucexplorer/internal/writer"
)

// OutputExtension is the file extension of generated disassembly files.
const OutputExtension = ".dis"

// ProcessFile loads the input file of the options and writes either its summary or its
// disassembly. Output without an output file name is written to stdout.
func ProcessFile(logger *log.Logger, opts options.Program, stdout io.Writer) error {
	img, err := ucode.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading microcode: %w", err)
	}

	sizes := img.Sizes()
	logger.Debug("Microcode loaded",
		log.String("file", opts.Input),
		log.Hex("version", img.Version()),
		log.Int("a_mem_words", sizes.AMem),
		log.Int("b_mem_words", sizes.BMem),
		log.Int("c_mem_words", sizes.CMem))

	if opts.Summary {
		if err := writer.WriteSummary(stdout, img); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		return nil
	}

	if opts.Output == "" {
		if err := writer.WriteDisassembly(stdout, img); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	if err := writer.WriteDisassemblyFile(opts.Output, img); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("Disassembly written", log.String("file", opts.Output))
	return nil
}

// GetFilesToProcess returns the input files named by the options. A batch
// pattern skips directories and previously generated disassembly files.
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}

	files := matches[:0]
	for _, match := range matches {
		if strings.EqualFold(filepath.Ext(match), OutputExtension) {
			continue
		}
		if info, err := os.Stat(match); err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	return files, nil
}

// GenerateOutputFilename replaces the extension of the input file with OutputExtension.
func GenerateOutputFilename(inputFile string) string {
	return strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + OutputExtension
}

// PrintBanner logs the program version unless quiet output was requested.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("ucexplorer", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
