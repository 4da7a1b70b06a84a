// Package main implements the main entry point for the microcode explorer
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/ucexplorer/internal/cli"
	"github.com/retroenv/ucexplorer/internal/config"
	"github.com/retroenv/ucexplorer/internal/fileprocessor"
	"github.com/retroenv/ucexplorer/internal/options"
	"github.com/retroenv/ucexplorer/internal/shell"
	"github.com/retroenv/ucexplorer/internal/ucode"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if opts.Interactive() {
		if err := runShell(ctx, logger, opts); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	for _, file := range files {
		if ctx.Err() != nil {
			logger.Info("Operation cancelled")
			return
		}

		opts.Input = file
		if opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(logger, opts, os.Stdout); err != nil {
			logger.Error("Processing failed", log.String("file", file), log.Err(err))
		}
	}
}

// runShell loads the input file and starts the interactive shell on the console.
func runShell(ctx context.Context, logger *log.Logger, opts options.Program) error {
	img, err := ucode.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("unable to parse microcode: %w", err)
	}

	console, err := shell.OpenConsole(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening console: %w", err)
	}
	defer func() { _ = console.Close() }()

	sh := shell.New(logger, console, img)
	if err := sh.Run(ctx, console); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}
