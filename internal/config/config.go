// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/ucexplorer/internal/options"
)

type verbosity int

const (
	verbosityDefault verbosity = iota
	verbosityDebug
	verbosityErrors
)

// CreateLogger creates a logger with the level selected by the program options.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch verbosityFor(opts) {
	case verbosityDebug:
		cfg.Level = log.DebugLevel
	case verbosityErrors:
		cfg.Level = log.ErrorLevel
	case verbosityDefault:
	}
	return log.NewWithConfig(cfg)
}

// verbosityFor returns the log verbosity. The interactive shell owns the
// console, so it only gets errors unless debugging.
func verbosityFor(opts options.Program) verbosity {
	switch {
	case opts.Debug:
		return verbosityDebug
	case opts.Quiet, opts.Interactive():
		return verbosityErrors
	default:
		return verbosityDefault
	}
}
