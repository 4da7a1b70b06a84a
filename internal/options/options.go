// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"microcode file to load"`
	Output string `flag:"o" usage:"write the disassembly to this file and exit"`
	Batch  string `flag:"batch" usage:"disassemble all files matching pattern (e.g. *.mcr)"`
}

// Flags contains behavior options.
type Flags struct {
	Summary bool `flag:"summary" usage:"print the microcode summary and exit"`
	Debug   bool `flag:"debug" usage:"enable debug logging"`
	Quiet   bool `flag:"q" usage:"quiet mode"`
}

// Program options of the explorer.
type Program struct {
	Parameters
	Flags
}

// Interactive returns whether the shell should be started after loading the input file.
func (p Program) Interactive() bool {
	return p.Output == "" && p.Batch == "" && !p.Summary
}
