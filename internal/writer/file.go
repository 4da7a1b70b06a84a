package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/ucexplorer/internal/ucode"
)

type renderFunc func(w io.Writer, img *ucode.Image) error

// WriteDisassemblyFile writes the disassembly of the image to a new file at path.
// On any error the partially written file is removed.
func WriteDisassemblyFile(path string, img *ucode.Image) error {
	return writeFile(path, img, WriteDisassembly)
}

func writeFile(path string, img *ucode.Image, render renderFunc) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}

	if err := render(file, img); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing disassembly: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("closing output file %s: %w", path, err)
	}
	return nil
}
