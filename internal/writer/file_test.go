package writer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/ucexplorer/internal/ucode"
)

func TestWriteDisassemblyFile(t *testing.T) {
	img := testImage(t)
	path := filepath.Join(t.TempDir(), "ucode.dis")

	assert.NoError(t, WriteDisassemblyFile(path, img))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "; Source: test.mcr\n"))
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	img := testImage(t)
	path := filepath.Join(t.TempDir(), "ucode.dis")

	render := func(w io.Writer, _ *ucode.Image) error {
		if _, err := io.WriteString(w, "; Source: test.mcr\n"); err != nil {
			return err
		}
		return errWrite
	}

	err := writeFile(path, img, render)
	assert.True(t, errors.Is(err, errWrite))

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteDisassemblyFile_InvalidPath(t *testing.T) {
	err := WriteDisassemblyFile(filepath.Join(t.TempDir(), "missing", "ucode.dis"), testImage(t))
	assert.Error(t, err)
}
