// Package grid writes uniform (r, z) probe grids as tab-separated text.
package grid

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"

	"github.com/RMahshie/probegrid/pkg/models"
)

// IOError reports a failure to open, write or close a grid file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s grid file %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// WriteGrid writes every point of r x z to path, one "<r>\t<z>\n" line per point,
// in R-major order. An existing file is truncated.
func WriteGrid(r, z models.Range, path string) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := Write(writer, r, z); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := writer.Flush(); err != nil {
		return &IOError{Op: "flush", Path: path, Err: err}
	}

	return nil
}

// Write streams the grid lines to w and returns how many lines were written.
func Write(w io.Writer, r, z models.Range) (int64, error) {
	var lines int64
	buf := make([]byte, 0, 32)
	for p := range Points(r, z) {
		buf = AppendPoint(buf[:0], p)
		if _, err := w.Write(buf); err != nil {
			return lines, err
		}
		lines++
	}
	return lines, nil
}

// Points yields the grid points in R-major order: Z varies fastest.
func Points(r, z models.Range) iter.Seq[models.GridPoint] {
	return func(yield func(models.GridPoint) bool) {
		for ri := 0; ri < r.Steps; ri++ {
			rv := r.Value(ri)
			for zi := 0; zi < z.Steps; zi++ {
				if !yield(models.GridPoint{R: rv, Z: z.Value(zi)}) {
					return
				}
			}
		}
	}
}

// AppendPoint appends the line for p to dst. Both coordinates use six fixed decimals.
func AppendPoint(dst []byte, p models.GridPoint) []byte {
	dst = strconv.AppendFloat(dst, p.R, 'f', 6, 64)
	dst = append(dst, '\t')
	dst = strconv.AppendFloat(dst, p.Z, 'f', 6, 64)
	return append(dst, '\n')
}

// LineCount returns the number of lines WriteGrid produces for r x z.
func LineCount(r, z models.Range) int64 {
	if r.Steps <= 0 || z.Steps <= 0 {
		return 0
	}
	return int64(r.Steps) * int64(z.Steps)
}
