package dataset

import (
	"bufio"
	"io"
	"strconv"
)

// FormatDistance renders d with six significant digits, choosing fixed or
// exponent notation by magnitude (for example 1.41421, 5, 1.23457e+06).
func FormatDistance(d float64) string {
	return strconv.FormatFloat(d, 'g', 6, 64)
}

// ResultWriter writes "index,distance" lines.
type ResultWriter struct {
	w   *bufio.Writer
	buf []byte
}

// NewResultWriter returns a ResultWriter writing to w. Call Flush when done.
func NewResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{w: bufio.NewWriter(w)}
}

// Write appends one result line.
func (rw *ResultWriter) Write(index int, dist float64) error {
	rw.buf = strconv.AppendInt(rw.buf[:0], int64(index), 10)
	rw.buf = append(rw.buf, ',')
	rw.buf = strconv.AppendFloat(rw.buf, dist, 'g', 6, 64)
	rw.buf = append(rw.buf, '\n')
	_, err := rw.w.Write(rw.buf)
	return err
}

// Flush writes buffered lines to the underlying writer.
func (rw *ResultWriter) Flush() error {
	return rw.w.Flush()
}
