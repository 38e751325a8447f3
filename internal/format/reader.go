package format

import (
	"errors"
	"io"
)

// countingReader tracks how many bytes have been consumed so errors can
// report where a field started. It never reads ahead of what it returns.
type countingReader struct {
	r   io.Reader
	br  io.ByteReader // nil when r does not implement io.ByteReader
	n   uint64
	buf [1]byte
}

func newCountingReader(r io.Reader) *countingReader {
	cr := &countingReader{r: r}
	if br, ok := r.(io.ByteReader); ok {
		cr.br = br
	}
	return cr
}

// Read implements io.Reader.
func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.n += uint64(n) //nolint:gosec // n is non-negative per io.Reader contract
	}
	return n, err
}

// ReadByte implements io.ByteReader.
func (cr *countingReader) ReadByte() (byte, error) {
	if cr.br != nil {
		c, err := cr.br.ReadByte()
		if err == nil {
			cr.n++
		}
		return c, err
	}
	n, err := io.ReadFull(cr.r, cr.buf[:])
	if n == 1 {
		cr.n++
		return cr.buf[0], nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return 0, err
}

// Offset returns the number of bytes consumed so far.
func (cr *countingReader) Offset() uint64 {
	return cr.n
}
