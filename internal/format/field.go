package format

import (
	"errors"
	"io"
	"strings"

	"github.com/meigma/clib/internal/clibtype"
)

// MaxPath is the capacity used for the archive name and entry names.
// It matches PATH_MAX on Linux, so at most MaxPath-1 bytes are kept.
const MaxPath = 4096

// ReadField reads a text field terminated by '\n' or NUL.
//
// At most capacity-1 bytes are kept. The terminator is consumed and not
// returned. If no terminator appears within the bound, the field is
// truncated and the next byte is left unread, so a long name bleeds into
// whatever follows it exactly as a fixed-capacity line read would.
//
// Reaching the end of r before a terminator returns io.ErrUnexpectedEOF.
// A capacity below 1 returns ErrInvalidCapacity.
func ReadField(r io.ByteReader, capacity int) (string, error) {
	if capacity < 1 {
		return "", clibtype.ErrInvalidCapacity
	}
	var sb strings.Builder
	for sb.Len() < capacity-1 {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		if c == '\n' || c == 0 {
			return sb.String(), nil
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}
