package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/meigma/clib/internal/clibtype"
)

// Entry is an alias for clibtype.Entry.
type Entry = clibtype.Entry

// Re-exported sentinel errors.
var (
	ErrInvalidFormat   = clibtype.ErrInvalidFormat
	ErrMagicMismatch   = clibtype.ErrMagicMismatch
	ErrInvalidCapacity = clibtype.ErrInvalidCapacity
)

// Magic is the signature at the start of every CLIB container.
const Magic = "CLIB\x1a\x1e"

const (
	// ReservedSize is the number of undocumented bytes following the magic.
	ReservedSize = 9

	// recordTailSize covers pad(1) + offset(4) + pad(4) + size(4) + pad(4).
	recordTailSize = 17

	// maxPrealloc caps the entries capacity reserved up front from the
	// declared count, which comes straight from the file.
	maxPrealloc = 1024
)

// TOC is the decoded header and table of contents.
type TOC struct {
	// Name is the archive's display name.
	Name string

	// Entries lists the members in on-disk order.
	Entries []Entry
}

// Parse reads the header and table of contents from r.
//
// Parsing consumes exactly the header and table bytes: if r does not
// implement io.ByteReader it is read one byte at a time for the text fields,
// so r is left positioned immediately after the last record. Callers that
// seek before reading member data may pass a buffered reader instead.
//
// Every error wraps ErrInvalidFormat. Short reads also wrap
// io.ErrUnexpectedEOF, and a bad signature wraps ErrMagicMismatch.
func Parse(r io.Reader) (*TOC, error) {
	cr := newCountingReader(r)

	if err := readMagic(cr); err != nil {
		return nil, err
	}

	var reserved [ReservedSize]byte
	if err := readFull(cr, reserved[:], "reserved header"); err != nil {
		return nil, err
	}

	name, err := readName(cr, "archive name")
	if err != nil {
		return nil, err
	}

	count, err := readUint32(cr, "entry count")
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, min(count, maxPrealloc))
	for i := range count {
		entry, err := readRecord(cr, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &TOC{Name: name, Entries: entries}, nil
}

func readMagic(cr *countingReader) error {
	var magic [len(Magic)]byte
	if err := readFull(cr, magic[:], "magic"); err != nil {
		return err
	}
	if !bytes.Equal(magic[:], []byte(Magic)) {
		return fmt.Errorf("%w: %w (got %q)", ErrInvalidFormat, ErrMagicMismatch, magic[:])
	}
	return nil
}

func readRecord(cr *countingReader, i uint32) (Entry, error) {
	name, err := readName(cr, fmt.Sprintf("entry %d name", i))
	if err != nil {
		return Entry{}, err
	}

	var tail [recordTailSize]byte
	if err := readFull(cr, tail[:], fmt.Sprintf("entry %d %q", i, name)); err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:   name,
		Offset: binary.LittleEndian.Uint32(tail[1:5]),
		Size:   binary.LittleEndian.Uint32(tail[9:13]),
	}, nil
}

func readName(cr *countingReader, field string) (string, error) {
	start := cr.Offset()
	name, err := ReadField(cr, MaxPath)
	if err != nil {
		return "", formatError(field, start, err)
	}
	return name, nil
}

func readUint32(cr *countingReader, field string) (uint32, error) {
	var buf [4]byte
	if err := readFull(cr, buf[:], field); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readFull(cr *countingReader, buf []byte, field string) error {
	start := cr.Offset()
	if _, err := io.ReadFull(cr, buf); err != nil {
		return formatError(field, start, err)
	}
	return nil
}

// formatError reports a failed read of field, which started at offset.
// A clean EOF is reported as io.ErrUnexpectedEOF since every field is required.
func formatError(field string, offset uint64, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %s at offset %d: %w", ErrInvalidFormat, field, offset, err)
}
