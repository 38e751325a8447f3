package clib

import (
	"io"
	"iter"
	"slices"

	"github.com/meigma/clib/internal/format"
)

// Archive is the decoded header and table of contents of a container.
//
// An Archive is immutable and safe for concurrent use.
type Archive struct {
	name    string
	entries []Entry
}

// Parse decodes the header and table of contents from r.
//
// r is read exactly up to the end of the table when it is not an
// io.ByteReader; buffered readers may be read ahead. Member data is never
// read. Every error wraps ErrInvalidFormat; truncated input also wraps
// io.ErrUnexpectedEOF.
func Parse(r io.Reader) (*Archive, error) {
	toc, err := format.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Archive{
		name:    toc.Name,
		entries: toc.Entries,
	}, nil
}

// Name returns the archive name stored in the header.
func (a *Archive) Name() string {
	return a.name
}

// Len returns the number of entries in the table of contents.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Entry returns the i-th entry in table order.
// It panics if i is out of range.
func (a *Archive) Entry(i int) Entry {
	return a.entries[i]
}

// Entries returns an iterator over the entries in table order.
func (a *Archive) Entries() iter.Seq[Entry] {
	return slices.Values(a.entries)
}
