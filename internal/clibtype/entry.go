// Package clibtype holds the types shared between the format parser,
// the extractor, and the public clib package.
package clibtype

// Entry describes one member of a CLIB container.
type Entry struct {
	// Name is the member's output filename as stored in the table of contents.
	// It is not sanitized and may contain path separators.
	Name string

	// Offset is the absolute byte offset of the member's data in the container.
	Offset uint32

	// Size is the length in bytes of the member's data.
	Size uint32
}

// End returns the offset one past the member's last byte.
func (e *Entry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Size)
}
