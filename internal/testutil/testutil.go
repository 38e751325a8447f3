// Package testutil builds CLIB containers for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// magic duplicates format.Magic so tests check the parser against an
// independent encoding.
const magic = "CLIB\x1a\x1e"

// TestRecord holds one table-of-contents record.
type TestRecord struct {
	Name   string
	Offset uint32
	Size   uint32

	// Pad is written to every padding field of the record.
	Pad byte
}

// TestContainer describes a container header and table of contents.
type TestContainer struct {
	Name     string
	Reserved [9]byte

	// Terminator ends every text field. Zero means NUL.
	Terminator byte

	Records []TestRecord

	// Count overrides the declared entry count when non-nil.
	Count *uint32
}

// EncodeTOC encodes the header and table of contents.
func (c *TestContainer) EncodeTOC() []byte {
	buf := []byte(magic)
	buf = append(buf, c.Reserved[:]...)
	buf = append(buf, c.Name...)
	buf = append(buf, c.Terminator)

	count := uint32(len(c.Records)) //nolint:gosec // test data is small
	if c.Count != nil {
		count = *c.Count
	}
	buf = binary.LittleEndian.AppendUint32(buf, count)

	for _, r := range c.Records {
		buf = append(buf, r.Name...)
		buf = append(buf, c.Terminator, r.Pad)
		buf = binary.LittleEndian.AppendUint32(buf, r.Offset)
		buf = append(buf, r.Pad, r.Pad, r.Pad, r.Pad)
		buf = binary.LittleEndian.AppendUint32(buf, r.Size)
		buf = append(buf, r.Pad, r.Pad, r.Pad, r.Pad)
	}
	return buf
}

// TestMember is a member whose offset is assigned by BuildContainer.
type TestMember struct {
	Name string
	Data []byte
}

// BuildContainer encodes a complete container with members laid out back to
// back after the table of contents, in order. It returns the container and
// the records it wrote.
func BuildContainer(tb testing.TB, name string, members []TestMember) ([]byte, []TestRecord) {
	tb.Helper()

	c := &TestContainer{Name: name, Records: make([]TestRecord, len(members))}
	for i, m := range members {
		c.Records[i] = TestRecord{Name: m.Name, Size: uint32(len(m.Data))} //nolint:gosec // test data is small
	}

	// Offsets do not change the table's length, so encode once to size it.
	offset := len(c.EncodeTOC())
	for i, m := range members {
		c.Records[i].Offset = uint32(offset) //nolint:gosec // test data is small
		offset += len(m.Data)
	}

	data := c.EncodeTOC()
	for _, m := range members {
		data = append(data, m.Data...)
	}
	return data, c.Records
}

// PlaceAt copies data into container at offset, zero-extending container as needed.
func PlaceAt(container []byte, offset int, data []byte) []byte {
	if end := offset + len(data); end > len(container) {
		container = append(container, make([]byte, end-len(container))...)
	}
	copy(container[offset:], data)
	return container
}

// DemoContainer describes a container named "demo" whose table lists
// "a.txt" (offset 64, size 5) and "b.txt" (offset 69, size 3).
//
// The encoded table is 70 bytes long, so it cannot share a file with member
// data at those offsets; pair it with DemoImage as the extraction source.
func DemoContainer() *TestContainer {
	return &TestContainer{
		Name: "demo",
		Records: []TestRecord{
			{Name: "a.txt", Offset: 64, Size: 5},
			{Name: "b.txt", Offset: 69, Size: 3},
		},
	}
}

// DemoImage returns a 72-byte stream holding "hello" at offset 64 and "hi!"
// at offset 69.
func DemoImage() []byte {
	image := PlaceAt(nil, 64, []byte("hello"))
	return PlaceAt(image, 69, []byte("hi!"))
}

// WriteContainer writes data to a file in a fresh temp directory and returns its path.
func WriteContainer(tb testing.TB, data []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "archive.clib")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write container: %v", err)
	}
	return path
}
