// Package format decodes the header and table of contents of a CLIB container.
//
// A container starts with:
//   - Magic: the 6 bytes "CLIB\x1a\x1e"
//   - Reserved: 9 bytes of unknown meaning, skipped
//   - Archive name: text terminated by '\n' or NUL
//   - Entry count: uint32, little-endian
//   - Entry records, each: name (terminated text), 1 pad byte, uint32 offset,
//     4 pad bytes, uint32 size, 4 pad bytes
//
// Member data follows at the absolute offsets recorded in the entries.
// Pad bytes have always been observed as zero but are not validated.
package format
