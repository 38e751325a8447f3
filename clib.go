// Package clib reads CLIB containers: a single file holding a small table of
// contents followed by the raw bytes of each named member.
//
// A container consists of:
//   - Header: a 6-byte magic, 9 reserved bytes, and the archive name
//   - Table of contents: an entry count and one record per member giving its
//     name, absolute data offset, and size
//   - Member data: stored uncompressed at the recorded offsets
//
// [Parse] decodes the header and table into an immutable [Archive]. Names are
// listed in table order with [Archive.List]; members are copied to disk with
// [Extract] or [Reader.Extract].
package clib

import (
	"github.com/meigma/clib/internal/clibtype"
	"github.com/meigma/clib/internal/extract"
	"github.com/meigma/clib/internal/format"
)

// Re-export types from internal packages for the public API.
type (
	// Entry describes one member of the container.
	Entry = clibtype.Entry

	// Report summarizes an extraction run.
	Report = extract.Report

	// Result describes a successfully extracted entry.
	Result = extract.Result

	// Failure describes an entry that could not be extracted.
	Failure = extract.Failure
)

// Magic is the signature at the start of every CLIB container.
const Magic = format.Magic

// MaxNameLen is the longest archive or entry name kept by the parser.
// A name of MaxNameLen bytes or more fills the bound: it is truncated and its
// remaining bytes, terminator included, are read as the fields that follow.
const MaxNameLen = format.MaxPath - 1

// DefaultChunkSize is the size of the buffer used to copy member data.
const DefaultChunkSize = extract.DefaultChunkSize

// Sentinel errors re-exported from internal/clibtype.
var (
	// ErrInvalidFormat is returned when the container does not follow the
	// CLIB layout, including when it ends before the table of contents does.
	ErrInvalidFormat = clibtype.ErrInvalidFormat

	// ErrMagicMismatch is returned, wrapped in ErrInvalidFormat, when the
	// leading signature is not Magic.
	ErrMagicMismatch = clibtype.ErrMagicMismatch
)
