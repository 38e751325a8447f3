package extract

import (
	"io"

	"github.com/meigma/clib/internal/clibtype"
)

// Entry is an alias for clibtype.Entry.
type Entry = clibtype.Entry

// Sink receives member content during extraction.
//
// Implementations decide where content is written and whether an entry
// may be written at all.
type Sink interface {
	// Check returns an error if entry must not be written, for example
	// because its destination already exists. Errors wrapping fs.ErrExist
	// are reported as existing-file skips.
	Check(entry *Entry) error

	// Writer returns a writer for the entry's content. Any existing content
	// at the destination is truncated.
	//
	// The caller will:
	// 1. Write exactly entry.Size bytes to the Committer
	// 2. Call Commit() if the copy succeeded, Discard() otherwise
	Writer(entry *Entry) (Committer, error)
}

// Committer is a writer that can be committed or discarded.
//
// Both Commit and Discard release every resource the Committer holds,
// whatever they return.
type Committer interface {
	io.Writer

	// Commit finalizes the write.
	Commit() error

	// Discard aborts the write and removes partial output.
	Discard() error
}
