package clib

import (
	"bufio"
	"log/slog"
	"os"
)

// Reader is an open container file together with its parsed Archive.
type Reader struct {
	file    *os.File
	archive *Archive
	logger  *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Reader) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// Open opens the named container and parses its table of contents.
//
// If the file cannot be opened the *fs.PathError from os.Open is returned.
// If it is not a valid container the error wraps ErrInvalidFormat and the
// file is closed.
func Open(name string, opts ...Option) (*Reader, error) {
	f, err := os.Open(name) //nolint:gosec // opening the caller's container is the point
	if err != nil {
		return nil, err
	}

	r := &Reader{file: f}
	for _, opt := range opts {
		opt(r)
	}

	// Extraction seeks explicitly, so the parser may read ahead.
	archive, err := Parse(bufio.NewReader(f))
	if err != nil {
		_ = f.Close() //nolint:errcheck // the parse error is the one worth reporting
		return nil, err
	}
	r.archive = archive

	r.log().Debug("container opened",
		"path", name,
		"archive", archive.Name(),
		"entries", archive.Len(),
	)
	return r, nil
}

// Archive returns the parsed table of contents.
func (r *Reader) Archive() *Archive {
	return r.archive
}

// Extract extracts every member as described by the package-level Extract.
// The Reader's logger is used unless opts set another.
func (r *Reader) Extract(opts ...ExtractOption) *Report {
	opts = append([]ExtractOption{ExtractWithLogger(r.logger)}, opts...)
	return Extract(r.file, r.archive, opts...)
}

// Close closes the container file.
func (r *Reader) Close() error {
	return r.file.Close()
}
