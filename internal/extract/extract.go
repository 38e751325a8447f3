// Package extract copies CLIB members out of a container into a Sink.
package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
)

// DefaultChunkSize is the size of the buffer used to copy member data.
const DefaultChunkSize = 4096

// Extractor copies members from a container stream.
//
// The stream is repositioned with an absolute seek before each member, so
// the order of entries does not matter and the stream position on entry is
// irrelevant. An Extractor is not safe for concurrent use.
type Extractor struct {
	src       io.ReadSeeker
	chunkSize int
	logger    *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (x *Extractor) log() *slog.Logger {
	if x.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return x.logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithChunkSize sets the copy buffer size. Values < 1 use DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(x *Extractor) {
		if n < 1 {
			n = DefaultChunkSize
		}
		x.chunkSize = n
	}
}

// WithLogger sets the logger for extraction. If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Extractor) {
		x.logger = logger
	}
}

// New creates an Extractor reading member data from src.
func New(src io.ReadSeeker, opts ...Option) *Extractor {
	x := &Extractor{
		src:       src,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract writes every entry to sink, in order.
//
// A failing entry never stops the run: it is recorded in the report and
// extraction continues with the next entry. Peak memory is one chunk,
// whatever the member sizes.
func (x *Extractor) Extract(entries []Entry, sink Sink) *Report {
	report := &Report{}
	buf := make([]byte, x.chunkSize)

	for i := range entries {
		entry := entries[i]
		res, err := x.extractOne(&entry, sink, buf)
		if err != nil {
			x.log().Debug("entry failed", "name", entry.Name, "error", err)
			report.fail(entry, err)
			continue
		}
		x.log().Debug("entry extracted",
			"name", entry.Name,
			"size", humanize.IBytes(uint64(entry.Size)),
			"digest", res.Digest,
		)
		report.succeed(res)
	}

	x.log().Info("extraction finished",
		"extracted", len(report.Extracted),
		"failed", len(report.Failures),
		"bytes", humanize.IBytes(report.TotalBytes),
	)
	return report
}

func (x *Extractor) extractOne(entry *Entry, sink Sink, buf []byte) (Result, error) {
	if err := sink.Check(entry); err != nil {
		return Result{}, err
	}

	w, err := sink.Writer(entry)
	if err != nil {
		return Result{}, err
	}

	dgst, err := x.copyEntry(w, entry, buf)
	if err != nil {
		_ = w.Discard() //nolint:errcheck // the copy error is the one worth reporting
		return Result{}, err
	}
	if err := w.Commit(); err != nil {
		return Result{}, err
	}
	return Result{Entry: *entry, Digest: dgst}, nil
}

// copyEntry seeks to the entry's data and copies exactly entry.Size bytes to w.
func (x *Extractor) copyEntry(w io.Writer, entry *Entry, buf []byte) (digest.Digest, error) {
	if _, err := x.src.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		return "", fmt.Errorf("seek to offset %d: %w", entry.Offset, err)
	}

	digester := digest.Canonical.Digester()
	dst := io.MultiWriter(w, digester.Hash())

	n, err := copyChunks(dst, x.src, int64(entry.Size), buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("read %d of %d bytes at offset %d: %w", n, entry.Size, entry.Offset, err)
		}
		return "", err
	}
	return digester.Digest(), nil
}

// copyChunks copies exactly size bytes from src to dst through buf.
// Running out of input before size bytes returns io.ErrUnexpectedEOF.
func copyChunks(dst io.Writer, src io.Reader, size int64, buf []byte) (int64, error) {
	var written int64
	for written < size {
		chunk := buf
		if remaining := size - written; remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}

		nr, rerr := io.ReadFull(src, chunk)
		if nr > 0 {
			nw, werr := dst.Write(chunk[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				rerr = io.ErrUnexpectedEOF
			}
			return written, rerr
		}
	}
	return written, nil
}
