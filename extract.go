package clib

import (
	"io"

	"github.com/meigma/clib/internal/extract"
)

// Extract copies every member of a to its own file, in table order.
//
// src must be the container a was parsed from; it is repositioned with an
// absolute seek before each member. Extraction never stops early: an entry
// whose destination exists (without ExtractWithOverwrite), that cannot be
// created, or whose data runs past the end of src is recorded as a Failure
// and the next entry is processed. Check Report.Failed for the outcome.
//
// Destinations are opened with truncation and written directly; parent
// directories are not created. Output of a failed entry is removed.
func Extract(src io.ReadSeeker, a *Archive, opts ...ExtractOption) *Report {
	cfg := newExtractConfig(opts)

	sink := extract.NewFileSink(cfg.destDir,
		extract.WithOverwrite(cfg.overwrite),
		extract.WithConfinement(cfg.confine),
		extract.WithPerm(cfg.perm),
	)
	x := extract.New(src,
		extract.WithChunkSize(cfg.chunkSize),
		extract.WithLogger(cfg.logger),
	)
	return x.Extract(a.entries, sink)
}
