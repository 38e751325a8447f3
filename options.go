package clib

import (
	"io/fs"
	"log/slog"
)

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used by the Reader and by its extractions.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	overwrite bool
	destDir   string
	confine   bool
	chunkSize int
	perm      fs.FileMode
	logger    *slog.Logger
}

func newExtractConfig(opts []ExtractOption) extractConfig {
	cfg := extractConfig{
		destDir:   ".",
		confine:   true,
		chunkSize: DefaultChunkSize,
		perm:      0o666,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ExtractWithOverwrite allows overwriting existing files.
// By default, entries whose destination exists fail with fs.ErrExist.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithDestDir sets the directory entry names are resolved against.
// Defaults to the current directory.
func ExtractWithDestDir(dir string) ExtractOption {
	return func(c *extractConfig) {
		c.destDir = dir
	}
}

// ExtractWithConfinement controls whether entries may be written outside the
// destination directory. It is enabled by default: names with ".." segments,
// absolute names, and symlinks escaping the destination fail their entry.
//
// Disabling it writes every name exactly where it points, which is unsafe
// for containers from untrusted sources.
func ExtractWithConfinement(confine bool) ExtractOption {
	return func(c *extractConfig) {
		c.confine = confine
	}
}

// ExtractWithChunkSize sets the size of the copy buffer.
// Values < 1 use DefaultChunkSize.
func ExtractWithChunkSize(n int) ExtractOption {
	return func(c *extractConfig) {
		c.chunkSize = n
	}
}

// ExtractWithPerm sets the permission bits for created files, before umask.
// Defaults to 0o666. Existing files keep their permissions.
func ExtractWithPerm(perm fs.FileMode) ExtractOption {
	return func(c *extractConfig) {
		c.perm = perm
	}
}

// ExtractWithLogger sets the logger for extraction.
// If not set, logging is disabled.
func ExtractWithLogger(logger *slog.Logger) ExtractOption {
	return func(c *extractConfig) {
		c.logger = logger
	}
}
