package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// createFlags truncate existing files, mirroring fopen(name, "w").
const createFlags = os.O_CREATE | os.O_TRUNC | os.O_WRONLY

// FileSink writes entries to the filesystem.
//
// Entry names are used as paths relative to the destination directory.
// Parent directories are not created; a missing parent fails the entry.
type FileSink struct {
	destDir   string
	overwrite bool
	confine   bool
	perm      fs.FileMode
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithOverwrite allows overwriting existing files.
// By default, entries whose destination exists are rejected with fs.ErrExist.
func WithOverwrite(overwrite bool) FileSinkOption {
	return func(s *FileSink) {
		s.overwrite = overwrite
	}
}

// WithConfinement controls whether names may resolve outside the destination.
//
// When enabled (the default), every destination is opened through an
// os.Root for the destination directory, so names containing ".." segments,
// absolute names, and symlinks leading out of the directory fail.
// When disabled, relative names are joined to the destination and absolute
// names are used as-is.
func WithConfinement(confine bool) FileSinkOption {
	return func(s *FileSink) {
		s.confine = confine
	}
}

// WithPerm sets the permission bits for created files, before umask.
// Defaults to 0o666.
func WithPerm(perm fs.FileMode) FileSinkOption {
	return func(s *FileSink) {
		s.perm = perm.Perm()
	}
}

// NewFileSink creates a FileSink that writes to destDir.
//
// An empty destDir means the current directory.
func NewFileSink(destDir string, opts ...FileSinkOption) *FileSink {
	if destDir == "" {
		destDir = "."
	}
	s := &FileSink{
		destDir: destDir,
		confine: true,
		perm:    0o666,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check returns an *fs.PathError wrapping fs.ErrExist if the destination
// exists and overwrite is disabled.
func (s *FileSink) Check(entry *Entry) error {
	if s.overwrite {
		return nil
	}

	var err error
	if s.confine {
		err = s.withRoot(func(root *os.Root) error {
			_, err := root.Lstat(entry.Name)
			return err
		})
	} else {
		_, err = os.Lstat(s.hostPath(entry.Name))
	}

	switch {
	case err == nil:
		return &fs.PathError{Op: "extract", Path: entry.Name, Err: fs.ErrExist}
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return err
	}
}

// Writer creates or truncates the destination for entry.
func (s *FileSink) Writer(entry *Entry) (Committer, error) {
	if !s.confine {
		path := s.hostPath(entry.Name)
		file, err := os.OpenFile(path, createFlags, s.perm)
		if err != nil {
			return nil, err
		}
		return &fileCommitter{
			file:   file,
			remove: func() error { return os.Remove(path) },
		}, nil
	}

	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		return nil, fmt.Errorf("open destination root %s: %w", s.destDir, err)
	}
	file, err := root.OpenFile(entry.Name, createFlags, s.perm)
	if err != nil {
		_ = root.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return &fileCommitter{
		file:   file,
		remove: func() error { return root.Remove(entry.Name) },
		root:   root,
	}, nil
}

// hostPath resolves name without confinement. The name is not cleaned, so
// ".." segments are resolved by the filesystem against directories that
// must exist, and an empty name stays empty.
func (s *FileSink) hostPath(name string) string {
	if name == "" || s.destDir == "." || filepath.IsAbs(name) {
		return name
	}
	return s.destDir + string(filepath.Separator) + name
}

func (s *FileSink) withRoot(fn func(*os.Root) error) error {
	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		return fmt.Errorf("open destination root %s: %w", s.destDir, err)
	}
	defer root.Close()
	return fn(root)
}

// fileCommitter writes directly to the destination file.
type fileCommitter struct {
	file   *os.File
	remove func() error
	root   *os.Root // nil when unconfined
}

// Write implements io.Writer.
func (c *fileCommitter) Write(p []byte) (int, error) {
	return c.file.Write(p)
}

// Commit closes the file. A file that fails to close is removed.
func (c *fileCommitter) Commit() error {
	if err := c.file.Close(); err != nil {
		_ = c.remove()    //nolint:errcheck // best-effort cleanup
		_ = c.closeRoot() //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close file: %w", err)
	}
	return c.closeRoot()
}

// Discard closes and removes the file.
func (c *fileCommitter) Discard() error {
	_ = c.file.Close() //nolint:errcheck // we're cleaning up
	if err := c.remove(); err != nil {
		_ = c.closeRoot() //nolint:errcheck // best-effort cleanup
		return err
	}
	return c.closeRoot()
}

func (c *fileCommitter) closeRoot() error {
	if c.root == nil {
		return nil
	}
	return c.root.Close()
}
