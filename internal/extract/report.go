package extract

import (
	"errors"
	"io/fs"

	"github.com/opencontainers/go-digest"
)

// Result describes a successfully extracted entry.
type Result struct {
	Entry Entry

	// Digest is the canonical digest of the bytes written.
	Digest digest.Digest
}

// Failure describes an entry that could not be extracted.
type Failure struct {
	Entry Entry
	Err   error
}

// Error formats the failure as "<name>: <reason>".
func (f *Failure) Error() string {
	return f.Entry.Name + ": " + reason(f.Entry.Name, f.Err)
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Exists reports whether the entry was skipped because its destination exists.
func (f *Failure) Exists() bool {
	return errors.Is(f.Err, fs.ErrExist)
}

// reason drops the path from an *fs.PathError naming the entry itself,
// since Error already leads with the name.
func reason(name string, err error) string {
	if pe, ok := err.(*fs.PathError); ok && pe.Path == name { //nolint:errorlint // only an unwrapped PathError repeats the name
		return pe.Err.Error()
	}
	return err.Error()
}

// Report summarizes an extraction run.
type Report struct {
	// Extracted lists entries written successfully, in table order.
	Extracted []Result

	// Failures lists entries that were skipped or failed, in table order.
	Failures []Failure

	// TotalBytes is the sum of sizes of all extracted entries.
	TotalBytes uint64
}

// Failed reports whether any entry failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins all failures into one error, or returns nil if none occurred.
func (r *Report) Err() error {
	if !r.Failed() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i := range r.Failures {
		errs[i] = &r.Failures[i]
	}
	return errors.Join(errs...)
}

func (r *Report) succeed(res Result) {
	r.Extracted = append(r.Extracted, res)
	r.TotalBytes += uint64(res.Entry.Size)
}

func (r *Report) fail(entry Entry, err error) {
	r.Failures = append(r.Failures, Failure{Entry: entry, Err: err})
}
