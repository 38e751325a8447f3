package clib

import (
	"bufio"
	"io"
	"iter"
)

// Names returns an iterator over entry names in table order.
// Duplicate names are yielded as often as they appear.
func (a *Archive) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range a.entries {
			if !yield(a.entries[i].Name) {
				return
			}
		}
	}
}

// List returns the entry names in table order.
func (a *Archive) List() []string {
	names := make([]string, 0, len(a.entries))
	for name := range a.Names() {
		names = append(names, name)
	}
	return names
}

// WriteList writes each entry name followed by a newline, in table order.
func (a *Archive) WriteList(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for name := range a.Names() {
		if _, err := bw.WriteString(name); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
