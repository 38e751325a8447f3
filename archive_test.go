package clib

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/clib/internal/testutil"
)

func TestParseDemo(t *testing.T) {
	t.Parallel()

	a, err := Parse(bytes.NewReader(testutil.DemoContainer().EncodeTOC()))
	require.NoError(t, err)

	assert.Equal(t, "demo", a.Name())
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, Entry{Name: "a.txt", Offset: 64, Size: 5}, a.Entry(0))
	assert.Equal(t, Entry{Name: "b.txt", Offset: 69, Size: 3}, a.Entry(1))
	assert.Equal(t, []Entry{a.Entry(0), a.Entry(1)}, slices.Collect(a.Entries()))
}

func TestParseRejectsBadMagic(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("PK\x03\x04 not a clib container"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, ErrMagicMismatch)
}

func TestParseRejectsShortTable(t *testing.T) {
	t.Parallel()

	declared := uint32(5)
	c := testutil.DemoContainer()
	c.Count = &declared

	_, err := Parse(bytes.NewReader(c.EncodeTOC()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestArchiveEntriesStopsEarly(t *testing.T) {
	t.Parallel()

	data, _ := testutil.BuildContainer(t, "many", []testutil.TestMember{
		{Name: "1"}, {Name: "2"}, {Name: "3"},
	})
	a, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)

	var seen []string
	for e := range a.Entries() {
		seen = append(seen, e.Name)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "2"}, seen)
}
