package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codimo/textmerge/internal/core"
)

func TestFormatConflictMarkers_MergeStyle(t *testing.T) {
	merged := "0\n1\n2\n3\nA\n"
	conflicts := []MergeConflict{{
		Base:       []string{"3"},
		Remote:     []string{"3\n", "A"},
		Local:      []string{"3\n", "B"},
		BaseLine:   3,
		MergedLine: 3,
	}}

	got := FormatConflictMarkers(merged, conflicts, MarkerOptions{
		RemoteLabel: "remote",
		LocalLabel:  "local",
		Style:       StyleMerge,
	})

	want := "0\n1\n2\n" +
		"<<<<<<< remote\n3\nA\n" +
		"=======\n3\nB\n" +
		">>>>>>> local\n"
	assert.Equal(t, want, got)
}

func TestFormatConflictMarkers_Diff3Style(t *testing.T) {
	merged := "a\nR\nc\nd\n"
	conflicts := []MergeConflict{{
		Base:       []string{"b\n"},
		Remote:     []string{"R\n"},
		Local:      []string{"L\n"},
		BaseLine:   1,
		MergedLine: 1,
	}}

	got := FormatConflictMarkers(merged, conflicts, MarkerOptions{
		RemoteLabel: "remote",
		BaseLabel:   "base",
		LocalLabel:  "local",
		Style:       StyleDiff3,
	})

	want := "a\n" +
		"<<<<<<< remote\nR\n" +
		"||||||| base\nb\n" +
		"=======\nL\n" +
		">>>>>>> local\n" +
		"c\nd\n"
	assert.Equal(t, want, got)
}

func TestFormatConflictMarkers_EmptyRemoteSide(t *testing.T) {
	// Remote deleted the region, local changed it
	merged := "a\nc\n"
	conflicts := []MergeConflict{{
		Base:       []string{"b\n"},
		Remote:     []string{},
		Local:      []string{"B\n"},
		BaseLine:   1,
		MergedLine: 1,
	}}

	got := FormatConflictMarkers(merged, conflicts, MarkerOptions{})

	assert.Equal(t, "a\n<<<<<<<\n=======\nB\n>>>>>>>\nc\n", got)
}

func TestFormatConflictMarkers_FromEngine(t *testing.T) {
	base := "line1\nline2\nline3\nline4\n"
	remote := "line1\nremote\nline3\nline4\nremote tail\n"
	local := "line1\nlocal\nline3\nline4\n"

	_, err := Merge(base, remote, local)
	conflictErr := requireConflict(t, err)

	got := FormatConflictMarkers(conflictErr.Merged, conflictErr.Conflicts, MarkerOptions{
		RemoteLabel: "R",
		LocalLabel:  "L",
	})

	want := "line1\n<<<<<<< R\nremote\n=======\nlocal\n>>>>>>> L\nline3\nline4\nremote tail\n"
	assert.Equal(t, want, got)
}

func TestDefaultMarkers_LabelsCarryHashes(t *testing.T) {
	opts := DefaultMarkers("base", "remote", "local", StyleDiff3)

	assert.Equal(t, "remote ("+core.HashString("remote").Short()+")", opts.RemoteLabel)
	assert.Equal(t, "base ("+core.HashString("base").Short()+")", opts.BaseLabel)
	assert.Equal(t, "local ("+core.HashString("local").Short()+")", opts.LocalLabel)
	assert.Equal(t, StyleDiff3, opts.Style)
}

func TestParseConflictMarkers_RoundTrip(t *testing.T) {
	base := "1\n2\n3\n4\n5\n"
	remote := "1\nR2\n3\n4\nR5\n"
	local := "1\nL2\nL3\n4\nL5\n"

	_, err := Merge(base, remote, local)
	conflictErr := requireConflict(t, err)

	text := FormatConflictMarkers(conflictErr.Merged, conflictErr.Conflicts, DefaultMarkers(base, remote, local, StyleDiff3))
	merged, conflicts := ParseConflictMarkers(text, base)

	assert.Equal(t, conflictErr.Merged, merged)
	assert.Equal(t, conflictErr.Conflicts, conflicts)
}

func TestParseConflictMarkers_WithoutBaseSection(t *testing.T) {
	text := "a\n<<<<<<< ours\nR\n=======\nL\n>>>>>>> theirs\nc\n"

	merged, conflicts := ParseConflictMarkers(text, "a\nb\nc\n")

	assert.Equal(t, "a\nR\nc\n", merged)
	require.Len(t, conflicts, 1)
	assert.Empty(t, conflicts[0].Base)
	assert.Equal(t, []string{"R\n"}, conflicts[0].Remote)
	assert.Equal(t, []string{"L\n"}, conflicts[0].Local)
	assert.Equal(t, 1, conflicts[0].MergedLine)
}

func TestParseConflictMarkers_NoMarkers(t *testing.T) {
	merged, conflicts := ParseConflictMarkers("clean\ntext\n", "clean\n")

	assert.Equal(t, "clean\ntext\n", merged)
	assert.Empty(t, conflicts)
	assert.False(t, strings.Contains(merged, "<<<<<<<"))
}
