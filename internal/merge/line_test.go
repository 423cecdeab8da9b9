package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/diff"
)

func TestNewLines_IndexesFollowBase(t *testing.T) {
	script := diff.Script{
		{"added\n", diff.Added},
		{"unchanged\n", diff.Old},
		{"replaced\n", diff.Removed},
		{"replacement\n", diff.Added},
		{"unchanged\n", diff.Old},
		{"removed", diff.Removed},
	}

	lines, err := NewLines(script)
	require.NoError(t, err)

	assert.Equal(t, []Line{
		{Type: LineAdded, Content: "added\n", Index: -1},
		{Type: LineUnchanged, Content: "unchanged\n", Index: 0},
		{Type: LineRemoved, Content: "replaced\n", Index: 1},
		{Type: LineAdded, Content: "replacement\n", Index: 1},
		{Type: LineUnchanged, Content: "unchanged\n", Index: 2},
		{Type: LineRemoved, Content: "removed", Index: 3},
	}, lines)
}

func TestNewLines_FromDiffers(t *testing.T) {
	before := "unchanged\nreplaced\nunchanged\nremoved"
	after := "added\nunchanged\nreplacement\nunchanged\n"

	want := diff.Script{
		{"added\n", diff.Added},
		{"unchanged\n", diff.Old},
		{"replaced\n", diff.Removed},
		{"replacement\n", diff.Added},
		{"unchanged\n", diff.Old},
		{"removed", diff.Removed},
	}

	for _, name := range diff.Names() {
		t.Run(name, func(t *testing.T) {
			d, err := diff.New(name)
			require.NoError(t, err)
			assert.Equal(t, want, d.Diff(before, after))
		})
	}
}

func TestNewLines_IndexIsMonotonic(t *testing.T) {
	script := diff.Myers{}.Diff("a\nb\nc\nd\ne\n", "x\nb\ny\nz\nd\n")

	lines, err := NewLines(script)
	require.NoError(t, err)

	prev := -1
	for _, line := range lines {
		assert.GreaterOrEqual(t, line.Index, prev)
		prev = line.Index
	}
	// Five base lines end at index 4
	assert.Equal(t, 4, prev)
}

func TestNewLines_UnsupportedTag(t *testing.T) {
	script := diff.Script{
		{"fine\n", diff.Old},
		{"invalid", diff.Tag(3)},
	}

	_, err := NewLines(script)
	require.ErrorIs(t, err, core.ErrUnsupportedEditTag)
}
