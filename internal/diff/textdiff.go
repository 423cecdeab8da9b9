package diff

import (
	zdiff "znkr.io/diff"
	"znkr.io/diff/textdiff"
)

// TextDiff computes line diffs with znkr.io/diff. It is the default differ.
type TextDiff struct{}

// Diff implements Differ
func (TextDiff) Diff(a, b string) Script {
	edits := textdiff.Edits(a, b)

	script := make(Script, 0, len(edits))
	for _, edit := range edits {
		switch edit.Op {
		case zdiff.Match:
			script = append(script, Entry{edit.Line, Old})
		case zdiff.Delete:
			script = append(script, Entry{edit.Line, Removed})
		case zdiff.Insert:
			script = append(script, Entry{edit.Line, Added})
		}
	}

	return Canonical(script)
}
