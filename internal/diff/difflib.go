package diff

import (
	"github.com/pmezard/go-difflib/difflib"
)

// SequenceMatcher computes line diffs with difflib's Ratcliff/Obershelp matcher
type SequenceMatcher struct{}

// Diff implements Differ
func (SequenceMatcher) Diff(a, b string) Script {
	oldLines := SplitLines(a)
	newLines := SplitLines(b)

	matcher := difflib.NewMatcher(oldLines, newLines)
	script := make(Script, 0, len(oldLines)+len(newLines))

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range oldLines[op.I1:op.I2] {
				script = append(script, Entry{line, Old})
			}
		case 'd':
			for _, line := range oldLines[op.I1:op.I2] {
				script = append(script, Entry{line, Removed})
			}
		case 'i':
			for _, line := range newLines[op.J1:op.J2] {
				script = append(script, Entry{line, Added})
			}
		case 'r':
			for _, line := range oldLines[op.I1:op.I2] {
				script = append(script, Entry{line, Removed})
			}
			for _, line := range newLines[op.J1:op.J2] {
				script = append(script, Entry{line, Added})
			}
		}
	}

	return Canonical(script)
}
