package diff

import (
	"fmt"
	"strings"

	"github.com/codimo/textmerge/internal/core"
)

// Tag classifies one entry of an edit script
type Tag int

const (
	// Old lines are present in both texts at this position
	Old Tag = iota
	// Added lines are present only in the second text
	Added
	// Removed lines are present only in the first text
	Removed
)

func (t Tag) String() string {
	switch t {
	case Old:
		return "old"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Entry is a single line of an edit script
type Entry struct {
	Content string
	Tag     Tag
}

// Script is the line-by-line classification of two texts' relationship.
// It covers every line of both texts exactly once, in order.
type Script []Entry

// Differ computes the edit script between two texts
type Differ interface {
	Diff(a, b string) Script
}

// Differ names accepted by New
const (
	NameMyers    = "myers"
	NameTextDiff = "textdiff"
	NameDifflib  = "difflib"
)

// Names lists the available differs
func Names() []string {
	return []string{NameTextDiff, NameMyers, NameDifflib}
}

// New returns the differ registered under name
func New(name string) (Differ, error) {
	switch name {
	case NameMyers:
		return Myers{}, nil
	case NameTextDiff, "":
		return TextDiff{}, nil
	case NameDifflib:
		return SequenceMatcher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownDiffer, name)
	}
}

// SplitLines splits text into lines, keeping each line's newline.
// A final run without a newline is its own line.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.SplitAfter(text, "\n")

	// SplitAfter yields an empty tail when text ends with a newline
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Canonical reorders every run of changed entries so that removals
// precede insertions. Relative order within each kind is preserved.
func Canonical(script Script) Script {
	result := make(Script, 0, len(script))
	var removed, added Script

	flush := func() {
		result = append(result, removed...)
		result = append(result, added...)
		removed = removed[:0]
		added = added[:0]
	}

	for _, entry := range script {
		switch entry.Tag {
		case Removed:
			removed = append(removed, entry)
		case Added:
			added = append(added, entry)
		default:
			flush()
			result = append(result, entry)
		}
	}
	flush()

	return result
}

// Apply reconstructs the second text of a script
func Apply(script Script) string {
	var b strings.Builder
	for _, entry := range script {
		if entry.Tag != Removed {
			b.WriteString(entry.Content)
		}
	}
	return b.String()
}

// Revert reconstructs the first text of a script
func Revert(script Script) string {
	var b strings.Builder
	for _, entry := range script {
		if entry.Tag != Added {
			b.WriteString(entry.Content)
		}
	}
	return b.String()
}
