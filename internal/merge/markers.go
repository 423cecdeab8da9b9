package merge

import (
	"fmt"
	"strings"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/diff"
)

// Style selects the conflict marker layout
type Style string

const (
	// StyleMerge shows remote and local only
	StyleMerge Style = "merge"
	// StyleDiff3 also shows the base lines of each conflict
	StyleDiff3 Style = "diff3"
)

const (
	markerRemote = "<<<<<<<"
	markerBase   = "|||||||"
	markerSplit  = "======="
	markerLocal  = ">>>>>>>"
)

// MarkerOptions configures conflict marker rendering
type MarkerOptions struct {
	RemoteLabel string
	BaseLabel   string
	LocalLabel  string
	Style       Style
}

// DefaultMarkers labels each side with its name and the short hash of its text
func DefaultMarkers(base, remote, local string, style Style) MarkerOptions {
	return MarkerOptions{
		RemoteLabel: fmt.Sprintf("remote (%s)", core.HashString(remote).Short()),
		BaseLabel:   fmt.Sprintf("base (%s)", core.HashString(base).Short()),
		LocalLabel:  fmt.Sprintf("local (%s)", core.HashString(local).Short()),
		Style:       style,
	}
}

// FormatConflictMarkers replaces each conflict's remote block in the
// best-effort merged text with git-style conflict markers
func FormatConflictMarkers(merged string, conflicts []MergeConflict, opts MarkerOptions) string {
	var result strings.Builder
	lines := diff.SplitLines(merged)

	next := 0
	for i := 0; i <= len(lines); {
		if next < len(conflicts) && conflicts[next].MergedLine <= i {
			c := conflicts[next]
			writeMarker(&result, markerRemote, opts.RemoteLabel)
			writeLines(&result, c.Remote)
			if opts.Style == StyleDiff3 {
				writeMarker(&result, markerBase, opts.BaseLabel)
				writeLines(&result, c.Base)
			}
			writeMarker(&result, markerSplit, "")
			writeLines(&result, c.Local)
			writeMarker(&result, markerLocal, opts.LocalLabel)

			i += len(c.Remote)
			next++
			continue
		}
		if i < len(lines) {
			result.WriteString(lines[i])
		}
		i++
	}

	return result.String()
}

func writeMarker(b *strings.Builder, marker, label string) {
	b.WriteString(marker)
	if label != "" {
		b.WriteString(" ")
		b.WriteString(label)
	}
	b.WriteString("\n")
}

func writeLines(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
}

type markerSection int

const (
	sectionOutside markerSection = iota
	sectionRemote
	sectionBase
	sectionLocal
)

// ParseConflictMarkers reads text carrying conflict markers back into the
// best-effort merged text (remote side kept) and its conflicts. The base
// block of each conflict is looked up in base to recover BaseLine.
func ParseConflictMarkers(text, base string) (string, []MergeConflict) {
	baseLines := diff.SplitLines(base)
	merged := make([]string, 0)
	conflicts := make([]MergeConflict, 0)

	section := sectionOutside
	cursor := 0
	var current MergeConflict

	for _, line := range diff.SplitLines(text) {
		switch {
		case section == sectionOutside && strings.HasPrefix(line, markerRemote):
			section = sectionRemote
			current = MergeConflict{
				Base:       []string{},
				Remote:     []string{},
				Local:      []string{},
				MergedLine: len(merged),
			}
		case section == sectionRemote && strings.HasPrefix(line, markerBase):
			section = sectionBase
		case (section == sectionRemote || section == sectionBase) && strings.TrimRight(line, "\r\n") == markerSplit:
			section = sectionLocal
		case section == sectionLocal && strings.HasPrefix(line, markerLocal):
			current.BaseLine, cursor = locate(baseLines, current.Base, cursor)
			conflicts = append(conflicts, current)
			merged = append(merged, current.Remote...)
			section = sectionOutside
		case section == sectionRemote:
			current.Remote = append(current.Remote, line)
		case section == sectionBase:
			current.Base = append(current.Base, line)
		case section == sectionLocal:
			current.Local = append(current.Local, line)
		default:
			merged = append(merged, line)
		}
	}

	return strings.Join(merged, ""), conflicts
}

// locate finds block in base at or after from. Without a match the
// conflict is placed at from.
func locate(base, block []string, from int) (int, int) {
	if len(block) == 0 {
		return from, from
	}
	for i := from; i+len(block) <= len(base); i++ {
		if equalTrimmed(base[i:i+len(block)], block) {
			return i, i + len(block)
		}
	}
	return from, from
}

// equalTrimmed compares lines ignoring a missing final newline, since
// marker output always terminates the lines it prints
func equalTrimmed(a, b []string) bool {
	for i := range a {
		if strings.TrimSuffix(a[i], "\n") != strings.TrimSuffix(b[i], "\n") {
			return false
		}
	}
	return true
}
