package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/codimo/textmerge/internal/merge"
	"github.com/codimo/textmerge/internal/tree"
)

var (
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)

	conflictHeader = color.New(color.FgRed, color.Bold)
)

func printConflictSummary(w io.Writer, conflicts []merge.MergeConflict) {
	conflictHeader.Fprintf(w, "CONFLICT: %d conflicting region(s)\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(w, "  merged line %d (base line %d): ", c.MergedLine+1, c.BaseLine+1)
		yellow.Fprintf(w, "remote %d line(s)", len(c.Remote))
		fmt.Fprint(w, ", ")
		cyan.Fprintf(w, "local %d line(s)\n", len(c.Local))
	}
}

func printHunks(w io.Writer, hunks []merge.Hunk) {
	for _, h := range hunks {
		header := hunkColor(h.Type)
		header.Fprintf(w, "@@ %s %d..%d @@\n", h.Type, h.Start, h.End)
		for _, line := range h.RemovedLines() {
			red.Fprintf(w, "-%s\n", strings.TrimSuffix(line.Content, "\n"))
		}
		for _, line := range h.AddedLines() {
			green.Fprintf(w, "+%s\n", strings.TrimSuffix(line.Content, "\n"))
		}
	}
}

func hunkColor(t merge.HunkType) *color.Color {
	switch t {
	case merge.HunkAdded:
		return green
	case merge.HunkRemoved:
		return red
	default:
		return yellow
	}
}

func printTreeResult(w io.Writer, result *tree.Result) {
	for _, path := range result.AutoMerged {
		green.Fprintf(w, "merged    %s\n", path)
	}
	for _, path := range result.Deleted {
		yellow.Fprintf(w, "deleted   %s\n", path)
	}
	for _, c := range result.Conflicts {
		red.Fprintf(w, "CONFLICT (%s): %s\n", c.Type, c.Path)
	}
	if result.HasConflicts() {
		bold.Fprintf(w, "Automatic merge failed; fix conflicts, then run \"textmerge resolve\"\n")
	}
}

func printStatus(w io.Writer, state *merge.MergeState) {
	bold.Fprintf(w, "Merging %s and %s onto %s\n", state.Remote, state.Local, state.Base)
	for _, c := range state.Conflicts {
		if c.Resolved {
			green.Fprintf(w, "  resolved: %s\n", c.Path)
			continue
		}
		red.Fprintf(w, "  %s: %s\n", c.Type, c.Path)
	}
}
