package merge

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// HunkType is the kind of change a hunk makes to the base text
type HunkType int

const (
	HunkAdded HunkType = iota + 1
	HunkRemoved
	HunkReplaced
)

func (t HunkType) String() string {
	switch t {
	case HunkAdded:
		return "added"
	case HunkRemoved:
		return "removed"
	case HunkReplaced:
		return "replaced"
	default:
		return fmt.Sprintf("HunkType(%d)", int(t))
	}
}

// Hunk is a maximal run of changed lines.
//
// Start and End are inclusive base indices. An added hunk has Start == End,
// the base line the insertion follows. A replaced hunk's span is pinned by
// its removed lines, which precede its added lines.
type Hunk struct {
	Type  HunkType
	Start int
	End   int
	Lines []Line
}

// RemovedLines returns the removed lines of the hunk
func (h Hunk) RemovedLines() []Line {
	return lo.Filter(h.Lines, func(line Line, _ int) bool {
		return line.Type == LineRemoved
	})
}

// AddedLines returns the added lines of the hunk
func (h Hunk) AddedLines() []Line {
	return lo.Filter(h.Lines, func(line Line, _ int) bool {
		return line.Type == LineAdded
	})
}

// AddedContent returns the content of the added lines
func (h Hunk) AddedContent() []string {
	return lo.Map(h.AddedLines(), func(line Line, _ int) string {
		return line.Content
	})
}

// IsAffected reports whether the base line is touched by the hunk.
// An insertion also affects the line right after it.
func (h *Hunk) IsAffected(line int) bool {
	bleed := 0
	if h.Type == HunkAdded {
		bleed = 1
	}
	return line >= h.Start && line <= h.End+bleed
}

// Intersects reports whether two hunks touch the same base lines.
// Two insertions only collide when they are at the same position.
func (h *Hunk) Intersects(other *Hunk) bool {
	if h == nil || other == nil {
		return false
	}
	if h.Type == HunkAdded && other.Type == HunkAdded {
		return h.Start == other.Start
	}
	return h.IsAffected(other.Start) || h.IsAffected(other.End) ||
		other.IsAffected(h.Start) || other.IsAffected(h.End)
}

// Equal reports whether both hunks make the same change
func (h *Hunk) Equal(other *Hunk) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.Type == other.Type && h.Start == other.Start && h.End == other.End &&
		slices.Equal(h.AddedContent(), other.AddedContent())
}

type transition struct {
	prev LineType
	cur  LineType
}

type aggregator struct {
	hunks   []Hunk
	current *Hunk
}

// hunkTransitions drives NewHunks, keyed on the previous and current line types
var hunkTransitions = map[transition]func(a *aggregator, line Line){
	{LineUnchanged, LineRemoved}:   (*aggregator).openRemoved,
	{LineAdded, LineRemoved}:       (*aggregator).openRemoved,
	{LineRemoved, LineRemoved}:     (*aggregator).extend,
	{LineRemoved, LineAdded}:       (*aggregator).replace,
	{LineAdded, LineAdded}:         (*aggregator).extend,
	{LineUnchanged, LineAdded}:     (*aggregator).openAdded,
	{LineUnchanged, LineUnchanged}: (*aggregator).close,
	{LineAdded, LineUnchanged}:     (*aggregator).close,
	{LineRemoved, LineUnchanged}:   (*aggregator).close,
}

func (a *aggregator) open(hunkType HunkType, line Line) {
	a.flush()
	a.current = &Hunk{
		Type:  hunkType,
		Start: line.Index,
		End:   line.Index,
		Lines: []Line{line},
	}
}

func (a *aggregator) openRemoved(line Line) {
	a.open(HunkRemoved, line)
}

func (a *aggregator) openAdded(line Line) {
	a.open(HunkAdded, line)
}

func (a *aggregator) extend(line Line) {
	a.current.Lines = append(a.current.Lines, line)
	a.current.End = line.Index
}

func (a *aggregator) replace(line Line) {
	a.current.Type = HunkReplaced
	a.extend(line)
}

func (a *aggregator) close(Line) {
	a.flush()
}

func (a *aggregator) flush() {
	if a.current != nil {
		a.hunks = append(a.hunks, *a.current)
		a.current = nil
	}
}

// NewHunks groups the changed lines of a diff into hunks, in base order
func NewHunks(lines []Line) []Hunk {
	a := &aggregator{hunks: make([]Hunk, 0)}
	prev := LineUnchanged

	for _, line := range lines {
		if action, ok := hunkTransitions[transition{prev, line.Type}]; ok {
			action(a, line)
		}
		prev = line.Type
	}
	a.flush()

	return a.hunks
}
