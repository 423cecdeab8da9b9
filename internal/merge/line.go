package merge

import (
	"fmt"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/diff"
)

// LineType is the role of a line in a diff
type LineType int

const (
	LineUnchanged LineType = iota
	LineAdded
	LineRemoved
)

func (t LineType) String() string {
	switch t {
	case LineUnchanged:
		return "unchanged"
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return fmt.Sprintf("LineType(%d)", int(t))
	}
}

// Line is one line of a diff, anchored to the base text.
//
// Index is the position of the line in the base text. Added lines carry
// the index of the base line they are inserted after, so an insertion
// before the first base line has index -1.
type Line struct {
	Type    LineType
	Content string
	Index   int
}

// NewLines converts an edit script into base-indexed lines
func NewLines(script diff.Script) ([]Line, error) {
	index := -1
	lines := make([]Line, 0, len(script))

	for i, entry := range script {
		var line Line
		switch entry.Tag {
		case diff.Old:
			index++
			line = Line{Type: LineUnchanged, Content: entry.Content, Index: index}
		case diff.Added:
			line = Line{Type: LineAdded, Content: entry.Content, Index: index}
		case diff.Removed:
			index++
			line = Line{Type: LineRemoved, Content: entry.Content, Index: index}
		default:
			return nil, fmt.Errorf("%w: %s at entry %d", core.ErrUnsupportedEditTag, entry.Tag, i)
		}
		lines = append(lines, line)
	}

	return lines, nil
}
