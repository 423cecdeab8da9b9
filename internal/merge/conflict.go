package merge

import (
	"errors"
	"fmt"
)

// MergeConflict is a region where remote and local changes collide.
//
// Base holds the base lines of the region, Remote and Local what each
// variant made of them. BaseLine is the first base index involved and
// MergedLine the line of the merged output where the region starts.
type MergeConflict struct {
	Base       []string `json:"base"`
	Remote     []string `json:"remote"`
	Local      []string `json:"local"`
	BaseLine   int      `json:"base_line"`
	MergedLine int      `json:"merged_line"`
}

// ConflictError is returned by a Merger when the variants collide.
// Merged is the best-effort result, with every conflicting region taken
// from the remote side.
type ConflictError struct {
	Conflicts []MergeConflict
	Merged    string
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return "merge conflict: 1 conflicting region"
	}
	return fmt.Sprintf("merge conflict: %d conflicting regions", len(e.Conflicts))
}

// IsConflict unwraps a ConflictError from err
func IsConflict(err error) (*ConflictError, bool) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}
