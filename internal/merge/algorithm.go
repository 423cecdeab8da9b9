package merge

// Result is the outcome of a three-way merge as presented to users.
// When HasConflict is set, Content carries conflict markers.
type Result struct {
	Content     string
	Conflicts   []MergeConflict
	HasConflict bool
}

// ThreeWayMerge merges with m and renders conflicts as markers
func ThreeWayMerge(m Merger, base, remote, local string, opts MarkerOptions) (*Result, error) {
	merged, err := m.Merge(base, remote, local)
	if err == nil {
		return &Result{
			Content:   merged,
			Conflicts: make([]MergeConflict, 0),
		}, nil
	}

	conflictErr, ok := IsConflict(err)
	if !ok {
		return nil, err
	}

	return &Result{
		Content:     FormatConflictMarkers(conflictErr.Merged, conflictErr.Conflicts, opts),
		Conflicts:   conflictErr.Conflicts,
		HasConflict: true,
	}, nil
}

// IsBinary checks for NUL bytes in the first 8000 bytes, like git
func IsBinary(data []byte) bool {
	limit := len(data)
	if limit > 8000 {
		limit = 8000
	}
	for _, b := range data[:limit] {
		if b == 0 {
			return true
		}
	}
	return false
}
