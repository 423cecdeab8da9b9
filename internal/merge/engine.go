package merge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/codimo/textmerge/internal/diff"
)

// Merger merges two variants of a base text.
// A *ConflictError is returned when the variants' changes collide.
type Merger interface {
	Merge(base, remote, local string) (string, error)
}

// HunkMerger merges texts by comparing the hunks each variant applies to base.
// It holds no state between calls and is safe for concurrent use.
type HunkMerger struct {
	differ diff.Differ
	logger *zap.Logger
}

// Option configures a HunkMerger
type Option func(*HunkMerger)

// WithDiffer sets the line differ used to compute hunks
func WithDiffer(d diff.Differ) Option {
	return func(m *HunkMerger) {
		m.differ = d
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(m *HunkMerger) {
		m.logger = logger
	}
}

// NewHunkMerger creates a merger. It defaults to the textdiff differ and no logging.
func NewHunkMerger(opts ...Option) *HunkMerger {
	m := &HunkMerger{
		differ: diff.TextDiff{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMerger = NewHunkMerger()

// Merge merges remote and local changes to base with the default HunkMerger
func Merge(base, remote, local string) (string, error) {
	return defaultMerger.Merge(base, remote, local)
}

// Hunks returns the hunks that turn a into b
func (m *HunkMerger) Hunks(a, b string) ([]Hunk, error) {
	lines, err := NewLines(m.differ.Diff(a, b))
	if err != nil {
		return nil, err
	}
	return NewHunks(lines), nil
}

// Merge implements Merger
func (m *HunkMerger) Merge(base, remote, local string) (string, error) {
	// Check if both sides are identical
	if remote == local {
		return remote, nil
	}

	// If one side is unchanged, use the other
	if remote == base {
		return local, nil
	}
	if local == base {
		return remote, nil
	}

	remoteHunks, err := m.Hunks(base, remote)
	if err != nil {
		return "", fmt.Errorf("failed to diff remote: %w", err)
	}
	localHunks, err := m.Hunks(base, local)
	if err != nil {
		return "", fmt.Errorf("failed to diff local: %w", err)
	}

	m.logger.Debug("computed hunks",
		zap.Int("remote", len(remoteHunks)),
		zap.Int("local", len(localHunks)))

	merged, conflicts := mergeHunks(diff.SplitLines(base), remoteHunks, localHunks)
	if len(conflicts) == 0 {
		return strings.Join(merged, ""), nil
	}

	for _, c := range conflicts {
		m.logger.Debug("conflict",
			zap.Int("base_line", c.BaseLine),
			zap.Int("merged_line", c.MergedLine),
			zap.Int("base_lines", len(c.Base)))
	}

	content := strings.Join(merged, "")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return "", &ConflictError{Conflicts: conflicts, Merged: content}
}

// assembler walks base positions and both hunk sequences in base order
type assembler struct {
	base      []string
	remote    []Hunk
	local     []Hunk
	ri, li    int
	merged    []string
	conflicts []MergeConflict
}

func mergeHunks(base []string, remote, local []Hunk) ([]string, []MergeConflict) {
	a := &assembler{
		base:   base,
		remote: remote,
		local:  local,
		merged: make([]string, 0, len(base)),
	}

	// Position -1 holds insertions before the first base line
	for p := -1; p < len(base) || a.ri < len(remote) || a.li < len(local); {
		p = a.step(p)
	}

	return a.merged, a.conflicts
}

func (a *assembler) peekRemote() *Hunk {
	if a.ri < len(a.remote) {
		return &a.remote[a.ri]
	}
	return nil
}

func (a *assembler) peekLocal() *Hunk {
	if a.li < len(a.local) {
		return &a.local[a.li]
	}
	return nil
}

func startsAt(h *Hunk, p int) bool {
	return h != nil && h.Start <= p
}

// step handles base position p and returns the next position
func (a *assembler) step(p int) int {
	r := a.peekRemote()
	l := a.peekLocal()
	rAt := startsAt(r, p)
	lAt := startsAt(l, p)

	switch {
	case !rAt && !lAt:
		a.copyBase(p)
		return p + 1
	case rAt && lAt && r.Equal(l):
		// Both sides made the same change
		a.ri++
		a.li++
		return a.apply(p, r)
	case rAt && !r.Intersects(l):
		a.ri++
		return a.apply(p, r)
	case lAt && !l.Intersects(r):
		a.li++
		return a.apply(p, l)
	default:
		return a.conflict(p)
	}
}

func (a *assembler) copyBase(p int) {
	if p >= 0 && p < len(a.base) {
		a.merged = append(a.merged, a.base[p])
	}
}

// apply writes a hunk that collides with nothing on the other side
func (a *assembler) apply(p int, h *Hunk) int {
	switch h.Type {
	case HunkAdded:
		a.copyBase(p)
		a.merged = append(a.merged, h.AddedContent()...)
		return p + 1
	case HunkReplaced:
		a.merged = append(a.merged, h.AddedContent()...)
	}
	return h.End + 1
}

// conflict collects every hunk of the colliding region and records it
func (a *assembler) conflict(p int) int {
	var remote, local []Hunk
	start, end := p, p

	take := func(h Hunk) {
		start = min(start, h.Start)
		end = max(end, h.End)
	}

	if r := a.peekRemote(); startsAt(r, p) {
		remote = append(remote, *r)
		take(*r)
		a.ri++
	}
	if l := a.peekLocal(); startsAt(l, p) {
		local = append(local, *l)
		take(*l)
		a.li++
	}

	for grown := true; grown; {
		grown = false
		if r := a.peekRemote(); r != nil && (r.Start <= end || intersectsAny(r, local)) {
			remote = append(remote, *r)
			take(*r)
			a.ri++
			grown = true
		}
		if l := a.peekLocal(); l != nil && (l.Start <= end || intersectsAny(l, remote)) {
			local = append(local, *l)
			take(*l)
			a.li++
			grown = true
		}
	}

	c := MergeConflict{
		Base:       a.baseRange(start, end),
		Remote:     a.side(remote, start, end),
		Local:      a.side(local, start, end),
		BaseLine:   start,
		MergedLine: len(a.merged),
	}
	a.conflicts = append(a.conflicts, c)
	a.merged = append(a.merged, c.Remote...)

	return end + 1
}

func intersectsAny(h *Hunk, others []Hunk) bool {
	for i := range others {
		if h.Intersects(&others[i]) {
			return true
		}
	}
	return false
}

func (a *assembler) baseRange(start, end int) []string {
	from := max(start, 0)
	to := min(end+1, len(a.base))
	if from >= to {
		return []string{}
	}
	return append([]string{}, a.base[from:to]...)
}

// side renders what one variant made of base lines start..end
func (a *assembler) side(hunks []Hunk, start, end int) []string {
	removed := make(map[int]bool)
	added := make(map[int][]string)
	for _, h := range hunks {
		for _, line := range h.Lines {
			switch line.Type {
			case LineRemoved:
				removed[line.Index] = true
			case LineAdded:
				added[line.Index] = append(added[line.Index], line.Content)
			}
		}
	}

	lines := make([]string, 0)
	for j := start; j <= end; j++ {
		if j >= 0 && j < len(a.base) && !removed[j] {
			lines = append(lines, a.base[j])
		}
		lines = append(lines, added[j]...)
	}
	return lines
}
