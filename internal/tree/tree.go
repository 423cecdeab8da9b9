package tree

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/merge"
)

// Options specifies the directories and settings of a directory merge
type Options struct {
	Base   string
	Remote string
	Local  string
	Output string

	Jobs    int                 // parallel file merges, at least 1
	Markers merge.MarkerOptions // empty labels are derived per file
	Engine  string              // recorded in the merge state
	Logger  *zap.Logger
}

// Result lists what happened to each path, sorted by path
type Result struct {
	AutoMerged []string
	Deleted    []string
	Conflicts  []merge.ConflictInfo
}

// HasConflicts reports whether any file needs manual resolution
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type action int

const (
	actionTake action = iota
	actionDelete
	actionMerge
	actionAddAdd
	actionDeleteModify
	actionModifyDelete
)

// plan is the classification of one path
type plan struct {
	path   string
	action action
	source string // directory holding the content to keep
}

type outcome struct {
	autoMerged bool
	deleted    bool
	conflict   *merge.ConflictInfo
}

// Merge merges the Remote and Local directories against Base into Output.
// Files changed on one side only are taken as they are; files changed on
// both sides are merged with m. Conflicted files are written with markers
// and recorded in a merge state saved in Output.
func Merge(ctx context.Context, m merge.Merger, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	if merge.IsMergeInProgress(opts.Output) {
		return nil, fmt.Errorf("%w in %s", core.ErrMergeInProgress, opts.Output)
	}

	base, err := readSnapshot(opts.Base)
	if err != nil {
		return nil, err
	}
	remote, err := readSnapshot(opts.Remote)
	if err != nil {
		return nil, err
	}
	local, err := readSnapshot(opts.Local)
	if err != nil {
		return nil, err
	}

	// Find all affected files
	paths := lo.Uniq(slices.Concat(lo.Keys(base), lo.Keys(remote), lo.Keys(local)))
	slices.Sort(paths)

	plans := make([]plan, 0, len(paths))
	for _, path := range paths {
		p, ok := classify(path, base, remote, local, opts)
		if !ok {
			continue
		}
		logger.Debug("classified", zap.String("path", path), zap.Int("action", int(p.action)))
		plans = append(plans, p)
	}

	if err := os.MkdirAll(opts.Output, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outcomes := make([]outcome, len(plans))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for i, p := range plans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := execute(m, p, opts)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		AutoMerged: make([]string, 0),
		Deleted:    make([]string, 0),
		Conflicts:  make([]merge.ConflictInfo, 0),
	}
	for i, o := range outcomes {
		switch {
		case o.conflict != nil:
			result.Conflicts = append(result.Conflicts, *o.conflict)
		case o.deleted:
			result.Deleted = append(result.Deleted, plans[i].path)
		case o.autoMerged:
			result.AutoMerged = append(result.AutoMerged, plans[i].path)
		}
	}

	logger.Info("directory merge finished",
		zap.Int("merged", len(result.AutoMerged)),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("conflicts", len(result.Conflicts)),
	)

	// If conflicts exist, save merge state
	if result.HasConflicts() {
		state := &merge.MergeState{
			Base:       opts.Base,
			Remote:     opts.Remote,
			Local:      opts.Local,
			Output:     opts.Output,
			Engine:     opts.Engine,
			Conflicts:  result.Conflicts,
			Resolved:   []string{},
			AutoMerged: result.AutoMerged,
		}
		if err := merge.SaveMergeState(opts.Output, state); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// classify decides what happens to path. It returns false when there is
// nothing to record, which is the case for files deleted on both sides.
func classify(path string, base, remote, local snapshot, opts Options) (plan, bool) {
	baseHash, baseExists := base[path]
	remoteHash, remoteExists := remote[path]
	localHash, localExists := local[path]

	p := plan{path: path}

	switch {
	case !baseExists && localExists && !remoteExists:
		// Only in local
		p.action, p.source = actionTake, opts.Local
	case !baseExists && !localExists && remoteExists:
		// Only in remote
		p.action, p.source = actionTake, opts.Remote
	case !baseExists && localExists && remoteExists:
		// Added in both
		if localHash == remoteHash {
			p.action, p.source = actionTake, opts.Local
		} else {
			p.action = actionAddAdd
		}
	case baseExists && !localExists && !remoteExists:
		// Deleted in both
		return p, false
	case baseExists && !localExists && remoteExists:
		if baseHash == remoteHash {
			p.action = actionDelete
		} else {
			p.action, p.source = actionDeleteModify, opts.Remote
		}
	case baseExists && localExists && !remoteExists:
		if baseHash == localHash {
			p.action = actionDelete
		} else {
			p.action, p.source = actionModifyDelete, opts.Local
		}
	default:
		switch {
		case localHash == remoteHash, baseHash == remoteHash:
			p.action, p.source = actionTake, opts.Local
		case baseHash == localHash:
			p.action, p.source = actionTake, opts.Remote
		default:
			p.action = actionMerge
		}
	}

	return p, true
}

// execute carries out one plan and writes its result into the output
func execute(m merge.Merger, p plan, opts Options) (outcome, error) {
	switch p.action {
	case actionTake:
		if err := copyFile(p.source, opts.Output, p.path); err != nil {
			return outcome{}, err
		}
		return outcome{autoMerged: true}, nil

	case actionDelete:
		if err := removeFile(opts.Output, p.path); err != nil {
			return outcome{}, err
		}
		return outcome{deleted: true}, nil

	case actionDeleteModify, actionModifyDelete:
		// Keep the modified side for the user to decide
		if err := copyFile(p.source, opts.Output, p.path); err != nil {
			return outcome{}, err
		}
		conflictType := merge.ConflictDeleteModify
		if p.action == actionModifyDelete {
			conflictType = merge.ConflictModifyDelete
		}
		return conflicted(p.path, conflictType, 0), nil

	case actionAddAdd:
		return mergeContent(m, p, opts, "")

	default:
		baseData, err := readFile(opts.Base, p.path)
		if err != nil {
			return outcome{}, err
		}
		return mergeContent(m, p, opts, string(baseData))
	}
}

// mergeContent merges both sides of path against base. Binary files are
// never merged; the local side is kept and a conflict recorded.
func mergeContent(m merge.Merger, p plan, opts Options, base string) (outcome, error) {
	remoteData, err := readFile(opts.Remote, p.path)
	if err != nil {
		return outcome{}, err
	}
	localData, err := readFile(opts.Local, p.path)
	if err != nil {
		return outcome{}, err
	}

	if merge.IsBinary(remoteData) || merge.IsBinary(localData) || merge.IsBinary([]byte(base)) {
		if err := writeFile(opts.Output, p.path, localData); err != nil {
			return outcome{}, err
		}
		return conflicted(p.path, merge.ConflictBinary, 0), nil
	}

	remote, local := string(remoteData), string(localData)
	result, err := merge.ThreeWayMerge(m, base, remote, local, markersFor(opts.Markers, base, remote, local))
	if err != nil {
		return outcome{}, fmt.Errorf("failed to merge %s: %w", p.path, err)
	}

	if err := writeFile(opts.Output, p.path, []byte(result.Content)); err != nil {
		return outcome{}, err
	}

	if !result.HasConflict {
		return outcome{autoMerged: true}, nil
	}

	conflictType := merge.ConflictContent
	if p.action == actionAddAdd {
		conflictType = merge.ConflictAddAdd
	}
	return conflicted(p.path, conflictType, len(result.Conflicts)), nil
}

func conflicted(path string, conflictType merge.ConflictType, count int) outcome {
	return outcome{conflict: &merge.ConflictInfo{
		Path:  path,
		Type:  conflictType,
		Count: count,
	}}
}

// markersFor fills in per-file labels when none were configured
func markersFor(opts merge.MarkerOptions, base, remote, local string) merge.MarkerOptions {
	if opts.RemoteLabel == "" && opts.BaseLabel == "" && opts.LocalLabel == "" {
		return merge.DefaultMarkers(base, remote, local, opts.Style)
	}
	return opts
}

func copyFile(srcRoot, dstRoot, path string) error {
	data, err := readFile(srcRoot, path)
	if err != nil {
		return err
	}
	return writeFile(dstRoot, path, data)
}
