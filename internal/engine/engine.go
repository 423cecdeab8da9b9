package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codimo/textmerge/internal/config"
	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/diff"
	"github.com/codimo/textmerge/internal/merge"
)

// New returns the merger selected by cfg.Engine. A nil cfg means defaults
// and a nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) (merge.Merger, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Engine {
	case config.EngineHunk, "":
		differ, err := diff.New(cfg.Differ)
		if err != nil {
			return nil, err
		}
		return merge.NewHunkMerger(
			merge.WithDiffer(differ),
			merge.WithLogger(logger.Named("hunk")),
		), nil
	case config.EngineGit:
		return NewGitMerger(cfg.GitBinary, logger.Named("git")), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownEngine, cfg.Engine)
	}
}
