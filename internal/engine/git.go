package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/merge"
)

// git merge-file exits with the number of conflicts, capped at 127
const maxConflictExit = 127

// GitMerger merges by running `git merge-file` on temporary copies of the inputs
type GitMerger struct {
	binary string
	logger *zap.Logger
}

// NewGitMerger creates a merger that runs binary. Empty binary means "git".
func NewGitMerger(binary string, logger *zap.Logger) *GitMerger {
	if binary == "" {
		binary = "git"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitMerger{binary: binary, logger: logger}
}

// Merge implements merge.Merger
func (g *GitMerger) Merge(base, remote, local string) (string, error) {
	dir, err := os.MkdirTemp("", "textmerge-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	files := []struct {
		name    string
		content string
	}{
		{"remote", remote},
		{"base", base},
		{"local", local},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0600); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}

	args := []string{"merge-file", "-p", "--diff3", "-L", "remote", "-L", "base", "-L", "local"}
	args = append(args, paths...)

	cmd := exec.Command(g.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.logger.Debug("running merge-file", zap.String("binary", g.binary))

	err = cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() < 1 || exitErr.ExitCode() > maxConflictExit {
		return "", fmt.Errorf("%w: %v: %s", core.ErrExternalMerge, err, strings.TrimSpace(stderr.String()))
	}

	merged, conflicts := merge.ParseConflictMarkers(stdout.String(), base)
	if len(conflicts) == 0 {
		return "", fmt.Errorf("%w: exit status %d without conflict markers", core.ErrExternalMerge, exitErr.ExitCode())
	}
	if !strings.HasSuffix(merged, "\n") {
		merged += "\n"
	}

	g.logger.Debug("merge-file reported conflicts", zap.Int("conflicts", len(conflicts)))

	return "", &merge.ConflictError{
		Conflicts: conflicts,
		Merged:    merged,
	}
}
