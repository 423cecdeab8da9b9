package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codimo/textmerge/internal/core"
)

const (
	// StateDir is the directory holding merge state inside a merge output
	StateDir  = ".textmerge"
	stateFile = "MERGE_STATE"
)

// MergeState tracks a directory merge that stopped on conflicts
type MergeState struct {
	Base       string         `json:"base"`
	Remote     string         `json:"remote"`
	Local      string         `json:"local"`
	Output     string         `json:"output"`
	Engine     string         `json:"engine"`
	Conflicts  []ConflictInfo `json:"conflicts"`
	Resolved   []string       `json:"resolved"`
	AutoMerged []string       `json:"auto_merged"`
}

// ConflictType is the kind of conflict a file is in
type ConflictType string

const (
	ConflictContent      ConflictType = "content"
	ConflictDeleteModify ConflictType = "delete-modify"
	ConflictModifyDelete ConflictType = "modify-delete"
	ConflictAddAdd       ConflictType = "add-add"
	ConflictBinary       ConflictType = "binary"
)

// ConflictInfo represents information about a conflicted file
type ConflictInfo struct {
	Path     string       `json:"path"`
	Type     ConflictType `json:"type"`
	Count    int          `json:"count,omitempty"` // conflicting regions, content conflicts only
	Resolved bool         `json:"resolved"`
}

// StatePath returns the location of the merge state file in dir
func StatePath(dir string) string {
	return filepath.Join(dir, StateDir, stateFile)
}

// SaveMergeState saves state to dir/.textmerge/MERGE_STATE
func SaveMergeState(dir string, state *MergeState) error {
	path := StatePath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Marshal to JSON
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal merge state: %w", err)
	}

	// Write to temp file first for atomic write
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp merge state: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile) // Clean up temp file on error
		return fmt.Errorf("failed to save merge state: %w", err)
	}

	return nil
}

// LoadMergeState loads from dir/.textmerge/MERGE_STATE
func LoadMergeState(dir string) (*MergeState, error) {
	data, err := os.ReadFile(StatePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNoMergeInProgress
		}
		return nil, fmt.Errorf("failed to read merge state: %w", err)
	}

	var state MergeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse merge state: %w", err)
	}

	return &state, nil
}

// ClearMergeState removes the merge state directory
func ClearMergeState(dir string) error {
	err := os.RemoveAll(filepath.Join(dir, StateDir))
	if err != nil {
		return fmt.Errorf("failed to clear merge state: %w", err)
	}
	return nil
}

// IsMergeInProgress checks if MERGE_STATE exists
func IsMergeInProgress(dir string) bool {
	_, err := os.Stat(StatePath(dir))
	return err == nil
}

// ValidateResolved ensures all conflicts are resolved
func (s *MergeState) ValidateResolved() error {
	if s.HasUnresolvedConflicts() {
		return core.ErrConflictsExist
	}
	return nil
}

// MarkResolved marks a file as resolved
func (s *MergeState) MarkResolved(path string) error {
	found := false
	for i := range s.Conflicts {
		if s.Conflicts[i].Path == path {
			s.Conflicts[i].Resolved = true
			found = true
		}
	}

	if !found {
		return fmt.Errorf("no conflict found for file: %s", path)
	}

	// Add to resolved list if not already there
	for _, r := range s.Resolved {
		if r == path {
			return nil
		}
	}
	s.Resolved = append(s.Resolved, path)

	return nil
}

// HasUnresolvedConflicts checks if there are any unresolved conflicts
func (s *MergeState) HasUnresolvedConflicts() bool {
	for _, conflict := range s.Conflicts {
		if !conflict.Resolved {
			return true
		}
	}
	return false
}
