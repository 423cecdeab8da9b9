package core

import "errors"

var (
	// Edit script errors
	ErrUnsupportedEditTag = errors.New("unsupported diff line type")
	ErrUnknownDiffer      = errors.New("unknown differ")

	// Engine errors
	ErrUnknownEngine = errors.New("unknown merge engine")
	ErrExternalMerge = errors.New("external merge failed")

	// Merge state errors
	ErrMergeInProgress   = errors.New("merge already in progress")
	ErrNoMergeInProgress = errors.New("no merge in progress")
	ErrConflictsExist    = errors.New("unresolved conflicts exist")

	// Directory merge errors
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidConfig = errors.New("invalid configuration")
)
