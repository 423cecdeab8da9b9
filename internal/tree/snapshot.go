package tree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/codimo/textmerge/internal/core"
	"github.com/codimo/textmerge/internal/merge"
)

// snapshot maps slash-separated relative paths to content hashes
type snapshot map[string]core.Hash

// readSnapshot hashes every regular file under root, skipping merge state
func readSnapshot(root string) (snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", core.ErrNotADirectory, root)
	}

	files := make(snapshot)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip merge state left by a previous run
		if d.IsDir() && d.Name() == merge.StateDir {
			return filepath.SkipDir
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		hash, err := hashFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(relPath)] = hash
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	return files, nil
}

func hashFile(path string) (core.Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Hash{}, err
	}
	defer f.Close()

	return core.HashReader(f)
}

// readFile reads a snapshot path below root
func readFile(root, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeFile writes data to path below root, creating parent directories
func writeFile(root, path string, data []byte) error {
	dst := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// removeFile deletes path below root if present
func removeFile(root, path string) error {
	err := os.Remove(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
