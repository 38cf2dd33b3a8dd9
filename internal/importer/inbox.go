package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ProcessedDir is where Archive moves imported files, next to the file.
const ProcessedDir = "processed"

// Pending returns the paths of the CSV files directly inside dir, sorted by
// name. A missing dir has nothing pending.
func Pending(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// Archive moves an imported file into the processed directory beside it.
// An archived file of the same name is replaced.
func Archive(path string) error {
	dst := filepath.Join(filepath.Dir(path), ProcessedDir)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}
	if err := os.Rename(path, filepath.Join(dst, filepath.Base(path))); err != nil {
		return fmt.Errorf("archiving %s: %w", path, err)
	}
	return nil
}
