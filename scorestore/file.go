// Package scorestore persists the best score and finished runs.
package scorestore

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// File keeps the best score as a decimal integer in a text file.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// LoadBest reads the stored score. A missing file is a best of 0.
func (f *File) LoadBest() (int, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", f.Path, err)
	}

	best, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return best, nil
}

// SaveBest overwrites the file with best.
func (f *File) SaveBest(best int) error {
	if err := os.WriteFile(f.Path, []byte(strconv.Itoa(best)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}
