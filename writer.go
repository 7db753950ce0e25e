package oasgen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Writer persists rendered files into a directory.
type Writer struct {
	OutputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{OutputDir: outputDir}
}

// Write creates the output directory, writes every file into it and removes
// generated files that are no longer part of the bundle.
func (w *Writer) Write(files []File) error {
	if err := os.MkdirAll(w.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, f := range files {
		path := filepath.Join(w.OutputDir, f.Name)
		if err := os.WriteFile(path, f.Content, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	orphans, err := w.orphans(files)
	if err != nil {
		return err
	}
	for _, name := range orphans {
		if err := os.Remove(filepath.Join(w.OutputDir, name)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// Check compares files with what is on disk and returns the names of the
// files that are missing or differ, followed by generated files on disk that
// are no longer part of the bundle.
func (w *Writer) Check(files []File) ([]string, error) {
	var stale []string
	for _, f := range files {
		path := filepath.Join(w.OutputDir, f.Name)
		current, err := os.ReadFile(path) //nolint:gosec // path is built from generated names
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, f.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		if !bytes.Equal(current, f.Content) {
			stale = append(stale, f.Name)
		}
	}

	orphans, err := w.orphans(files)
	if err != nil {
		return nil, err
	}
	return append(stale, orphans...), nil
}

// orphans lists the generated Go files in the output directory that files
// does not contain. Files without the generated header are left alone.
func (w *Writer) orphans(files []File) ([]string, error) {
	entries, err := os.ReadDir(w.OutputDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	bundle := make(map[string]bool, len(files))
	for _, f := range files {
		bundle[f.Name] = true
	}

	var orphans []string
	for _, e := range entries {
		if e.IsDir() || bundle[e.Name()] || filepath.Ext(e.Name()) != ".go" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(w.OutputDir, e.Name())) //nolint:gosec // path is built from a directory listing
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		if bytes.HasPrefix(content, []byte(GeneratedHeader)) {
			orphans = append(orphans, e.Name())
		}
	}
	return orphans, nil
}
