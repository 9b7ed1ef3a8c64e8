// Package storage implements file-based JSON document stores. Each store is
// a single document at a fixed path under the data directory, read in full
// and rewritten wholesale on every mutation.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// readDoc loads a JSON document into v. A missing file returns os.ErrNotExist
// so callers can fall back to empty state; a corrupt file returns the decode
// error for the caller to decide.
func readDoc(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt document %s: %w", path, err)
	}
	return nil
}

// writeDoc writes a JSON document atomically: marshal, write to a temp file
// in the same directory, then rename over the target.
func writeDoc(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
