package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a catalog file and checks its invariants. The caller decides
// whether a missing file is fatal (rewrite) or the start of a fresh run
// (extract); test with os.IsNotExist.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if c.Strings == nil {
		c.Strings = make(map[string]map[string]string)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the catalog atomically: temp file in the target directory,
// then rename, so an interrupted run never leaves a half-written catalog.
func (c *Catalog) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// SaveFlat persists the flattened "category.key" → value sibling view.
func (c *Catalog) SaveFlat(path string) error {
	data, err := json.MarshalIndent(c.Flatten(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode flat catalog: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
