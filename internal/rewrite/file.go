package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"i18n-pipeline/internal/backup"
)

// Result reports what happened to one document.
type Result struct {
	Replacements int
	Changed      bool
}

// RewriteFile annotates one document in place. A document's rewrite is
// atomic: either the fully annotated content replaces the original via a
// same-directory temp file and rename, or the original is left untouched.
// A backup sibling is created before the first mutation. Dry runs report
// the replacement count without writing anything.
func (rw *Rewriter) RewriteFile(path, backupSuffix string, dryRun bool) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read document: %w", err)
	}
	content := strings.ToValidUTF8(string(data), "�")

	annotated, count, err := rw.Annotate(content)
	if err != nil {
		return Result{}, fmt.Errorf("annotate document: %w", err)
	}
	if count == 0 || dryRun {
		return Result{Replacements: count}, nil
	}

	if err := backup.Create(path, backupSuffix); err != nil {
		return Result{Replacements: count}, fmt.Errorf("create backup: %w", err)
	}
	if err := replaceFile(path, []byte(annotated)); err != nil {
		return Result{Replacements: count}, err
	}
	return Result{Replacements: count, Changed: true}, nil
}

// replaceFile writes data to a temp file beside the target and renames it
// over the original.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rewrite-*.tmp")
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
