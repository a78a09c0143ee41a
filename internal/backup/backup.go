// Package backup preserves originals beside mutated documents so a failed
// run is always recoverable.
package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultSuffix is appended to a document path to form its backup sibling
// ("index.html" → "index.html.backup").
const DefaultSuffix = ".backup"

// Create copies path to its backup sibling. An existing backup is kept as
// is: the first backup captures the pre-pipeline original, and later runs
// must not overwrite it with already-annotated content.
func Create(path, suffix string) error {
	backupPath := path + suffix
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat backup: %w", err)
	}
	return copyFile(path, backupPath)
}

// Restore scans root for backup siblings and copies each back over its
// original. Backups are removed afterwards unless keep is set. Returns the
// number of restored documents.
func Restore(root, suffix string, keep bool) (int, error) {
	restored := 0
	err := filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(path, suffix) {
			return nil
		}
		original := strings.TrimSuffix(path, suffix)
		if err := copyFile(path, original); err != nil {
			log.Error().Err(err).Str("backup", path).Msg("Restore failed")
			return nil
		}
		if !keep {
			if err := os.Remove(path); err != nil {
				log.Warn().Err(err).Str("backup", path).Msg("Failed to remove backup")
			}
		}
		restored++
		return nil
	})
	if err != nil {
		return restored, fmt.Errorf("walk %s: %w", root, err)
	}
	return restored, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
