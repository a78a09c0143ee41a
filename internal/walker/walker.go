// Package walker discovers HTML documents under a directory tree.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

// Walker finds documents, skipping excluded directories. Exclusion
// patterns are globs matched against individual path segments, so
// "wp-*" skips wp-includes and wp-admin at any depth.
type Walker struct {
	excludes []glob.Glob
}

func New(excludePatterns []string) (*Walker, error) {
	w := &Walker{}
	for _, p := range excludePatterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", p, err)
		}
		w.excludes = append(w.excludes, g)
	}
	return w, nil
}

// Walk returns all .html files under root in lexical order, giving the
// batch a fixed enumeration order.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var files []string
	err = filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			if path != root && w.excluded(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".html") && !w.excluded(info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(files)).Str("root", root).Msg("Discovered documents")
	return files, nil
}

func (w *Walker) excluded(name string) bool {
	for _, g := range w.excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}
