// Package translate resolves catalog values from Korean to English through
// a hand-maintained dictionary.
package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"i18n-pipeline/internal/textutil"
)

// Dictionary maps source-language phrases to target-language phrases. It is
// a versioned, read-only resource loaded once at startup; swapping the file
// swaps the target language without code changes.
type Dictionary map[string]string

// LoadDictionary reads a dictionary JSON file ({"원문": "Translation", …}).
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	for k, v := range d {
		if k == "" || v == "" {
			return nil, fmt.Errorf("dictionary %s: empty entry %q: %q", path, k, v)
		}
	}
	return d, nil
}

// keysByLength returns dictionary keys of more than minRunes code points,
// longest first, ties broken alphabetically for determinism.
func (d Dictionary) keysByLength(minRunes int) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		if textutil.RuneLen(k) > minRunes {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := textutil.RuneLen(keys[i]), textutil.RuneLen(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	return keys
}
