// Package lookup exposes generated catalogs as a runtime string table:
// dotted key paths resolved against an active language, with graceful
// fallbacks so a missing translation never breaks a caller.
package lookup

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"i18n-pipeline/internal/catalog"
)

// Table holds per-language nested category→key→value maps.
type Table struct {
	active string
	langs  map[string]map[string]map[string]string
}

// FromCatalogs builds a table from one catalog per language code. If the
// default language is absent the first code alphabetically becomes active.
func FromCatalogs(defaultLang string, catalogs map[string]*catalog.Catalog) *Table {
	t := &Table{langs: make(map[string]map[string]map[string]string)}
	for lang, c := range catalogs {
		entries := make(map[string]map[string]string, len(c.Strings))
		c.EachEntry(func(category, key, value string) {
			if entries[category] == nil {
				entries[category] = make(map[string]string)
			}
			entries[category][key] = value
		})
		t.langs[lang] = entries
	}
	if _, ok := t.langs[defaultLang]; ok {
		t.active = defaultLang
	} else if codes := t.Languages(); len(codes) > 0 {
		t.active = codes[0]
	}
	return t
}

// Resolve looks up a dotted "category.key" path against the active
// language. An unresolved path is returned as is with a non-fatal warning,
// so callers can render the key instead of failing.
func (t *Table) Resolve(path string) string {
	parts := strings.SplitN(path, ".", 2)
	if len(parts) == 2 {
		if cat, ok := t.langs[t.active][parts[0]]; ok {
			if value, ok := cat[parts[1]]; ok {
				return value
			}
		}
	}
	log.Warn().Str("path", path).Str("lang", t.active).Msg("Unresolved lookup key")
	return path
}

// SetLanguage switches the active language. Unsupported codes are rejected
// by returning false; the active language is left unchanged.
func (t *Table) SetLanguage(code string) bool {
	if _, ok := t.langs[code]; !ok {
		return false
	}
	t.active = code
	return true
}

// Language returns the active language code.
func (t *Table) Language() string {
	return t.active
}

// Languages lists the supported language codes, sorted.
func (t *Table) Languages() []string {
	codes := make([]string, 0, len(t.langs))
	for code := range t.langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Categories lists the active language's categories, sorted.
func (t *Table) Categories() []string {
	cats := make([]string, 0, len(t.langs[t.active]))
	for cat := range t.langs[t.active] {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Entries returns a copy of one category's key→value entries for the
// active language; nil when the category is unknown.
func (t *Table) Entries(category string) map[string]string {
	src, ok := t.langs[t.active][category]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
