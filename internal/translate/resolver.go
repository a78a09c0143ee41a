package translate

import (
	"strings"

	"i18n-pipeline/internal/catalog"
	"i18n-pipeline/internal/textutil"
)

// DefaultMinKeyRunes is the substring-substitution length floor: only
// dictionary keys longer than this take part in compositional replacement.
const DefaultMinKeyRunes = 2

// Resolver is a pure value→value transform. It knows nothing about key
// identity; resolving a whole catalog preserves every key.
type Resolver struct {
	dict    Dictionary
	subKeys []string // keys eligible for substring substitution, longest first
}

func NewResolver(dict Dictionary, minKeyRunes int) *Resolver {
	return &Resolver{
		dict:    dict,
		subKeys: dict.keysByLength(minKeyRunes),
	}
}

// Resolve translates one value. Returns the result and whether it is fully
// resolved. In order: text already in the target script is returned as is;
// an exact dictionary hit wins; otherwise known sub-phrases are substituted
// longest-first. If Hangul survives the substitutions the original text is
// returned unchanged and flagged — a string that cannot be fully resolved
// is never partially mangled.
func (r *Resolver) Resolve(text string) (string, bool) {
	if textutil.IsLatinOnly(text) {
		return text, true
	}
	if translated, ok := r.dict[text]; ok {
		return translated, true
	}
	translated := r.substitute(text)
	if textutil.ContainsHangul(translated) {
		return text, false
	}
	return translated, true
}

// substitute replaces every occurrence of every eligible dictionary key,
// longest key first. A short key that happens to be a substring of an
// unrelated longer word is replaced too; known risk, documented by
// TestResolveSubstringOverreach rather than guarded against.
func (r *Resolver) substitute(text string) string {
	for _, k := range r.subKeys {
		if strings.Contains(text, k) {
			text = strings.ReplaceAll(text, k, r.dict[k])
		}
	}
	return text
}

// ResolveCatalog produces a translated copy of a catalog: same categories,
// same keys, resolved values. Unresolved entries keep their original value
// and are reported as flattened keys for manual follow-up.
func (r *Resolver) ResolveCatalog(c *catalog.Catalog) (*catalog.Catalog, []string) {
	out := catalog.New(c.Metadata.Project)
	var unresolved []string
	c.EachEntry(func(category, key, value string) {
		translated, ok := r.Resolve(value)
		out.Set(category, key, translated)
		if !ok {
			unresolved = append(unresolved, category+"."+key)
		}
	})
	out.Metadata = c.Metadata
	return out, unresolved
}
