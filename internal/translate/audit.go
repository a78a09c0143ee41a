package translate

import (
	"i18n-pipeline/internal/catalog"
	"i18n-pipeline/internal/textutil"
)

// Finding is a catalog value still containing source-script characters.
type Finding struct {
	Path  string // flattened key
	Value string // truncated for display
}

// Audit scans a catalog's values (keys are ignored) for remaining Korean
// text. The count is a data-quality signal, not an error: nothing is
// dropped or corrected.
func Audit(c *catalog.Catalog) []Finding {
	var findings []Finding
	c.EachEntry(func(category, key, value string) {
		if textutil.ContainsHangul(value) {
			findings = append(findings, Finding{
				Path:  category + "." + key,
				Value: textutil.Truncate(value, 100),
			})
		}
	})
	return findings
}
