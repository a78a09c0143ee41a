// Package catalog aggregates extracted text into the persisted
// category→key→value translation store and derives lookup views from it.
package catalog

import (
	"fmt"
	"sort"
	"time"

	"i18n-pipeline/internal/textutil"
)

// Metadata describes a catalog generation.
type Metadata struct {
	Project      string         `json:"project"`
	GeneratedAt  string         `json:"generated_at"`
	TotalStrings int            `json:"total_strings"`
	Categories   map[string]int `json:"categories"`
}

// Catalog is the durable artifact of the pipeline: an ordered mapping
// category → key → value. Keys are unique across the whole catalog and
// immutable once assigned; reassigning a key after HTML has been annotated
// would break the round trip.
type Catalog struct {
	Metadata Metadata                     `json:"metadata"`
	Strings  map[string]map[string]string `json:"strings"`
}

func New(project string) *Catalog {
	return &Catalog{
		Metadata: Metadata{Project: project},
		Strings:  make(map[string]map[string]string),
	}
}

// Set stores a value under category/key.
func (c *Catalog) Set(category, key, value string) {
	if c.Strings[category] == nil {
		c.Strings[category] = make(map[string]string)
	}
	c.Strings[category][key] = value
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	n := 0
	for _, keys := range c.Strings {
		n += len(keys)
	}
	return n
}

// Categories returns the catalog's categories in persisted order:
// CategoryOrder first, then any others alphabetically.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cat := range CategoryOrder {
		if _, ok := c.Strings[cat]; ok {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	var extra []string
	for cat := range c.Strings {
		if !seen[cat] {
			extra = append(extra, cat)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// EachEntry visits every entry in deterministic order: categories per
// Categories(), keys sorted within a category.
func (c *Catalog) EachEntry(fn func(category, key, value string)) {
	for _, cat := range c.Categories() {
		keys := make([]string, 0, len(c.Strings[cat]))
		for k := range c.Strings[cat] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fn(cat, k, c.Strings[cat][k])
		}
	}
}

// Flatten returns the "category.key" → value sibling view. Flat keys are
// unique because bare keys are assigned from a global namespace.
func (c *Catalog) Flatten() map[string]string {
	flat := make(map[string]string, c.Len())
	c.EachEntry(func(category, key, value string) {
		flat[category+"."+key] = value
	})
	return flat
}

// ReverseIndex maps normalized values to flattened keys for the rewriter.
// When two entries share a value the later one in EachEntry order wins;
// this is a known lossy collapse, deterministic across runs because the
// iteration order is fixed.
func (c *Catalog) ReverseIndex() map[string]string {
	index := make(map[string]string, c.Len())
	c.EachEntry(func(category, key, value string) {
		normalized := textutil.Normalize(value)
		if normalized != "" {
			index[normalized] = category + "." + key
		}
	})
	return index
}

// usedKeys returns the global set of bare keys already assigned.
func (c *Catalog) usedKeys() map[string]bool {
	used := make(map[string]bool)
	for _, keys := range c.Strings {
		for k := range keys {
			used[k] = true
		}
	}
	return used
}

// knownValues returns the set of normalized values already cataloged.
func (c *Catalog) knownValues() map[string]bool {
	known := make(map[string]bool)
	for _, keys := range c.Strings {
		for _, v := range keys {
			known[textutil.Normalize(v)] = true
		}
	}
	return known
}

// Merge folds an aggregate into the catalog. Existing entries are
// authoritative: a string whose normalized value is already cataloged is
// skipped, so reruns never reassign a key. Returns the number of entries
// added. boilerplateRatio ≤ 0 disables the frequency override.
func (c *Catalog) Merge(agg *Aggregate, boilerplateRatio float64) int {
	used := c.usedKeys()
	known := c.knownValues()
	totalDocs := agg.DocumentCount()

	added := 0
	for i, u := range agg.Strings() {
		if known[u.Text] {
			continue
		}
		category := applyBoilerplate(Categorize(u), u, totalDocs, boilerplateRatio)
		key := AssignKey(u.Text, i, used)
		c.Set(category, key, u.Text)
		known[u.Text] = true
		added++
	}

	c.refreshMetadata()
	return added
}

func (c *Catalog) refreshMetadata() {
	counts := make(map[string]int)
	for cat, keys := range c.Strings {
		if len(keys) > 0 {
			counts[cat] = len(keys)
		}
	}
	c.Metadata.Categories = counts
	c.Metadata.TotalStrings = c.Len()
	c.Metadata.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
}

// Validate checks the catalog invariants: no empty values, no empty keys.
func (c *Catalog) Validate() error {
	for cat, keys := range c.Strings {
		for k, v := range keys {
			if k == "" {
				return fmt.Errorf("category %q: empty key", cat)
			}
			if v == "" {
				return fmt.Errorf("entry %s.%s: empty value", cat, k)
			}
		}
	}
	return nil
}
