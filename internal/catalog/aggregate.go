package catalog

import (
	"sort"

	"i18n-pipeline/internal/extract"
)

// UniqueString is a deduplicated normalized text value with occurrence
// metadata folded across all input documents.
type UniqueString struct {
	Text     string
	Count    int
	Contexts map[string]bool // "content", "attribute:<name>"
	Files    []string        // first-seen order, for reproducible reports

	fileSet map[string]bool
}

// Aggregate folds TextRecords from many documents into the corpus-level
// unique string set. Count is order-independent; Files preserves the order
// documents were added in.
type Aggregate struct {
	strings map[string]*UniqueString
	docs    int
}

func NewAggregate() *Aggregate {
	return &Aggregate{strings: make(map[string]*UniqueString)}
}

// AddDocument folds one document's records into the set.
func (a *Aggregate) AddDocument(file string, records []extract.TextRecord) {
	a.docs++
	for _, rec := range records {
		u, ok := a.strings[rec.Text]
		if !ok {
			u = &UniqueString{
				Text:     rec.Text,
				Contexts: make(map[string]bool),
				fileSet:  make(map[string]bool),
			}
			a.strings[rec.Text] = u
		}
		u.Count++
		u.Contexts[rec.Context()] = true
		if !u.fileSet[file] {
			u.fileSet[file] = true
			u.Files = append(u.Files, file)
		}
	}
}

// DocumentCount returns how many documents were folded in.
func (a *Aggregate) DocumentCount() int {
	return a.docs
}

// Len returns the number of unique strings.
func (a *Aggregate) Len() int {
	return len(a.strings)
}

// Strings returns the unique strings sorted by text. Key assignment
// iterates this order so reruns over the same corpus reproduce identical
// keys.
func (a *Aggregate) Strings() []*UniqueString {
	out := make([]*UniqueString, 0, len(a.strings))
	for _, u := range a.strings {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

// DocumentRatio returns the share of documents containing this string.
func (u *UniqueString) DocumentRatio(totalDocs int) float64 {
	if totalDocs == 0 {
		return 0
	}
	return float64(len(u.Files)) / float64(totalDocs)
}
