// Package extract walks HTML documents and produces TextRecords for every
// fragment of user-visible text.
package extract

import (
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"i18n-pipeline/internal/classifier"
	"i18n-pipeline/internal/textutil"
)

// Kind tells where a record's text came from.
type Kind string

const (
	KindContent   Kind = "content"
	KindAttribute Kind = "attribute"
)

// TextRecord is one accepted occurrence of visible text. One record per
// occurrence; deduplication happens later in the catalog.
type TextRecord struct {
	Text string // normalized text
	Kind Kind
	Attr string // attribute name when Kind == KindAttribute
	Tag  string // enclosing element tag
	File string // source document path
}

// Context returns the record origin in "content" / "attribute:<name>" form.
func (r TextRecord) Context() string {
	if r.Kind == KindAttribute {
		return string(KindAttribute) + ":" + r.Attr
	}
	return string(KindContent)
}

// SuppressedTags are containers whose descendant text is never visible to
// an end user. Attributes on the suppressing element itself are still
// scanned.
var SuppressedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"meta":     true,
	"link":     true,
	"noscript": true,
}

// TextAttributes is the allow-list of attributes known to carry
// user-visible text, scanned in this order.
var TextAttributes = []string{
	"placeholder", "alt", "title", "aria-label", "aria-placeholder",
	"data-title", "value",
}

// voidTags have no content and therefore never open a suppression scope.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Extractor tokenizes documents and classifies text fragments. Stateless
// across documents; safe to reuse for a whole batch.
type Extractor struct {
	suppressed map[string]bool
}

func NewExtractor() *Extractor {
	return &Extractor{suppressed: SuppressedTags}
}

// ExtractFile reads one document and extracts its records. Invalid UTF-8 is
// replaced rather than rejected.
func (e *Extractor) ExtractFile(path string) ([]TextRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.ToValidUTF8(string(data), "�")
	return e.Extract(strings.NewReader(content), path)
}

// Extract produces records in document order. The tokenizer sees tags as
// written, so suppression applies only where a suppressing container
// actually occurs: a bare <title> outside <head> is collected.
func (e *Extractor) Extract(r io.Reader, file string) ([]TextRecord, error) {
	z := html.NewTokenizer(r)

	var records []TextRecord
	var tagStack []string
	suppressDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return records, nil
			}
			return records, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			tag := strings.ToLower(t.Data)
			records = append(records, e.attributeRecords(t, tag, file)...)
			if tt == html.StartTagToken && !voidTags[tag] {
				tagStack = append(tagStack, tag)
				if e.suppressed[tag] {
					suppressDepth++
				}
			}

		case html.EndTagToken:
			t := z.Token()
			tag := strings.ToLower(t.Data)
			if n := len(tagStack); n > 0 && tagStack[n-1] == tag {
				tagStack = tagStack[:n-1]
				if e.suppressed[tag] && suppressDepth > 0 {
					suppressDepth--
				}
			}

		case html.TextToken:
			if suppressDepth > 0 {
				continue
			}
			text := textutil.Normalize(string(z.Text()))
			tag := ""
			if len(tagStack) > 0 {
				tag = tagStack[len(tagStack)-1]
			}
			if classifier.Classify(text, classifier.Context{Tag: tag}) == classifier.Content {
				records = append(records, TextRecord{
					Text: text,
					Kind: KindContent,
					Tag:  tag,
					File: file,
				})
			}
		}
	}
}

func (e *Extractor) attributeRecords(t html.Token, tag, file string) []TextRecord {
	var records []TextRecord
	for _, name := range TextAttributes {
		for _, attr := range t.Attr {
			if !strings.EqualFold(attr.Key, name) || attr.Val == "" {
				continue
			}
			text := textutil.Normalize(attr.Val)
			ctx := classifier.Context{Tag: tag, Attr: name}
			if classifier.Classify(text, ctx) == classifier.Content {
				records = append(records, TextRecord{
					Text: text,
					Kind: KindAttribute,
					Attr: name,
					Tag:  tag,
					File: file,
				})
			}
			break
		}
	}
	return records
}
