// Package rewrite annotates HTML documents with data-i18n* key reference
// attributes. The rewrite decorates: original text stays in place so pages
// remain readable without a loader, and nothing outside the added
// attributes is touched.
package rewrite

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"i18n-pipeline/internal/textutil"
)

// ContentRef is the reference attribute for element text content.
const ContentRef = "data-i18n"

// AttributeTarget maps a source attribute to its reference attribute.
type AttributeTarget struct {
	Attr string
	Ref  string
	Tag  string // restrict to this element tag when non-empty
}

// AttributeTargets lists the attributes the rewriter annotates.
var AttributeTargets = []AttributeTarget{
	{Attr: "placeholder", Ref: "data-i18n-placeholder"},
	{Attr: "title", Ref: "data-i18n-title"},
	{Attr: "alt", Ref: "data-i18n-alt", Tag: "img"},
	{Attr: "aria-label", Ref: "data-i18n-aria"},
}

var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Rewriter annotates documents against a ReverseIndex (normalized value →
// flattened key).
type Rewriter struct {
	index map[string]string
}

func NewRewriter(index map[string]string) *Rewriter {
	return &Rewriter{index: index}
}

// annotation is one planned attribute addition.
type annotation struct {
	node *html.Node
	ref  string
	key  string
}

// Annotate parses a document, plans annotations in a read-only pass, then
// applies them and reserializes. Collect-then-apply avoids mutating the
// tree while walking it. Returns the annotated markup and the number of
// attributes added; a second run over its own output adds zero.
func (rw *Rewriter) Annotate(content string) (string, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", 0, err
	}

	var planned []annotation
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if skipTags[tag] {
				return
			}
			planned = append(planned, rw.planAttributes(n, tag)...)
			if a, ok := rw.planText(n); ok {
				planned = append(planned, a)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	for _, a := range planned {
		a.node.Attr = append(a.node.Attr, html.Attribute{Key: a.ref, Val: a.key})
	}

	out, err := doc.Html()
	if err != nil {
		return "", 0, err
	}
	return out, len(planned), nil
}

// planAttributes plans reference attributes for allow-listed attributes
// whose normalized value is cataloged. Elements already carrying the
// reference attribute are left alone so reruns cannot duplicate or
// overwrite annotations.
func (rw *Rewriter) planAttributes(n *html.Node, tag string) []annotation {
	var planned []annotation
	for _, target := range AttributeTargets {
		if target.Tag != "" && target.Tag != tag {
			continue
		}
		val, ok := attrValue(n, target.Attr)
		if !ok {
			continue
		}
		key, ok := rw.index[textutil.Normalize(val)]
		if !ok {
			continue
		}
		if _, present := attrValue(n, target.Ref); present {
			continue
		}
		planned = append(planned, annotation{node: n, ref: target.Ref, key: key})
	}
	return planned
}

// planText plans a content reference when the element's direct text is its
// sole child. Mixed text-and-element content is skipped: annotating it
// would misrepresent which part of the text the key covers.
func (rw *Rewriter) planText(n *html.Node) (annotation, bool) {
	child := n.FirstChild
	if child == nil || child.NextSibling != nil || child.Type != html.TextNode {
		return annotation{}, false
	}
	text := textutil.Normalize(child.Data)
	if text == "" {
		return annotation{}, false
	}
	key, ok := rw.index[text]
	if !ok {
		return annotation{}, false
	}
	if _, present := attrValue(n, ContentRef); present {
		return annotation{}, false
	}
	return annotation{node: n, ref: ContentRef, key: key}, true
}

func attrValue(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}
