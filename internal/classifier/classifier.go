// Package classifier decides whether a text fragment is user-visible
// content or technical noise (URLs, asset paths, CSS tokens, leaked code).
package classifier

import (
	"regexp"
	"strings"

	"i18n-pipeline/internal/textutil"
)

// Class is the classification result.
type Class int

const (
	// Content is user-visible, translatable text.
	Content Class = iota
	// Technical is markup/technical noise that must never enter the catalog.
	Technical
)

func (c Class) String() string {
	if c == Technical {
		return "technical"
	}
	return "content"
}

// Context is the markup context a fragment was found in.
type Context struct {
	Tag  string // enclosing element tag
	Attr string // attribute name, empty for text nodes
}

var (
	urlPattern       = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://`)
	assetPathPattern = regexp.MustCompile(`(?i)^[\w@./-]+\.(css|js|mjs|jpe?g|png|gif|svg|webp|ico|woff2?|ttf|eot)(\?\S*)?$`)
	cssTokenPattern  = regexp.MustCompile(`^[a-z0-9_-]+$`)
	codePunctuation  = regexp.MustCompile(`[{}();:]`)
)

// rule pairs a name with a predicate over the normalized fragment.
// A matching rule classifies the fragment as Technical.
type rule struct {
	name    string
	matches func(text string) bool
}

// rules is evaluated in order; the first match wins, so the slice order is
// the precedence order.
var rules = []rule{
	{"empty", func(t string) bool {
		return t == ""
	}},
	{"too-short", func(t string) bool {
		return textutil.RuneLen(t) < 2
	}},
	{"url", func(t string) bool {
		return urlPattern.MatchString(t)
	}},
	{"asset-path", func(t string) bool {
		return assetPathPattern.MatchString(t)
	}},
	{"css-token", func(t string) bool {
		return cssTokenPattern.MatchString(t) && strings.Contains(t, "-")
	}},
	{"code-punctuation", func(t string) bool {
		return codePunctuation.MatchString(t) && textutil.RuneLen(t) < 50
	}},
}

// Classify reports whether a fragment is visible content or technical
// noise. The fragment is normalized before the rules run, so callers may
// pass raw markup text. Total and pure: every input yields exactly one
// class. Deliberately conservative toward false negatives, since false
// positives pollute the catalog and need manual pruning.
func Classify(fragment string, ctx Context) Class {
	c, _ := Explain(fragment, ctx)
	return c
}

// Explain classifies a fragment and returns the name of the rule that
// matched, or "content" when none did.
func Explain(fragment string, _ Context) (Class, string) {
	text := textutil.Normalize(fragment)
	for _, r := range rules {
		if r.matches(text) {
			return Technical, r.name
		}
	}
	return Content, "content"
}
