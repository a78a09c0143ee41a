package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// maxSlugLen caps derived keys, in runes. Fixed, not configurable: changing
// it would shift keys that annotated HTML already references.
const maxSlugLen = 50

// keyOverrides pins human-friendly keys for common UI vocabulary so the key
// survives phrasing drift in the source text.
var keyOverrides = map[string]string{
	"Search":   "search",
	"Menu":     "menu",
	"About":    "about",
	"Contact":  "contact",
	"FAQ":      "faq",
	"News":     "news",
	"Gallery":  "gallery",
	"Download": "download",
	"Previous": "previous",
	"Next":     "next",
	"Submit":   "submit",
	"Send":     "send",
	"View":     "view",
	"More":     "more",
	"Share":    "share",
	"Pin":      "pin",
	"Love":     "love",

	"검색":        "search",
	"메뉴":        "menu",
	"소개":        "about",
	"연락처":       "contact",
	"문의":        "inquiry",
	"다운로드":      "download",
	"연구":        "research",
	"개발":        "development",
	"갤러리":       "gallery",
	"뉴스":        "news",
	"웹진":        "webzine",
	"역사":        "history",
	"위치":        "location",
	"성함":        "name",
	"이메일":       "email",
	"전화번호":      "phone",
	"내용":        "message",
	"문의하기":      "submit_inquiry",
	"View list": "view_list",
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s가-힣]`)
	slugCollapse = regexp.MustCompile(`\s+`)
)

// Slugify derives a key fragment from text: punctuation stripped except
// word characters and Hangul, whitespace collapsed to underscores,
// lowercased, truncated to maxSlugLen runes. Truncating by runes, not
// bytes: a byte cut can land inside a multi-byte Hangul syllable and leave
// the key malformed. May return "" for pure-punctuation input.
func Slugify(text string) string {
	s := slugStrip.ReplaceAllString(text, "")
	s = slugCollapse.ReplaceAllString(strings.TrimSpace(s), "_")
	if r := []rune(s); len(r) > maxSlugLen {
		s = string(r[:maxSlugLen])
	}
	return strings.ToLower(s)
}

// AssignKey maps a unique string to a collision-free key. used is the
// global key set (strictly stronger than per-category uniqueness, which
// keeps the nested and flattened views consistent); the chosen key is added
// to it. position feeds the placeholder fallback for strings that slugify
// to nothing. Deterministic under a fixed input ordering: callers process
// strings sorted by text.
func AssignKey(text string, position int, used map[string]bool) string {
	key, ok := keyOverrides[text]
	if !ok {
		key = Slugify(text)
	}
	if key == "" {
		key = fmt.Sprintf("text_%d", position)
	}
	if !used[key] {
		used[key] = true
		return key
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", key, i)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
