package translate

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"i18n-pipeline/internal/catalog"
)

var testDict = Dictionary{
	"검색":     "Search",
	"문의하기":   "Submit Inquiry",
	"건강":     "Health",
	"데이터":    "Data",
	"분석":     "Analysis",
	"플랫폼":    "Platform",
	"연구소":    "Research Institute",
	"건강 데이터": "Health Data",
}

func newResolver() *Resolver {
	return NewResolver(testDict, DefaultMinKeyRunes)
}

func TestResolve_AlreadyEnglish(t *testing.T) {
	r := newResolver()
	for _, text := range []string{"Submit", "Contact us: +82-2-555-1234", "View List"} {
		got, ok := r.Resolve(text)
		if got != text || !ok {
			t.Errorf("Resolve(%q) = %q, %v; want unchanged, true", text, got, ok)
		}
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	r := newResolver()
	got, ok := r.Resolve("문의하기")
	if got != "Submit Inquiry" || !ok {
		t.Errorf("Resolve(문의하기) = %q, %v", got, ok)
	}
}

// Longer sentences resolve compositionally from known sub-phrases; longer
// dictionary keys are substituted before their own substrings.
func TestResolve_Compositional(t *testing.T) {
	r := newResolver()
	got, ok := r.Resolve("건강 데이터 플랫폼")
	if !ok {
		t.Fatalf("expected full resolution, got %q", got)
	}
	if got != "Health Data Platform" {
		t.Errorf("Resolve = %q, want 'Health Data Platform'", got)
	}
}

// A string that cannot be fully resolved comes back byte-identical and
// flagged: consistency over coverage, never a half-translated value.
func TestResolve_UnresolvedStaysIntact(t *testing.T) {
	r := newResolver()
	original := "건강 데이터와 미지의 단어"
	got, ok := r.Resolve(original)
	if ok {
		t.Fatal("expected unresolved flag")
	}
	if got != original {
		t.Errorf("unresolved text was altered: %q", got)
	}
}

// Substring substitution has no word-boundary guard: a dictionary key that
// is an accidental substring of an unrelated longer word is replaced too.
// 연구소장 (institute director) contains 연구소 (research institute), so the
// substitution produces a mixed-script hybrid, and the Hangul residue check
// then rejects the whole string. Known risk of the compositional step,
// pinned here as documentation.
func TestResolveSubstringOverreach(t *testing.T) {
	r := newResolver()

	if got := r.substitute("연구소장 인사말"); got != "Research Institute장 인사말" {
		t.Errorf("substitute = %q; the overreach this test documents has changed", got)
	}

	original := "연구소장 인사말"
	got, ok := r.Resolve(original)
	if ok || got != original {
		t.Errorf("Resolve(%q) = %q, %v; want original flagged for review", original, got, ok)
	}
}

// Keys at or below the minimum length never take part in substitution.
func TestResolve_MinKeyLength(t *testing.T) {
	dict := Dictionary{"년": "Year", "데이터": "Data"}
	r := NewResolver(dict, DefaultMinKeyRunes)

	original := "2025년 데이터"
	got, ok := r.Resolve(original)
	if ok || got != original {
		t.Errorf("Resolve(%q) = %q, %v; 년 is too short to substitute, so Hangul remains", original, got, ok)
	}
}

func TestResolveCatalog(t *testing.T) {
	src := catalog.New("test")
	src.Set("buttons", "search", "검색")
	src.Set("buttons", "submit", "Submit")
	src.Set("content_ko", "mystery", "알 수 없는 문장")

	r := newResolver()
	out, unresolved := r.ResolveCatalog(src)

	if out.Strings["buttons"]["search"] != "Search" {
		t.Errorf("search = %q", out.Strings["buttons"]["search"])
	}
	if out.Strings["buttons"]["submit"] != "Submit" {
		t.Errorf("submit = %q", out.Strings["buttons"]["submit"])
	}
	if out.Strings["content_ko"]["mystery"] != "알 수 없는 문장" {
		t.Errorf("unresolved value altered: %q", out.Strings["content_ko"]["mystery"])
	}
	if !reflect.DeepEqual(unresolved, []string{"content_ko.mystery"}) {
		t.Errorf("unresolved = %v", unresolved)
	}
	if out.Len() != src.Len() {
		t.Errorf("keys not preserved: %d vs %d", out.Len(), src.Len())
	}
}

func TestAudit(t *testing.T) {
	c := catalog.New("test")
	c.Set("buttons", "search", "Search")
	c.Set("content_ko", "greeting", "안녕하세요")

	findings := Audit(c)
	if len(findings) != 1 || findings[0].Path != "content_ko.greeting" {
		t.Errorf("findings = %+v", findings)
	}
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.json")
	if err := os.WriteFile(path, []byte(`{"검색": "Search"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}
	if d["검색"] != "Search" {
		t.Errorf("dictionary = %v", d)
	}

	if _, err := LoadDictionary(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"검색": ""}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDictionary(bad); err == nil {
		t.Error("expected error for empty entry")
	}
}

func TestKeysByLength_Deterministic(t *testing.T) {
	first := testDict.keysByLength(DefaultMinKeyRunes)
	second := testDict.keysByLength(DefaultMinKeyRunes)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("key order not deterministic: %v vs %v", first, second)
	}
	if first[0] != "건강 데이터" {
		t.Errorf("longest key first, got %v", first)
	}
}
