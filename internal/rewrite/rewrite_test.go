package rewrite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testIndex = map[string]string{
	"검색":              "buttons.search",
	"Submit":          "buttons.submit",
	"건강의학연구센터":        "company.건강의학연구센터",
	"Enter your name": "forms.enter_your_name",
	"Research team":   "content_en.research_team",
}

func TestAnnotate_TextContent(t *testing.T) {
	rw := NewRewriter(testIndex)

	out, count, err := rw.Annotate(`<html><body><button>검색</button><p>no match here</p></body></html>`)
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if !strings.Contains(out, `data-i18n="buttons.search"`) {
		t.Errorf("missing annotation: %s", out)
	}
	if !strings.Contains(out, "검색") {
		t.Error("original text must be preserved, not replaced")
	}
}

func TestAnnotate_Attributes(t *testing.T) {
	rw := NewRewriter(testIndex)

	in := `<html><body>
		<input placeholder="Enter your name">
		<img src="team.jpg" alt="Research team">
		<span title="Research team">staff</span>
		<div aria-label="검색">icon</div>
	</body></html>`
	out, count, err := rw.Annotate(in)
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
	for _, want := range []string{
		`data-i18n-placeholder="forms.enter_your_name"`,
		`data-i18n-alt="content_en.research_team"`,
		`data-i18n-title="content_en.research_team"`,
		`data-i18n-aria="buttons.search"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, `alt="Research team"`) {
		t.Error("original alt attribute must be preserved")
	}
}

// alt is only annotated on img elements.
func TestAnnotate_AltRestrictedToImg(t *testing.T) {
	rw := NewRewriter(testIndex)

	out, count, err := rw.Annotate(`<html><body><div alt="Research team">x</div></body></html>`)
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if count != 0 || strings.Contains(out, "data-i18n-alt") {
		t.Errorf("alt on non-img annotated: count=%d\n%s", count, out)
	}
}

// Mixed text-and-element content is skipped: only an element whose sole
// child is its text gets a content reference.
func TestAnnotate_MixedContentSkipped(t *testing.T) {
	rw := NewRewriter(testIndex)

	out, count, err := rw.Annotate(`<html><body><p>Submit <span>검색</span></p></body></html>`)
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	// only the span, whose whole text is 검색
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if !strings.Contains(out, `<span data-i18n="buttons.search">검색</span>`) {
		t.Errorf("span not annotated:\n%s", out)
	}
}

func TestAnnotate_SkipsScriptAndStyle(t *testing.T) {
	rw := NewRewriter(map[string]string{"var x = 1;": "content_en.leak"})

	out, count, err := rw.Annotate(`<html><body><script>var x = 1;</script></body></html>`)
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if count != 0 || strings.Contains(out, "data-i18n") {
		t.Errorf("script content annotated: count=%d\n%s", count, out)
	}
}

// Annotation looks text up through the same normalization as extraction,
// so ragged whitespace and entities still match.
func TestAnnotate_NormalizedMatching(t *testing.T) {
	rw := NewRewriter(map[string]string{"Research & Development": "navigation.research_development"})

	out, count, err := rw.Annotate("<html><body><a>  Research &amp;\n Development </a></body></html>")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if count != 1 || !strings.Contains(out, `data-i18n="navigation.research_development"`) {
		t.Errorf("normalized lookup failed: count=%d\n%s", count, out)
	}
}

// Scenario: a second run over already-annotated output reports zero
// additional replacements and leaves the document unchanged.
func TestAnnotate_Idempotent(t *testing.T) {
	rw := NewRewriter(testIndex)

	in := `<html><body><button>검색</button><input placeholder="Enter your name"></body></html>`
	first, count1, err := rw.Annotate(in)
	if err != nil {
		t.Fatalf("first Annotate failed: %v", err)
	}
	if count1 != 2 {
		t.Fatalf("first count = %d, want 2", count1)
	}

	second, count2, err := rw.Annotate(first)
	if err != nil {
		t.Fatalf("second Annotate failed: %v", err)
	}
	if count2 != 0 {
		t.Errorf("second count = %d, want 0", count2)
	}
	if second != first {
		t.Errorf("second run changed the document:\n%s\nvs\n%s", first, second)
	}
}

func TestRewriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	original := `<html><body><button>검색</button></body></html>`
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	rw := NewRewriter(testIndex)
	res, err := rw.RewriteFile(path, ".backup", false)
	if err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}
	if res.Replacements != 1 || !res.Changed {
		t.Fatalf("result = %+v", res)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(written), `data-i18n="buttons.search"`) {
		t.Errorf("annotation not written:\n%s", written)
	}

	backupData, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("backup not created: %v", err)
	}
	if string(backupData) != original {
		t.Errorf("backup = %q, want the pre-rewrite original", backupData)
	}
}

func TestRewriteFile_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	original := `<html><body><button>검색</button></body></html>`
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	rw := NewRewriter(testIndex)
	res, err := rw.RewriteFile(path, ".backup", true)
	if err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}
	if res.Replacements != 1 || res.Changed {
		t.Fatalf("result = %+v", res)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Error("dry run modified the document")
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Error("dry run created a backup")
	}
}

// A document with no catalog matches is left byte-identical: no parse
// round trip, no backup.
func TestRewriteFile_NoMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	original := "<html><body><p>nothing cataloged</p></body></html>\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	rw := NewRewriter(testIndex)
	res, err := rw.RewriteFile(path, ".backup", false)
	if err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}
	if res.Replacements != 0 || res.Changed {
		t.Fatalf("result = %+v", res)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Error("untouched document was rewritten")
	}
}
