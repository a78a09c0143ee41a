package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	writeFile(t, path, "original")

	if err := Create(path, DefaultSuffix); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := readFile(t, path+DefaultSuffix); got != "original" {
		t.Errorf("backup = %q", got)
	}
}

// A second run over an already-mutated document must not clobber the
// backup of the true original.
func TestCreate_KeepsExistingBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	writeFile(t, path, "annotated")
	writeFile(t, path+DefaultSuffix, "original")

	if err := Create(path, DefaultSuffix); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := readFile(t, path+DefaultSuffix); got != "original" {
		t.Errorf("existing backup overwritten: %q", got)
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pages")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	a := filepath.Join(dir, "a.html")
	b := filepath.Join(sub, "b.html")
	writeFile(t, a, "mutated a")
	writeFile(t, a+DefaultSuffix, "original a")
	writeFile(t, b, "mutated b")
	writeFile(t, b+DefaultSuffix, "original b")
	writeFile(t, filepath.Join(dir, "plain.html"), "never touched")

	restored, err := Restore(dir, DefaultSuffix, false)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored != 2 {
		t.Errorf("restored = %d, want 2", restored)
	}
	if got := readFile(t, a); got != "original a" {
		t.Errorf("a.html = %q", got)
	}
	if got := readFile(t, b); got != "original b" {
		t.Errorf("b.html = %q", got)
	}
	if _, err := os.Stat(a + DefaultSuffix); !os.IsNotExist(err) {
		t.Error("backup not removed after restore")
	}
}

func TestRestore_Keep(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	writeFile(t, path, "mutated")
	writeFile(t, path+DefaultSuffix, "original")

	restored, err := Restore(dir, DefaultSuffix, true)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored != 1 {
		t.Errorf("restored = %d", restored)
	}
	if got := readFile(t, path); got != "original" {
		t.Errorf("restored content = %q", got)
	}
	if got := readFile(t, path+DefaultSuffix); got != "original" {
		t.Errorf("backup removed despite keep: %q", got)
	}
}

func TestRestore_NothingToDo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "content")

	restored, err := Restore(dir, DefaultSuffix, false)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored != 0 {
		t.Errorf("restored = %d, want 0", restored)
	}
}
