package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("Plain text content."), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if doc.Text != "Plain text content." {
		t.Errorf("Unexpected text: %q", doc.Text)
	}
	if doc.Metadata["source"] != "notes.txt" {
		t.Errorf("Expected source metadata, got %v", doc.Metadata["source"])
	}
	if doc.Metadata["type"] != "text" {
		t.Errorf("Expected type 'text', got %v", doc.Metadata["type"])
	}
}

func TestLoad_HTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	content := `<html><head><style>body { color: red; }</style></head>
<body><script>alert("hi")</script><p>Visible paragraph.</p><p>Second one.</p></body></html>`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !strings.Contains(doc.Text, "Visible paragraph.") {
		t.Errorf("Expected visible text, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "alert") || strings.Contains(doc.Text, "color: red") {
		t.Errorf("Expected scripts and styles to be stripped, got %q", doc.Text)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("document.pdf")
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestExtractText_NestedElements(t *testing.T) {
	text, err := ExtractText(`<div><h1>Title</h1><ul><li>One</li><li>Two</li></ul></div>`)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	for _, want := range []string{"Title", "One", "Two"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in extracted text, got %q", want, text)
		}
	}
}

func TestDiscover_Directory(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"a.txt":          "alpha",
		"b.md":           "bravo",
		"c.html":         "<p>charlie</p>",
		"ignored.pdf":    "binary",
		"sub/nested.txt": "delta",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(paths) != 4 {
		t.Errorf("Expected 4 loadable files, got %d: %v", len(paths), paths)
	}
	for _, p := range paths {
		if strings.HasSuffix(p, ".pdf") {
			t.Errorf("Expected unsupported files to be skipped, got %s", p)
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.md")
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	paths, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Errorf("Expected single path, got %v", paths)
	}
}

func TestDiscover_SkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".git")
	if err := os.MkdirAll(hidden, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hidden, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "kept.txt"), []byte("y"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "kept.txt" {
		t.Errorf("Expected only kept.txt, got %v", paths)
	}
}
