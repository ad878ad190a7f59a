package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Document is a loaded file ready for ingestion
type Document struct {
	Path     string
	Text     string
	Metadata map[string]any
}

// supportedExtensions maps file extensions to their content kind
var supportedExtensions = map[string]string{
	".txt":      "text",
	".md":       "markdown",
	".markdown": "markdown",
	".html":     "html",
	".htm":      "html",
}

// Supported reports whether a file can be loaded based on its extension
func Supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads a file and returns its plain text content. HTML files have
// their visible text extracted, everything else passes through as-is.
func Load(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := supportedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	text := string(data)
	if kind == "html" {
		text, err = ExtractText(text)
		if err != nil {
			return nil, fmt.Errorf("parse HTML: %w", err)
		}
	}

	return &Document{
		Path: path,
		Text: text,
		Metadata: map[string]any{
			"source": filepath.Base(path),
			"path":   path,
			"type":   kind,
		},
	}, nil
}

// ExtractText extracts visible text from HTML, skipping scripts/styles
func ExtractText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

// Discover walks a directory and returns the paths of all loadable files
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if !Supported(root) {
			return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(root))
		}
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return paths, nil
}
