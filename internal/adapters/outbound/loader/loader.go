// Package loader reads a generated-site directory into a FileSet and
// writes repaired sets back out.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
)

// siteExtensions are the file types one generation produces.
var siteExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".css":  true,
	".js":   true,
}

// DirLoader implements domain.SiteLoader over a flat site directory.
type DirLoader struct{}

func New() *DirLoader { return &DirLoader{} }

// Load reads every site file directly under sitePath. Subdirectories are
// skipped: a generation is a flat set of pages plus assets.
func (l *DirLoader) Load(sitePath string) (domain.FileSet, error) {
	entries, err := os.ReadDir(sitePath)
	if err != nil {
		return nil, fmt.Errorf("reading site directory: %w", err)
	}

	files := domain.FileSet{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !siteExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(sitePath, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		files[name] = string(data)
	}

	return files, nil
}

// Write stores a file set under sitePath, creating the directory if needed.
func (l *DirLoader) Write(sitePath string, files domain.FileSet) error {
	if err := os.MkdirAll(sitePath, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(sitePath, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
