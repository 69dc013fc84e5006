package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// BinaryInputs is everything linked into bin/do. `do ask` pulls in the app,
// the assistant and the embedded articles, so cmd/do alone is not enough.
var BinaryInputs = []string{"cmd/do", "internal", "content", "embed.go", "go.mod"}

var binaryExts = []string{".go", ".templ", ".md", ".sql", ".mod"}

// Stale reports whether output is missing or older than any source under
// roots with one of exts. Test files never count.
func Stale(output string, roots []string, exts ...string) bool {
	info, err := os.Stat(output)
	if err != nil {
		return true
	}
	if len(exts) == 0 {
		exts = binaryExts
	}

	outMod := info.ModTime()
	changed := false
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, "_test.go") || !slices.Contains(exts, filepath.Ext(path)) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().After(outMod) {
				changed = true
				return filepath.SkipAll
			}
			return nil
		})
		if changed {
			return true
		}
	}
	return false
}
