package filesystem

import (
	"path/filepath"
	"strings"

	"github.com/spotkit/spotkit/internal/core/domain"
)

// symbolByExt maps common file extensions to symbolic icon names.
// Unknown extensions fall back to "doc".
var symbolByExt = map[string]string{
	".md":   "text",
	".txt":  "text",
	".go":   "code",
	".py":   "code",
	".rs":   "code",
	".js":   "code",
	".ts":   "code",
	".json": "data",
	".yaml": "data",
	".yml":  "data",
	".toml": "data",
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".gif":  "image",
	".svg":  "image",
	".pdf":  "book",
}

// FileItem is a file on disk presented as a searchable item. Identity
// is the absolute path; the subtitle is the directory relative to the
// source root.
type FileItem struct {
	path string
	rel  string
}

// Ensure FileItem implements Item.
var _ domain.Item = FileItem{}

func newFileItem(root, path string) FileItem {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return FileItem{path: path, rel: rel}
}

// ID returns the absolute file path.
func (f FileItem) ID() string { return f.path }

// Title returns the file name.
func (f FileItem) Title() string { return filepath.Base(f.path) }

// Subtitle returns the containing directory relative to the root, or
// empty for files directly under the root.
func (f FileItem) Subtitle() string {
	dir := filepath.Dir(f.rel)
	if dir == "." {
		return ""
	}
	return dir
}

// Icon returns a symbolic icon derived from the file extension.
func (f FileItem) Icon() domain.Icon {
	ext := strings.ToLower(filepath.Ext(f.path))
	if sym, ok := symbolByExt[ext]; ok {
		return domain.Icon{Symbol: sym}
	}
	return domain.Icon{Symbol: "doc"}
}

// Path returns the absolute file path.
func (f FileItem) Path() string { return f.path }
