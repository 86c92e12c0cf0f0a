// Package mediapath maps media file paths to URLs and back.
//
// Media files are stored relative to the upload base, e.g. "2024/05/photo.jpg".
// The canonical URL is base + "/" + file; size variants live next to the
// original and share its directory.
package mediapath

import (
	"net/url"
	"path"
	"strings"
)

// URL returns the canonical URL of a file under base.
func URL(base, file string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(file, "/")
}

// VariantFile returns the relative path of a variant stored next to file.
func VariantFile(file, variantFile string) string {
	dir := path.Dir(strings.TrimLeft(file, "/"))
	if dir == "." || dir == "/" {
		return variantFile
	}
	return dir + "/" + variantFile
}

// Relative returns the path of rawURL relative to base.
// The scheme is ignored and any query string or fragment is dropped.
// Returns false if rawURL does not lie under base.
func Relative(base, rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}
	b, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || b.Host == "" {
		return "", false
	}
	if !strings.EqualFold(u.Host, b.Host) {
		return "", false
	}
	prefix := strings.TrimRight(b.Path, "/") + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(u.Path, prefix)
	if rel == "" {
		return "", false
	}
	return rel, true
}
