package content

import (
	"path"
	"strings"

	"github.com/goliatone/go-folio/internal/i18n"
)

// Extensions lists the accepted content file extensions in lookup order.
var Extensions = []string{".mdx", ".md"}

// CandidatePaths returns the file names tried for slug in lang, most specific
// first: slug.<lang>.mdx, slug.<lang>.md, slug.mdx, slug.md. The default locale
// only has the unsuffixed pair.
func CandidatePaths(slug, lang string, languages *i18n.Set) []string {
	candidates := make([]string, 0, 2*len(Extensions))
	if lang != "" && !languages.IsDefault(lang) {
		for _, ext := range Extensions {
			candidates = append(candidates, slug+"."+lang+ext)
		}
	}
	for _, ext := range Extensions {
		candidates = append(candidates, slug+ext)
	}
	return candidates
}

// SplitName strips the extension and a supported locale suffix from a file
// name. ok is false for files that are not markdown.
func SplitName(name string, languages *i18n.Set) (slug, lang string, ok bool) {
	ext := path.Ext(name)
	if !isContentExt(ext) {
		return "", "", false
	}
	base := strings.TrimSuffix(name, ext)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		if suffix := base[idx+1:]; languages.Supported(suffix) {
			return base[:idx], suffix, true
		}
	}
	return base, languages.Default(), true
}

// FileName builds the on-disk name for a slug in lang.
func FileName(slug, lang, ext string, languages *i18n.Set) string {
	if lang == "" || languages.IsDefault(lang) {
		return slug + ext
	}
	return slug + "." + lang + ext
}

func isContentExt(ext string) bool {
	for _, candidate := range Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
