package ingest

import (
	"net/url"
	"path/filepath"
	"strings"
)

// titleFromURL derives a readable title from a URL: the path segments
// joined with dashes, or the domain when the path is empty.
func titleFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		title := strings.ReplaceAll(path, "/", " - ")
		title = strings.ReplaceAll(title, "-", " ")
		return titleCase(title)
	}

	domain := strings.TrimPrefix(parsed.Host, "www.")
	return titleCase(strings.ReplaceAll(domain, ".", " "))
}

// titleFromPath derives a title from a file path: the file stem.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
