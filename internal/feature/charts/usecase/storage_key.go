package usecase

import (
	"net/url"
	"strings"
)

// StorageKey returns the file-host key of an image URL: its unescaped last path segment,
// or "" when the URL ends in a slash. Query strings and fragments are ignored.
func StorageKey(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		p = u.EscapedPath()
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	seg := p[strings.LastIndex(p, "/")+1:]
	if key, err := url.PathUnescape(seg); err == nil {
		seg = key
	}
	return seg
}
