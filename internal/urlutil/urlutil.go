package urlutil

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// profileLinkKeywords are the substrings a listing card's link must contain
// to be treated as a faculty profile.
var profileLinkKeywords = []string{
	"faculty",
	"node",
	"professor",
	"distinguished",
	"adjunct",
}

var staticExtensions = map[string]struct{}{
	".css":   {},
	".doc":   {},
	".docx":  {},
	".gif":   {},
	".ico":   {},
	".jpeg":  {},
	".jpg":   {},
	".js":    {},
	".mp3":   {},
	".mp4":   {},
	".pdf":   {},
	".png":   {},
	".svg":   {},
	".ttf":   {},
	".woff":  {},
	".woff2": {},
	".zip":   {},
}

// Normalize canonicalises a URL for comparisons: default scheme, lower-case
// host without "www.", cleaned path, sorted query without tracking params and
// no fragment. It returns the normalized URL and its host.
func Normalize(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	u.Fragment = ""
	u.Host = normalizeHost(u.Host)
	u.Path = normalizePath(u.Path)
	u.RawQuery = normalizeQuery(u.RawQuery)
	return u.String(), u.Hostname(), nil
}

// Key is the string two URLs share when they point at the same page.
func Key(raw string) string {
	normalized, _, err := Normalize(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return normalized
}

// Resolve makes href absolute against the page it was found on, the way a
// browser reports an anchor's href property. mailto: and tel: links resolve
// to "".
func Resolve(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base, err := url.Parse(pageURL); err == nil && pageURL != "" {
		u = base.ResolveReference(u)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u.String()
}

// IsProfileLink reports whether link looks like a faculty profile page.
func IsProfileLink(link string) bool {
	if link == "" || !IsCrawlable(link) {
		return false
	}
	for _, k := range profileLinkKeywords {
		if strings.Contains(link, k) {
			return true
		}
	}
	return false
}

func IsCrawlable(raw string) bool {
	normalized, host, err := Normalize(raw)
	if err != nil || host == "" {
		return false
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	return !isStaticAssetPath(u.Path)
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	clean := path.Clean(p)
	if clean == "." {
		return "/"
	}
	if clean != "/" && strings.HasSuffix(clean, "/") {
		clean = strings.TrimSuffix(clean, "/")
	}
	return clean
}

func normalizeQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	for key := range values {
		lk := strings.ToLower(key)
		if strings.HasPrefix(lk, "utm_") || lk == "gclid" || lk == "fbclid" {
			delete(values, key)
		}
	}
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	normalized := url.Values{}
	for _, k := range keys {
		normalized[k] = values[k]
	}
	return normalized.Encode()
}

func isStaticAssetPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return false
	}
	_, ok := staticExtensions[ext]
	return ok
}
