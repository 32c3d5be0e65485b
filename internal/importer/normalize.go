package importer

import "strings"

// norm trims surrounding whitespace.
func norm(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeWebsite reduces a website value to its dedup form: trimmed,
// lowercased, scheme prefix removed, leading/trailing slashes stripped.
// "https://Example.com/" and "example.com" normalize to the same key.
func NormalizeWebsite(s string) string {
	s = strings.ToLower(norm(s))
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	return strings.Trim(strings.TrimSpace(s), "/")
}
