package models

import "strings"

const maxSlugLen = 50

// Slugify converts a post title into a URL path segment: lower-cased,
// restricted to [a-z0-9-], runs of any other characters collapsed to a
// single hyphen, trimmed and truncated to 50 characters. Deterministic,
// no side effects.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasHyphen = false
		default:
			if !lastWasHyphen {
				b.WriteRune('-')
				lastWasHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "post"
	}
	return slug
}
