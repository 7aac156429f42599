package site

import (
	"regexp"
	"strings"
)

/*
	Site / slug helpers
	-------------------
	- Responsible ONLY for:
	  • generating page and site slugs
	  • building public URLs
	  • mapping a public slug back to its owner
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe slug.
// Example: "News & Events" -> "news-events"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	return base
}

// SiteSlug builds the public slug of an owner's site.
// Example: ("Green Valley School", "32") -> "green-valley-school-32"
func SiteSlug(websiteName, owner string) string {
	base := MakeSlug(websiteName)
	if base == "" {
		base = "school"
	}
	return base + "-" + owner
}

// OwnerFromSlug extracts the owner suffix written by SiteSlug.
func OwnerFromSlug(slug string) (string, bool) {
	i := strings.LastIndex(slug, "-")
	if i < 0 || i == len(slug)-1 {
		return "", false
	}
	return slug[i+1:], true
}

// BuildPublicURL builds the public site URL from a slug.
// Example: "green-valley-school-32" -> "https://green-valley-school-32.example.com"
func BuildPublicURL(slug, baseDomain string) string {
	if baseDomain == "" {
		baseDomain = "localhost"
	}
	return "https://" + slug + "." + baseDomain
}
