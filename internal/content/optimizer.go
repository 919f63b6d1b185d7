// Package content implements the blog content pipeline: HTML cleanup,
// excerpt and read-time derivation, slug generation, and image URL
// validation.
package content

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	htmlCommentRe = regexp.MustCompile(`<!--[\s\S]*?-->`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	nonSlugRe     = regexp.MustCompile(`[^\w\s-]`)
)

const wordsPerMinute = 200

// OptimizeHTML strips HTML comments and collapses runs of whitespace.
func OptimizeHTML(html string) string {
	if html == "" {
		return ""
	}
	html = htmlCommentRe.ReplaceAllString(html, "")
	html = multiSpaceRe.ReplaceAllString(html, " ")
	return strings.TrimSpace(html)
}

// Excerpt produces a plain-text preview of at most maxLen characters,
// breaking at a word boundary when possible.
func Excerpt(html string, maxLen int) string {
	if html == "" {
		return ""
	}
	if maxLen <= 0 {
		maxLen = 150
	}

	text := htmlTagRe.ReplaceAllString(html, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	if idx := strings.LastIndex(truncated, " "); idx > 0 {
		truncated = truncated[:idx]
	}
	return truncated + "..."
}

// ReadTime estimates reading minutes at 200 words per minute, rounded up.
func ReadTime(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// Slugify derives a URL slug from a title. When unique is true a
// timestamp suffix is appended so re-slugging an existing post cannot
// collide with its old slug.
func Slugify(title string, unique bool) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugRe.ReplaceAllString(slug, "")
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if unique {
		slug += "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return slug
}
