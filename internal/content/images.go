package content

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	imgSrcRe  = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["'][^>]*>`)
	bgImageRe = regexp.MustCompile(`(?i)background-image:\s*url\(['"]?([^'")]+)['"]?\)`)
)

const (
	// maxImageChecks bounds per-post validation work so oversized posts
	// cannot be used to trigger outbound request floods.
	maxImageChecks = 20

	placeholderImage = `<img src="/images/placeholder.jpg" alt="Image not available" class="placeholder-image">`
	placeholderStyle = "background-color: #f0f0f0"
)

// ExtractImageURLs collects image URLs referenced by img tags and inline
// background-image styles.
func ExtractImageURLs(html string) []string {
	if html == "" {
		return nil
	}
	var urls []string
	for _, m := range imgSrcRe.FindAllStringSubmatch(html, -1) {
		urls = append(urls, m[1])
	}
	for _, m := range bgImageRe.FindAllStringSubmatch(html, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// ImageValidator checks that referenced images actually resolve to image
// content. Validation is advisory: a network failure marks the URL
// invalid rather than failing the post.
type ImageValidator struct {
	client *http.Client
	log    zerolog.Logger
}

// NewImageValidator builds a validator with a bounded request timeout.
func NewImageValidator(log zerolog.Logger) *ImageValidator {
	return &ImageValidator{
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

// ValidateURL reports whether the URL plausibly serves an image. Data
// URLs carry their payload inline and are always accepted; anything that
// is not http(s) is rejected without a network call.
func (v *ImageValidator) ValidateURL(ctx context.Context, raw string) bool {
	if strings.HasPrefix(raw, "data:image/") {
		return true
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	if _, err := url.Parse(raw); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return false
	}
	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Warn().Err(err).Str("url", raw).Msg("image validation failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false
	}
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "image/")
}

// SanitizeContent validates up to maxImageChecks referenced images and
// replaces the unreachable ones with placeholders. The cleaned HTML is
// returned together with the number of replaced references.
func (v *ImageValidator) SanitizeContent(ctx context.Context, html string) (string, int) {
	urls := ExtractImageURLs(html)
	if len(urls) > maxImageChecks {
		urls = urls[:maxImageChecks]
	}

	replaced := 0
	for _, u := range urls {
		if v.ValidateURL(ctx, u) {
			continue
		}
		html = replaceImage(html, u)
		replaced++
	}
	return html, replaced
}

func replaceImage(html, rawURL string) string {
	escaped := regexp.QuoteMeta(rawURL)
	imgRe := regexp.MustCompile(`(?i)<img[^>]+src=["']` + escaped + `["'][^>]*>`)
	html = imgRe.ReplaceAllString(html, placeholderImage)

	bgRe := regexp.MustCompile(`(?i)background-image:\s*url\(['"]?` + escaped + `['"]?\)`)
	return bgRe.ReplaceAllString(html, placeholderStyle)
}
