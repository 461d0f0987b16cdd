package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform is a job board whose saved pages need their own selectors.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

// DetectPlatform identifies the job board from a posting URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case strings.Contains(host, "linkedin.com"):
		return PlatformLinkedIn
	}
	return PlatformUnknown
}

// contentSelectors lists where the description lives, most specific first.
func contentSelectors(p Platform) []string {
	generic := []string{
		".job-description",
		"#job-description",
		".job-details",
		".posting-content",
		"[data-testid='job-description']",
		"main",
		"article",
		"#content",
	}
	switch p {
	case PlatformGreenhouse:
		return append([]string{".job__description.body", ".job__description", ".job-post-container"}, generic...)
	case PlatformLever:
		return append([]string{".posting-page", ".posting-description"}, generic...)
	case PlatformWorkday:
		return append([]string{"[data-automation-id='jobDescription']"}, generic...)
	case PlatformLinkedIn:
		return append([]string{".show-more-less-html__markup", ".description__text"}, generic...)
	}
	return generic
}

var noiseSelectors = []string{
	"nav", "footer", "header", "script", "style", "noscript", "form",
	".apply-button-container", ".application-form", "#application-form",
	".eeo-statement", ".voluntary-disclosure", ".voluntary-self-id",
	".social-share", ".share-buttons", ".cookie-banner", ".cookie-consent",
}

// blockElements end a line when converted to text.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, br, tr, section"

// ExtractText returns the job description text of an HTML page. The
// platform is read from the page's canonical URL when present; without a
// known container the whole body is used.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	platform := DetectPlatform(canonicalURL(doc))
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	var content *goquery.Selection
	for _, selector := range contentSelectors(platform) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	content.Find("li").Each(func(_ int, li *goquery.Selection) {
		li.PrependHtml("- ")
	})
	content.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(content.Text()), nil
}

func canonicalURL(doc *goquery.Document) string {
	if href, ok := doc.Find("link[rel='canonical']").Attr("href"); ok {
		return href
	}
	if content, ok := doc.Find("meta[property='og:url']").Attr("content"); ok {
		return content
	}
	return ""
}

// LooksLikeHTML reports whether s is probably markup rather than plain text.
func LooksLikeHTML(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body") || strings.Contains(head, "<div") || strings.Contains(head, "<p>")
}
