package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

const (
	// UnknownText is the sentinel for content no selector could produce
	UnknownText = "unknown"

	// minTextLength separates real content from empty containers
	minTextLength = 3

	probeTimeoutMs = 2000.0
)

// extractFirst tries each selector in priority order and returns the first
// qualifying text. Rendered text content is preferred, computed inner text is
// the fallback when it is blank. When no selector qualifies the rendered HTML
// is parsed once more with goquery before giving up with the sentinel.
func extractFirst(pg playwright.Page, sels []string) string {
	for _, sel := range sels {
		loc := pg.Locator(sel)

		count, err := loc.Count()
		if err != nil || count == 0 {
			continue
		}

		first := loc.First()

		text, err := first.TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(probeTimeoutMs),
		})
		if err != nil || strings.TrimSpace(text) == "" {
			text, err = first.InnerText(playwright.LocatorInnerTextOptions{
				Timeout: playwright.Float(probeTimeoutMs),
			})
			if err != nil {
				continue
			}
		}

		if trimmed := normalizeSpace(text); len(trimmed) > minTextLength {
			return trimmed
		}
	}

	if html, err := pg.Content(); err == nil {
		if text := extractFromHTML(html, sels); text != "" {
			return text
		}
	}

	return UnknownText
}

// extractFromHTML applies the same ordered selector list to a static HTML
// snapshot. Used as the last resort when live locators come up empty.
func extractFromHTML(html string, sels []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, sel := range sels {
		text := normalizeSpace(doc.Find(sel).First().Text())
		if len(text) > minTextLength {
			return text
		}
	}

	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
