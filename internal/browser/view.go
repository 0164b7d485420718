package browser

import (
	"strings"

	"github.com/playwright-community/playwright-go"
)

// DetailView is one job's detail tab. Each processing task owns exactly one
// view for its own lifetime and must close it before returning.
type DetailView struct {
	page playwright.Page
}

// URL returns the view's current address
func (v *DetailView) URL() string {
	return v.page.URL()
}

// ExtractFirst runs the ordered selector fallback against this view
func (v *DetailView) ExtractFirst(sels []string) string {
	return extractFirst(v.page, sels)
}

// AnyVisible reports whether any of the candidate selectors is visible
func (v *DetailView) AnyVisible(sels []string) bool {
	for _, sel := range sels {
		visible, err := v.page.Locator(sel).First().IsVisible()
		if err == nil && visible {
			return true
		}
	}

	return false
}

// ClickFirst clicks the first visible candidate and reports whether one was found
func (v *DetailView) ClickFirst(sels []string) bool {
	for _, sel := range sels {
		loc := v.page.Locator(sel).First()

		visible, err := loc.IsVisible()
		if err != nil || !visible {
			continue
		}

		if err := loc.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(probeTimeoutMs),
		}); err != nil {
			continue
		}

		return true
	}

	return false
}

// MatchesURL reports whether the view's address contains any of the hints
func (v *DetailView) MatchesURL(hints []string) bool {
	current := strings.ToLower(v.page.URL())

	for _, hint := range hints {
		if hint != "" && strings.Contains(current, strings.ToLower(hint)) {
			return true
		}
	}

	return false
}

// Close closes the underlying tab
func (v *DetailView) Close() error {
	return v.page.Close()
}
