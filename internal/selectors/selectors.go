// Package selectors holds the CSS selector sets used to drive the job board.
// The board markup drifts between jobs and pages, so every lookup carries an
// ordered list of candidates tried until one yields usable content.
package selectors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Set groups every selector list the pipeline needs
type Set struct {
	// Search results page
	CardMarker string `yaml:"card_marker"`
	CardLink   string `yaml:"card_link"`

	// Detail view extraction, tried in order
	Title       []string `yaml:"title"`
	Company     []string `yaml:"company"`
	Description []string `yaml:"description"`

	// Application flow probes, tried in order
	AlreadyApplied []string `yaml:"already_applied"`
	ApplyTrigger   []string `yaml:"apply_trigger"`
	NextControl    []string `yaml:"next_control"`
	SubmitControl  []string `yaml:"submit_control"`
	Confirmation   []string `yaml:"confirmation"`

	// URL substrings that also count as application confirmation
	ConfirmationURLHints []string `yaml:"confirmation_url_hints"`

	// Login form
	LoginEmail    string `yaml:"login_email"`
	LoginPassword string `yaml:"login_password"`
	LoginSubmit   string `yaml:"login_submit"`
}

// Default returns the built-in selector set
func Default() Set {
	return Set{
		CardMarker: "li[data-occludable-job-id], div.job-card-container, article.job-card",
		CardLink:   "a.job-card-list__title, a.job-card-container__link, a[href*='/jobs/view/']",

		Title: []string{
			"h1.job-title",
			"h1.jobs-unified-top-card__job-title",
			"h1[data-test='job-title']",
			".job-details-jobs-unified-top-card__job-title",
			"h1",
		},
		Company: []string{
			".jobs-unified-top-card__company-name a",
			".job-details-jobs-unified-top-card__company-name",
			"a[data-test='job-company']",
			".company-name",
		},
		Description: []string{
			"#job-details",
			".jobs-description__content",
			"div[data-test='job-description']",
			".jobs-box__html-content",
			"article.description",
		},

		AlreadyApplied: []string{
			".artdeco-inline-feedback--success",
			"span.jobs-s-apply__applied-date",
			"[data-test='applied-banner']",
		},
		ApplyTrigger: []string{
			"button.jobs-apply-button",
			"button[data-test='apply-button']",
			"button[aria-label*='Easy Apply']",
			"button[aria-label*='Apply']",
		},
		NextControl: []string{
			"button[aria-label='Continue to next step']",
			"button[data-test='next-button']",
			"button[aria-label*='Next']",
		},
		SubmitControl: []string{
			"button[aria-label='Submit application']",
			"button[data-test='submit-button']",
			"button[type='submit']",
		},
		Confirmation: []string{
			".artdeco-modal__confirm-dialog",
			"h2.jpac-modal-header",
			"[data-test='application-sent']",
			".jobs-post-apply__content",
		},
		ConfirmationURLHints: []string{
			"post-apply",
			"application-submitted",
		},

		LoginEmail:    "input#username, input[name='session_key']",
		LoginPassword: "input#password, input[name='session_password']",
		LoginSubmit:   "button[type='submit']",
	}
}

// Load reads a selector set from a YAML file, filling omitted fields from the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (Set, error) {
	set := Default()

	if path == "" {
		return set, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("failed to read selectors file: %w", err)
	}

	if err := yaml.Unmarshal(b, &set); err != nil {
		return set, fmt.Errorf("failed to parse selectors file: %w", err)
	}

	return set, nil
}
