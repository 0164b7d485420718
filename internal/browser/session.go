// Package browser wraps the Playwright session that drives the job board.
// It owns the shared browsing context, the login flow, and the per-card
// detail views the apply pipeline opens and closes.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/time/rate"

	"github.com/sadewadee/job-applier/internal/selectors"
)

const (
	defaultNavTimeout  = 30 * time.Second
	defaultSettleDelay = 2 * time.Second
	defaultRetryDelay  = 3 * time.Second
	newTabTimeout      = 15 * time.Second
	resultsPerPage     = 25
)

var (
	ErrSessionClosed = errors.New("browsing session is closed")
	ErrLoginFailed   = errors.New("login failed")
)

// Config controls session behaviour
type Config struct {
	BaseURL     string
	Email       string
	Password    string
	Headful     bool
	Selectors   selectors.Set
	SettleDelay time.Duration
	RetryDelay  time.Duration
	// NavLimiter paces page loads across all concurrent views so the board
	// does not see a burst of simultaneous requests.
	NavLimiter *rate.Limiter
}

// Session is the shared browsing environment. It owns zero or more views and
// holds the authentication state established by Login.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page

	cfg     Config
	sel     selectors.Set
	limiter *rate.Limiter
	closed  bool
}

// NewSession launches a browser and opens the primary search view
func NewSession(cfg Config) (*Session, error) {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = defaultSettleDelay
	}

	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	if cfg.NavLimiter == nil {
		cfg.NavLimiter = rate.NewLimiter(rate.Every(time.Second), 2)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!cfg.Headful),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		_ = pw.Stop()

		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1366, Height: 868},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()

		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()

		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{
		pw:      pw,
		browser: browser,
		bctx:    bctx,
		page:    page,
		cfg:     cfg,
		sel:     cfg.Selectors,
		limiter: cfg.NavLimiter,
	}, nil
}

// Login drives the credential form on the board's login page
func (s *Session) Login(ctx context.Context) error {
	loginURL := s.cfg.BaseURL + "/login"

	if ok := s.Navigate(ctx, loginURL, 2); !ok {
		return fmt.Errorf("%w: could not load %s", ErrLoginFailed, loginURL)
	}

	if err := s.page.Fill(s.sel.LoginEmail, s.cfg.Email); err != nil {
		return fmt.Errorf("%w: email field: %v", ErrLoginFailed, err)
	}

	if err := s.page.Fill(s.sel.LoginPassword, s.cfg.Password); err != nil {
		return fmt.Errorf("%w: password field: %v", ErrLoginFailed, err)
	}

	if err := s.page.Click(s.sel.LoginSubmit); err != nil {
		return fmt.Errorf("%w: submit: %v", ErrLoginFailed, err)
	}

	sleepCtx(ctx, s.cfg.SettleDelay)

	title, err := s.page.Title()
	if err != nil || title == "" {
		return fmt.Errorf("%w: page did not settle after submit", ErrLoginFailed)
	}

	log.Printf("logged in, landed on %q", title)

	return nil
}

// SearchURL builds the paginated query URL for a search term.
// Page numbers start at 1.
func (s *Session) SearchURL(term string, pageNum int) string {
	q := url.Values{}
	q.Set("keywords", term)

	if pageNum > 1 {
		q.Set("start", strconv.Itoa((pageNum-1)*resultsPerPage))
	}

	return s.cfg.BaseURL + "/jobs/search/?" + q.Encode()
}

// AwaitCards waits for at least one job-card marker on the results page.
// Absence means "no more results", not an error.
func (s *Session) AwaitCards(ctx context.Context) bool {
	if s.closed {
		return false
	}

	err := s.page.Locator(s.sel.CardMarker).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(defaultNavTimeout.Milliseconds() / 3)),
	})

	return err == nil
}

// OpenViews returns the number of views the session currently owns.
// Zero means the browsing context was externally closed.
func (s *Session) OpenViews() int {
	if s.closed {
		return 0
	}

	return len(s.bctx.Pages())
}

// Close tears down every view and the browser
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	var errs []error

	if err := s.bctx.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := s.pw.Stop(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// sleepCtx sleeps for d unless the context ends first
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
