package browser

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
)

var errBlankTitle = errors.New("page loaded with empty title")

// Navigate loads url in the primary view, retrying up to maxRetries extra
// times with a fixed delay. Each attempt waits for network quiescence, a
// settle delay, and a non-empty title as a cheap liveness probe. It never
// returns an error: exhaustion and a closed session both report false.
func (s *Session) Navigate(ctx context.Context, url string, maxRetries int) bool {
	if s.closed {
		return false
	}

	attempt := func(ctx context.Context) error {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		if _, err := s.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(float64(defaultNavTimeout.Milliseconds())),
		}); err != nil {
			return err
		}

		sleepCtx(ctx, s.cfg.SettleDelay)

		title, err := s.page.Title()
		if err != nil {
			return err
		}

		if title == "" {
			return errBlankTitle
		}

		return nil
	}

	return retryNavigation(ctx, attempt, maxRetries, s.cfg.RetryDelay)
}

// retryNavigation runs attempt up to maxRetries+1 times with a fixed delay
// between tries. The loop stops early when the context ends.
func retryNavigation(ctx context.Context, attempt func(context.Context) error, maxRetries int, delay time.Duration) bool {
	if maxRetries < 0 {
		maxRetries = 0
	}

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			sleepCtx(ctx, delay)
		}

		if ctx.Err() != nil {
			return false
		}

		if err := attempt(ctx); err == nil {
			return true
		}
	}

	return false
}
