package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// CardHandle is an opaque reference to one job card on the results page.
// It is only valid while that page is live.
type CardHandle struct {
	sess *Session
	loc  playwright.Locator
}

// Cards collects handles for every job card on the current results page
func (s *Session) Cards(_ context.Context) ([]*CardHandle, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	locs, err := s.page.Locator(s.sel.CardMarker).All()
	if err != nil {
		return nil, fmt.Errorf("failed to collect job cards: %w", err)
	}

	cards := make([]*CardHandle, 0, len(locs))
	for _, loc := range locs {
		cards = append(cards, &CardHandle{sess: s, loc: loc})
	}

	return cards, nil
}

// OpenDetail ctrl-clicks the card's link and waits for the new tab. The
// caller owns the returned view and must close it on every exit path.
func (c *CardHandle) OpenDetail(ctx context.Context) (*DetailView, error) {
	if c.sess.closed {
		return nil, ErrSessionClosed
	}

	if err := c.sess.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	link := c.loc.Locator(c.sess.sel.CardLink).First()

	page, err := c.sess.bctx.ExpectPage(func() error {
		return link.Click(playwright.LocatorClickOptions{
			Modifiers: []playwright.KeyboardModifier{*playwright.KeyboardModifierControlOrMeta},
			Timeout:   playwright.Float(float64(newTabTimeout.Milliseconds())),
		})
	}, playwright.BrowserContextExpectPageOptions{
		Timeout: playwright.Float(float64(newTabTimeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("no tab opened: %w", err)
	}

	// Best effort: the extractor tolerates a partially loaded page
	_ = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(float64(defaultNavTimeout.Milliseconds())),
	})

	sleepCtx(ctx, c.sess.cfg.SettleDelay)

	return &DetailView{page: page}, nil
}
