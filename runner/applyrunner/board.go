package applyrunner

import (
	"context"

	"github.com/sadewadee/job-applier/internal/apply"
	"github.com/sadewadee/job-applier/internal/browser"
)

// board adapts the Playwright session to the driver's Board interface
type board struct {
	sess *browser.Session
}

func (b *board) Navigate(ctx context.Context, url string, maxRetries int) bool {
	return b.sess.Navigate(ctx, url, maxRetries)
}

func (b *board) SearchURL(term string, page int) string {
	return b.sess.SearchURL(term, page)
}

func (b *board) AwaitCards(ctx context.Context) bool {
	return b.sess.AwaitCards(ctx)
}

func (b *board) OpenViews() int {
	return b.sess.OpenViews()
}

func (b *board) Cards(ctx context.Context) ([]apply.Card, error) {
	handles, err := b.sess.Cards(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]apply.Card, len(handles))
	for i, h := range handles {
		cards[i] = &card{handle: h}
	}

	return cards, nil
}

// card adapts one Playwright card handle
type card struct {
	handle *browser.CardHandle
}

func (c *card) OpenDetail(ctx context.Context) (apply.View, error) {
	view, err := c.handle.OpenDetail(ctx)
	if err != nil {
		return nil, err
	}

	return view, nil
}
