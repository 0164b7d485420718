// Package installplaywright downloads the Playwright browsers and exits.
package installplaywright

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/sadewadee/job-applier/runner"
)

type installRunner struct{}

// New creates the install run mode
func New(_ *runner.Config) (runner.Runner, error) {
	return &installRunner{}, nil
}

func (i *installRunner) Run(context.Context) error {
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	return nil
}

func (i *installRunner) Close(context.Context) error {
	return nil
}
