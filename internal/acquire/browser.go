package acquire

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// renderTimeout is the fixed budget for rendered-mode scraping. Headless
// rendering is much slower than a plain fetch, so it gets a longer window.
const renderTimeout = 60 * time.Second

// renderedBodyText loads the page in a headless browser and returns the
// visible body text. Requires Chrome/Chromium on the host.
func renderedBodyText(ctx context.Context, url string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, renderTimeout)
	defer cancel()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to settle.
		chromedp.Sleep(3*time.Second),
		chromedp.Text("body", &text, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
