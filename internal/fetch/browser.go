package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// MinContentLength is the shortest page text accepted from a plain HTTP fetch before a
// browser render is worth trying.
const MinContentLength = 200

// ShouldUseBrowser reports whether text extracted from a plain fetch is too short, which
// usually means the page renders its content with JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Browser renders urlStr in headless Chrome and returns the resulting HTML.
// Requires Chrome or Chromium on the host.
func Browser(ctx context.Context, urlStr string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 2 * DefaultTimeout
	}
	log.Debug().Str("url", urlStr).Msg("rendering page in headless browser")

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	log.Debug().Str("url", urlStr).Int("bytes", len(html)).Msg("browser render complete")
	return html, nil
}

// BrowserRenderer adapts Browser to a func value with a fixed timeout.
func BrowserRenderer(timeout time.Duration) func(context.Context, string) (string, error) {
	return func(ctx context.Context, urlStr string) (string, error) {
		html, err := Browser(ctx, urlStr, timeout)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", urlStr, err)
		}
		return html, nil
	}
}
