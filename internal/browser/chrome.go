package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// Chrome drives a real Chrome tab so that JavaScript-rendered content is
// present in the DOM snapshots.
type Chrome struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	tabCtx      context.Context
	cancelTab   context.CancelFunc
	current     string
	navTimeout  time.Duration
}

// NewChrome launches Chrome and opens the tab used for the whole session.
// The parent ctx bounds the browser's lifetime.
func NewChrome(ctx context.Context, opts Options) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &Chrome{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		tabCtx:      tabCtx,
		cancelTab:   cancelTab,
		navTimeout:  45 * time.Second,
	}, nil
}

// run executes actions on the tab, stopping early when ctx is done.
func (c *Chrome) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(c.tabCtx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (c *Chrome) Open(ctx context.Context, url string) error {
	if err := c.run(ctx, c.navTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	c.current = url
	var loc string
	if err := c.run(ctx, 5*time.Second, chromedp.Location(&loc)); err == nil && loc != "" {
		c.current = loc
	}
	return nil
}

func (c *Chrome) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", ErrNotRendered, selector, err)
	}
	return nil
}

func (c *Chrome) Document(ctx context.Context) (*goquery.Document, error) {
	var outer string
	if err := c.run(ctx, 20*time.Second, chromedp.OuterHTML("html", &outer, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", c.current, err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(outer))
}

func (c *Chrome) URL() string {
	return c.current
}

// Close shuts the tab and the browser process.
func (c *Chrome) Close() error {
	c.cancelTab()
	c.cancelAlloc()
	return nil
}
