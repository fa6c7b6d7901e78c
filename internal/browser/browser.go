package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotRendered is returned by WaitFor when the awaited element never shows up.
var ErrNotRendered = errors.New("element not rendered")

// Browser is a single page session. Implementations are not safe for
// concurrent use; the pipeline drives one page at a time.
type Browser interface {
	// Open navigates to url and waits for the document to load.
	Open(ctx context.Context, url string) error
	// WaitFor blocks until selector matches an element or timeout elapses.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	// Document returns a snapshot of the current DOM.
	Document(ctx context.Context) (*goquery.Document, error)
	// URL is the address of the current page.
	URL() string
	Close() error
}

// Options configure a browser session.
type Options struct {
	Headless  bool
	UserAgent string
}

const (
	KindChrome = "chrome"
	KindStatic = "static"
)

// Factory starts a browser session.
type Factory func(ctx context.Context) (Browser, error)

// NewFactory returns the factory for kind ("chrome" or "static").
func NewFactory(kind string, opts Options) (Factory, error) {
	switch kind {
	case "", KindChrome:
		return func(ctx context.Context) (Browser, error) {
			return NewChrome(ctx, opts)
		}, nil
	case KindStatic:
		return func(ctx context.Context) (Browser, error) {
			return NewStatic(opts), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown browser %q", kind)
	}
}
