package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/daiict/faculty-finder/internal/httpx"
)

// Static serves pages straight from HTTP responses without running scripts.
// It is enough for sites that render server side and for environments
// without Chrome.
type Static struct {
	fetcher *httpx.Fetcher
	current string
	body    []byte
}

func NewStatic(opts Options) *Static {
	return &Static{fetcher: httpx.NewFetcher(opts.UserAgent)}
}

func (s *Static) Open(ctx context.Context, url string) error {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.current, s.body = "", nil
		return err
	}
	s.current = page.URL
	s.body = page.Body
	return nil
}

// WaitFor succeeds immediately if selector is in the fetched document; there
// is nothing to wait for without a script engine.
func (s *Static) WaitFor(ctx context.Context, selector string, _ time.Duration) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", ErrNotRendered, selector)
	}
	return nil
}

func (s *Static) Document(_ context.Context) (*goquery.Document, error) {
	if s.body == nil {
		return nil, errors.New("no page loaded")
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(s.body))
}

func (s *Static) URL() string {
	return s.current
}

func (s *Static) Close() error {
	s.body = nil
	return nil
}
