package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGuard answers whether a URL may be crawled according to its host's
// robots.txt. Rules are fetched once per host and cached.
type RobotsGuard struct {
	client *http.Client
	ua     string
	mu     sync.Mutex
	cache  map[string]*robotstxt.RobotsData
}

func NewRobotsGuard(userAgent string) *RobotsGuard {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RobotsGuard{
		client: &http.Client{Timeout: 10 * time.Second},
		ua:     userAgent,
		cache:  map[string]*robotstxt.RobotsData{},
	}
}

// Allowed fails open: an unreachable or unparsable robots.txt allows the URL.
func (g *RobotsGuard) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	data, err := g.robotsFor(ctx, u)
	if err != nil {
		return true
	}
	group := data.FindGroup(g.ua)
	if group == nil {
		return true
	}
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	return group.Test(p)
}

func (g *RobotsGuard) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := u.Host
	g.mu.Lock()
	if data, ok := g.cache[host]; ok {
		g.mu.Unlock()
		return data, nil
	}
	g.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.ua)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[host] = data
	g.mu.Unlock()
	return data, nil
}
