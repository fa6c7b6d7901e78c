package observability

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/daiict/faculty-finder/internal/browser"
	"github.com/daiict/faculty-finder/internal/httpx"
)

const (
	ErrorNetwork   = "network"
	ErrorTimeout   = "timeout"
	ErrorRender    = "render"
	ErrorParsing   = "parsing"
	ErrorAI        = "ai"
	ErrorRateLimit = "rate_limit"
	ErrorStore     = "store"
	ErrorUnknown   = "unknown"
)

// ClassifyPageError buckets an error raised while loading or reading a page.
func ClassifyPageError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		if fe.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorNetwork
	}
	if errors.Is(err, browser.ErrNotRendered) {
		return ErrorRender
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "net::err_") || strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host"):
		return ErrorNetwork
	case strings.Contains(msg, "parse") || strings.Contains(msg, "invalid character"):
		return ErrorParsing
	}
	return ErrorUnknown
}
