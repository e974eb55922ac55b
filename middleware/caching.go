package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CacheHeaderAdder wraps an http.Handler and adds cache-control headers.
// This is useful for static assets that can be cached by browsers.
type CacheHeaderAdder struct {
	next         http.Handler
	cacheControl string
}

// CacheHeaderAdderConfig configures the caching behavior.
type CacheHeaderAdderConfig struct {
	// Next is the handler to wrap.
	Next http.Handler

	// MaxAge is how long the content should be cached.  Zero disables
	// caching outright.
	MaxAge time.Duration

	// CachePrivate indicates that the content should only be cached
	// by the browser, not by shared caches (CDNs, proxies).
	CachePrivate bool
}

func cacheControl(config *CacheHeaderAdderConfig) string {
	seconds := int(config.MaxAge.Seconds())
	if seconds <= 0 {
		return "no-cache"
	}
	parts := []string{"public"}
	if config.CachePrivate {
		parts[0] = "private"
	}
	parts = append(parts, fmt.Sprintf("max-age=%d", seconds))
	return strings.Join(parts, ", ")
}

// NewCacheHeaderAdder creates a new caching middleware.
func NewCacheHeaderAdder(config *CacheHeaderAdderConfig) *CacheHeaderAdder {
	return &CacheHeaderAdder{
		next:         config.Next,
		cacheControl: cacheControl(config),
	}
}

func (ch *CacheHeaderAdder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", ch.cacheControl)
	ch.next.ServeHTTP(w, r)
}
