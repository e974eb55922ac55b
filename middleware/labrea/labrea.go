// Package labrea slows down scanners looking for things this server doesn't
// have, without cluttering the access log.
package labrea

import (
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/dep"
	"github.com/ts4z/pokertracker/varz"
)

var tarpitted = varz.NewInt("tarpitted")

// maxTracked bounds the per-address strike table.
const maxTracked = 1000

var defaultPaths = []string{
	".env",
	".git",
	".htaccess",
	"admin",
	"config.php",
	"phpmyadmin",
	"server-status",
	"wp-admin",
	"wp-login.php",
	"xmlrpc.php",
}

type Handler struct {
	clock    clockwork.Clock
	maxDelay time.Duration
	next     http.Handler
	paths    map[string]struct{}

	mu      sync.Mutex
	strikes map[string]int
}

var _ http.Handler = &Handler{}

type Config struct {
	Clock clockwork.Clock
	Next  http.Handler
	// MaxDelay caps how long one request is held.  Zero means 3s.
	MaxDelay time.Duration
}

func New(cf *Config) *Handler {
	paths := make(map[string]struct{}, len(defaultPaths))
	for _, p := range defaultPaths {
		paths[p] = struct{}{}
	}
	maxDelay := cf.MaxDelay
	if maxDelay == 0 {
		maxDelay = 3 * time.Second
	}
	return &Handler{
		clock:    dep.Required(cf.Clock),
		maxDelay: maxDelay,
		next:     dep.Required(cf.Next),
		paths:    paths,
		strikes:  map[string]int{},
	}
}

func (h *Handler) strike(addr string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.strikes) > maxTracked {
		h.strikes = map[string]int{}
	}
	h.strikes[addr]++
	return h.strikes[addr]
}

// delay grows with each strike from the same address, up to maxDelay.
func (h *Handler) delay(strikes int) time.Duration {
	floor := min(time.Duration(strikes)*100*time.Millisecond, h.maxDelay)
	if floor == h.maxDelay {
		return floor
	}
	return floor + rand.N(h.maxDelay-floor)
}

// lastTwo reduces a path to its last two segments, so /blog/wp-admin/ and
// /x/wp-admin both match wp-admin.
func lastTwo(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.Join(parts, "/")
}

func (h *Handler) trapped(path string) bool {
	p := lastTwo(path)
	if _, ok := h.paths[p]; ok {
		return true
	}
	if i := strings.IndexByte(p, '/'); i >= 0 {
		_, ok := h.paths[p[i+1:]]
		return ok
	}
	return false
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.trapped(r.URL.Path) {
		h.next.ServeHTTP(w, r)
		return
	}
	tarpitted.Add(1)
	d := h.delay(h.strike(r.RemoteAddr))
	log.Debug().Str("remote", r.RemoteAddr).Str("path", r.URL.Path).Dur("delay", d).Msg("tarpit")
	select {
	case <-h.clock.After(d):
	case <-r.Context().Done():
		return
	}
	w.Header().Set("Server", "Apache")
	http.NotFound(w, r)
}
