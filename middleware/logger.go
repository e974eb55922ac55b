package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Clock interface {
	Now() time.Time
	Since(time.Time) time.Duration
}

// RequestLogger is a middleware that writes an access log line per request.
type RequestLogger struct {
	next  http.Handler
	clock Clock
}

func NewRequestLogger(next http.Handler, clock Clock) *RequestLogger {
	return &RequestLogger{next: next, clock: clock}
}

func remoteAddr(r *http.Request) string {
	if r.Header.Get("X-Forwarded-For") != "" {
		return r.Header.Get("X-Forwarded-For")
	}
	return r.RemoteAddr
}

func levelFor(code int) zerolog.Level {
	switch {
	case code >= 500:
		return zerolog.ErrorLevel
	case code >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func (rl *RequestLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := rl.clock.Now()
	ww := &codeWatcher{w: w}
	rl.next.ServeHTTP(ww, r)
	code := ww.Code()
	log.WithLevel(levelFor(code)).
		Str("remote", remoteAddr(r)).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("code", code).
		Dur("elapsed", rl.clock.Since(start)).
		Msg("access")
}
