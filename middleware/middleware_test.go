package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestCodeWatcher(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{"implicit", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("hi")) }, 200},
		{"explicit", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusConflict) }, 409},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cw := &codeWatcher{w: httptest.NewRecorder()}
			tt.handler(cw, httptest.NewRequest("GET", "/", nil))
			if got := cw.Code(); got != tt.want {
				t.Errorf("Code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodeWatcherUnwraps(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &codeWatcher{w: rec}
	if err := http.NewResponseController(cw).Flush(); err != nil {
		t.Errorf("Flush through codeWatcher: %v", err)
	}
	if !rec.Flushed {
		t.Error("recorder not flushed")
	}
	if _, _, err := cw.Hijack(); err == nil {
		t.Error("Hijack on a recorder succeeded")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = saved }()

	clock := clockwork.NewFakeClock()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clock.Advance(250 * time.Millisecond)
		w.WriteHeader(http.StatusBadRequest)
	})
	NewRequestLogger(next, clock).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/screen/event", nil))

	line := buf.String()
	for _, want := range []string{`"level":"warn"`, `"code":400`, `"path":"/api/screen/event"`, `"elapsed":250`} {
		if !strings.Contains(line, want) {
			t.Errorf("access log %s lacks %s", line, want)
		}
	}
}

func TestCacheHeaderAdder(t *testing.T) {
	tests := []struct {
		cf   CacheHeaderAdderConfig
		want string
	}{
		{CacheHeaderAdderConfig{MaxAge: time.Hour}, "public, max-age=3600"},
		{CacheHeaderAdderConfig{MaxAge: time.Minute, CachePrivate: true}, "private, max-age=60"},
		{CacheHeaderAdderConfig{}, "no-cache"},
	}
	for _, tt := range tests {
		tt.cf.Next = http.NotFoundHandler()
		rec := httptest.NewRecorder()
		NewCacheHeaderAdder(&tt.cf).ServeHTTP(rec, httptest.NewRequest("GET", "/fs/screen.js", nil))
		if got := rec.Header().Get("Cache-Control"); got != tt.want {
			t.Errorf("Cache-Control = %q, want %q", got, tt.want)
		}
	}
}
