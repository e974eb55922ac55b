package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

var _ http.ResponseWriter = &codeWatcher{}

// codeWatcher is a http.ResponseWriter that captures the status code for logging.
//
// It has to pass Hijack through, or websocket upgrades fail behind it.
type codeWatcher struct {
	code     *int
	hijacked bool
	w        http.ResponseWriter
}

func (cw *codeWatcher) Header() http.Header {
	return cw.w.Header()
}

func (cw *codeWatcher) Write(b []byte) (int, error) {
	return cw.w.Write(b)
}

func (cw *codeWatcher) WriteHeader(statusCode int) {
	cw.code = &statusCode
	cw.w.WriteHeader(statusCode)
}

func (cw *codeWatcher) Flush() {
	if f, ok := cw.w.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *codeWatcher) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := cw.w.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying ResponseWriter can't hijack")
	}
	conn, rw, err := h.Hijack()
	if err == nil {
		cw.hijacked = true
	}
	return conn, rw, err
}

// Unwrap is for http.ResponseController.
func (cw *codeWatcher) Unwrap() http.ResponseWriter {
	return cw.w
}

func (cw *codeWatcher) Code() int {
	switch {
	case cw.hijacked:
		return http.StatusSwitchingProtocols
	case cw.code != nil:
		return *cw.code
	default:
		return 200
	}
}
