package he

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/countdown"
	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/textutil"
)

// HTTPError probably represents the wrong abstraction.
type HTTPError struct {
	code int
	err  error
}

func HTTPCodedErrorf(code int, f string, more ...any) *HTTPError {
	return &HTTPError{
		code: code,
		err:  fmt.Errorf(f, more...),
	}
}

func New(code int, err error) *HTTPError {
	return &HTTPError{
		code: code,
		err:  err,
	}
}

func (e *HTTPError) Error() string {
	return e.err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.err
}

// Code picks a status for err.  Our own coded errors say what they want;
// bad input from a screen field is the client's fault; anything else is ours.
func Code(err error) int {
	var he *HTTPError
	switch {
	case errors.As(err, &he):
		return he.code
	case errors.Is(err, textutil.ErrNotANumber),
		errors.Is(err, textutil.ErrNegative),
		errors.Is(err, textutil.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, screen.ErrTimerFieldsDisabled),
		errors.Is(err, screen.ErrScreenClosed),
		errors.Is(err, countdown.ErrNotIdle),
		errors.Is(err, countdown.ErrNoTimeLeft):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendErrorToHTTPClient sends err as an HTTP error with whatever status
// Code picks for it.
func SendErrorToHTTPClient(w http.ResponseWriter, while string, err error) {
	code := Code(err)
	txt := fmt.Sprintf("can't %s: %v", while, err)
	if code >= 500 {
		log.Error().Err(err).Str("while", while).Msg("internal error")
	} else {
		log.Debug().Err(err).Str("while", while).Int("code", code).Msg("client error")
	}
	http.Error(w, txt, code)
}
