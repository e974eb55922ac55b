// Package s2ctx finds (or starts) the browser's session and squirrels its ID
// away in the request context, so handlers don't have to know about cookies.
package s2ctx

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/dep"
	"github.com/ts4z/pokertracker/he"
	"github.com/ts4z/pokertracker/session"
	"github.com/ts4z/pokertracker/varz"
)

var sessionsStarted = varz.NewInt("sessionsStarted")

type SessionToContext struct {
	bakery *session.Bakery
	next   http.Handler
}

func (s *SessionToContext) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := s.bakery.ReadSession(r)
	if err != nil {
		// Usually a first visit; not worth more than debug.
		log.Debug().Err(err).Msg("starting new session")
		id = uuid.New()
		if err := s.bakery.BakeSession(w, id); err != nil {
			he.SendErrorToHTTPClient(w, "start session", err)
			return
		}
		sessionsStarted.Add(1)
	}
	s.next.ServeHTTP(w, r.WithContext(session.InContext(r.Context(), id)))
}

type Config struct {
	Bakery *session.Bakery
	Next   http.Handler
}

func Handler(cf *Config) http.Handler {
	return &SessionToContext{
		bakery: dep.Required(cf.Bakery),
		next:   dep.Required(cf.Next),
	}
}
