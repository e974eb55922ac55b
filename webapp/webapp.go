package webapp

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/assets"
	"github.com/ts4z/pokertracker/dep"
	"github.com/ts4z/pokertracker/he"
	"github.com/ts4z/pokertracker/middleware"
	"github.com/ts4z/pokertracker/middleware/labrea"
	"github.com/ts4z/pokertracker/middleware/s2ctx"
	"github.com/ts4z/pokertracker/protocol"
	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/session"
	"github.com/ts4z/pokertracker/varz"
	"github.com/ts4z/pokertracker/webapp/kbd"
)

var (
	listenUpgradeFailed  = varz.NewInt("listenUpgradeFailed")
	listenNotifiedClient = varz.NewInt("listenNotifiedClient")
	listenWriteFailed    = varz.NewInt("listenWriteFailed")
	suspendedOnHangup    = varz.NewInt("suspendedOnHangup")
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Config holds the configuration for creating a new App.
type Config struct {
	Screens        *session.Screens
	Bakery         *session.Bakery
	SubFS          fs.FS
	Clock          clockwork.Clock
	AllowedOrigins []string
}

// App is the main web application.
type App struct {
	templates *template.Template
	subFS     fs.FS

	// dependencies
	screens        *session.Screens
	bakery         *session.Bakery
	clock          clockwork.Clock
	allowedOrigins []string
	dispatcher     *kbd.EventDispatcher
	upgrader       websocket.Upgrader

	// internals
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a new App with the given configuration.
func New(config *Config) *App {
	app := &App{
		screens:        dep.Required(config.Screens),
		bakery:         dep.Required(config.Bakery),
		subFS:          dep.Required(config.SubFS),
		clock:          dep.Required(config.Clock),
		allowedOrigins: config.AllowedOrigins,
		dispatcher:     kbd.NewEventDispatcher(),
		mux:            http.NewServeMux(),
	}
	app.upgrader = websocket.Upgrader{CheckOrigin: app.checkOrigin}

	for _, origin := range app.allowedOrigins {
		log.Info().Str("origin", origin).Msg("CORS allowing origin")
	}

	// Stack the handlers together.
	s2c := s2ctx.Handler(&s2ctx.Config{
		Bakery: app.bakery,
		Next:   app.mux,
	})
	logger := middleware.NewRequestLogger(s2c, app.clock)
	tarpit := labrea.New(&labrea.Config{
		// Use real clock here; nobody is testing how long scanners wait.
		Clock: clockwork.NewRealClock(),
		Next:  logger,
	})
	app.handler = tarpit
	// cors treats an empty origin list as "*", which is not what an empty
	// allowed_origins means here.
	if len(app.allowedOrigins) > 0 {
		corsMW := cors.New(cors.Options{
			AllowedOrigins:   app.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
		})
		app.handler = corsMW.Handler(tarpit)
	}

	app.loadTemplates()
	app.InstallHandlers()

	return app
}

// Handler returns the configured HTTP handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

// checkOrigin lets a websocket in from this host or a configured origin.
func (app *App) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(app.allowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func (app *App) screenFor(ctx context.Context) (*screen.Screen, error) {
	id, ok := session.FromContext(ctx)
	if !ok {
		return nil, he.HTTPCodedErrorf(http.StatusInternalServerError, "no session")
	}
	return app.screens.Get(id), nil
}

func (app *App) handleFunc(pattern string, handler func(context.Context, http.ResponseWriter, *http.Request)) {
	app.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		handler(ctx, w, r)
	})
}

func (app *App) handleScreenFunc(pattern string, handler func(context.Context, *screen.Screen, http.ResponseWriter, *http.Request)) {
	app.handleFunc(pattern, func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		s, err := app.screenFor(ctx)
		if err != nil {
			he.SendErrorToHTTPClient(w, "find screen", err)
			return
		}
		handler(ctx, s, w, r)
	})
}

func writeSnapshot(w http.ResponseWriter, snap *screen.Snapshot) {
	bytes, err := json.Marshal(snap)
	if err != nil {
		he.SendErrorToHTTPClient(w, "marshal snapshot", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(bytes)
}

func (app *App) handleIndex(ctx context.Context, s *screen.Screen, w http.ResponseWriter, r *http.Request) {
	inputs := struct {
		Snapshot        *screen.Snapshot
		ProtocolVersion int
	}{Snapshot: s.Snapshot(), ProtocolVersion: protocol.Version}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := app.templates.ExecuteTemplate(w, "screen.html.tmpl", inputs); err != nil {
		log.Error().Err(err).Msg("can't render screen template")
	}
}

func (app *App) handleAPIScreen(ctx context.Context, s *screen.Screen, w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, s.Snapshot())
}

func (app *App) handleAPIScreenEvent(ctx context.Context, s *screen.Screen, w http.ResponseWriter, r *http.Request) {
	if err := app.dispatcher.HandleEvent(s, r); err != nil {
		he.SendErrorToHTTPClient(w, "handle screen event", err)
		return
	}
	writeSnapshot(w, s.Snapshot())
}

// handleAPIScreenListen pushes a snapshot down a websocket every time the
// screen changes.  When the last one hangs up the countdown is suspended.
func (app *App) handleAPIScreenListen(ctx context.Context, s *screen.Screen, w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		listenUpgradeFailed.Add(1)
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The client never says anything, but reading is how we hear it leave.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ch := s.Listen(ctx)
	app.pushSnapshots(ctx, conn, ch)

	cancel()
	for range ch {
		// drain until the screen lets go of us
	}
	if s.Listeners() == 0 {
		suspendedOnHangup.Add(1)
		s.Suspend()
	}
}

func (app *App) pushSnapshots(ctx context.Context, conn *websocket.Conn, ch <-chan *screen.Snapshot) {
	ping := app.clock.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "screen closed"),
					app.clock.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(app.clock.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				listenWriteFailed.Add(1)
				log.Debug().Err(err).Msg("can't push snapshot")
				return
			}
			listenNotifiedClient.Add(1)
		case <-ping.Chan():
			if err := conn.WriteControl(websocket.PingMessage, nil, app.clock.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// InstallHandlers registers all HTTP routes.
func (app *App) InstallHandlers() {
	app.handleScreenFunc("GET /{$}", app.handleIndex)

	app.handleFunc("GET /favicon.ico", func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, app.subFS, "favicon.svg")
	})

	app.handleFunc("GET /robots.txt", func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, app.subFS, "robots.txt")
	})

	// anything in fs is a file trivially shared
	app.mux.Handle("GET /fs/", middleware.NewCacheHeaderAdder(&middleware.CacheHeaderAdderConfig{
		Next:   http.StripPrefix("/fs/", http.FileServer(http.FS(app.subFS))),
		MaxAge: time.Hour,
	}))

	app.handleScreenFunc("GET /api/screen", app.handleAPIScreen)

	app.handleScreenFunc("POST /api/screen/event", app.handleAPIScreenEvent)

	app.handleScreenFunc("GET /api/screen/listen", app.handleAPIScreenListen)

	app.mux.Handle("GET /varz", varz.Handler())
}

func (app *App) loadTemplates() {
	var err error
	if app.templates, err = template.New("root").ParseFS(assets.Templates, "templates/*.tmpl"); err != nil {
		log.Fatal().Err(err).Msg("error loading embedded templates")
	}
	for _, tmpl := range app.templates.Templates() {
		log.Debug().Str("template", tmpl.Name()).Msg("loaded template")
	}
}

// Wrapper to just return the input context.
func contextualizer(ctx context.Context) func(net.Listener) context.Context {
	return func(_ net.Listener) context.Context {
		return ctx
	}
}

// Serve runs the HTTP server until it fails or ctx ends.
func (app *App) Serve(ctx context.Context, listenAddress string) error {
	// The shutdown goroutine below ends when ctx does.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := &http.Server{
		Addr:        listenAddress,
		Handler:     app.handler,
		BaseContext: contextualizer(ctx),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: websockets stay open as long as the page does.
		IdleTimeout: 12 * time.Hour,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("unclean shutdown")
		}
	}()

	log.Info().Str("address", listenAddress).Msg("serving")
	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		wg.Wait()
		return nil
	}
	cancel()
	wg.Wait()
	return fmt.Errorf("http server exited: %w", err)
}
