/*
Package session knows which screen a browser is looking at.

Each browser gets a cookie holding a random session ID.  The cookie is signed
and encrypted with gorilla/securecookie; nothing else is in it.  Screens live
in memory only, so a server restart (or an eviction) quietly hands the
browser a fresh screen.
*/
package session

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "pokertracker-session"

	// these sizes are recommended by the gorilla/securecookie package
	// https://pkg.go.dev/github.com/gorilla/securecookie#New
	hashKeySize  = 32
	blockKeySize = 32
)

type cookieData struct {
	SessionID string
}

type Bakery struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewBakery derives cookie keys from secret.  With an empty secret the keys
// are random, so sessions don't survive a restart.
func NewBakery(secret string, secureCookies bool) (*Bakery, error) {
	hashKey, blockKey, err := deriveKeys(secret)
	if err != nil {
		return nil, err
	}
	return &Bakery{
		sc:     securecookie.New(hashKey, blockKey),
		secure: secureCookies,
	}, nil
}

func deriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		log.Warn().Msg("no session_secret configured; using random cookie keys")
		hashKey = securecookie.GenerateRandomKey(hashKeySize)
		blockKey = securecookie.GenerateRandomKey(blockKeySize)
		if hashKey == nil || blockKey == nil {
			return nil, nil, fmt.Errorf("can't generate random cookie keys")
		}
		return hashKey, blockKey, nil
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(CookieName))
	hashKey = make([]byte, hashKeySize)
	blockKey = make([]byte, blockKeySize)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, nil, fmt.Errorf("deriving hash key: %w", err)
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, nil, fmt.Errorf("deriving block key: %w", err)
	}
	return hashKey, blockKey, nil
}

// ReadSession returns the session ID in the request's cookie.
func (b *Bakery) ReadSession(r *http.Request) (uuid.UUID, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("can't get cookie: %w", err)
	}
	var c cookieData
	if err := b.sc.Decode(CookieName, cookie.Value, &c); err != nil {
		return uuid.Nil, fmt.Errorf("can't validate cookie: %w", err)
	}
	id, err := uuid.Parse(c.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bad session id in cookie: %w", err)
	}
	return id, nil
}

// BakeSession sets a cookie carrying id.
func (b *Bakery) BakeSession(w http.ResponseWriter, id uuid.UUID) error {
	encoded, err := b.sc.Encode(CookieName, cookieData{SessionID: id.String()})
	if err != nil {
		return fmt.Errorf("can't encrypt cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		Secure:   b.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

type contextKey struct{}

// InContext returns ctx carrying the session ID.
func InContext(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the session ID put there by InContext.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return id, ok
}
