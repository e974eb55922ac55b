package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/stack"
)

func bake(t *testing.T, b *Bakery, id uuid.UUID) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := b.BakeSession(rec, id); err != nil {
		t.Fatal(err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies = %+v", cookies)
	}
	return cookies[0]
}

func TestBakeAndRead(t *testing.T) {
	b, err := NewBakery("sekrit", false)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	cookie := bake(t, b, id)
	if !cookie.HttpOnly {
		t.Error("cookie is readable from script")
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookie)
	got, err := b.ReadSession(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Errorf("ReadSession = %v, want %v", got, id)
	}
}

func TestSameSecretSameKeys(t *testing.T) {
	b1, err := NewBakery("sekrit", false)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := NewBakery("sekrit", false)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(bake(t, b1, id))
	if got, err := b2.ReadSession(r); err != nil || got != id {
		t.Errorf("cookie from a restarted server: %v, %v", got, err)
	}
}

func TestForeignCookieRejected(t *testing.T) {
	tests := []struct {
		name    string
		secret1 string
		secret2 string
	}{
		{"different secrets", "one", "two"},
		{"random keys", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b1, err := NewBakery(tt.secret1, false)
			if err != nil {
				t.Fatal(err)
			}
			b2, err := NewBakery(tt.secret2, false)
			if err != nil {
				t.Fatal(err)
			}
			r := httptest.NewRequest("GET", "/", nil)
			r.AddCookie(bake(t, b1, uuid.New()))
			if _, err := b2.ReadSession(r); err == nil {
				t.Error("ReadSession accepted a cookie it didn't bake")
			}
		})
	}
}

func TestNoCookie(t *testing.T) {
	b, err := NewBakery("sekrit", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReadSession(httptest.NewRequest("GET", "/", nil)); err == nil {
		t.Error("ReadSession with no cookie succeeded")
	}
}

func TestContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context has a session")
	}
	id := uuid.New()
	if got, ok := FromContext(InContext(context.Background(), id)); !ok || got != id {
		t.Errorf("FromContext = %v, %v", got, ok)
	}
}

func newScreens(t *testing.T, size int) *Screens {
	t.Helper()
	clock := clockwork.NewFakeClock()
	s, err := NewScreens(size, func() *screen.Screen {
		return screen.New(&screen.Config{Clock: clock, Mode: stack.MFactor})
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Purge)
	return s
}

func TestScreensGetIsStable(t *testing.T) {
	s := newScreens(t, 4)
	id := uuid.New()
	a := s.Get(id)
	if b := s.Get(id); a != b {
		t.Error("second Get made a new screen")
	}
	if c := s.Get(uuid.New()); c == a {
		t.Error("two sessions share a screen")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestScreensEvictionClosesScreen(t *testing.T) {
	s := newScreens(t, 1)
	first := uuid.New()
	scr := s.Get(first)
	ch := scr.Listen(context.Background())
	<-ch

	s.Get(uuid.New())

	if _, open := <-ch; open {
		t.Error("evicted screen still has listeners")
	}
	if err := scr.ToggleTimer(); !errors.Is(err, screen.ErrScreenClosed) {
		t.Errorf("evicted screen took an action: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if again := s.Get(first); again == scr {
		t.Error("evicted session got its old screen back")
	}
}
