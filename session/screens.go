package session

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/varz"
)

var (
	screensCreated = varz.NewInt("screensCreated")
	screensEvicted = varz.NewInt("screensEvicted")
)

// Screens keeps one screen per session, up to a fixed number.  The least
// recently used screen is closed to make room.
type Screens struct {
	mu        sync.Mutex
	cache     *lru.Cache[uuid.UUID, *screen.Screen]
	newScreen func() *screen.Screen
}

func NewScreens(size int, newScreen func() *screen.Screen) (*Screens, error) {
	cache, err := lru.NewWithEvict(size, func(id uuid.UUID, s *screen.Screen) {
		screensEvicted.Add(1)
		log.Info().Str("session_id", id.String()).Msg("screen evicted")
		s.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Screens{cache: cache, newScreen: newScreen}, nil
}

// Get returns the session's screen, making one if needed.
func (s *Screens) Get(id uuid.UUID) *screen.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scr, ok := s.cache.Get(id); ok {
		return scr
	}
	scr := s.newScreen()
	s.cache.Add(id, scr)
	screensCreated.Add(1)
	log.Info().Str("session_id", id.String()).Int("screens", s.cache.Len()).Msg("screen created")
	return scr
}

func (s *Screens) Len() int {
	return s.cache.Len()
}

// Purge closes every screen.
func (s *Screens) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
