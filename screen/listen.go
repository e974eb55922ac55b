package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/varz"
)

var (
	listenersAdded   = varz.NewInt("listenersAdded")
	listenersRemoved = varz.NewInt("listenersRemoved")
	snapshotsDropped = varz.NewInt("snapshotsDropped")
)

// listener holds at most one undelivered snapshot.  A newer one replaces it:
// a slow reader skips frames but never falls behind.
type listener struct {
	mu     sync.Mutex
	ch     chan *Snapshot
	done   chan struct{}
	closed bool
}

func (l *listener) offer(snap *Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case l.ch <- snap:
		return
	default:
	}
	select {
	case <-l.ch:
		snapshotsDropped.Add(1)
	default:
	}
	l.ch <- snap
}

func (l *listener) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
		close(l.done)
	}
}

// Listen returns a channel that receives the current snapshot right away and
// then each later one.  It is closed when ctx ends or the screen closes.
func (s *Screen) Listen(ctx context.Context) <-chan *Snapshot {
	l := &listener{ch: make(chan *Snapshot, 1), done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		l.close()
		return l.ch
	}
	s.listeners = append(s.listeners, l)
	l.offer(s.snapshotLocked())
	n := len(s.listeners)
	s.mu.Unlock()

	listenersAdded.Add(1)
	log.Debug().Int("listeners", n).Msg("screen listener added")

	go func() {
		select {
		case <-ctx.Done():
			s.removeListener(l)
		case <-l.done:
		}
	}()
	return l.ch
}

// Listeners is how many listeners are attached.
func (s *Screen) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Screen) removeListener(l *listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.listeners {
		if other == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			listenersRemoved.Add(1)
			break
		}
	}
	l.close()
}

func (s *Screen) changedLocked() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, l := range s.listeners {
		l.offer(snap)
	}
}
