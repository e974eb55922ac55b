package countdown

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Ticker calls fire once per interval while started.  Each delay is a fresh
// clockwork timer armed after the previous fire returns, so a slow fire
// pushes the next one back rather than piling up.
//
// Every Start begins a new generation, and fire is told which generation it
// belongs to.  A fire that lost a race with Stop (or Stop then Start) can
// see that with Current and drop itself.
//
// Start and Stop are idempotent and safe to call from fire.
type Ticker struct {
	clock    clockwork.Clock
	interval time.Duration
	fire     func(gen uint64)

	mu   sync.Mutex
	stop chan struct{}
	gen  uint64
}

func NewTicker(clock clockwork.Clock, interval time.Duration, fire func(gen uint64)) *Ticker {
	return &Ticker{
		clock:    clock,
		interval: interval,
		fire:     fire,
	}
}

func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	t.gen++
	go t.run(stop, t.gen)
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

func (t *Ticker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Current reports whether gen is the generation of a ticker still running.
func (t *Ticker) Current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil && t.gen == gen
}

func (t *Ticker) run(stop <-chan struct{}, gen uint64) {
	for {
		timer := t.clock.NewTimer(t.interval)
		select {
		case <-timer.Chan():
			// A Stop that raced with the timer wins.
			select {
			case <-stop:
				return
			default:
			}
			t.fire(gen)
		case <-stop:
			stopAndDrainTimer(timer)
			log.Debug().Dur("interval", t.interval).Msg("ticker stopped")
			return
		}
	}
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
