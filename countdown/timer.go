package countdown

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/varz"
)

var (
	ticksApplied   = varz.NewInt("ticksApplied")
	ticksDiscarded = varz.NewInt("ticksDiscarded")
	countdownsDone = varz.NewInt("countdownsDone")
)

// Timer is a Countdown with its own ticker.  It is safe for concurrent use.
//
// onTick runs on the ticker's goroutine after every applied tick, with the
// timer's lock released, so it may call back into the Timer.
type Timer struct {
	mu     sync.Mutex
	cd     Countdown
	ticker *Ticker
	onTick func(Status)
}

// NewTimer returns an idle timer.  onTick may be nil.
func NewTimer(clock clockwork.Clock, onTick func(Status)) *Timer {
	t := &Timer{onTick: onTick}
	t.ticker = NewTicker(clock, TickInterval, t.tick)
	return t
}

// Start loads d and begins ticking.  The timer must be Idle.  A zero
// duration leaves it Idle.
func (t *Timer) Start(d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	running, err := t.cd.Start(d)
	if err != nil {
		return err
	}
	if running {
		t.ticker.Start()
		log.Debug().Int64("remaining_ms", t.cd.RemainingMillis()).Msg("countdown started")
	}
	return nil
}

// Pause stops ticking and keeps the time left.  It is a no-op unless running.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticker.Stop()
	t.cd.Pause()
}

// Resume continues a paused timer.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.cd.Resume(); err != nil {
		return err
	}
	t.ticker.Start()
	return nil
}

// Cancel stops ticking and clears the time left.  Cancelling twice is the
// same as cancelling once.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticker.Stop()
	t.cd.Reset()
}

func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cd.Status()
}

func (t *Timer) tick(gen uint64) {
	t.mu.Lock()
	if t.cd.State() != Running || !t.ticker.Current(gen) {
		// Paused or cancelled after the ticker fired, maybe resumed since.
		t.mu.Unlock()
		ticksDiscarded.Add(1)
		return
	}
	done := t.cd.Tick()
	if done {
		t.ticker.Stop()
		countdownsDone.Add(1)
		log.Debug().Msg("countdown reached zero")
	}
	st := t.cd.Status()
	t.mu.Unlock()

	ticksApplied.Add(1)
	if t.onTick != nil {
		t.onTick(st)
	}
}
