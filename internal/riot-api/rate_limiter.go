package riotapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tristan-derez/league-stats/internal/metrics"
)

// LimiterState is the externally visible state of a WindowLimiter.
type LimiterState string

const (
	StateIdle      LimiterState = "idle"
	StateThrottled LimiterState = "throttled"
)

// Ticket is the pending handle returned by Submit. Done is closed once the
// call has been admitted.
type Ticket struct {
	ID       string
	Enqueued time.Time
	done     chan struct{}
}

// Done returns a channel closed when the ticket is admitted.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// LimiterStats is a point-in-time snapshot of a limiter.
type LimiterStats struct {
	Group   string        `json:"group"`
	State   LimiterState  `json:"state"`
	Budget  int           `json:"budget"`
	Used    int           `json:"used"`
	Queued  int           `json:"queued"`
	Blocked time.Duration `json:"blockedNs"`

	// OldestWait is how long the head of the queue has been waiting.
	OldestWait time.Duration `json:"oldestWaitNs"`
}

// WindowLimiter admits at most budget calls per fixed window and queues the
// rest in FIFO order until the next window opens.
type WindowLimiter struct {
	mu sync.Mutex

	group  string
	budget int
	window time.Duration

	used         int
	windowStart  time.Time
	blockedUntil time.Time
	queue        []*Ticket
	timer        *time.Timer

	now func() time.Time
}

// NewWindowLimiter creates a limiter for one endpoint group.
// A budget below 1 is raised to 1.
func NewWindowLimiter(group string, budget int, window time.Duration) *WindowLimiter {
	if budget < 1 {
		budget = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &WindowLimiter{
		group:  group,
		budget: budget,
		window: window,
		now:    time.Now,
	}
}

// Submit admits the call immediately when the current window still has budget
// and nobody is queued ahead of it; otherwise the ticket joins the queue.
func (l *WindowLimiter) Submit() *Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.advance(now)

	t := &Ticket{ID: uuid.NewString(), Enqueued: now, done: make(chan struct{})}
	if len(l.queue) == 0 && l.available(now) {
		l.admit(t)
		return t
	}

	l.queue = append(l.queue, t)
	metrics.LimiterQueued.WithLabelValues(l.group).Set(float64(len(l.queue)))
	l.schedule(now)
	return t
}

// Wait submits a call and blocks until it is admitted or ctx ends.
func (l *WindowLimiter) Wait(ctx context.Context) error {
	t := l.Submit()
	select {
	case <-t.Done():
		return nil
	case <-ctx.Done():
		if l.cancel(t) {
			return ctx.Err()
		}
		// admitted concurrently with the cancellation
		return nil
	}
}

// Penalize tells the limiter that the upstream rejected a call with 429.
// Nothing is admitted until retryAfter has elapsed.
func (l *WindowLimiter) Penalize(retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	until := now.Add(retryAfter)
	if until.After(l.blockedUntil) {
		l.blockedUntil = until
	}
	metrics.RateLimitHitsTotal.WithLabelValues(l.group).Inc()

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if len(l.queue) > 0 {
		l.schedule(now)
	}
}

// Stats returns a snapshot of the limiter.
func (l *WindowLimiter) Stats() LimiterStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.advance(now)

	state := StateIdle
	if !l.available(now) || len(l.queue) > 0 {
		state = StateThrottled
	}
	var blocked time.Duration
	if now.Before(l.blockedUntil) {
		blocked = l.blockedUntil.Sub(now)
	}
	var oldest time.Duration
	if len(l.queue) > 0 {
		oldest = now.Sub(l.queue[0].Enqueued)
	}
	return LimiterStats{
		Group:      l.group,
		State:      state,
		Budget:     l.budget,
		Used:       l.used,
		Queued:     len(l.queue),
		Blocked:    blocked,
		OldestWait: oldest,
	}
}

// Stop releases the rollover timer. Queued tickets stay queued.
func (l *WindowLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// tick runs on the rollover timer.
func (l *WindowLimiter) tick() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.timer = nil
	now := l.now()
	l.advance(now)
	if len(l.queue) > 0 {
		l.schedule(now)
	}
}

// advance rolls the window over when it has expired and drains the queue.
// Callers must hold l.mu.
func (l *WindowLimiter) advance(now time.Time) {
	if l.windowStart.IsZero() || !now.Before(l.windowStart.Add(l.window)) {
		l.windowStart = now
		l.used = 0
	}
	for len(l.queue) > 0 && l.available(now) {
		next := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.admit(next)
	}
	metrics.LimiterQueued.WithLabelValues(l.group).Set(float64(len(l.queue)))
}

func (l *WindowLimiter) available(now time.Time) bool {
	return l.used < l.budget && !now.Before(l.blockedUntil)
}

func (l *WindowLimiter) admit(t *Ticket) {
	l.used++
	close(t.done)
	metrics.LimiterAdmittedTotal.WithLabelValues(l.group).Inc()
}

// schedule arms the timer for the earliest instant a queued ticket could be admitted.
func (l *WindowLimiter) schedule(now time.Time) {
	if l.timer != nil {
		return
	}

	next := now
	if l.used >= l.budget {
		next = l.windowStart.Add(l.window)
	}
	if l.blockedUntil.After(next) {
		next = l.blockedUntil
	}

	delay := next.Sub(now)
	if delay < 0 {
		delay = 0
	}
	l.timer = time.AfterFunc(delay, l.tick)
}

func (l *WindowLimiter) cancel(t *Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, queued := range l.queue {
		if queued == t {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			metrics.LimiterQueued.WithLabelValues(l.group).Set(float64(len(l.queue)))
			return true
		}
	}
	return false
}
