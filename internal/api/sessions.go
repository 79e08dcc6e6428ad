package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/round"
)

// ErrSessionNotFound is returned for unknown or already removed IDs.
var ErrSessionNotFound = errors.New("api: session not found")

// liveSession is one round driven over HTTP.
type liveSession struct {
	round   round.Round
	session *quiz.Session
	stop    context.CancelFunc
	touched time.Time
}

// registry holds the rounds in flight. Timed rounds run their own clock
// goroutine until they finish, are removed, or the registry closes.
// Rounds nobody touches for idle are dropped by a background sweep, and
// at most max are kept at once.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*liveSession
	interval time.Duration
	idle     time.Duration
	max      int
	now      func() time.Time
	rand     *rand.Rand
	randMu   sync.Mutex
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc

	// evicted is called, outside the lock, for every round the registry
	// drops on its own.
	evicted func(*liveSession)
}

func newRegistry(cfg Config, r *rand.Rand, evicted func(*liveSession)) *registry {
	ctx, cancel := context.WithCancel(context.Background())
	reg := &registry{
		sessions: make(map[string]*liveSession),
		interval: cfg.ClockInterval,
		idle:     cfg.SessionIdle,
		max:      cfg.MaxSessions,
		now:      time.Now,
		rand:     r,
		ctx:      ctx,
		cancel:   cancel,
		evicted:  evicted,
	}
	if reg.idle > 0 && cfg.SweepEvery > 0 {
		reg.wg.Add(1)
		go func() {
			defer reg.wg.Done()
			reg.sweepEvery(cfg.SweepEvery)
		}()
	}
	return reg
}

func (r *registry) sweepEvery(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-t.C:
			r.sweep()
		}
	}
}

// sweep drops every round untouched for longer than idle, finished or
// not, and returns how many it dropped.
func (r *registry) sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	var stale []*liveSession
	for id, ls := range r.sessions {
		if ls.touched.Before(cutoff) {
			stale = append(stale, ls)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	r.drop(stale)
	return len(stale)
}

// drop stops the clocks of sessions already taken out of the map.
func (r *registry) drop(sessions []*liveSession) {
	for _, ls := range sessions {
		ls.stop()
		if r.evicted != nil {
			r.evicted(ls)
		}
	}
}

// start begins a round of mode and returns its ID. When the registry is
// full the least recently touched round makes room.
func (r *registry) start(mode quiz.Mode) (string, *liveSession, error) {
	r.randMu.Lock()
	s, err := mode.Start(r.rand)
	r.randMu.Unlock()
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	ctx, stop := context.WithCancel(r.ctx)
	now := r.now()
	ls := &liveSession{
		round:   round.Round{ID: id, Mode: mode, Started: now},
		session: s,
		stop:    stop,
		touched: now,
	}

	r.mu.Lock()
	var full []*liveSession
	for r.max > 0 && len(r.sessions) >= r.max {
		full = append(full, r.evictOldestLocked())
	}
	r.sessions[id] = ls
	r.mu.Unlock()
	r.drop(full)

	if s.Timed() {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			quiz.RunClock(ctx, s, r.interval, nil)
		}()
	}
	return id, ls, nil
}

func (r *registry) evictOldestLocked() *liveSession {
	var oldestID string
	var oldest *liveSession
	for id, ls := range r.sessions {
		if oldest == nil || ls.touched.Before(oldest.touched) {
			oldestID, oldest = id, ls
		}
	}
	delete(r.sessions, oldestID)
	return oldest
}

// get looks id up and marks it as touched.
func (r *registry) get(id string) (*liveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ls, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	ls.touched = r.now()
	return ls, nil
}

// remove stops the clock of id and forgets it.
func (r *registry) remove(id string) (*liveSession, error) {
	r.mu.Lock()
	ls, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	ls.stop()
	return ls, nil
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// close stops the sweep and every clock and waits for them to exit.
func (r *registry) close() {
	r.cancel()
	r.wg.Wait()
}
