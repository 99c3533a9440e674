// File path: internal/ratelimit/limiter.go

// Package ratelimit enforces per-client call quotas over a fixed rolling
// window. State is in memory only and is lost on restart.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultMaxCalls = 15
	DefaultWindow   = 24 * time.Hour
)

type counter struct {
	count       int
	windowStart time.Time
}

// Limiter counts calls per client id. A window resets only when a check
// observes that it has elapsed; there is no background timer.
type Limiter struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	now      func() time.Time
	counters map[string]*counter
}

type Option func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

func New(maxCalls int, window time.Duration, opts ...Option) *Limiter {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxCalls
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{
		maxCalls: maxCalls,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*counter),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether clientID may make another call, counting it if so.
// Denied calls are not counted.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	c, ok := l.counters[clientID]
	if !ok {
		c = &counter{windowStart: now}
		l.counters[clientID] = c
	}
	if now.Sub(c.windowStart) >= l.window {
		c.count = 0
		c.windowStart = now
	}
	if c.count >= l.maxCalls {
		return false
	}
	c.count++
	return true
}

// Remaining returns how many calls clientID has left in its current window
// without consuming one.
func (l *Limiter) Remaining(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.counters[clientID]
	if !ok || l.now().Sub(c.windowStart) >= l.window {
		return l.maxCalls
	}
	return l.maxCalls - c.count
}

// Count returns the calls recorded for clientID in its stored window.
func (l *Limiter) Count(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.counters[clientID]; ok {
		return c.count
	}
	return 0
}

func (l *Limiter) MaxCalls() int {
	return l.maxCalls
}

func (l *Limiter) Window() time.Duration {
	return l.window
}
