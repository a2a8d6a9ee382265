package service

import (
	"sync"
	"time"
)

// monthLocks serializes synchronization runs per target month, so two
// overlapping runs cannot interleave their upsert and prune steps. Runs for
// different months proceed independently.
type monthLocks struct {
	mu    sync.Mutex
	locks map[time.Time]*sync.Mutex
}

func newMonthLocks() *monthLocks {
	return &monthLocks{locks: make(map[time.Time]*sync.Mutex)}
}

// Lock acquires the mutex for the given month and returns its release
// function. The month must already be normalized to month start.
func (l *monthLocks) Lock(month time.Time) func() {
	l.mu.Lock()
	m, ok := l.locks[month]
	if !ok {
		m = &sync.Mutex{}
		l.locks[month] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
