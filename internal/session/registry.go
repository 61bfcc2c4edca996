// Package session keeps short-lived, in-memory form sessions keyed by id.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 30 * time.Minute

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Registry maps session ids to values and forgets values that have not been
// touched for longer than its TTL.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry[T]
	ttl     time.Duration
	now     func() time.Time
	newID   func() uuid.UUID
	onEvict func(id uuid.UUID, value T)
}

func NewRegistry[T any](ttl time.Duration) *Registry[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry[T]{
		entries: make(map[uuid.UUID]*entry[T]),
		ttl:     ttl,
		now:     time.Now,
		newID:   uuid.New,
	}
}

func (r *Registry[T]) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// OnEvict registers a callback run for every value removed by Sweep or
// Delete. It runs without the registry lock held.
func (r *Registry[T]) OnEvict(fn func(id uuid.UUID, value T)) {
	r.onEvict = fn
}

func (r *Registry[T]) Create(value T) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newID()
	r.entries[id] = &entry[T]{value: value, lastSeen: r.now()}
	return id
}

// Get returns the value and refreshes its idle timer.
func (r *Registry[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	e, ok := r.entries[id]
	if !ok {
		return zero, false
	}
	now := r.now()
	if now.Sub(e.lastSeen) > r.ttl {
		return zero, false
	}
	e.lastSeen = now
	return e.value, true
}

func (r *Registry[T]) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if ok && r.onEvict != nil {
		r.onEvict(id, e.value)
	}
	return ok
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops expired sessions and reports how many were removed.
func (r *Registry[T]) Sweep() int {
	now := r.now()
	gone := make(map[uuid.UUID]T)

	r.mu.Lock()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			gone[id] = e.value
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	if r.onEvict != nil {
		for id, value := range gone {
			r.onEvict(id, value)
		}
	}
	return len(gone)
}

// Run sweeps every interval until ctx is done.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
