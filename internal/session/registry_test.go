package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time         { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRegistryCreateGetDelete(t *testing.T) {
	r := NewRegistry[string](time.Minute)
	id := r.Create("draft")
	if id == uuid.Nil {
		t.Fatalf("expected id")
	}
	got, ok := r.Get(id)
	if !ok || got != "draft" {
		t.Fatalf("expected draft, got %q (%v)", got, ok)
	}
	if !r.Delete(id) {
		t.Fatalf("expected delete to report removal")
	}
	if r.Delete(id) {
		t.Fatalf("second delete should report false")
	}
	if _, ok := r.Get(id); ok {
		t.Fatalf("expected value to be gone")
	}
}

func TestRegistryExpiresIdleSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRegistry[int](10 * time.Minute)
	r.SetClock(clock.now)

	var evicted []uuid.UUID
	r.OnEvict(func(id uuid.UUID, value int) { evicted = append(evicted, id) })

	stale := r.Create(1)
	fresh := r.Create(2)

	clock.advance(8 * time.Minute)
	if _, ok := r.Get(fresh); !ok {
		t.Fatalf("expected fresh session")
	}
	clock.advance(5 * time.Minute)

	if _, ok := r.Get(stale); ok {
		t.Fatalf("expected stale session to be expired")
	}
	if n := r.Sweep(); n != 1 {
		t.Fatalf("expected one eviction, got %d", n)
	}
	if len(evicted) != 1 || evicted[0] != stale {
		t.Fatalf("unexpected evictions %v", evicted)
	}
	if r.Len() != 1 {
		t.Fatalf("expected one remaining session, got %d", r.Len())
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry[int](time.Minute)
	r.Create(1)
	if _, ok := r.Get(uuid.New()); ok {
		t.Fatalf("unknown id must not resolve")
	}
	if r.Delete(uuid.Nil) {
		t.Fatalf("nil id must not delete anything")
	}
}

func TestRegistryDefaultsTTL(t *testing.T) {
	r := NewRegistry[int](0)
	if r.ttl != DefaultTTL {
		t.Fatalf("expected default ttl, got %s", r.ttl)
	}
}
