package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/session"
)

var ErrWizardNotFound = errors.New("wizard session not found")

// Registry hands out wizard sessions and closes the ones left idle past the
// TTL.
type Registry struct {
	repo     ports.DestinationsRepository
	sessions *session.Registry[*Wizard]
}

func NewRegistry(repo ports.DestinationsRepository, ttl time.Duration) *Registry {
	sessions := session.NewRegistry[*Wizard](ttl)
	sessions.OnEvict(func(_ uuid.UUID, w *Wizard) { w.Close() })
	return &Registry{repo: repo, sessions: sessions}
}

func (r *Registry) SetClock(now func() time.Time) {
	r.sessions.SetClock(now)
}

func (r *Registry) Open() (uuid.UUID, *Wizard) {
	w := New(r.repo)
	return r.sessions.Create(w), w
}

// Scratch returns a wizard the registry does not track, for callers that
// drive the whole flow in one request.
func (r *Registry) Scratch() *Wizard {
	return New(r.repo)
}

func (r *Registry) Get(id uuid.UUID) (*Wizard, error) {
	w, ok := r.sessions.Get(id)
	if !ok {
		return nil, ErrWizardNotFound
	}
	return w, nil
}

func (r *Registry) Discard(id uuid.UUID) error {
	if !r.sessions.Delete(id) {
		return ErrWizardNotFound
	}
	return nil
}

func (r *Registry) Sweep() int {
	return r.sessions.Sweep()
}

func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	r.sessions.Run(ctx, interval)
}
