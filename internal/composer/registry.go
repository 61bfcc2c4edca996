package composer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/session"
)

var ErrDraftNotFound = errors.New("post draft not found")

type Registry struct {
	sessions *session.Registry[*Draft]
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{sessions: session.NewRegistry[*Draft](ttl)}
}

func (r *Registry) Open() (uuid.UUID, *Draft) {
	d := NewDraft()
	return r.sessions.Create(d), d
}

func (r *Registry) Get(id uuid.UUID) (*Draft, error) {
	d, ok := r.sessions.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (r *Registry) Discard(id uuid.UUID) error {
	if !r.sessions.Delete(id) {
		return ErrDraftNotFound
	}
	return nil
}

func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	r.sessions.Run(ctx, interval)
}
