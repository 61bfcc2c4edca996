package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
)

// BrowseService serves the read-only category, subcategory and destination
// lists. List methods take the first snapshot of the live query. A failed
// read yields an empty list together with an error wrapping
// ErrCatalogUnavailable; nothing is retried.
type BrowseService struct {
	repo ports.DestinationsRepository
}

func NewBrowseService(repo ports.DestinationsRepository) *BrowseService {
	return &BrowseService{repo: repo}
}

// DestinationDetail is what the destination screen renders. Guide is nil when
// no guide was written for the destination.
type DestinationDetail struct {
	Destination domain.Destination `json:"destination"`
	Guide       *domain.Guide      `json:"guide,omitempty"`
}

func (s *BrowseService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := s.repo.GetCategories(ctx)
	return firstSnapshot(ctx, ch, err)
}

func (s *BrowseService) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := s.repo.GetSubcategoriesByParent(ctx, categoryID)
	subs, err := firstSnapshot(ctx, ch, err)
	if err != nil {
		return subs, err
	}
	return domain.FilterSubcategories(subs, categoryID), nil
}

func (s *BrowseService) ListDestinations(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Destination, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := s.repo.GetDestinationsBySubcategory(ctx, subcategoryID)
	dests, err := firstSnapshot(ctx, ch, err)
	if err != nil {
		return dests, err
	}
	return domain.FilterDestinations(dests, subcategoryID), nil
}

func (s *BrowseService) WatchCategories(ctx context.Context) (<-chan domain.Snapshot[domain.Category], error) {
	return s.repo.GetCategories(ctx)
}

func (s *BrowseService) WatchSubcategories(ctx context.Context, categoryID uuid.UUID) (<-chan domain.Snapshot[domain.Subcategory], error) {
	return s.repo.GetSubcategoriesByParent(ctx, categoryID)
}

func (s *BrowseService) WatchDestinations(ctx context.Context, subcategoryID uuid.UUID) (<-chan domain.Snapshot[domain.Destination], error) {
	return s.repo.GetDestinationsBySubcategory(ctx, subcategoryID)
}

func (s *BrowseService) GetDestinationDetail(ctx context.Context, id uuid.UUID) (*DestinationDetail, error) {
	dest, err := s.repo.GetDestination(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &DestinationDetail{Destination: *dest}
	guide, err := s.repo.GetUserGuide(ctx, id)
	switch {
	case err == nil:
		detail.Guide = guide
	case errors.Is(err, ErrGuideNotFound):
	default:
		return nil, err
	}
	return detail, nil
}

func firstSnapshot[T any](ctx context.Context, ch <-chan domain.Snapshot[T], err error) ([]T, error) {
	empty := make([]T, 0)
	if err != nil {
		return empty, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	select {
	case snap, ok := <-ch:
		if !ok {
			return empty, fmt.Errorf("%w: stream closed", ErrCatalogUnavailable)
		}
		if snap.Err != nil {
			return empty, fmt.Errorf("%w: %w", ErrCatalogUnavailable, snap.Err)
		}
		if snap.Items == nil {
			return empty, nil
		}
		return snap.Items, nil
	case <-ctx.Done():
		return empty, fmt.Errorf("%w: %w", ErrCatalogUnavailable, ctx.Err())
	}
}
