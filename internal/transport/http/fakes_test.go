package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/service"
)

var errStoreDown = errors.New("store down")

var (
	jungleID = uuid.MustParse("a1000000-0000-4000-8000-000000000001")
	beachID  = uuid.MustParse("a1000000-0000-4000-8000-000000000002")

	amazonID = uuid.MustParse("b2000000-0000-4000-8000-000000000001")
	baliID   = uuid.MustParse("b2000000-0000-4000-8000-000000000002")
	giliID   = uuid.MustParse("b2000000-0000-4000-8000-000000000004")

	uluwatuID = uuid.MustParse("c3000000-0000-4000-8000-000000000001")
	giliAirID = uuid.MustParse("c3000000-0000-4000-8000-000000000002")
)

// memoryRepo answers every live query with a single snapshot and then closes
// the channel.
type memoryRepo struct {
	mu sync.Mutex

	categories    []domain.Category
	subcategories []domain.Subcategory
	destinations  []domain.Destination
	guides        map[uuid.UUID]domain.Guide

	listErr   error
	uploadErr error

	uploaded []byte
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		categories: []domain.Category{
			{ID: jungleID, Name: "Jungle"},
			{ID: beachID, Name: "Beach"},
		},
		subcategories: []domain.Subcategory{
			{ID: amazonID, ParentCategoryID: jungleID, Name: "Amazon Rainforest"},
			{ID: baliID, ParentCategoryID: beachID, Name: "Bali Coasts"},
			{ID: giliID, ParentCategoryID: beachID, Name: "Gili Islands"},
		},
		destinations: []domain.Destination{
			{ID: uluwatuID, SubcategoryID: baliID, Name: "Uluwatu", MapURL: "https://maps.example/uluwatu", CoverImageURL: "https://cdn.example/u.jpg"},
			{ID: giliAirID, SubcategoryID: giliID, Name: "Gili Air", MapURL: "https://maps.example/gili", CoverImageURL: "https://cdn.example/g.jpg"},
		},
		guides: map[uuid.UUID]domain.Guide{
			uluwatuID: {DestinationID: uluwatuID, PlacesToSee: []string{"Temple"}, RulesAndRegulations: "Cover your shoulders"},
		},
	}
}

func single[T any](items []T, err error) <-chan domain.Snapshot[T] {
	ch := make(chan domain.Snapshot[T], 1)
	if err != nil {
		ch <- domain.Snapshot[T]{Err: err}
	} else {
		ch <- domain.Snapshot[T]{Items: items}
	}
	close(ch)
	return ch
}

func (m *memoryRepo) GetCategories(ctx context.Context) (<-chan domain.Snapshot[domain.Category], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return single(append([]domain.Category{}, m.categories...), m.listErr), nil
}

func (m *memoryRepo) GetSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) (<-chan domain.Snapshot[domain.Subcategory], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return single(domain.FilterSubcategories(m.subcategories, categoryID), m.listErr), nil
}

func (m *memoryRepo) GetDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (<-chan domain.Snapshot[domain.Destination], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return single(domain.FilterDestinations(m.destinations, subcategoryID), m.listErr), nil
}

func (m *memoryRepo) GetDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.destinations {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, service.ErrDestinationNotFound
}

func (m *memoryRepo) GetUserGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guides[destinationID]
	if !ok {
		return nil, service.ErrGuideNotFound
	}
	return &g, nil
}

func (m *memoryRepo) CreateCategory(ctx context.Context, category domain.Category) (uuid.UUID, error) {
	if category.Name == "" {
		return uuid.Nil, fmt.Errorf("%w: category name required", service.ErrCatalogValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = uuid.New()
	m.categories = append(m.categories, category)
	return category.ID, nil
}

func (m *memoryRepo) CreateSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.ID = uuid.New()
	m.subcategories = append(m.subcategories, sub)
	return sub.ID, nil
}

func (m *memoryRepo) CreateDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dest.ID = uuid.New()
	m.destinations = append(m.destinations, dest)
	return dest.ID, nil
}

func (m *memoryRepo) CreateUserGuide(ctx context.Context, guide domain.Guide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guides[guide.DestinationID] = guide
	return nil
}

func (m *memoryRepo) UploadDestinationCoverImage(ctx context.Context, image domain.ImageUpload) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	data, err := io.ReadAll(image.Reader)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded = data
	return "https://cdn.example/covers/" + image.FileName, nil
}

func (m *memoryRepo) destination(id uuid.UUID) (domain.Destination, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.destinations {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Destination{}, false
}

