package wizard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
)

var (
	jungleID   = uuid.MustParse("a1000000-0000-4000-8000-000000000001")
	beachID    = uuid.MustParse("a1000000-0000-4000-8000-000000000002")
	mountainID = uuid.MustParse("a1000000-0000-4000-8000-000000000003")
	amazonID   = uuid.MustParse("b2000000-0000-4000-8000-000000000001")
	baliID     = uuid.MustParse("b2000000-0000-4000-8000-000000000002")
	himalayaID = uuid.MustParse("b2000000-0000-4000-8000-000000000003")
	giliID     = uuid.MustParse("b2000000-0000-4000-8000-000000000004")
)

type fakeRepo struct {
	mu sync.Mutex

	categories    []domain.Category
	subcategories []domain.Subcategory

	categoriesErr    error
	subcategoriesErr error
	createSubErr     error
	uploadErr        error
	createDestErr    error
	createGuideErr   error
	createSubID      *uuid.UUID

	uploadGate chan struct{}

	calls            []string
	subRequests      []uuid.UUID
	createdSubs      []domain.Subcategory
	createdSubIDs    []uuid.UUID
	createdDests     []domain.Destination
	createdDestIDs   []uuid.UUID
	createdGuides    []domain.Guide
	uploadedBytes    []byte
	uploadedFileName string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: []domain.Category{
			{ID: jungleID, Name: "Jungle"},
			{ID: beachID, Name: "Beach"},
			{ID: mountainID, Name: "Mountain"},
			{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000004"), Name: "City Break"},
			{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000005"), Name: "Desert"},
		},
		subcategories: []domain.Subcategory{
			{ID: amazonID, ParentCategoryID: jungleID, Name: "Amazon Rainforest"},
			{ID: baliID, ParentCategoryID: beachID, Name: "Bali Coasts"},
			{ID: giliID, ParentCategoryID: beachID, Name: "Gili Islands"},
			{ID: himalayaID, ParentCategoryID: mountainID, Name: "Himalayan Foothills"},
		},
	}
}

func (f *fakeRepo) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRepo) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func snapshotOnce[T any](items []T, err error) <-chan domain.Snapshot[T] {
	ch := make(chan domain.Snapshot[T], 1)
	if err != nil {
		ch <- domain.Snapshot[T]{Err: err}
	} else {
		ch <- domain.Snapshot[T]{Items: items}
	}
	return ch
}

func (f *fakeRepo) GetCategories(ctx context.Context) (<-chan domain.Snapshot[domain.Category], error) {
	f.record("GetCategories")
	return snapshotOnce(f.categories, f.categoriesErr), nil
}

func (f *fakeRepo) GetSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) (<-chan domain.Snapshot[domain.Subcategory], error) {
	f.record("GetSubcategoriesByParent:" + categoryID.String())
	f.mu.Lock()
	f.subRequests = append(f.subRequests, categoryID)
	subs := domain.FilterSubcategories(f.subcategories, categoryID)
	f.mu.Unlock()
	return snapshotOnce(subs, f.subcategoriesErr), nil
}

func (f *fakeRepo) GetDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (<-chan domain.Snapshot[domain.Destination], error) {
	f.record("GetDestinationsBySubcategory:" + subcategoryID.String())
	return snapshotOnce([]domain.Destination{}, nil), nil
}

func (f *fakeRepo) GetDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeRepo) GetUserGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeRepo) CreateCategory(ctx context.Context, category domain.Category) (uuid.UUID, error) {
	return uuid.Nil, fmt.Errorf("not implemented")
}

func (f *fakeRepo) CreateSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error) {
	f.record("CreateSubcategory")
	if f.createSubErr != nil {
		return uuid.Nil, f.createSubErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdSubs = append(f.createdSubs, sub)
	if f.createSubID != nil {
		return *f.createSubID, nil
	}
	id := uuid.New()
	f.createdSubIDs = append(f.createdSubIDs, id)
	return id, nil
}

func (f *fakeRepo) CreateDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error) {
	f.record("CreateDestination")
	if f.createDestErr != nil {
		return uuid.Nil, f.createDestErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.createdDests = append(f.createdDests, dest)
	f.createdDestIDs = append(f.createdDestIDs, id)
	return id, nil
}

func (f *fakeRepo) CreateUserGuide(ctx context.Context, guide domain.Guide) error {
	f.record("CreateUserGuide")
	if f.createGuideErr != nil {
		return f.createGuideErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdGuides = append(f.createdGuides, guide)
	return nil
}

func (f *fakeRepo) UploadDestinationCoverImage(ctx context.Context, image domain.ImageUpload) (string, error) {
	f.record("UploadDestinationCoverImage")
	if f.uploadGate != nil {
		<-f.uploadGate
	}
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(image.Reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.uploadedBytes = data
	f.uploadedFileName = image.FileName
	f.mu.Unlock()
	return "https://cdn.example.com/covers/" + image.FileName, nil
}
