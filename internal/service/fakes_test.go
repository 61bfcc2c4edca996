package service

import (
	"context"
	"database/sql"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/media"
)

type fakeCatalogStore struct {
	mu sync.Mutex

	categories    []domain.Category
	subcategories []domain.Subcategory
	destinations  []domain.Destination
	guides        map[uuid.UUID]domain.Guide

	listErr   error
	insertErr error
	guideErr  error

	listSubcategoryCalls []uuid.UUID
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{guides: make(map[uuid.UUID]domain.Guide)}
}

func (f *fakeCatalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Category(nil), f.categories...), nil
}

func (f *fakeCatalogStore) ListSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listSubcategoryCalls = append(f.listSubcategoryCalls, categoryID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return domain.FilterSubcategories(f.subcategories, categoryID), nil
}

func (f *fakeCatalogStore) ListDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return domain.FilterDestinations(f.destinations, subcategoryID), nil
}

func (f *fakeCatalogStore) FindDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.destinations {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogStore) FindGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.guideErr != nil {
		return nil, f.guideErr
	}
	g, ok := f.guides[destinationID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &g, nil
}

func (f *fakeCatalogStore) InsertCategory(ctx context.Context, category domain.Category) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}
	category.ID = uuid.New()
	f.categories = append(f.categories, category)
	return category.ID, nil
}

func (f *fakeCatalogStore) InsertSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}
	sub.ID = uuid.New()
	f.subcategories = append(f.subcategories, sub)
	return sub.ID, nil
}

func (f *fakeCatalogStore) InsertDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}
	dest.ID = uuid.New()
	f.destinations = append(f.destinations, dest)
	return dest.ID, nil
}

func (f *fakeCatalogStore) InsertGuide(ctx context.Context, guide domain.Guide) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.guides[guide.DestinationID] = guide
	return nil
}

type fakeChangeFeed struct {
	mu   sync.Mutex
	subs map[string][]chan string
}

func newFakeChangeFeed() *fakeChangeFeed {
	return &fakeChangeFeed{subs: make(map[string][]chan string)}
}

func (f *fakeChangeFeed) Subscribe(collection string) (<-chan string, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan string, 1)
	f.subs[collection] = append(f.subs[collection], ch)
	return ch, func() {}
}

func (f *fakeChangeFeed) publish(collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[collection] {
		select {
		case ch <- collection:
		default:
		}
	}
}

type uploadCall struct {
	bucket      string
	objectName  string
	contentType string
	size        int64
	body        []byte
}

type fakeStorage struct {
	url      string
	err      error
	uploaded []uploadCall
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, _ := io.ReadAll(reader)
	f.uploaded = append(f.uploaded, uploadCall{
		bucket:      bucket,
		objectName:  objectName,
		contentType: contentType,
		size:        size,
		body:        body,
	})
	return f.url, nil
}

func (f *fakeStorage) EnsureBucket(ctx context.Context, bucket string) error {
	return nil
}

type fakeProcessor struct {
	out   []byte
	calls int
}

func (f *fakeProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	f.calls++
	return &media.Result{Bytes: f.out, ContentType: upload.ContentType, Resized: true}, nil
}
