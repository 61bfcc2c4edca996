package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/media"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
)

const defaultImageContentType = "image/jpeg"

var supportedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type CatalogConfig struct {
	Bucket            string
	PublicBaseURL     string
	ImageMaxBytes     int64
	ImageMaxDimension int
	ImageProcessor    media.Processor
}

// CatalogRepository is the DestinationsRepository backed by the catalog
// tables, the change feed and object storage.
type CatalogRepository struct {
	store   ports.CatalogStore
	changes ports.ChangeFeed
	storage ports.ObjectStorage

	bucket            string
	publicBase        string
	imageMaxBytes     int64
	imageMaxDimension int
	imageProcessor    media.Processor
	newObjectID       func() string
}

func NewCatalogRepository(store ports.CatalogStore, changes ports.ChangeFeed, storage ports.ObjectStorage, cfg CatalogConfig) *CatalogRepository {
	imageMax := cfg.ImageMaxBytes
	if imageMax <= 0 {
		imageMax = 5 * 1024 * 1024
	}
	maxDimension := cfg.ImageMaxDimension
	if maxDimension <= 0 {
		maxDimension = media.DefaultMaxDimension
	}
	return &CatalogRepository{
		store:             store,
		changes:           changes,
		storage:           storage,
		bucket:            cfg.Bucket,
		publicBase:        strings.TrimRight(cfg.PublicBaseURL, "/"),
		imageMaxBytes:     imageMax,
		imageMaxDimension: maxDimension,
		imageProcessor:    cfg.ImageProcessor,
		newObjectID:       uuid.NewString,
	}
}

func (r *CatalogRepository) GetCategories(ctx context.Context) (<-chan domain.Snapshot[domain.Category], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return liveQuery(ctx, r.changes, ports.CollectionCategories, r.store.ListCategories), nil
}

func (r *CatalogRepository) GetSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) (<-chan domain.Snapshot[domain.Subcategory], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category id required", ErrCatalogValidation)
	}
	return liveQuery(ctx, r.changes, ports.CollectionSubcategories, func(ctx context.Context) ([]domain.Subcategory, error) {
		return r.store.ListSubcategoriesByParent(ctx, categoryID)
	}), nil
}

func (r *CatalogRepository) GetDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (<-chan domain.Snapshot[domain.Destination], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if subcategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: subcategory id required", ErrCatalogValidation)
	}
	return liveQuery(ctx, r.changes, ports.CollectionDestinations, func(ctx context.Context) ([]domain.Destination, error) {
		return r.store.ListDestinationsBySubcategory(ctx, subcategoryID)
	}), nil
}

func (r *CatalogRepository) GetDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := r.store.FindDestination(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (r *CatalogRepository) GetUserGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error) {
	guide, err := r.store.FindGuide(ctx, destinationID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	return guide, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category domain.Category) (uuid.UUID, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return uuid.Nil, fmt.Errorf("%w: category name required", ErrCatalogValidation)
	}
	return r.store.InsertCategory(ctx, category)
}

func (r *CatalogRepository) CreateSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	if sub.Name == "" || sub.ParentCategoryID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subcategory requires name and parent category", ErrCatalogValidation)
	}
	id, err := r.store.InsertSubcategory(ctx, sub)
	if err != nil {
		if isForeignKeyViolation(err) {
			return uuid.Nil, fmt.Errorf("%w: category %s", ErrUnknownReference, sub.ParentCategoryID)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *CatalogRepository) CreateDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error) {
	if !dest.IsComplete() {
		return uuid.Nil, ErrDestinationIncomplete
	}
	if dest.SubcategoryID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subcategory id required", ErrCatalogValidation)
	}
	id, err := r.store.InsertDestination(ctx, dest)
	if err != nil {
		if isForeignKeyViolation(err) {
			return uuid.Nil, fmt.Errorf("%w: subcategory %s", ErrUnknownReference, dest.SubcategoryID)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *CatalogRepository) CreateUserGuide(ctx context.Context, guide domain.Guide) error {
	if guide.DestinationID == uuid.Nil {
		return fmt.Errorf("%w: destination id required", ErrCatalogValidation)
	}
	err := r.store.InsertGuide(ctx, guide)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return ErrGuideExists
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: destination %s", ErrUnknownReference, guide.DestinationID)
	default:
		return err
	}
}

func (r *CatalogRepository) UploadDestinationCoverImage(ctx context.Context, image domain.ImageUpload) (string, error) {
	if image.IsEmpty() {
		return "", fmt.Errorf("%w: empty upload", ErrCoverImageRequired)
	}
	if image.Size > r.imageMaxBytes {
		return "", ErrCoverImageTooLarge
	}

	contentType := strings.TrimSpace(image.ContentType)
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(image.FileName))
	}
	if contentType == "" {
		contentType = defaultImageContentType
	}
	if _, ok := supportedImageTypes[contentType]; !ok {
		return "", ErrCoverImageUnsupportedType
	}

	reader, size, contentType, err := r.prepareCover(ctx, media.Upload{
		Reader:      image.Reader,
		Size:        image.Size,
		FileName:    image.FileName,
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("destinations/covers/%s%s", r.newObjectID(), extensionFor(contentType, image.FileName))
	publicURL, err := r.storage.Upload(ctx, r.bucket, objectName, contentType, reader, size)
	if err != nil {
		return "", err
	}
	if r.publicBase != "" {
		publicURL = r.publicBase + "/" + strings.TrimLeft(objectName, "/")
	}
	return publicURL, nil
}

// prepareCover downsizes the image when a processor is configured. Without
// one the upload is stored as received.
func (r *CatalogRepository) prepareCover(ctx context.Context, upload media.Upload) (io.Reader, int64, string, error) {
	if r.imageProcessor == nil {
		return upload.Reader, upload.Size, upload.ContentType, nil
	}
	result, err := r.imageProcessor.Process(ctx, upload, r.imageMaxDimension)
	if err != nil {
		return nil, 0, "", fmt.Errorf("process cover image: %w", err)
	}
	return bytes.NewReader(result.Bytes), int64(len(result.Bytes)), result.ContentType, nil
}

func extensionFor(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	exts, _ := mime.ExtensionsByType(contentType)
	if len(exts) > 0 {
		return exts[0]
	}
	if fileExt := filepath.Ext(fileName); fileExt != "" {
		return fileExt
	}
	return ".img"
}

// liveQuery emits the current result of load, then a fresh result each time
// the collection changes. The channel closes when ctx is done. Subscribing
// before the first load means a write racing the initial read still
// triggers a re-read.
func liveQuery[T any](ctx context.Context, changes ports.ChangeFeed, collection string, load func(context.Context) ([]T, error)) <-chan domain.Snapshot[T] {
	out := make(chan domain.Snapshot[T], 1)

	var signals <-chan string
	release := func() {}
	if changes != nil {
		signals, release = changes.Subscribe(collection)
	}

	go func() {
		defer close(out)
		defer release()
		for {
			items, err := load(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				items = nil
			}
			select {
			case out <- domain.Snapshot[T]{Items: items, Err: err}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
			}
		}
	}()
	return out
}

var _ ports.DestinationsRepository = (*CatalogRepository)(nil)
