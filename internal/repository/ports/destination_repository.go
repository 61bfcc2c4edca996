package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
)

// DestinationsRepository is the contract the browser and the creation
// wizard consume. Get* methods return live queries: the channel delivers a
// snapshot right away and another one whenever the underlying collection
// changes, until ctx is cancelled.
type DestinationsRepository interface {
	GetCategories(ctx context.Context) (<-chan domain.Snapshot[domain.Category], error)
	GetSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) (<-chan domain.Snapshot[domain.Subcategory], error)
	GetDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (<-chan domain.Snapshot[domain.Destination], error)

	GetDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	GetUserGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error)

	CreateCategory(ctx context.Context, category domain.Category) (uuid.UUID, error)
	CreateSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error)
	CreateDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error)
	CreateUserGuide(ctx context.Context, guide domain.Guide) error
	UploadDestinationCoverImage(ctx context.Context, image domain.ImageUpload) (string, error)
}
