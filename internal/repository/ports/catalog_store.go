package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
)

// Collection names double as the NOTIFY payload emitted by the catalog
// triggers, see migrations/00001_catalog.sql.
const (
	CollectionCategories    = "category"
	CollectionSubcategories = "subcategory"
	CollectionDestinations  = "destination"
	CollectionGuides        = "user_guide"
)

// CatalogStore is the document persistence behind DestinationsRepository.
// List methods return one point-in-time read.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error)
	ListDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Destination, error)
	FindDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error)

	InsertCategory(ctx context.Context, category domain.Category) (uuid.UUID, error)
	InsertSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error)
	InsertDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error)
	InsertGuide(ctx context.Context, guide domain.Guide) error
}

// ChangeFeed fans out collection change notifications. Subscribe returns a
// channel that receives the collection name on each write and a cancel
// func that releases it.
type ChangeFeed interface {
	Subscribe(collection string) (<-chan string, func())
}
