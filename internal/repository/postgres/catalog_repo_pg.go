package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
)

type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepo(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `
		SELECT id, name, image_url, created_at
		FROM category
		ORDER BY seq ASC
	`
	categories := make([]domain.Category, 0)
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CatalogRepository) ListSubcategoriesByParent(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error) {
	const query = `
		SELECT id, parent_category_id, name, image_url, created_at
		FROM subcategory
		WHERE parent_category_id = $1
		ORDER BY seq ASC
	`
	subs := make([]domain.Subcategory, 0)
	if err := r.db.SelectContext(ctx, &subs, query, categoryID); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *CatalogRepository) ListDestinationsBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Destination, error) {
	const query = `
		SELECT id, subcategory_id, name, latitude, longitude, description,
		       map_url, cover_image_url, creator_id, created_at
		FROM destination
		WHERE subcategory_id = $1
		ORDER BY seq ASC
	`
	dests := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &dests, query, subcategoryID); err != nil {
		return nil, err
	}
	return dests, nil
}

func (r *CatalogRepository) FindDestination(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const query = `
		SELECT id, subcategory_id, name, latitude, longitude, description,
		       map_url, cover_image_url, creator_id, created_at
		FROM destination
		WHERE id = $1
	`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

type guideRow struct {
	DestinationID       uuid.UUID      `db:"destination_id"`
	HowToTravel         string         `db:"how_to_travel"`
	PlacesToSee         pq.StringArray `db:"places_to_see"`
	RulesAndRegulations string         `db:"rules_and_regulations"`
	BestTimeToVisit     string         `db:"best_time_to_visit"`
}

func (r *CatalogRepository) FindGuide(ctx context.Context, destinationID uuid.UUID) (*domain.Guide, error) {
	const query = `
		SELECT destination_id, how_to_travel, places_to_see,
		       rules_and_regulations, best_time_to_visit
		FROM user_guide
		WHERE destination_id = $1
	`
	var row guideRow
	if err := r.db.GetContext(ctx, &row, query, destinationID); err != nil {
		return nil, err
	}
	places := []string(row.PlacesToSee)
	if places == nil {
		places = []string{}
	}
	return &domain.Guide{
		DestinationID:       row.DestinationID,
		HowToTravel:         row.HowToTravel,
		PlacesToSee:         places,
		RulesAndRegulations: row.RulesAndRegulations,
		BestTimeToVisit:     row.BestTimeToVisit,
	}, nil
}

func (r *CatalogRepository) InsertCategory(ctx context.Context, category domain.Category) (uuid.UUID, error) {
	const query = `
		INSERT INTO category (name, image_url)
		VALUES (:name, :image_url)
		RETURNING id
	`
	return r.insertReturningID(ctx, query, map[string]any{
		"name":      strings.TrimSpace(category.Name),
		"image_url": strings.TrimSpace(category.ImageURL),
	})
}

func (r *CatalogRepository) InsertSubcategory(ctx context.Context, sub domain.Subcategory) (uuid.UUID, error) {
	const query = `
		INSERT INTO subcategory (parent_category_id, name, image_url)
		VALUES (:parent_category_id, :name, :image_url)
		RETURNING id
	`
	return r.insertReturningID(ctx, query, map[string]any{
		"parent_category_id": sub.ParentCategoryID,
		"name":               sub.Name,
		"image_url":          sub.ImageURL,
	})
}

func (r *CatalogRepository) InsertDestination(ctx context.Context, dest domain.Destination) (uuid.UUID, error) {
	const query = `
		INSERT INTO destination (
			subcategory_id, name, latitude, longitude, description,
			map_url, cover_image_url, creator_id
		) VALUES (
			:subcategory_id, :name, :latitude, :longitude, :description,
			:map_url, :cover_image_url, :creator_id
		)
		RETURNING id
	`
	return r.insertReturningID(ctx, query, map[string]any{
		"subcategory_id":  dest.SubcategoryID,
		"name":            dest.Name,
		"latitude":        dest.Latitude,
		"longitude":       dest.Longitude,
		"description":     dest.Description,
		"map_url":         dest.MapURL,
		"cover_image_url": dest.CoverImageURL,
		"creator_id":      dest.CreatorID,
	})
}

// InsertGuide writes the guide under its destination id. The primary key on
// destination_id keeps the relationship 1:1.
func (r *CatalogRepository) InsertGuide(ctx context.Context, guide domain.Guide) error {
	const query = `
		INSERT INTO user_guide (
			destination_id, how_to_travel, places_to_see,
			rules_and_regulations, best_time_to_visit
		) VALUES ($1, $2, $3, $4, $5)
	`
	places := guide.PlacesToSee
	if places == nil {
		places = []string{}
	}
	_, err := r.db.ExecContext(ctx, query,
		guide.DestinationID,
		guide.HowToTravel,
		pq.Array(places),
		guide.RulesAndRegulations,
		guide.BestTimeToVisit,
	)
	return err
}

func (r *CatalogRepository) insertReturningID(ctx context.Context, query string, args map[string]any) (uuid.UUID, error) {
	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return uuid.Nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, err
		}
		return id, nil
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, err
	}
	return uuid.Nil, sql.ErrNoRows
}

var _ ports.CatalogStore = (*CatalogRepository)(nil)
