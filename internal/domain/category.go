package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the top-level grouping of destinations, e.g. "Beach".
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Subcategory groups destinations inside a Category, e.g. "Bali Coasts".
type Subcategory struct {
	ID               uuid.UUID `db:"id" json:"id"`
	ParentCategoryID uuid.UUID `db:"parent_category_id" json:"parent_category_id"`
	Name             string    `db:"name" json:"name"`
	ImageURL         string    `db:"image_url" json:"image_url"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// FilterSubcategories returns the subcategories whose parent is categoryID,
// keeping the order in which they arrived.
func FilterSubcategories(subs []Subcategory, categoryID uuid.UUID) []Subcategory {
	out := make([]Subcategory, 0, len(subs))
	for _, sub := range subs {
		if sub.ParentCategoryID == categoryID {
			out = append(out, sub)
		}
	}
	return out
}
