package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Destination is a specific travel location. Latitude and Longitude are not
// collected by the creation flow and stay zero; MapURL is the authoritative
// location reference.
type Destination struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SubcategoryID uuid.UUID `db:"subcategory_id" json:"subcategory_id"`
	Name          string    `db:"name" json:"name"`
	Latitude      float64   `db:"latitude" json:"latitude"`
	Longitude     float64   `db:"longitude" json:"longitude"`
	Description   string    `db:"description" json:"description"`
	MapURL        string    `db:"map_url" json:"map_url"`
	CoverImageURL string    `db:"cover_image_url" json:"cover_image_url"`
	CreatorID     string    `db:"creator_id" json:"creator_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// IsComplete reports whether the destination carries both a cover image and
// a map link.
func (d Destination) IsComplete() bool {
	return strings.TrimSpace(d.CoverImageURL) != "" && strings.TrimSpace(d.MapURL) != ""
}

// FilterDestinations returns the destinations that belong to subcategoryID,
// keeping arrival order.
func FilterDestinations(dests []Destination, subcategoryID uuid.UUID) []Destination {
	out := make([]Destination, 0, len(dests))
	for _, d := range dests {
		if d.SubcategoryID == subcategoryID {
			out = append(out, d)
		}
	}
	return out
}
