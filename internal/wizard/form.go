package wizard

import (
	"bytes"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
)

// Form is the user input collected across the three wizard steps.
type Form struct {
	CategoryID         uuid.UUID   `json:"category_id,omitzero"`
	SubcategoryID      uuid.UUID   `json:"subcategory_id,omitzero"`
	NewSubcategoryName string      `json:"new_subcategory_name"`
	DestinationName    string      `json:"destination_name"`
	Description        string      `json:"description"`
	MapURL             string      `json:"map_url"`
	InitialRule        string      `json:"initial_rule"`
	CoverImage         *CoverImage `json:"cover_image,omitempty"`
}

// CoverImage is a picked image held in memory until submission.
type CoverImage struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`

	data []byte
}

func NewCoverImage(fileName, contentType string, data []byte) *CoverImage {
	return &CoverImage{
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		data:        data,
	}
}

func (c *CoverImage) upload() domain.ImageUpload {
	return domain.ImageUpload{
		Reader:      bytes.NewReader(c.data),
		Size:        c.Size,
		FileName:    c.FileName,
		ContentType: c.ContentType,
	}
}

// Valid reports whether the form may be submitted.
func (f Form) Valid() bool {
	hasSubcategory := f.SubcategoryID != uuid.Nil || !isBlank(f.NewSubcategoryName)
	return !isBlank(f.DestinationName) &&
		f.CategoryID != uuid.Nil &&
		hasSubcategory &&
		f.CoverImage != nil && f.CoverImage.Size > 0 &&
		!isBlank(f.Description) &&
		!isBlank(f.MapURL)
}

// Missing lists the json names of the fields that keep the form invalid.
func (f Form) Missing() []string {
	var missing []string
	if isBlank(f.DestinationName) {
		missing = append(missing, "destination_name")
	}
	if f.CategoryID == uuid.Nil {
		missing = append(missing, "category_id")
	}
	if f.SubcategoryID == uuid.Nil && isBlank(f.NewSubcategoryName) {
		missing = append(missing, "subcategory_id")
	}
	if f.CoverImage == nil || f.CoverImage.Size <= 0 {
		missing = append(missing, "cover_image")
	}
	if isBlank(f.Description) {
		missing = append(missing, "description")
	}
	if isBlank(f.MapURL) {
		missing = append(missing, "map_url")
	}
	return missing
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
