// Package navigation builds and parses the screen routes shared with the
// mobile client.
package navigation

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	RouteMainCategoryDisplay = "main_category_display"
	RouteSubcategoryList     = "subcategory_list/{catId}/{catName}"
	RouteSubcategoryDisplay  = "subcategory_display/{subId}/{subName}"
	RouteNewDestination      = "new_destination"

	prefixSubcategoryList    = "subcategory_list"
	prefixSubcategoryDisplay = "subcategory_display"
)

type Screen string

const (
	ScreenMainCategoryDisplay Screen = "main_category_display"
	ScreenSubcategoryList     Screen = "subcategory_list"
	ScreenSubcategoryDisplay  Screen = "subcategory_display"
	ScreenNewDestination      Screen = "new_destination"
)

var ErrUnknownRoute = errors.New("unknown route")

// Route is a parsed route. ID and Name are set for the parameterized screens.
type Route struct {
	Screen Screen    `json:"screen"`
	ID     uuid.UUID `json:"id,omitzero"`
	Name   string    `json:"name,omitempty"`
}

func MainCategoryDisplay() string {
	return RouteMainCategoryDisplay
}

func NewDestination() string {
	return RouteNewDestination
}

// SubcategoryList is the route listing the subcategories of a category. The
// display name is percent-encoded so names with "/" or spaces survive.
func SubcategoryList(categoryID uuid.UUID, categoryName string) string {
	return join(prefixSubcategoryList, categoryID, categoryName)
}

// SubcategoryDisplay is the route listing the destinations of a subcategory.
func SubcategoryDisplay(subcategoryID uuid.UUID, subcategoryName string) string {
	return join(prefixSubcategoryDisplay, subcategoryID, subcategoryName)
}

func join(prefix string, id uuid.UUID, name string) string {
	return prefix + "/" + id.String() + "/" + url.PathEscape(name)
}

// Parse decodes a route produced by the builders above. The id segment must
// be a UUID.
func Parse(route string) (Route, error) {
	switch route {
	case RouteMainCategoryDisplay:
		return Route{Screen: ScreenMainCategoryDisplay}, nil
	case RouteNewDestination:
		return Route{Screen: ScreenNewDestination}, nil
	}

	parts := strings.Split(route, "/")
	if len(parts) != 3 || parts[1] == "" {
		return Route{}, ErrUnknownRoute
	}
	var screen Screen
	switch parts[0] {
	case prefixSubcategoryList:
		screen = ScreenSubcategoryList
	case prefixSubcategoryDisplay:
		screen = ScreenSubcategoryDisplay
	default:
		return Route{}, ErrUnknownRoute
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return Route{}, ErrUnknownRoute
	}
	name, err := url.PathUnescape(parts[2])
	if err != nil {
		return Route{}, ErrUnknownRoute
	}
	return Route{Screen: screen, ID: id, Name: name}, nil
}
