package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/navigation"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/service"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/util"
)

var errInvalidID = errors.New("id must be a valid UUID")

type BrowseHandler struct {
	browse *service.BrowseService
}

type categoryResponse struct {
	domain.Category
	Route string `json:"route"`
}

type subcategoryResponse struct {
	domain.Subcategory
	Route string `json:"route"`
}

func RegisterBrowse(e *echo.Echo, browse *service.BrowseService) {
	h := &BrowseHandler{browse: browse}

	g := e.Group("/api/v1")
	g.GET("/categories", h.listCategories)
	g.GET("/categories/watch", h.watchCategories)
	g.GET("/categories/:id/subcategories", h.listSubcategories)
	g.GET("/categories/:id/subcategories/watch", h.watchSubcategories)
	g.GET("/subcategories/:id/destinations", h.listDestinations)
	g.GET("/subcategories/:id/destinations/watch", h.watchDestinations)
	g.GET("/destinations/:id", h.getDestination)
	g.GET("/routes/resolve", h.resolveRoute)
}

func (h *BrowseHandler) listCategories(c echo.Context) error {
	items, err := h.browse.ListCategories(c.Request().Context())
	return writeList(c, "categories", buildCategoryResponses(items), err)
}

func (h *BrowseHandler) listSubcategories(c echo.Context) error {
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeBrowseError(c, err)
	}
	items, err := h.browse.ListSubcategories(c.Request().Context(), categoryID)
	return writeList(c, "subcategories", buildSubcategoryResponses(items), err)
}

func (h *BrowseHandler) listDestinations(c echo.Context) error {
	subcategoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeBrowseError(c, err)
	}
	items, err := h.browse.ListDestinations(c.Request().Context(), subcategoryID)
	if items == nil {
		items = []domain.Destination{}
	}
	return writeList(c, "destinations", items, err)
}

func (h *BrowseHandler) watchCategories(c echo.Context) error {
	ch, err := h.browse.WatchCategories(c.Request().Context())
	if err != nil {
		return writeBrowseError(c, err)
	}
	return pump(c, ch, func(snap domain.Snapshot[domain.Category]) (string, any) {
		return snapshotEvent(snap, buildCategoryResponses(snap.Items))
	})
}

func (h *BrowseHandler) watchSubcategories(c echo.Context) error {
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeBrowseError(c, err)
	}
	ch, err := h.browse.WatchSubcategories(c.Request().Context(), categoryID)
	if err != nil {
		return writeBrowseError(c, err)
	}
	return pump(c, ch, func(snap domain.Snapshot[domain.Subcategory]) (string, any) {
		return snapshotEvent(snap, buildSubcategoryResponses(domain.FilterSubcategories(snap.Items, categoryID)))
	})
}

func (h *BrowseHandler) watchDestinations(c echo.Context) error {
	subcategoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeBrowseError(c, err)
	}
	ch, err := h.browse.WatchDestinations(c.Request().Context(), subcategoryID)
	if err != nil {
		return writeBrowseError(c, err)
	}
	return pump(c, ch, func(snap domain.Snapshot[domain.Destination]) (string, any) {
		return snapshotEvent(snap, domain.FilterDestinations(snap.Items, subcategoryID))
	})
}

func (h *BrowseHandler) getDestination(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeBrowseError(c, err)
	}
	detail, err := h.browse.GetDestinationDetail(c.Request().Context(), id)
	if err != nil {
		return writeBrowseError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": detail.Destination,
		"guide":       detail.Guide,
	})
}

// resolveRoute maps a client route to the API resource that backs its
// screen.
func (h *BrowseHandler) resolveRoute(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("route"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, util.Error("route is required"))
	}
	route, err := navigation.Parse(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"route":    route,
		"resource": resourceFor(route),
	})
}

func resourceFor(route navigation.Route) string {
	switch route.Screen {
	case navigation.ScreenSubcategoryList:
		return "/api/v1/categories/" + route.ID.String() + "/subcategories"
	case navigation.ScreenSubcategoryDisplay:
		return "/api/v1/subcategories/" + route.ID.String() + "/destinations"
	case navigation.ScreenNewDestination:
		return "/api/v1/wizards"
	default:
		return "/api/v1/categories"
	}
}

// writeList answers with the list even when loading failed; the client shows
// an empty screen plus the error.
func writeList(c echo.Context, key string, items any, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, util.Data(key, items))
	}
	if errors.Is(err, service.ErrCatalogValidation) {
		return c.JSON(http.StatusBadRequest, util.Data(key, items).With("error", err.Error()))
	}
	log.Printf("browse %s: %v", key, err)
	return c.JSON(http.StatusServiceUnavailable, util.Data(key, items).With("error", "unable to load "+key))
}

func writeBrowseError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Error("destination not found"))
	case errors.Is(err, service.ErrCatalogValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrCatalogUnavailable):
		return c.JSON(http.StatusServiceUnavailable, util.Error("catalog unavailable"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

func snapshotEvent[T, R any](snap domain.Snapshot[T], items []R) (string, any) {
	if snap.Err != nil {
		return "error", util.Data("items", []R{}).With("error", "unable to load items")
	}
	if items == nil {
		items = []R{}
	}
	return "snapshot", util.Data("items", items)
}

func buildCategoryResponses(items []domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, categoryResponse{Category: item, Route: navigation.SubcategoryList(item.ID, item.Name)})
	}
	return out
}

func buildSubcategoryResponses(items []domain.Subcategory) []subcategoryResponse {
	out := make([]subcategoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, subcategoryResponse{Subcategory: item, Route: navigation.SubcategoryDisplay(item.ID, item.Name)})
	}
	return out
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}
