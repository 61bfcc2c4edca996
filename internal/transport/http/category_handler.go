package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/navigation"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/service"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/util"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

func RegisterCategories(e *echo.Echo, categories *service.CategoryService) {
	h := &CategoryHandler{categories: categories}
	e.POST("/api/v1/categories", h.create)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var input service.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	category, err := h.categories.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrCatalogValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create category"))
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"category": category,
		"route":    navigation.SubcategoryList(category.ID, category.Name),
	})
}
