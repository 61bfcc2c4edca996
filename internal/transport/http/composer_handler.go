package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/composer"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/util"
)

type ComposerHandler struct {
	drafts *composer.Registry
}

type draftFieldsRequest struct {
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
}

type urlInputRequest struct {
	Value string `json:"value"`
}

type tagRequest struct {
	Tag string `json:"tag"`
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

func RegisterPostDrafts(e *echo.Echo, drafts *composer.Registry) {
	h := &ComposerHandler{drafts: drafts}

	g := e.Group("/api/v1/posts/drafts")
	g.POST("", h.open)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.updateFields)
	g.DELETE("/:id", h.discard)
	g.POST("/:id/url-inputs", h.addURLInput)
	g.PUT("/:id/url-inputs/:index", h.updateURLInput)
	g.DELETE("/:id/url-inputs/:index", h.removeURLInput)
	g.POST("/:id/url-inputs/:index/commit", h.commitURL)
	g.POST("/:id/tags", h.addTag)
	g.DELETE("/:id/tags/:tag", h.removeTag)
	g.PUT("/:id/rating", h.setRating)
	g.POST("/:id/submit", h.submit)
}

func (h *ComposerHandler) open(c echo.Context) error {
	id, d := h.drafts.Open()
	return c.JSON(http.StatusCreated, util.Envelope{
		"draft_id": id,
		"draft":    d.View(),
	})
}

func (h *ComposerHandler) get(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("draft", d.View()))
}

func (h *ComposerHandler) updateFields(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	var req draftFieldsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if req.Title != nil {
		d.SetTitle(*req.Title)
	}
	if req.Location != nil {
		d.SetLocation(*req.Location)
	}
	if req.Description != nil {
		d.SetDescription(*req.Description)
	}
	if req.Rating != nil {
		d.SetRating(*req.Rating)
	}
	return c.JSON(http.StatusOK, util.Data("draft", d.View()))
}

func (h *ComposerHandler) discard(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := h.drafts.Discard(id); err != nil {
		return writeDraftError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ComposerHandler) addURLInput(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	index := d.AddURLInput()
	return c.JSON(http.StatusCreated, util.Envelope{
		"index": index,
		"draft": d.View(),
	})
}

func (h *ComposerHandler) updateURLInput(c echo.Context) error {
	d, index, err := h.draftSlot(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	var req urlInputRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if err := d.UpdateURLInput(index, req.Value); err != nil {
		return writeDraftError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("draft", d.View()))
}

func (h *ComposerHandler) removeURLInput(c echo.Context) error {
	d, index, err := h.draftSlot(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.RemoveURLInput(index); err != nil {
		return writeDraftError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("draft", d.View()))
}

func (h *ComposerHandler) commitURL(c echo.Context) error {
	d, index, err := h.draftSlot(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.CommitURL(index); err != nil {
		return writeDraftError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("draft", d.View()))
}

func (h *ComposerHandler) addTag(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	added := d.AddTag(req.Tag)
	return c.JSON(http.StatusOK, util.Envelope{
		"added": added,
		"draft": d.View(),
	})
}

func (h *ComposerHandler) removeTag(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tag"))
	}
	removed := d.RemoveTag(tag)
	return c.JSON(http.StatusOK, util.Envelope{
		"removed": removed,
		"draft":   d.View(),
	})
}

func (h *ComposerHandler) setRating(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	d.SetRating(req.Rating)
	return c.JSON(http.StatusOK, util.Data("draft", d.View()))
}

// submit only validates; posts are not stored.
func (h *ComposerHandler) submit(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return writeDraftError(c, err)
	}
	if !d.Submit() {
		return c.JSON(http.StatusUnprocessableEntity, util.Envelope{
			"submitted": false,
			"error":     "a title and at least one image are required",
			"draft":     d.View(),
		})
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"submitted": true,
		"draft":     d.View(),
	})
}

func (h *ComposerHandler) draft(c echo.Context) (*composer.Draft, error) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	return h.drafts.Get(id)
}

func (h *ComposerHandler) draftSlot(c echo.Context) (*composer.Draft, int, error) {
	d, err := h.draft(c)
	if err != nil {
		return nil, 0, err
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return nil, 0, composer.ErrSlotOutOfRange
	}
	return d, index, nil
}

func writeDraftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, composer.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, util.Error("draft not found"))
	case errors.Is(err, errInvalidID):
		return c.JSON(http.StatusBadRequest, util.Error("draft "+err.Error()))
	case errors.Is(err, composer.ErrSlotOutOfRange):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
