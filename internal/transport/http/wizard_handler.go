package http

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/navigation"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/service"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/util"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/wizard"
)

const defaultCoverImageMaxBytes = 5 * 1024 * 1024

type WizardHandler struct {
	wizards       *wizard.Registry
	maxImageBytes int64
}

type wizardFieldsRequest struct {
	NewSubcategoryName *string `json:"new_subcategory_name"`
	DestinationName    *string `json:"destination_name"`
	Description        *string `json:"description"`
	MapURL             *string `json:"map_url"`
	InitialRule        *string `json:"initial_rule"`
}

type selectCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

type selectSubcategoryRequest struct {
	SubcategoryID string `json:"subcategory_id"`
}

type submitWizardRequest struct {
	CreatorID string `json:"creator_id"`
}

func RegisterWizards(e *echo.Echo, wizards *wizard.Registry, maxImageBytes int64) {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultCoverImageMaxBytes
	}
	h := &WizardHandler{wizards: wizards, maxImageBytes: maxImageBytes}

	g := e.Group("/api/v1/wizards")
	g.POST("", h.open)
	g.GET("/:id", h.get)
	g.GET("/:id/events", h.events)
	g.PATCH("/:id", h.updateFields)
	g.PUT("/:id/category", h.selectCategory)
	g.PUT("/:id/subcategory", h.selectSubcategory)
	g.PUT("/:id/cover-image", h.uploadCoverImage)
	g.DELETE("/:id/cover-image", h.clearCoverImage)
	g.POST("/:id/submit", h.submit)
	g.DELETE("/:id", h.discard)

	e.POST("/api/v1/destinations", h.createDestination)
}

func (h *WizardHandler) open(c echo.Context) error {
	id, w := h.wizards.Open()
	if err := w.LoadCategories(c.Request().Context()); err != nil {
		log.Printf("wizard %s: %v", id, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"wizard_id": id,
		"wizard":    w.Snapshot(),
		"route":     navigation.NewDestination(),
	})
}

func (h *WizardHandler) get(c echo.Context) error {
	_, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("wizard", w.Snapshot()))
}

func (h *WizardHandler) events(c echo.Context) error {
	_, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	ch, cancel := w.Subscribe()
	defer cancel()
	return pump(c, ch, func(snap wizard.Snapshot) (string, any) {
		return "wizard", snap
	})
}

func (h *WizardHandler) updateFields(c echo.Context) error {
	_, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	var req wizardFieldsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if req.NewSubcategoryName != nil {
		w.SetNewSubcategoryName(*req.NewSubcategoryName)
	}
	if req.DestinationName != nil {
		w.SetDestinationName(*req.DestinationName)
	}
	if req.Description != nil {
		w.SetDescription(*req.Description)
	}
	if req.MapURL != nil {
		w.SetMapURL(*req.MapURL)
	}
	if req.InitialRule != nil {
		w.SetInitialRule(*req.InitialRule)
	}
	return c.JSON(http.StatusOK, util.Data("wizard", w.Snapshot()))
}

func (h *WizardHandler) selectCategory(c echo.Context) error {
	id, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	var req selectCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("category_id is required"))
	}
	categoryID, err := uuid.Parse(strings.TrimSpace(req.CategoryID))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("category_id must be a valid UUID"))
	}
	// A failed load is reported through the snapshot's load_error.
	if err := w.SelectCategory(c.Request().Context(), categoryID); err != nil {
		log.Printf("wizard %s: %v", id, err)
	}
	return c.JSON(http.StatusOK, util.Data("wizard", w.Snapshot()))
}

func (h *WizardHandler) selectSubcategory(c echo.Context) error {
	_, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	var req selectSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	subcategoryID, err := parseOptionalUUID(req.SubcategoryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("subcategory_id must be a valid UUID"))
	}
	if err := w.SelectSubcategory(subcategoryID); err != nil {
		return writeWizardError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("wizard", w.Snapshot()))
}

func (h *WizardHandler) uploadCoverImage(c echo.Context) error {
	_, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file is required"))
	}
	image, err := h.readCoverImage(fileHeader)
	if err != nil {
		return writeWizardError(c, err)
	}
	w.SetCoverImage(image)
	return c.JSON(http.StatusOK, util.Data("wizard", w.Snapshot()))
}

func (h *WizardHandler) clearCoverImage(c echo.Context) error {
	_, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	w.SetCoverImage(nil)
	return c.JSON(http.StatusOK, util.Data("wizard", w.Snapshot()))
}

func (h *WizardHandler) submit(c echo.Context) error {
	id, w, err := h.lookup(c)
	if err != nil {
		return writeWizardError(c, err)
	}
	var req submitWizardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	creatorID := resolveCreator(c, req.CreatorID)
	if creatorID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("creator id required"))
	}
	state, err := w.Submit(c.Request().Context(), creatorID)
	return writeSubmitResult(c, id.String(), w, state, err)
}

func (h *WizardHandler) discard(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeWizardError(c, err)
	}
	if err := h.wizards.Discard(id); err != nil {
		return writeWizardError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// createDestination runs the whole wizard from one multipart request.
func (h *WizardHandler) createDestination(c echo.Context) error {
	creatorID := resolveCreator(c, c.FormValue("creator_id"))
	if creatorID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("creator id required"))
	}

	categoryID, err := parseOptionalUUID(c.FormValue("category_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("category_id must be a valid UUID"))
	}
	subcategoryID, err := parseOptionalUUID(c.FormValue("subcategory_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("subcategory_id must be a valid UUID"))
	}

	var image *wizard.CoverImage
	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		image, err = h.readCoverImage(fileHeader)
		if err != nil {
			return writeWizardError(c, err)
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		return c.JSON(http.StatusBadRequest, util.Error("invalid multipart payload"))
	}

	w := h.wizards.Scratch()
	defer w.Close()

	ctx := c.Request().Context()
	if categoryID != uuid.Nil {
		// Without loaded choices the subcategory is not cross-checked; the
		// store still enforces it on insert.
		if err := w.SelectCategory(ctx, categoryID); err != nil {
			log.Printf("wizard one-shot: %v", err)
		}
	}
	if subcategoryID != uuid.Nil {
		if err := w.SelectSubcategory(subcategoryID); err != nil {
			return writeWizardError(c, err)
		}
	} else {
		w.SetNewSubcategoryName(c.FormValue("new_subcategory_name"))
	}
	w.SetDestinationName(c.FormValue("destination_name"))
	w.SetDescription(c.FormValue("description"))
	w.SetMapURL(c.FormValue("map_url"))
	w.SetInitialRule(c.FormValue("initial_rule"))
	w.SetCoverImage(image)

	state, err := w.Submit(ctx, creatorID)
	return writeSubmitResult(c, "one-shot", w, state, err)
}

func (h *WizardHandler) lookup(c echo.Context) (uuid.UUID, *wizard.Wizard, error) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, nil, err
	}
	w, err := h.wizards.Get(id)
	return id, w, err
}

// parseOptionalUUID maps a blank value to uuid.Nil.
func parseOptionalUUID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

func (h *WizardHandler) readCoverImage(fileHeader *multipart.FileHeader) (*wizard.CoverImage, error) {
	if fileHeader.Size > h.maxImageBytes {
		return nil, service.ErrCoverImageTooLarge
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > h.maxImageBytes {
		return nil, service.ErrCoverImageTooLarge
	}
	if len(data) == 0 {
		return nil, service.ErrCoverImageRequired
	}
	return wizard.NewCoverImage(fileHeader.Filename, fileHeader.Header.Get(echo.HeaderContentType), data), nil
}

func writeSubmitResult(c echo.Context, wizardID string, w *wizard.Wizard, state wizard.CreationState, err error) error {
	snap := w.Snapshot()
	view := wizard.Describe(state)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, util.Envelope{
			"destination_id": view.DestinationID,
			"wizard":         snap,
			"route":          navigation.MainCategoryDisplay(),
		})
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		return c.JSON(http.StatusConflict, util.Error(err.Error()).With("wizard", snap))
	case errors.Is(err, wizard.ErrInvalidForm):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(view.Message).With("wizard", snap))
	case errors.Is(err, wizard.ErrSubmissionFailed):
		log.Printf("wizard %s: %v", wizardID, err)
		return c.JSON(http.StatusBadGateway, util.Error(view.Message).With("wizard", snap))
	default:
		return writeWizardError(c, err)
	}
}

func writeWizardError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, wizard.ErrWizardNotFound), errors.Is(err, wizard.ErrClosed):
		return c.JSON(http.StatusNotFound, util.Error("wizard not found"))
	case errors.Is(err, wizard.ErrUnknownSubcategory):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	case errors.Is(err, errInvalidID):
		return c.JSON(http.StatusBadRequest, util.Error("wizard "+err.Error()))
	case errors.Is(err, wizard.ErrLoadFailed):
		return c.JSON(http.StatusServiceUnavailable, util.Error("choices are unavailable"))
	case errors.Is(err, service.ErrCoverImageTooLarge), errors.Is(err, service.ErrCoverImageRequired), errors.Is(err, service.ErrCoverImageUnsupportedType):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
