package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// A missing category name is answered with 401, not 400.
const msgNameRequired = "Name is required"

type CategoryHandler struct {
	service ports.CategoryService
	log     zerolog.Logger
}

func NewCategoryHandler(service ports.CategoryService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

// Create handles POST /category/create-category.
//
// @Summary      Create a category
// @Tags         category
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  categoryEnvelope
// @Success      200   {object}  categoryEnvelope  "Category already exists"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse  "Name is required"
// @Failure      500   {object}  errorResponse
// @Router       /category/create-category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusUnauthorized, msgNameRequired, nil)
	}

	category, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryExists) && category != nil:
			return c.JSON(http.StatusOK, categoryEnvelope{Success: true, Message: "Category already exists", Category: toCategoryResponse(category)})
		case errors.Is(err, domain.ErrCategoryExists):
			return fail(c, h.log, http.StatusConflict, "Category already exists", nil)
		case errors.Is(err, domain.ErrInvalidCategory):
			return fail(c, h.log, http.StatusUnauthorized, msgNameRequired, nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error in Category", err)
	}

	return c.JSON(http.StatusCreated, categoryEnvelope{Success: true, Message: "New category created", Category: toCategoryResponse(category)})
}

// Update handles PUT /category/update-category/:id.
//
// @Summary      Rename a category
// @Tags         category
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "New name"
// @Success      200   {object}  categoryEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse  "Name is required"
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /category/update-category/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusUnauthorized, msgNameRequired, nil)
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return fail(c, h.log, http.StatusNotFound, "Category Not Found", nil)
		case errors.Is(err, domain.ErrCategoryExists):
			return fail(c, h.log, http.StatusConflict, "Category already exists", nil)
		case errors.Is(err, domain.ErrInvalidCategory):
			return fail(c, h.log, http.StatusUnauthorized, msgNameRequired, nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error while updating category", err)
	}

	return c.JSON(http.StatusOK, categoryEnvelope{Success: true, Message: "Category Updated Successfully", Category: toCategoryResponse(category)})
}

// List handles GET /category/get-category.
//
// @Summary      List categories
// @Tags         category
// @Produce      json
// @Success      200  {object}  categoryListEnvelope
// @Failure      500  {object}  errorResponse
// @Router       /category/get-category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, http.StatusInternalServerError, "Error while getting all categories", err)
	}
	return c.JSON(http.StatusOK, categoryListEnvelope{Success: true, Message: "All Categories List", Category: toCategoryResponses(categories)})
}

// Get handles GET /category/single-category/:slug.
//
// @Summary      Get a category by slug
// @Tags         category
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  categoryEnvelope
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /category/single-category/{slug} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return fail(c, h.log, http.StatusNotFound, "Category Not Found", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error While getting Single Category", err)
	}
	return c.JSON(http.StatusOK, categoryEnvelope{Success: true, Message: "Get Single Category Successfully", Category: toCategoryResponse(category)})
}

// Delete handles DELETE /category/delete-category/:id.
//
// @Summary      Delete a category
// @Tags         category
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /category/delete-category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return fail(c, h.log, http.StatusNotFound, "Category Not Found", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "error while deleting category", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Category Deleted Successfully"})
}
