package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
	log     zerolog.Logger
}

func NewProductHandler(service ports.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.Category,
		Quantity:    r.Quantity,
		Shipping:    r.Shipping,
	}
}

// Create handles POST /product/create-product.
//
// @Summary      Create a product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  productWriteEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /product/create-product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, err.Error(), nil)
	}

	product, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			return fail(c, h.log, http.StatusBadRequest, "Invalid product", err)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error in creating product", err)
	}
	return c.JSON(http.StatusCreated, productWriteEnvelope{Success: true, Message: "Product Created Successfully", Products: toProductResponse(product)})
}

// Update handles PUT /product/update-product/:pid.
//
// @Summary      Update a product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        pid   path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  productWriteEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /product/update-product/{pid} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, err.Error(), nil)
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("pid"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return fail(c, h.log, http.StatusNotFound, "Product Not Found", nil)
		case errors.Is(err, domain.ErrInvalidProduct):
			return fail(c, h.log, http.StatusBadRequest, "Invalid product", err)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error in Update product", err)
	}
	return c.JSON(http.StatusCreated, productWriteEnvelope{Success: true, Message: "Product Updated Successfully", Products: toProductResponse(product)})
}

// Delete handles DELETE /product/delete-product/:pid.
//
// @Summary      Delete a product
// @Tags         product
// @Produce      json
// @Security     ApiKeyAuth
// @Param        pid  path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /product/delete-product/{pid} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("pid")); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return fail(c, h.log, http.StatusNotFound, "Product Not Found", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error while deleting product", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Product Deleted Successfully"})
}

// Latest handles GET /product/get-product.
//
// @Summary      Newest products
// @Tags         product
// @Produce      json
// @Success      200  {object}  productListEnvelope
// @Failure      500  {object}  errorResponse
// @Router       /product/get-product [get]
func (h *ProductHandler) Latest(c echo.Context) error {
	products, err := h.service.Latest(c.Request().Context())
	if err != nil {
		return fail(c, h.log, http.StatusInternalServerError, "Error in getting products", err)
	}
	return c.JSON(http.StatusOK, productListEnvelope{
		Success:    true,
		Message:    "All Products",
		CountTotal: len(products),
		Products:   toProductResponses(products),
	})
}

// Get handles GET /product/get-product/:slug.
//
// @Summary      Get a product by slug
// @Tags         product
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  productEnvelope
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /product/get-product/{slug} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return fail(c, h.log, http.StatusNotFound, "Product Not Found", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error while getting single product", err)
	}
	return c.JSON(http.StatusOK, productEnvelope{Success: true, Message: "Single Product Fetched", Product: toProductResponse(product)})
}

// Filter handles POST /product/product-filters.
//
// @Summary      Filter products by category and price range
// @Tags         product
// @Accept       json
// @Produce      json
// @Param        body  body      productFiltersRequest  true  "checked: category ids, radio: [min, max]"
// @Success      200   {object}  productListEnvelope
// @Failure      400   {object}  errorResponse
// @Router       /product/product-filters [post]
func (h *ProductHandler) Filter(c echo.Context) error {
	var req productFiltersRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}

	products, err := h.service.Filter(c.Request().Context(), req.Checked, req.Radio)
	if err != nil {
		return fail(c, h.log, http.StatusBadRequest, "Error While Filtering Products", err)
	}
	return c.JSON(http.StatusOK, productListEnvelope{Success: true, Products: toProductResponses(products)})
}

// Count handles GET /product/product-count.
//
// @Summary      Count products
// @Tags         product
// @Produce      json
// @Success      200  {object}  productCountEnvelope
// @Failure      400  {object}  errorResponse
// @Router       /product/product-count [get]
func (h *ProductHandler) Count(c echo.Context) error {
	total, err := h.service.Count(c.Request().Context())
	if err != nil {
		return fail(c, h.log, http.StatusBadRequest, "Error in product count", err)
	}
	return c.JSON(http.StatusOK, productCountEnvelope{Success: true, Total: total})
}

// Page handles GET /product/product-list/:page.
//
// @Summary      One page of products, newest first
// @Tags         product
// @Produce      json
// @Param        page  path      int  true  "Page number, starting at 1"
// @Success      200   {object}  productListEnvelope
// @Failure      400   {object}  errorResponse
// @Router       /product/product-list/{page} [get]
func (h *ProductHandler) Page(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, err := h.service.Page(c.Request().Context(), page)
	if err != nil {
		return fail(c, h.log, http.StatusBadRequest, "error in per page ctrl", err)
	}
	return c.JSON(http.StatusOK, productListEnvelope{Success: true, Products: toProductResponses(products)})
}

// Search handles GET /product/search/:keyword. The result is a bare array.
//
// @Summary      Search products by keyword
// @Tags         product
// @Produce      json
// @Param        keyword  path      string  true  "Keyword matched against name and description"
// @Success      200      {array}   productResponse
// @Failure      400      {object}  errorResponse
// @Router       /product/search/{keyword} [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.service.Search(c.Request().Context(), c.Param("keyword"))
	if err != nil {
		return fail(c, h.log, http.StatusBadRequest, "Error In Search Product API", err)
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Related handles GET /product/related-product/:pid/:cid.
//
// @Summary      Products related to a product
// @Tags         product
// @Produce      json
// @Param        pid  path      string  true  "Product id to exclude"
// @Param        cid  path      string  true  "Category id"
// @Success      200  {object}  productListEnvelope
// @Failure      400  {object}  errorResponse
// @Router       /product/related-product/{pid}/{cid} [get]
func (h *ProductHandler) Related(c echo.Context) error {
	products, err := h.service.Related(c.Request().Context(), c.Param("pid"), c.Param("cid"))
	if err != nil {
		return fail(c, h.log, http.StatusBadRequest, "error while getting related product", err)
	}
	return c.JSON(http.StatusOK, productListEnvelope{Success: true, Products: toProductResponses(products)})
}

// ByCategory handles GET /product/product-category/:slug.
//
// @Summary      Products in a category
// @Tags         product
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  productCategoryEnvelope
// @Failure      404   {object}  errorResponse
// @Failure      400   {object}  errorResponse
// @Router       /product/product-category/{slug} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	category, products, err := h.service.ByCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return fail(c, h.log, http.StatusNotFound, "Category Not Found", nil)
		}
		return fail(c, h.log, http.StatusBadRequest, "Error While Getting products", err)
	}
	return c.JSON(http.StatusOK, productCategoryEnvelope{
		Success:  true,
		Category: toCategoryResponse(category),
		Products: toProductResponses(products),
	})
}
