package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const (
	msgGetOrdersFailed   = "Error While Getting Orders"
	msgUpdateOrderFailed = "Error While Updating Order"
)

// OrderHandler serves the order lifecycle routes.
type OrderHandler struct {
	service ports.OrderService
	log     zerolog.Logger
}

func NewOrderHandler(service ports.OrderService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

// ListOwn handles GET /auth/orders.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}   orderDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/orders [get]
func (h *OrderHandler) ListOwn(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListBuyerOrders(c.Request().Context(), principal)
	if err != nil {
		return fail(c, h.log, http.StatusInternalServerError, msgGetOrdersFailed, err)
	}
	return c.JSON(http.StatusOK, toOrderDetailResponses(orders))
}

// ListAll handles GET /auth/all-orders.
//
// @Summary      List every order, newest first
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}   orderDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/all-orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.service.ListAllOrders(c.Request().Context())
	if err != nil {
		return fail(c, h.log, http.StatusInternalServerError, msgGetOrdersFailed, err)
	}
	return c.JSON(http.StatusOK, toOrderDetailResponses(orders))
}

// UpdateStatus handles PUT /auth/order-status/:orderId.
//
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        orderId  path      string                    true  "Order id"
// @Param        body     body      updateOrderStatusRequest  true  "New status and optional expected version"
// @Success      200      {object}  orderResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /auth/order-status/{orderId} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "Invalid order status", err)
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateOrderStatusInput{
		OrderID:         c.Param("orderId"),
		Status:          req.Status,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return fail(c, h.log, http.StatusBadRequest, "Invalid order status", err)
		case errors.Is(err, domain.ErrOrderNotFound):
			return fail(c, h.log, http.StatusNotFound, "Order Not Found", nil)
		case errors.Is(err, domain.ErrOrderConflict):
			return fail(c, h.log, http.StatusConflict, "Order was modified concurrently", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, msgUpdateOrderFailed, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(order))
}
