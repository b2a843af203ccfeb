package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

var tracer = otel.Tracer("service")

type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// ListBuyerOrders returns the caller's orders in storage order. An account
// without orders gets an empty, non-nil slice.
func (s *OrderService) ListBuyerOrders(ctx context.Context, principal domain.Principal) ([]*domain.OrderDetail, error) {
	ctx, span := tracer.Start(ctx, "OrderService.ListBuyerOrders")
	defer span.End()
	span.SetAttributes(attribute.String("buyer.id", principal.ID))

	orders, err := s.repo.Find(ctx, ports.OrderFilter{BuyerID: principal.ID})
	if err != nil {
		return nil, fmt.Errorf("list buyer orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.OrderDetail{}
	}
	return orders, nil
}

// ListAllOrders returns every order, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]*domain.OrderDetail, error) {
	ctx, span := tracer.Start(ctx, "OrderService.ListAllOrders")
	defer span.End()

	orders, err := s.repo.Find(ctx, ports.OrderFilter{NewestFirst: true})
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.OrderDetail{}
	}
	return orders, nil
}

// UpdateStatus overwrites the status of one order. The status must belong to
// the closed set; any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", in.OrderID), attribute.String("order.status", in.Status))

	status, err := domain.ParseOrderStatus(in.Status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	order, err := s.repo.UpdateStatus(ctx, in.OrderID, status, in.ExpectedVersion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, fmt.Errorf("update order status: %w", err)
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("order_id", order.ID).
		Str("status", string(status)).
		Int64("version", order.Version).
		Msg("order status updated")

	return order, nil
}

// PlaceOrder persists a paid order for the checkout flow.
func (s *OrderService) PlaceOrder(ctx context.Context, in ports.PlaceOrderInput) (*domain.Order, error) {
	if len(in.ProductIDs) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if in.BuyerID == "" {
		return nil, domain.ErrInvalidID
	}

	now := time.Now().UTC()
	order := &domain.Order{
		Products:  append([]string(nil), in.ProductIDs...),
		Payment:   in.Payment,
		BuyerID:   in.BuyerID,
		Status:    domain.OrderNotProcessed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Str("buyer_id", in.BuyerID).Msg("failed to place order")
		return nil, fmt.Errorf("place order: %w", err)
	}

	metrics.OrdersPlacedTotal.Inc()
	s.log.Info().Str("order_id", order.ID).Str("buyer_id", in.BuyerID).Int("products", len(order.Products)).Msg("order placed")
	return order, nil
}
