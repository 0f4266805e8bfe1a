package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/orderlines/internal/metrics"
	"github.com/mmynk/orderlines/internal/middleware"
	"github.com/mmynk/orderlines/internal/models"
	"github.com/mmynk/orderlines/internal/order"
	"github.com/mmynk/orderlines/internal/storage"
	pb "github.com/mmynk/orderlines/pkg/orderapi"
)

var (
	errAuthRequired    = errors.New("authentication required")
	errNotOwner        = errors.New("order belongs to another customer")
	errOrderIDRequired = errors.New("order_id is required")
	errProductRequired = errors.New("product_id is required")
)

// Ensure OrderService implements the RPC interface
var _ pb.OrderServiceHandler = (*OrderService)(nil)

// OrderService implements the Connect OrderService.
type OrderService struct {
	store   storage.Store
	metrics *metrics.Metrics
	locks   *orderLocks
}

// NewOrderService creates a new OrderService with the given storage backend.
// m may be nil to disable metrics.
func NewOrderService(store storage.Store, m *metrics.Metrics) *OrderService {
	return &OrderService{
		store:   store,
		metrics: m,
		locks:   newOrderLocks(),
	}
}

// storeError maps a storage error to a Connect error.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// loadOwned fetches the order and checks that userID owns it.
func (s *OrderService) loadOwned(ctx context.Context, userID, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errOrderIDRequired)
	}
	stored, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, storeError(err)
	}
	if stored.CustomerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return stored, nil
}

// CreateOrder creates an empty order owned by the caller.
func (s *OrderService) CreateOrder(ctx context.Context, req *connect.Request[pb.CreateOrderRequest]) (*connect.Response[pb.CreateOrderResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	stored := &models.Order{CustomerID: userID, Items: []models.LineItem{}}
	if err := s.store.CreateOrder(ctx, stored); err != nil {
		slog.Error("CreateOrder failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Order created", "order_id", stored.ID, "user_id", userID)
	return connect.NewResponse(&pb.CreateOrderResponse{Order: toProtoOrder(stored)}), nil
}

// AddItem adds a line to the order, merging it into an existing line with the
// same product and price. Calls for the same order are serialized.
func (s *OrderService) AddItem(ctx context.Context, req *connect.Request[pb.AddItemRequest]) (*connect.Response[pb.AddItemResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	if req.Msg.ProductID == "" {
		s.metrics.ItemAdded(metrics.OutcomeRejected)
		return nil, connect.NewError(connect.CodeInvalidArgument, errProductRequired)
	}

	unlock := s.locks.lock(req.Msg.OrderID)
	defer unlock()

	stored, err := s.loadOwned(ctx, userID, req.Msg.OrderID)
	if err != nil {
		return nil, err
	}

	agg, ids, err := aggregate(stored)
	if err != nil {
		slog.Error("AddItem: failed to rebuild order", "order_id", stored.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	before := agg.Len()
	item := order.NewItem(order.SKU(req.Msg.ProductID), req.Msg.Price, int(req.Msg.Quantity))
	if err := agg.AddItem(item); err != nil {
		s.metrics.ItemAdded(metrics.OutcomeRejected)
		slog.Warn("AddItem rejected",
			"order_id", stored.ID,
			"product_id", req.Msg.ProductID,
			"price", req.Msg.Price,
			"quantity", req.Msg.Quantity,
			"error", err,
		)
		if errors.Is(err, order.ErrIncorrectItem) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	outcome := metrics.OutcomeMerged
	if agg.Len() > before {
		outcome = metrics.OutcomeAppended
	}

	lines := lineItems(agg, ids)
	if err := s.store.SaveItems(ctx, stored.ID, lines); err != nil {
		slog.Error("AddItem: failed to save items", "order_id", stored.ID, "error", err)
		return nil, storeError(fmt.Errorf("failed to save order %s: %w", stored.ID, err))
	}
	stored.Items = lines

	s.metrics.ItemAdded(outcome)
	slog.Info("Item added",
		"order_id", stored.ID,
		"product_id", req.Msg.ProductID,
		"outcome", outcome,
		"lines", len(lines),
	)

	// Re-read so UpdatedAt reflects the save.
	saved, err := s.store.GetOrder(ctx, stored.ID)
	if err != nil {
		slog.Warn("AddItem: failed to reload order", "order_id", stored.ID, "error", err)
		saved = stored
	}

	return connect.NewResponse(&pb.AddItemResponse{
		Order:   toProtoOrder(saved),
		Outcome: outcome,
	}), nil
}

// GetItems returns the order with its lines in insertion order.
func (s *OrderService) GetItems(ctx context.Context, req *connect.Request[pb.GetItemsRequest]) (*connect.Response[pb.GetItemsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	stored, err := s.loadOwned(ctx, userID, req.Msg.OrderID)
	if err != nil {
		return nil, err
	}

	slog.Debug("GetItems", "order_id", stored.ID, "lines", len(stored.Items))
	return connect.NewResponse(&pb.GetItemsResponse{Order: toProtoOrder(stored)}), nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, req *connect.Request[pb.ListOrdersRequest]) (*connect.Response[pb.ListOrdersResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	orders, err := s.store.ListOrders(ctx, userID)
	if err != nil {
		slog.Error("ListOrders failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}

	resp := &pb.ListOrdersResponse{Orders: make([]*pb.Order, len(orders))}
	for i, o := range orders {
		resp.Orders[i] = toProtoOrder(o)
	}
	return connect.NewResponse(resp), nil
}
