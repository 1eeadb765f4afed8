package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/middleware"
	"github.com/restrohub/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.OrderResult, error)
}

// OrderStore defines the database methods needed by order read/update handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrdersByRestaurant(ctx context.Context, arg database.ListOrdersByRestaurantParams) ([]database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListOrderItemsByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// allowedTransitions lists the kitchen status moves. Billing sets "billed"
// on its own path, so it never appears here.
var allowedTransitions = map[database.OrderStatus][]database.OrderStatus{
	database.OrderStatusPending:   {database.OrderStatusPreparing},
	database.OrderStatusPreparing: {database.OrderStatusReady},
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc     OrderServicer
	store   OrderStore
	metrics Recorder
}

// NewOrderHandler creates a new OrderHandler. A nil recorder disables counting.
func NewOrderHandler(svc OrderServicer, store OrderStore, rec Recorder) *OrderHandler {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &OrderHandler{svc: svc, store: store, metrics: rec}
}

// RegisterRoutes registers order endpoints. Expects an authenticated router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRestaurant("restaurantId"))
			r.With(middleware.RequireRole(enum.UserRoleWaiter, enum.UserRoleAdmin)).
				Post("/restaurant/{restaurantId}", h.Create)
			r.With(middleware.RequireRole(enum.UserRoleWaiter, enum.UserRoleChef, enum.UserRoleCashier, enum.UserRoleAdmin)).
				Get("/restaurant/{restaurantId}", h.List)
		})
		r.With(middleware.RequireRole(enum.UserRoleWaiter, enum.UserRoleChef, enum.UserRoleCashier, enum.UserRoleAdmin)).
			Get("/{orderId}", h.Get)
		r.With(middleware.RequireRole(enum.UserRoleChef)).Put("/{orderId}/status", h.UpdateStatus)
	})
}

// --- Request / Response types ---

type createOrderRequest struct {
	TableNumber  string                   `json:"tableNumber"`
	CustomerName string                   `json:"customerName"`
	Items        []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	MenuItem string `json:"menuItem"`
	Quantity int32  `json:"quantity"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID           uuid.UUID           `json:"id"`
	RestaurantID uuid.UUID           `json:"restaurantId"`
	TableNumber  string              `json:"tableNumber"`
	CustomerName string              `json:"customerName"`
	TotalAmount  json.Number         `json:"totalAmount"`
	Status       string              `json:"status"`
	CreatedBy    uuid.UUID           `json:"createdBy"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Items        []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ID       uuid.UUID   `json:"id"`
	MenuItem *uuid.UUID  `json:"menuItem"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int32       `json:"quantity"`
}

func toOrderResponse(o database.Order, items []database.OrderItem) orderResponse {
	resp := orderResponse{
		ID:           o.ID,
		RestaurantID: o.RestaurantID,
		TableNumber:  o.TableNumber,
		CustomerName: o.CustomerName,
		TotalAmount:  money(o.TotalAmount),
		Status:       string(o.Status),
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        make([]orderItemResponse, len(items)),
	}
	for i, it := range items {
		resp.Items[i] = orderItemResponse{
			ID:       it.ID,
			MenuItem: uuidPtr(it.MenuItemID),
			Name:     it.Name,
			Price:    money(it.Price),
			Quantity: it.Quantity,
		}
	}
	return resp
}

// --- Handlers ---

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	restaurantID, _ := urlUUID(r, "restaurantId")

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]service.CreateOrderItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.CreateOrderItemRequest{MenuItemID: it.MenuItem, Quantity: it.Quantity}
	}

	result, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		RestaurantID: restaurantID,
		CreatedBy:    claims.UserID,
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		Items:        items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyItems),
			errors.Is(err, service.ErrMissingOrderInfo),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidMenuItemID),
			errors.Is(err, service.ErrMenuItemNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			serverError(w, "create order", err)
		}
		return
	}

	h.metrics.OrderCreated()
	writeJSON(w, http.StatusCreated, toOrderResponse(result.Order, result.Items))
}

// List returns the restaurant's orders newest first, optionally filtered by
// ?status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	params := database.ListOrdersByRestaurantParams{RestaurantID: restaurantID}
	if s := r.URL.Query().Get("status"); s != "" {
		status := database.OrderStatus(s)
		if !validOrderStatus(status) {
			writeError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		params.Status = database.NullOrderStatus{OrderStatus: status, Valid: true}
	}

	orders, err := h.store.ListOrdersByRestaurant(r.Context(), params)
	if err != nil {
		serverError(w, "list orders", err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	if len(orders) == 0 {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := h.store.ListOrderItemsByOrders(r.Context(), ids)
	if err != nil {
		serverError(w, "list order items", err)
		return
	}
	byOrder := make(map[uuid.UUID][]database.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	for _, o := range orders {
		resp = append(resp, toOrderResponse(o, byOrder[o.ID]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOwnOrder(w, r)
	if !ok {
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), order.ID)
	if err != nil {
		serverError(w, "list order items", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, items))
}

// UpdateStatus moves an order along the kitchen workflow. The write is a
// compare-and-set on the status read here, so a concurrent change answers 409.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	next := database.OrderStatus(req.Status)
	if !validOrderStatus(next) || next == database.OrderStatusBilled || next == database.OrderStatusPending {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	order, ok := h.loadOwnOrder(w, r)
	if !ok {
		return
	}

	if !canTransition(order.Status, next) {
		writeError(w, http.StatusConflict, "Cannot change order status from "+string(order.Status)+" to "+string(next))
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:       order.ID,
		Status:   next,
		Status_2: order.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusConflict, "Order status changed, please refresh")
			return
		}
		serverError(w, "update order status", err)
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), updated.ID)
	if err != nil {
		serverError(w, "list order items", err)
		return
	}

	h.metrics.OrderStatusChanged(string(next))
	writeJSON(w, http.StatusOK, toOrderResponse(updated, items))
}

// --- Helpers ---

// loadOwnOrder fetches the order named by the URL and checks it belongs to
// the caller's restaurant. It writes the error response when ok is false.
func (h *OrderHandler) loadOwnOrder(w http.ResponseWriter, r *http.Request) (database.Order, bool) {
	claims := middleware.ClaimsFromContext(r.Context())

	orderID, err := urlUUID(r, "orderId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return database.Order{}, false
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Order not found")
			return database.Order{}, false
		}
		serverError(w, "get order", err)
		return database.Order{}, false
	}

	if order.RestaurantID != claims.RestaurantID {
		writeError(w, http.StatusForbidden, "Not authorized to access this order")
		return database.Order{}, false
	}
	return order, true
}

func validOrderStatus(s database.OrderStatus) bool {
	switch s {
	case database.OrderStatusPending, database.OrderStatusPreparing,
		database.OrderStatusReady, database.OrderStatusBilled:
		return true
	}
	return false
}

func canTransition(from, to database.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
