package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/handler"
	"github.com/restrohub/api/internal/service"
)

// --- Mocks ---

type mockOrderService struct {
	createFn func(ctx context.Context, req service.CreateOrderRequest) (*service.OrderResult, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.OrderResult, error) {
	return m.createFn(ctx, req)
}

type mockOrderStore struct {
	orders map[uuid.UUID]database.Order
	items  map[uuid.UUID][]database.OrderItem

	// lastListParams captures the filter passed to ListOrdersByRestaurant.
	lastListParams database.ListOrdersByRestaurantParams
	// raceStatus, when set, is applied just before the compare-and-set so
	// UpdateOrderStatus sees a concurrent change.
	raceStatus database.OrderStatus
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{
		orders: make(map[uuid.UUID]database.Order),
		items:  make(map[uuid.UUID][]database.OrderItem),
	}
}

func (m *mockOrderStore) GetOrder(_ context.Context, id uuid.UUID) (database.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *mockOrderStore) ListOrdersByRestaurant(_ context.Context, arg database.ListOrdersByRestaurantParams) ([]database.Order, error) {
	m.lastListParams = arg
	var out []database.Order
	for _, o := range m.orders {
		if o.RestaurantID != arg.RestaurantID {
			continue
		}
		if arg.Status.Valid && o.Status != arg.Status.OrderStatus {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderStore) ListOrderItemsByOrder(_ context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	return m.items[orderID], nil
}

func (m *mockOrderStore) ListOrderItemsByOrders(_ context.Context, orderIDs []uuid.UUID) ([]database.OrderItem, error) {
	var out []database.OrderItem
	for _, id := range orderIDs {
		out = append(out, m.items[id]...)
	}
	return out, nil
}

func (m *mockOrderStore) UpdateOrderStatus(_ context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
	o, ok := m.orders[arg.ID]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	if m.raceStatus != "" {
		o.Status = m.raceStatus
	}
	if o.Status != arg.Status_2 {
		return database.Order{}, pgx.ErrNoRows
	}
	o.Status = arg.Status
	m.orders[o.ID] = o
	return o, nil
}

func (m *mockOrderStore) addOrder(restaurantID uuid.UUID, status database.OrderStatus) database.Order {
	o := database.Order{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		TableNumber:  "T4",
		CustomerName: "Guest",
		TotalAmount:  makeNumeric("250"),
		Status:       status,
		CreatedBy:    uuid.New(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.orders[o.ID] = o
	m.items[o.ID] = []database.OrderItem{{
		ID:         uuid.New(),
		OrderID:    o.ID,
		MenuItemID: pgUUID(uuid.New()),
		Name:       "Dosa",
		Price:      makeNumeric("125"),
		Quantity:   2,
	}}
	return o
}

func setupOrderRouter(svc *mockOrderService, store *mockOrderStore, rec *fakeRecorder) http.Handler {
	if svc == nil {
		svc = &mockOrderService{}
	}
	if rec == nil {
		rec = &fakeRecorder{}
	}
	h := handler.NewOrderHandler(svc, store, rec)
	return newTestRouter(nil, h.RegisterRoutes)
}

// --- Create ---

func TestOrderCreate_HappyPath(t *testing.T) {
	restaurantID := uuid.New()
	claims := staffClaims("waiter", restaurantID)
	menuItemID := uuid.New()
	rec := &fakeRecorder{}

	svc := &mockOrderService{
		createFn: func(_ context.Context, req service.CreateOrderRequest) (*service.OrderResult, error) {
			if req.RestaurantID != restaurantID {
				t.Errorf("restaurant: got %v, want %v", req.RestaurantID, restaurantID)
			}
			if req.CreatedBy != claims.UserID {
				t.Errorf("created_by: got %v, want %v", req.CreatedBy, claims.UserID)
			}
			if len(req.Items) != 1 || req.Items[0].MenuItemID != menuItemID.String() || req.Items[0].Quantity != 2 {
				t.Errorf("items: got %+v", req.Items)
			}
			orderID := uuid.New()
			return &service.OrderResult{
				Order: database.Order{
					ID: orderID, RestaurantID: restaurantID, TableNumber: "T1", CustomerName: "Anil",
					TotalAmount: makeNumeric("180"), Status: database.OrderStatusPending, CreatedBy: claims.UserID,
				},
				Items: []database.OrderItem{{
					ID: uuid.New(), OrderID: orderID, MenuItemID: pgUUID(menuItemID),
					Name: "Masala Dosa", Price: makeNumeric("90"), Quantity: 2,
				}},
			}, nil
		},
	}
	router := setupOrderRouter(svc, newMockOrderStore(), rec)

	rr := doAuthRequest(t, router, "POST", "/orders/restaurant/"+restaurantID.String(), map[string]interface{}{
		"tableNumber":  "T1",
		"customerName": "Anil",
		"totalAmount":  1, // ignored
		"items": []map[string]interface{}{
			{"menuItem": menuItemID.String(), "quantity": 2},
		},
	}, claims)
	expectStatus(t, rr, http.StatusCreated)

	resp := decodeResponse(t, rr)
	if resp["status"] != "pending" {
		t.Errorf("status: got %v, want pending", resp["status"])
	}
	if resp["totalAmount"] != float64(180) {
		t.Errorf("totalAmount: got %v, want 180", resp["totalAmount"])
	}
	items := resp["items"].([]interface{})
	item := items[0].(map[string]interface{})
	if item["name"] != "Masala Dosa" || item["price"] != float64(90) {
		t.Errorf("item snapshot: got %v", item)
	}
	if rec.ordersCreated != 1 {
		t.Errorf("orders created metric: got %d, want 1", rec.ordersCreated)
	}
}

func TestOrderCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"empty items", service.ErrEmptyItems},
		{"missing info", service.ErrMissingOrderInfo},
		{"bad quantity", service.ErrInvalidQuantity},
		{"bad menu item id", service.ErrInvalidMenuItemID},
		{"menu item elsewhere", service.ErrMenuItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restaurantID := uuid.New()
			rec := &fakeRecorder{}
			svc := &mockOrderService{
				createFn: func(context.Context, service.CreateOrderRequest) (*service.OrderResult, error) {
					return nil, tt.err
				},
			}
			router := setupOrderRouter(svc, newMockOrderStore(), rec)
			rr := doAuthRequest(t, router, "POST", "/orders/restaurant/"+restaurantID.String(),
				map[string]interface{}{"items": []interface{}{}}, staffClaims("admin", restaurantID))
			expectStatus(t, rr, http.StatusBadRequest)
			if rec.ordersCreated != 0 {
				t.Error("failed create must not be counted")
			}
		})
	}
}

func TestOrderCreate_Authorization(t *testing.T) {
	restaurantID := uuid.New()
	router := setupOrderRouter(nil, newMockOrderStore(), nil)
	body := map[string]interface{}{"items": []interface{}{}}

	rr := doAuthRequest(t, router, "POST", "/orders/restaurant/"+restaurantID.String(), body, staffClaims("chef", restaurantID))
	expectStatus(t, rr, http.StatusForbidden)
	expectMessage(t, rr, "Access denied: insufficient role")

	rr = doAuthRequest(t, router, "POST", "/orders/restaurant/"+restaurantID.String(), body, staffClaims("waiter", uuid.New()))
	expectStatus(t, rr, http.StatusForbidden)
	expectMessage(t, rr, "Not authorized for this restaurant")
}

func TestOrderCreate_ServerError(t *testing.T) {
	restaurantID := uuid.New()
	svc := &mockOrderService{
		createFn: func(context.Context, service.CreateOrderRequest) (*service.OrderResult, error) {
			return nil, errors.New("connection reset")
		},
	}
	router := setupOrderRouter(svc, newMockOrderStore(), nil)

	rr := doAuthRequest(t, router, "POST", "/orders/restaurant/"+restaurantID.String(),
		map[string]interface{}{"items": []interface{}{}}, staffClaims("waiter", restaurantID))
	expectStatus(t, rr, http.StatusInternalServerError)
	expectMessage(t, rr, "Server error")
}

// --- List / Get ---

func TestOrderList_WithItemsAndFilter(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockOrderStore()
	store.addOrder(restaurantID, database.OrderStatusPending)
	store.addOrder(restaurantID, database.OrderStatusReady)
	store.addOrder(uuid.New(), database.OrderStatusPending)
	router := setupOrderRouter(nil, store, nil)
	claims := staffClaims("chef", restaurantID)

	rr := doAuthRequest(t, router, "GET", "/orders/restaurant/"+restaurantID.String(), nil, claims)
	expectStatus(t, rr, http.StatusOK)
	list := decodeList(t, rr)
	if len(list) != 2 {
		t.Fatalf("orders: got %d, want 2", len(list))
	}
	for _, o := range list {
		if len(o["items"].([]interface{})) != 1 {
			t.Errorf("order %v: items not embedded", o["id"])
		}
	}

	rr = doAuthRequest(t, router, "GET", "/orders/restaurant/"+restaurantID.String()+"?status=ready", nil, claims)
	expectStatus(t, rr, http.StatusOK)
	if !store.lastListParams.Status.Valid || store.lastListParams.Status.OrderStatus != database.OrderStatusReady {
		t.Errorf("status filter: got %+v", store.lastListParams.Status)
	}
	if got := decodeList(t, rr); len(got) != 1 {
		t.Errorf("filtered orders: got %d, want 1", len(got))
	}
}

func TestOrderList_InvalidStatusFilter(t *testing.T) {
	restaurantID := uuid.New()
	router := setupOrderRouter(nil, newMockOrderStore(), nil)

	rr := doAuthRequest(t, router, "GET", "/orders/restaurant/"+restaurantID.String()+"?status=served", nil, staffClaims("waiter", restaurantID))
	expectStatus(t, rr, http.StatusBadRequest)
}

func TestOrderList_CustomerDenied(t *testing.T) {
	restaurantID := uuid.New()
	router := setupOrderRouter(nil, newMockOrderStore(), nil)

	rr := doAuthRequest(t, router, "GET", "/orders/restaurant/"+restaurantID.String(), nil, staffClaims("customer", restaurantID))
	expectStatus(t, rr, http.StatusForbidden)
}

func TestOrderGet(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockOrderStore()
	order := store.addOrder(restaurantID, database.OrderStatusPending)
	router := setupOrderRouter(nil, store, nil)

	rr := doAuthRequest(t, router, "GET", "/orders/"+order.ID.String(), nil, staffClaims("cashier", restaurantID))
	expectStatus(t, rr, http.StatusOK)

	rr = doAuthRequest(t, router, "GET", "/orders/"+order.ID.String(), nil, staffClaims("cashier", uuid.New()))
	expectStatus(t, rr, http.StatusForbidden)

	rr = doAuthRequest(t, router, "GET", "/orders/"+uuid.New().String(), nil, staffClaims("cashier", restaurantID))
	expectStatus(t, rr, http.StatusNotFound)
	expectMessage(t, rr, "Order not found")
}

// --- Status updates ---

func TestOrderUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		from   database.OrderStatus
		to     string
		status int
	}{
		{"pending to preparing", database.OrderStatusPending, "preparing", http.StatusOK},
		{"preparing to ready", database.OrderStatusPreparing, "ready", http.StatusOK},
		{"pending to ready skips a step", database.OrderStatusPending, "ready", http.StatusConflict},
		{"ready back to preparing", database.OrderStatusReady, "preparing", http.StatusConflict},
		{"billed is final", database.OrderStatusBilled, "preparing", http.StatusConflict},
		{"billed not settable", database.OrderStatusReady, "billed", http.StatusBadRequest},
		{"unknown status", database.OrderStatusPending, "served", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restaurantID := uuid.New()
			store := newMockOrderStore()
			order := store.addOrder(restaurantID, tt.from)
			rec := &fakeRecorder{}
			router := setupOrderRouter(nil, store, rec)

			rr := doAuthRequest(t, router, "PUT", "/orders/"+order.ID.String()+"/status",
				map[string]string{"status": tt.to}, staffClaims("chef", restaurantID))
			expectStatus(t, rr, tt.status)

			if tt.status == http.StatusOK {
				if store.orders[order.ID].Status != database.OrderStatus(tt.to) {
					t.Errorf("stored status: got %s, want %s", store.orders[order.ID].Status, tt.to)
				}
				if len(rec.orderStatuses) != 1 || rec.orderStatuses[0] != tt.to {
					t.Errorf("status metric: got %v", rec.orderStatuses)
				}
			} else if store.orders[order.ID].Status != tt.from {
				t.Errorf("status changed on rejected update: got %s", store.orders[order.ID].Status)
			}
		})
	}
}

func TestOrderUpdateStatus_ConcurrentChange(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockOrderStore()
	order := store.addOrder(restaurantID, database.OrderStatusPending)
	store.raceStatus = database.OrderStatusBilled
	router := setupOrderRouter(nil, store, nil)

	rr := doAuthRequest(t, router, "PUT", "/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "preparing"}, staffClaims("chef", restaurantID))
	expectStatus(t, rr, http.StatusConflict)
}

func TestOrderUpdateStatus_ChefOnly(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockOrderStore()
	order := store.addOrder(restaurantID, database.OrderStatusPending)
	router := setupOrderRouter(nil, store, nil)

	rr := doAuthRequest(t, router, "PUT", "/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "preparing"}, staffClaims("waiter", restaurantID))
	expectStatus(t, rr, http.StatusForbidden)
}

func TestOrderUpdateStatus_OtherRestaurant(t *testing.T) {
	store := newMockOrderStore()
	order := store.addOrder(uuid.New(), database.OrderStatusPending)
	router := setupOrderRouter(nil, store, nil)

	rr := doAuthRequest(t, router, "PUT", "/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "preparing"}, staffClaims("chef", uuid.New()))
	expectStatus(t, rr, http.StatusForbidden)
}
