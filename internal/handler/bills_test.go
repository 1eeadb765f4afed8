package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/handler"
	"github.com/restrohub/api/internal/service"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// --- Mocks ---

type mockBillingService struct {
	generateFn func(ctx context.Context, req service.GenerateFromOrderRequest) (*service.BillResult, error)
	manualFn   func(ctx context.Context, req service.ManualBillRequest) (*service.BillResult, error)
}

func (m *mockBillingService) GenerateFromOrder(ctx context.Context, req service.GenerateFromOrderRequest) (*service.BillResult, error) {
	return m.generateFn(ctx, req)
}

func (m *mockBillingService) CreateManual(ctx context.Context, req service.ManualBillRequest) (*service.BillResult, error) {
	return m.manualFn(ctx, req)
}

type mockBillStore struct {
	bills          map[uuid.UUID]database.GetBillRow
	items          map[uuid.UUID][]database.BillItem
	rows           []database.ListBillsByRestaurantRow
	lastListParams database.ListBillsByRestaurantParams
}

func newMockBillStore() *mockBillStore {
	return &mockBillStore{
		bills: make(map[uuid.UUID]database.GetBillRow),
		items: make(map[uuid.UUID][]database.BillItem),
	}
}

func (m *mockBillStore) GetBill(_ context.Context, id uuid.UUID) (database.GetBillRow, error) {
	b, ok := m.bills[id]
	if !ok {
		return database.GetBillRow{}, pgx.ErrNoRows
	}
	return b, nil
}

func (m *mockBillStore) ListBillItemsByBill(_ context.Context, billID uuid.UUID) ([]database.BillItem, error) {
	return m.items[billID], nil
}

func (m *mockBillStore) ListBillsByRestaurant(_ context.Context, arg database.ListBillsByRestaurantParams) ([]database.ListBillsByRestaurantRow, error) {
	m.lastListParams = arg
	var out []database.ListBillsByRestaurantRow
	for _, b := range m.rows {
		if b.RestaurantID == arg.RestaurantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBillStore) ListBillItemsByBills(_ context.Context, billIDs []uuid.UUID) ([]database.BillItem, error) {
	var out []database.BillItem
	for _, id := range billIDs {
		out = append(out, m.items[id]...)
	}
	return out, nil
}

func (m *mockBillStore) addListRow(restaurantID uuid.UUID, subtotal, total string) database.ListBillsByRestaurantRow {
	row := database.ListBillsByRestaurantRow{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		TableNumber:     "T2",
		CustomerName:    "Walk-in",
		TotalWithoutTax: makeNumeric(subtotal),
		GstPercentage:   makeNumeric("18"),
		TotalAmount:     makeNumeric(total),
		GeneratedBy:     uuid.New(),
		CreatedAt:       time.Now(),
		GeneratedByName: "Priya",
		GeneratedByRole: database.UserRoleCashier,
	}
	m.rows = append(m.rows, row)
	m.items[row.ID] = []database.BillItem{
		{ID: uuid.New(), BillID: row.ID, Name: "Thali", Price: makeNumeric(subtotal), Quantity: 3},
	}
	return row
}

func setupBillRouter(svc *mockBillingService, store *mockBillStore, events *fakePublisher, rec *fakeRecorder) http.Handler {
	if svc == nil {
		svc = &mockBillingService{}
	}
	if events == nil {
		events = &fakePublisher{}
	}
	if rec == nil {
		rec = &fakeRecorder{}
	}
	h := handler.NewBillHandler(svc, store, events, rec, time.UTC)
	return newTestRouter(nil, h.RegisterRoutes)
}

func testBillResult(restaurantID, orderID, userID uuid.UUID) *service.BillResult {
	billID := uuid.New()
	return &service.BillResult{
		Bill: database.Bill{
			ID:              billID,
			RestaurantID:    restaurantID,
			OrderID:         pgUUID(orderID),
			TableNumber:     "T4",
			CustomerName:    "Guest",
			TotalWithoutTax: makeNumeric("250"),
			GstPercentage:   makeNumeric("18"),
			TotalAmount:     makeNumeric("295"),
			GeneratedBy:     userID,
			CreatedAt:       time.Now(),
		},
		Items: []database.BillItem{
			{ID: uuid.New(), BillID: billID, Name: "Dosa", Price: makeNumeric("125"), Quantity: 2},
		},
	}
}

// --- Generate from order ---

func TestBillGenerateFromOrder_HappyPath(t *testing.T) {
	restaurantID := uuid.New()
	orderID := uuid.New()
	claims := staffClaims("cashier", restaurantID)
	events := &fakePublisher{}
	rec := &fakeRecorder{}

	svc := &mockBillingService{
		generateFn: func(_ context.Context, req service.GenerateFromOrderRequest) (*service.BillResult, error) {
			if req.OrderID != orderID || req.RestaurantID != restaurantID || req.GeneratedBy != claims.UserID {
				t.Errorf("request: got %+v", req)
			}
			if !req.GSTPercentage.IsZero() {
				t.Errorf("gst: got %s, want zero (default)", req.GSTPercentage)
			}
			return testBillResult(restaurantID, orderID, claims.UserID), nil
		},
	}
	router := setupBillRouter(svc, newMockBillStore(), events, rec)

	rr := doAuthRequest(t, router, "POST", "/bills/generate-from-order/"+orderID.String(), nil, claims)
	expectStatus(t, rr, http.StatusCreated)

	resp := decodeResponse(t, rr)
	if resp["orderId"] != orderID.String() {
		t.Errorf("orderId: got %v, want %v", resp["orderId"], orderID)
	}
	if resp["totalWithoutTax"] != float64(250) || resp["gstPercentage"] != float64(18) || resp["totalAmount"] != float64(295) {
		t.Errorf("totals: got %v / %v / %v", resp["totalWithoutTax"], resp["gstPercentage"], resp["totalAmount"])
	}
	gen := resp["generatedBy"].(map[string]interface{})
	if gen["id"] != claims.UserID.String() || gen["role"] != "cashier" {
		t.Errorf("generatedBy: got %v", gen)
	}

	if len(events.events) != 1 || events.events[0].Type != "bill.created" || events.events[0].RestaurantID != restaurantID {
		t.Errorf("events: got %+v", events.events)
	}
	if len(rec.billSources) != 1 || rec.billSources[0] != "order" {
		t.Errorf("bill metric: got %v", rec.billSources)
	}
}

func TestBillGenerateFromOrder_CustomGST(t *testing.T) {
	restaurantID := uuid.New()
	claims := staffClaims("admin", restaurantID)

	svc := &mockBillingService{
		generateFn: func(_ context.Context, req service.GenerateFromOrderRequest) (*service.BillResult, error) {
			if !req.GSTPercentage.Equal(decimal.NewFromInt(5)) {
				t.Errorf("gst: got %s, want 5", req.GSTPercentage)
			}
			return testBillResult(restaurantID, req.OrderID, claims.UserID), nil
		},
	}
	router := setupBillRouter(svc, newMockBillStore(), nil, nil)

	rr := doAuthRequest(t, router, "POST", "/bills/generate-from-order/"+uuid.New().String(),
		map[string]interface{}{"gstPercentage": 5}, claims)
	expectStatus(t, rr, http.StatusCreated)
}

func TestBillGenerateFromOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"order missing", service.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
		{"other restaurant", service.ErrOrderForbidden, http.StatusForbidden, "Not authorized to bill orders for this restaurant"},
		{"already billed", service.ErrAlreadyBilled, http.StatusBadRequest, "Bill already generated for this order"},
		{"state changed", service.ErrOrderStateChanged, http.StatusConflict, "Order status changed, please refresh"},
		{"gst too large", service.ErrAmountTooLarge, http.StatusBadRequest, service.ErrAmountTooLarge.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &fakePublisher{}
			svc := &mockBillingService{
				generateFn: func(context.Context, service.GenerateFromOrderRequest) (*service.BillResult, error) {
					return nil, tt.err
				},
			}
			router := setupBillRouter(svc, newMockBillStore(), events, nil)
			rr := doAuthRequest(t, router, "POST", "/bills/generate-from-order/"+uuid.New().String(), nil, staffClaims("cashier", uuid.New()))
			expectStatus(t, rr, tt.status)
			expectMessage(t, rr, tt.message)
			if len(events.events) != 0 {
				t.Error("failed bill must not publish an event")
			}
		})
	}
}

func TestBillGenerateFromOrder_WaiterDenied(t *testing.T) {
	router := setupBillRouter(nil, newMockBillStore(), nil, nil)

	rr := doAuthRequest(t, router, "POST", "/bills/generate-from-order/"+uuid.New().String(), nil, staffClaims("waiter", uuid.New()))
	expectStatus(t, rr, http.StatusForbidden)
}

// --- Manual ---

func TestBillManual_PassesFiguresThrough(t *testing.T) {
	restaurantID := uuid.New()
	claims := staffClaims("cashier", restaurantID)
	menuItemID := uuid.New()
	rec := &fakeRecorder{}

	svc := &mockBillingService{
		manualFn: func(_ context.Context, req service.ManualBillRequest) (*service.BillResult, error) {
			if req.GSTPercentage != nil {
				t.Errorf("gst: got %s, want nil (default)", req.GSTPercentage)
			}
			if req.TotalWithoutTax.String() != "100" || req.TotalAmount.String() != "999" {
				t.Errorf("figures not passed as given: %s / %s", req.TotalWithoutTax, req.TotalAmount)
			}
			if len(req.Items) != 2 || req.Items[0].MenuItemID != menuItemID || req.Items[1].MenuItemID != uuid.Nil {
				t.Errorf("items: got %+v", req.Items)
			}
			res := testBillResult(restaurantID, uuid.Nil, claims.UserID)
			res.Bill.OrderID.Valid = false
			return res, nil
		},
	}
	router := setupBillRouter(svc, newMockBillStore(), nil, rec)

	rr := doAuthRequest(t, router, "POST", "/bills/manual", map[string]interface{}{
		"tableNumber":  "T9",
		"customerName": "Rahul",
		"items": []map[string]interface{}{
			{"menuItem": menuItemID.String(), "name": "Tea", "price": 20, "quantity": 2},
			{"name": "Service", "price": 60, "quantity": 1},
		},
		"totalWithoutTax": 100,
		"totalAmount":     999,
	}, claims)
	expectStatus(t, rr, http.StatusCreated)

	resp := decodeResponse(t, rr)
	if resp["orderId"] != nil {
		t.Errorf("orderId: got %v, want nil", resp["orderId"])
	}
	if len(rec.billSources) != 1 || rec.billSources[0] != "manual" {
		t.Errorf("bill metric: got %v", rec.billSources)
	}
}

func TestBillManual_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no restaurant", service.ErrNoRestaurant, http.StatusForbidden},
		{"missing info", service.ErrMissingBillInfo, http.StatusBadRequest},
		{"bad item", service.ErrInvalidBillItem, http.StatusBadRequest},
		{"negative", service.ErrNegativeAmount, http.StatusBadRequest},
		{"too large", service.ErrAmountTooLarge, http.StatusBadRequest},
		{"unknown menu item", service.ErrMenuItemNotFound, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBillingService{
				manualFn: func(context.Context, service.ManualBillRequest) (*service.BillResult, error) {
					return nil, tt.err
				},
			}
			router := setupBillRouter(svc, newMockBillStore(), nil, nil)
			rr := doAuthRequest(t, router, "POST", "/bills/manual", map[string]interface{}{}, staffClaims("admin", uuid.Nil))
			expectStatus(t, rr, tt.status)
		})
	}
}

func TestBillManual_InvalidMenuItemID(t *testing.T) {
	router := setupBillRouter(nil, newMockBillStore(), nil, nil)

	rr := doAuthRequest(t, router, "POST", "/bills/manual", map[string]interface{}{
		"items": []map[string]interface{}{{"menuItem": "not-a-uuid", "name": "X", "quantity": 1}},
	}, staffClaims("cashier", uuid.New()))
	expectStatus(t, rr, http.StatusBadRequest)
}

// --- Reads ---

func TestBillGet(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockBillStore()
	bill := database.GetBillRow{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		TableNumber:     "T1",
		CustomerName:    "Guest",
		TotalWithoutTax: makeNumeric("100"),
		GstPercentage:   makeNumeric("12.5"),
		TotalAmount:     makeNumeric("112.5"),
		GeneratedBy:     uuid.New(),
		GeneratedByName: "Priya",
		GeneratedByRole: database.UserRoleCashier,
		RestaurantName:  "Spice Route",
	}
	store.bills[bill.ID] = bill
	router := setupBillRouter(nil, store, nil, nil)

	rr := doAuthRequest(t, router, "GET", "/bills/"+bill.ID.String(), nil, staffClaims("cashier", restaurantID))
	expectStatus(t, rr, http.StatusOK)
	resp := decodeResponse(t, rr)
	if resp["gstPercentage"] != 12.5 {
		t.Errorf("gstPercentage: got %v, want 12.5", resp["gstPercentage"])
	}
	if gen := resp["generatedBy"].(map[string]interface{}); gen["name"] != "Priya" {
		t.Errorf("generatedBy: got %v", gen)
	}
	if resp["restaurantName"] != "Spice Route" {
		t.Errorf("restaurantName: got %v", resp["restaurantName"])
	}

	rr = doAuthRequest(t, router, "GET", "/bills/"+bill.ID.String(), nil, staffClaims("cashier", uuid.New()))
	expectStatus(t, rr, http.StatusForbidden)
	expectMessage(t, rr, "Not authorized to view this bill")

	rr = doAuthRequest(t, router, "GET", "/bills/"+uuid.New().String(), nil, staffClaims("cashier", restaurantID))
	expectStatus(t, rr, http.StatusNotFound)
	expectMessage(t, rr, "Bill not found")
}

func TestBillList_Filters(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockBillStore()
	store.addListRow(restaurantID, "100", "118")
	store.addListRow(uuid.New(), "50", "59")
	router := setupBillRouter(nil, store, nil, nil)
	claims := staffClaims("admin", restaurantID)

	before := time.Now()
	rr := doAuthRequest(t, router, "GET", "/bills/restaurant/"+restaurantID.String()+"?filter=last7", nil, claims)
	expectStatus(t, rr, http.StatusOK)

	list := decodeList(t, rr)
	if len(list) != 1 {
		t.Fatalf("bills: got %d, want 1", len(list))
	}
	if len(list[0]["items"].([]interface{})) != 1 {
		t.Error("items not embedded")
	}
	since := store.lastListParams.Since
	if !since.Valid {
		t.Fatal("last7 should set a lower bound")
	}
	if d := before.Sub(since.Time); d < 7*24*time.Hour-time.Minute || d > 7*24*time.Hour+time.Minute {
		t.Errorf("since: %v is not 7 days before now", since.Time)
	}

	rr = doAuthRequest(t, router, "GET", "/bills/restaurant/"+restaurantID.String()+"?filter=decade", nil, claims)
	expectStatus(t, rr, http.StatusOK)
	if store.lastListParams.Since.Valid {
		t.Error("unknown filter should be unbounded")
	}
}

func TestBillList_OtherRestaurant(t *testing.T) {
	router := setupBillRouter(nil, newMockBillStore(), nil, nil)

	rr := doAuthRequest(t, router, "GET", "/bills/restaurant/"+uuid.New().String(), nil, staffClaims("cashier", uuid.New()))
	expectStatus(t, rr, http.StatusForbidden)
}

func TestBillExport_Workbook(t *testing.T) {
	restaurantID := uuid.New()
	store := newMockBillStore()
	row := store.addListRow(restaurantID, "100", "118")
	store.addListRow(restaurantID, "200", "236")
	router := setupBillRouter(nil, store, nil, nil)

	rr := doAuthRequest(t, router, "GET", "/bills/restaurant/"+restaurantID.String()+"/export?filter=month", nil, staffClaims("admin", restaurantID))
	expectStatus(t, rr, http.StatusOK)

	if ct := rr.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !bytes.Contains([]byte(cd), []byte("bills-month-")) {
		t.Errorf("content disposition: got %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	id, err := f.GetCellValue("Bills", "A2")
	if err != nil {
		t.Fatalf("read A2: %v", err)
	}
	if id != row.ID.String() {
		t.Errorf("A2: got %q, want %q", id, row.ID)
	}
	items, _ := f.GetCellValue("Bills", "E2")
	if items != "3" {
		t.Errorf("item count: got %q, want 3", items)
	}
	total, _ := f.GetCellValue("Bills", "I4")
	if total != "354" {
		t.Errorf("grand total: got %q, want 354", total)
	}
}
