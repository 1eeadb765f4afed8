package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/billing"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/middleware"
	"github.com/restrohub/api/internal/service"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillingServicer defines the service methods needed by bill handlers.
// Satisfied by *service.BillingService; narrow interface for testability.
type BillingServicer interface {
	GenerateFromOrder(ctx context.Context, req service.GenerateFromOrderRequest) (*service.BillResult, error)
	CreateManual(ctx context.Context, req service.ManualBillRequest) (*service.BillResult, error)
}

// BillStore defines the database methods needed by bill reads.
// Satisfied by *database.Queries; narrow interface for testability.
type BillStore interface {
	GetBill(ctx context.Context, id uuid.UUID) (database.GetBillRow, error)
	ListBillItemsByBill(ctx context.Context, billID uuid.UUID) ([]database.BillItem, error)
	ListBillsByRestaurant(ctx context.Context, arg database.ListBillsByRestaurantParams) ([]database.ListBillsByRestaurantRow, error)
	ListBillItemsByBills(ctx context.Context, billIds []uuid.UUID) ([]database.BillItem, error)
}

// BillHandler handles bill generation and bill history.
type BillHandler struct {
	svc     BillingServicer
	store   BillStore
	events  EventPublisher
	metrics Recorder
	loc     *time.Location
	now     func() time.Time
}

// NewBillHandler creates a BillHandler. History filters are evaluated in loc.
// Nil events or rec disable publishing or counting.
func NewBillHandler(svc BillingServicer, store BillStore, events EventPublisher, rec Recorder, loc *time.Location) *BillHandler {
	if events == nil {
		events = noopPublisher{}
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BillHandler{svc: svc, store: store, events: events, metrics: rec, loc: loc, now: time.Now}
}

// RegisterRoutes registers bill endpoints. Expects an authenticated router.
func (h *BillHandler) RegisterRoutes(r chi.Router) {
	r.Route("/bills", func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleCashier, enum.UserRoleAdmin))
		r.Post("/manual", h.CreateManual)
		r.Post("/generate-from-order/{orderId}", h.GenerateFromOrder)
		r.Get("/{billId}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRestaurant("restaurantId"))
			r.Get("/restaurant/{restaurantId}", h.List)
			r.Get("/restaurant/{restaurantId}/export", h.Export)
		})
	})
}

// --- Request / Response types ---

type generateBillRequest struct {
	GSTPercentage *decimal.Decimal `json:"gstPercentage"`
}

type manualBillRequest struct {
	TableNumber     string                  `json:"tableNumber"`
	CustomerName    string                  `json:"customerName"`
	Items           []manualBillItemRequest `json:"items"`
	TotalWithoutTax decimal.Decimal         `json:"totalWithoutTax"`
	GSTPercentage   *decimal.Decimal        `json:"gstPercentage"`
	TotalAmount     decimal.Decimal         `json:"totalAmount"`
}

type manualBillItemRequest struct {
	MenuItem string          `json:"menuItem"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

type billResponse struct {
	ID              uuid.UUID          `json:"id"`
	RestaurantID    uuid.UUID          `json:"restaurantId"`
	RestaurantName  string             `json:"restaurantName,omitempty"`
	OrderID         *uuid.UUID         `json:"orderId"`
	TableNumber     string             `json:"tableNumber"`
	CustomerName    string             `json:"customerName"`
	Items           []billItemResponse `json:"items"`
	TotalWithoutTax json.Number        `json:"totalWithoutTax"`
	GSTPercentage   json.Number        `json:"gstPercentage"`
	TotalAmount     json.Number        `json:"totalAmount"`
	GeneratedBy     generatorResponse  `json:"generatedBy"`
	CreatedAt       time.Time          `json:"createdAt"`
}

type billItemResponse struct {
	MenuItem *uuid.UUID  `json:"menuItem"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int32       `json:"quantity"`
}

type generatorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
	Role string    `json:"role,omitempty"`
}

// billFields is the column set shared by every bill row shape.
type billFields struct {
	ID              uuid.UUID
	RestaurantID    uuid.UUID
	RestaurantName  string
	OrderID         pgtype.UUID
	TableNumber     string
	CustomerName    string
	TotalWithoutTax pgtype.Numeric
	GstPercentage   pgtype.Numeric
	TotalAmount     pgtype.Numeric
	CreatedAt       time.Time
	Generator       generatorResponse
}

func toBillResponse(b billFields, items []database.BillItem) billResponse {
	resp := billResponse{
		ID:              b.ID,
		RestaurantID:    b.RestaurantID,
		RestaurantName:  b.RestaurantName,
		OrderID:         uuidPtr(b.OrderID),
		TableNumber:     b.TableNumber,
		CustomerName:    b.CustomerName,
		Items:           make([]billItemResponse, len(items)),
		TotalWithoutTax: money(b.TotalWithoutTax),
		GSTPercentage:   percent(b.GstPercentage),
		TotalAmount:     money(b.TotalAmount),
		GeneratedBy:     b.Generator,
		CreatedAt:       b.CreatedAt,
	}
	for i, it := range items {
		resp.Items[i] = billItemResponse{
			MenuItem: uuidPtr(it.MenuItemID),
			Name:     it.Name,
			Price:    money(it.Price),
			Quantity: it.Quantity,
		}
	}
	return resp
}

func fieldsFromBill(b database.Bill, role string) billFields {
	return billFields{
		ID: b.ID, RestaurantID: b.RestaurantID, OrderID: b.OrderID,
		TableNumber: b.TableNumber, CustomerName: b.CustomerName,
		TotalWithoutTax: b.TotalWithoutTax, GstPercentage: b.GstPercentage, TotalAmount: b.TotalAmount,
		CreatedAt: b.CreatedAt,
		Generator: generatorResponse{ID: b.GeneratedBy, Role: role},
	}
}

func fieldsFromBillRow(b database.GetBillRow) billFields {
	return billFields{
		ID: b.ID, RestaurantID: b.RestaurantID, RestaurantName: b.RestaurantName, OrderID: b.OrderID,
		TableNumber: b.TableNumber, CustomerName: b.CustomerName,
		TotalWithoutTax: b.TotalWithoutTax, GstPercentage: b.GstPercentage, TotalAmount: b.TotalAmount,
		CreatedAt: b.CreatedAt,
		Generator: generatorResponse{ID: b.GeneratedBy, Name: b.GeneratedByName, Role: string(b.GeneratedByRole)},
	}
}

func fieldsFromListRow(b database.ListBillsByRestaurantRow) billFields {
	return billFields{
		ID: b.ID, RestaurantID: b.RestaurantID, OrderID: b.OrderID,
		TableNumber: b.TableNumber, CustomerName: b.CustomerName,
		TotalWithoutTax: b.TotalWithoutTax, GstPercentage: b.GstPercentage, TotalAmount: b.TotalAmount,
		CreatedAt: b.CreatedAt,
		Generator: generatorResponse{ID: b.GeneratedBy, Name: b.GeneratedByName, Role: string(b.GeneratedByRole)},
	}
}

// --- Handlers ---

// GenerateFromOrder bills an order of the caller's restaurant. The body is
// optional; a missing or zero gstPercentage uses the default rate.
func (h *BillHandler) GenerateFromOrder(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	orderID, err := urlUUID(r, "orderId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req generateBillRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq := service.GenerateFromOrderRequest{
		OrderID:      orderID,
		RestaurantID: claims.RestaurantID,
		GeneratedBy:  claims.UserID,
	}
	if req.GSTPercentage != nil {
		svcReq.GSTPercentage = *req.GSTPercentage
	}

	result, err := h.svc.GenerateFromOrder(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderForbidden):
			writeError(w, http.StatusForbidden, "Not authorized to bill orders for this restaurant")
		case errors.Is(err, service.ErrAlreadyBilled):
			writeError(w, http.StatusBadRequest, "Bill already generated for this order")
		case errors.Is(err, service.ErrOrderStateChanged):
			writeError(w, http.StatusConflict, "Order status changed, please refresh")
		case errors.Is(err, service.ErrNegativeAmount),
			errors.Is(err, service.ErrAmountTooLarge):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			serverError(w, "generate bill", err)
		}
		return
	}

	h.created(w, result, claims.Role, "order")
}

// CreateManual records a bill with client-supplied figures.
func (h *BillHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req manualBillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]service.ManualBillItem, len(req.Items))
	for i, it := range req.Items {
		var menuItemID uuid.UUID
		if it.MenuItem != "" {
			id, err := uuid.Parse(it.MenuItem)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("items[%d]: invalid menuItem", i))
				return
			}
			menuItemID = id
		}
		items[i] = service.ManualBillItem{
			MenuItemID: menuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}

	result, err := h.svc.CreateManual(r.Context(), service.ManualBillRequest{
		RestaurantID:    claims.RestaurantID,
		GeneratedBy:     claims.UserID,
		TableNumber:     req.TableNumber,
		CustomerName:    req.CustomerName,
		Items:           items,
		TotalWithoutTax: req.TotalWithoutTax,
		GSTPercentage:   req.GSTPercentage,
		TotalAmount:     req.TotalAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoRestaurant):
			writeError(w, http.StatusForbidden, "Not authorized")
		case errors.Is(err, service.ErrMissingBillInfo),
			errors.Is(err, service.ErrInvalidBillItem),
			errors.Is(err, service.ErrNegativeAmount),
			errors.Is(err, service.ErrAmountTooLarge),
			errors.Is(err, service.ErrMenuItemNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			serverError(w, "create manual bill", err)
		}
		return
	}

	h.created(w, result, claims.Role, "manual")
}

// Get returns one bill of the caller's restaurant with its items and the
// restaurant name for printing.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	billID, err := urlUUID(r, "billId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	bill, err := h.store.GetBill(r.Context(), billID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Bill not found")
			return
		}
		serverError(w, "get bill", err)
		return
	}

	if bill.RestaurantID != claims.RestaurantID {
		writeError(w, http.StatusForbidden, "Not authorized to view this bill")
		return
	}

	items, err := h.store.ListBillItemsByBill(r.Context(), bill.ID)
	if err != nil {
		serverError(w, "list bill items", err)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponse(fieldsFromBillRow(bill), items))
}

// List returns the restaurant's bills newest first. ?filter= narrows the
// period; unknown filters are ignored.
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	bills, itemsByBill, ok := h.history(w, r)
	if !ok {
		return
	}

	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toBillResponse(fieldsFromListRow(b), itemsByBill[b.ID])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export renders the same history as List as an XLSX workbook.
func (h *BillHandler) Export(w http.ResponseWriter, r *http.Request) {
	bills, itemsByBill, ok := h.history(w, r)
	if !ok {
		return
	}

	rows := make([]billing.ExportRow, len(bills))
	for i, b := range bills {
		count := 0
		for _, it := range itemsByBill[b.ID] {
			count += int(it.Quantity)
		}
		rows[i] = billing.ExportRow{
			ID:              b.ID,
			CreatedAt:       b.CreatedAt,
			TableNumber:     b.TableNumber,
			CustomerName:    b.CustomerName,
			ItemCount:       count,
			TotalWithoutTax: numericToDecimal(b.TotalWithoutTax),
			GSTPercentage:   numericToDecimal(b.GstPercentage),
			TotalAmount:     numericToDecimal(b.TotalAmount),
			GeneratedBy:     b.GeneratedByName,
		}
	}

	var buf bytes.Buffer
	if err := billing.WriteWorkbook(&buf, rows, h.loc); err != nil {
		serverError(w, "write bills workbook", err)
		return
	}

	filter := r.URL.Query().Get("filter")
	if _, ok := billing.Since(filter, h.now()); !ok {
		filter = "all"
	}
	filename := fmt.Sprintf("bills-%s-%s.xlsx", filter, h.now().In(h.loc).Format(dateLayout))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ERROR: write export response: %v", err)
	}
}

// --- Helpers ---

func (h *BillHandler) created(w http.ResponseWriter, result *service.BillResult, role, source string) {
	resp := toBillResponse(fieldsFromBill(result.Bill, role), result.Items)
	h.metrics.BillGenerated(source)
	h.events.Publish(result.Bill.RestaurantID, enum.EventBillCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// history loads the filtered bill list with items grouped by bill. It
// writes the error response when ok is false.
func (h *BillHandler) history(w http.ResponseWriter, r *http.Request) ([]database.ListBillsByRestaurantRow, map[uuid.UUID][]database.BillItem, bool) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	params := database.ListBillsByRestaurantParams{RestaurantID: restaurantID}
	if since, ok := billing.Since(r.URL.Query().Get("filter"), h.now().In(h.loc)); ok {
		params.Since = pgtype.Timestamptz{Time: since, Valid: true}
	}

	bills, err := h.store.ListBillsByRestaurant(r.Context(), params)
	if err != nil {
		serverError(w, "list bills", err)
		return nil, nil, false
	}

	itemsByBill := make(map[uuid.UUID][]database.BillItem, len(bills))
	if len(bills) == 0 {
		return bills, itemsByBill, true
	}

	ids := make([]uuid.UUID, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	items, err := h.store.ListBillItemsByBills(r.Context(), ids)
	if err != nil {
		serverError(w, "list bill items", err)
		return nil, nil, false
	}
	for _, it := range items {
		itemsByBill[it.BillID] = append(itemsByBill[it.BillID], it)
	}
	return bills, itemsByBill, true
}
