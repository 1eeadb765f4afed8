package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/billing"
	"github.com/restrohub/api/internal/database"
	"github.com/shopspring/decimal"
)

// Errors returned by the billing service.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderForbidden    = errors.New("order belongs to another restaurant")
	ErrAlreadyBilled     = errors.New("bill already generated for this order")
	ErrNoRestaurant      = errors.New("caller is not attached to a restaurant")
	ErrMissingBillInfo   = errors.New("tableNumber and customerName are required")
	ErrInvalidBillItem   = errors.New("bill items need a name and a quantity > 0")
	ErrNegativeAmount    = errors.New("amounts must not be negative")
	ErrOrderStateChanged = errors.New("order status changed concurrently")
	ErrAmountTooLarge    = errors.New("gstPercentage must be below 1000 and amounts below 10000000000")
)

// Column limits: gst_percentage NUMERIC(5,2), money NUMERIC(12,2).
var (
	maxGSTPercentage = decimal.NewFromInt(1000)
	maxAmount        = decimal.New(1, 10)
)

// checkLimits rejects figures the bill columns cannot store.
func checkLimits(pct decimal.Decimal, amounts ...decimal.Decimal) error {
	if pct.Round(2).GreaterThanOrEqual(maxGSTPercentage) {
		return ErrAmountTooLarge
	}
	for _, a := range amounts {
		if a.Round(2).GreaterThanOrEqual(maxAmount) {
			return ErrAmountTooLarge
		}
	}
	return nil
}

// billOrderKey is the partial unique index on bills(order_id).
const billOrderKey = "bills_order_id_key"

// BillingStore defines the DB methods needed to generate bills.
// Satisfied by *database.Queries (and its WithTx variant).
type BillingStore interface {
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetBillByOrder(ctx context.Context, orderID pgtype.UUID) (database.Bill, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	CreateBill(ctx context.Context, arg database.CreateBillParams) (database.Bill, error)
	CreateBillItem(ctx context.Context, arg database.CreateBillItemParams) (database.BillItem, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// NewBillingStore creates a BillingStore from a DBTX (pool or tx).
type NewBillingStore func(db database.DBTX) BillingStore

// GenerateFromOrderRequest bills an existing order.
// A zero GSTPercentage selects the service default.
type GenerateFromOrderRequest struct {
	OrderID       uuid.UUID
	RestaurantID  uuid.UUID // caller's restaurant
	GeneratedBy   uuid.UUID
	GSTPercentage decimal.Decimal
}

// ManualBillRequest records a bill with no linked order. Figures are
// stored as given; a nil GSTPercentage selects the service default.
type ManualBillRequest struct {
	RestaurantID    uuid.UUID
	GeneratedBy     uuid.UUID
	TableNumber     string
	CustomerName    string
	Items           []ManualBillItem
	TotalWithoutTax decimal.Decimal
	GSTPercentage   *decimal.Decimal
	TotalAmount     decimal.Decimal
}

// ManualBillItem is a free-form bill line. MenuItemID may be uuid.Nil.
type ManualBillItem struct {
	MenuItemID uuid.UUID
	Name       string
	Price      decimal.Decimal
	Quantity   int32
}

// BillResult is a bill with its line items.
type BillResult struct {
	Bill  database.Bill
	Items []database.BillItem
}

// BillingService handles bill generation.
type BillingService struct {
	pool       TxBeginner
	newStore   NewBillingStore
	defaultGST decimal.Decimal
}

// NewBillingService creates a BillingService. A non-positive defaultGST
// falls back to billing.DefaultGSTPercentage.
func NewBillingService(pool TxBeginner, newStore NewBillingStore, defaultGST decimal.Decimal) *BillingService {
	if !defaultGST.IsPositive() {
		defaultGST = billing.DefaultGSTPercentage
	}
	return &BillingService{pool: pool, newStore: newStore, defaultGST: defaultGST}
}

// GenerateFromOrder bills an order exactly once. The order row is locked
// for the duration of the transaction so concurrent requests serialize on
// it; the unique index on bills(order_id) backs the existence check.
func (s *BillingService) GenerateFromOrder(ctx context.Context, req GenerateFromOrderRequest) (*BillResult, error) {
	if req.GSTPercentage.IsNegative() {
		return nil, ErrNegativeAmount
	}
	pct := req.GSTPercentage
	if pct.IsZero() {
		pct = s.defaultGST
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.GetOrderForUpdate(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if req.RestaurantID == uuid.Nil || order.RestaurantID != req.RestaurantID {
		return nil, ErrOrderForbidden
	}

	orderRef := pgtype.UUID{Bytes: order.ID, Valid: true}
	if _, err := store.GetBillByOrder(ctx, orderRef); err == nil {
		return nil, ErrAlreadyBilled
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check existing bill: %w", err)
	}

	orderItems, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	totals := billing.Compute(numericToDecimal(order.TotalAmount), pct)
	if err := checkLimits(pct, totals.TotalAmount); err != nil {
		return nil, err
	}

	bill, err := store.CreateBill(ctx, database.CreateBillParams{
		RestaurantID:    order.RestaurantID,
		OrderID:         orderRef,
		TableNumber:     order.TableNumber,
		CustomerName:    order.CustomerName,
		TotalWithoutTax: decimalToNumeric(totals.TotalWithoutTax),
		GstPercentage:   decimalToNumeric(totals.GSTPercentage),
		TotalAmount:     decimalToNumeric(totals.TotalAmount),
		GeneratedBy:     req.GeneratedBy,
	})
	if err != nil {
		if isUniqueViolation(err, billOrderKey) {
			return nil, ErrAlreadyBilled
		}
		return nil, fmt.Errorf("create bill: %w", err)
	}

	items := make([]database.BillItem, 0, len(orderItems))
	for _, oi := range orderItems {
		bi, err := store.CreateBillItem(ctx, database.CreateBillItemParams{
			BillID:     bill.ID,
			MenuItemID: oi.MenuItemID,
			Name:       oi.Name,
			Price:      oi.Price,
			Quantity:   oi.Quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("create bill item: %w", err)
		}
		items = append(items, bi)
	}

	if _, err := store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:       order.ID,
		Status:   database.OrderStatusBilled,
		Status_2: order.Status,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderStateChanged
		}
		return nil, fmt.Errorf("mark order billed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &BillResult{Bill: bill, Items: items}, nil
}

// CreateManual stores a client-computed bill for the caller's restaurant.
func (s *BillingService) CreateManual(ctx context.Context, req ManualBillRequest) (*BillResult, error) {
	if req.RestaurantID == uuid.Nil {
		return nil, ErrNoRestaurant
	}
	if strings.TrimSpace(req.TableNumber) == "" || strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrMissingBillInfo
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidBillItem)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrNegativeAmount)
		}
	}

	pct := s.defaultGST
	if req.GSTPercentage != nil {
		pct = *req.GSTPercentage
	}
	if req.TotalWithoutTax.IsNegative() || req.TotalAmount.IsNegative() || pct.IsNegative() {
		return nil, ErrNegativeAmount
	}
	prices := []decimal.Decimal{req.TotalWithoutTax, req.TotalAmount}
	for _, item := range req.Items {
		prices = append(prices, item.Price)
	}
	if err := checkLimits(pct, prices...); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	bill, err := store.CreateBill(ctx, database.CreateBillParams{
		RestaurantID:    req.RestaurantID,
		TableNumber:     strings.TrimSpace(req.TableNumber),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		TotalWithoutTax: decimalToNumeric(req.TotalWithoutTax),
		GstPercentage:   decimalToNumeric(pct),
		TotalAmount:     decimalToNumeric(req.TotalAmount),
		GeneratedBy:     req.GeneratedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	items := make([]database.BillItem, 0, len(req.Items))
	for _, item := range req.Items {
		var menuItemID pgtype.UUID
		if item.MenuItemID != uuid.Nil {
			menuItemID = pgtype.UUID{Bytes: item.MenuItemID, Valid: true}
		}
		bi, err := store.CreateBillItem(ctx, database.CreateBillItemParams{
			BillID:     bill.ID,
			MenuItemID: menuItemID,
			Name:       strings.TrimSpace(item.Name),
			Price:      decimalToNumeric(item.Price),
			Quantity:   item.Quantity,
		})
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, ErrMenuItemNotFound
			}
			return nil, fmt.Errorf("create bill item: %w", err)
		}
		items = append(items, bi)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &BillResult{Bill: bill, Items: items}, nil
}
