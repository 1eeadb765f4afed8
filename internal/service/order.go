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

// Errors returned by the order service.
var (
	ErrEmptyItems        = errors.New("items are required")
	ErrMissingOrderInfo  = errors.New("tableNumber and customerName are required")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidMenuItemID = errors.New("invalid menuItem")
	ErrMenuItemNotFound  = errors.New("menu item not found in restaurant")
)

// OrderStore defines the DB methods needed to create orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetMenuItem(ctx context.Context, arg database.GetMenuItemParams) (database.MenuItem, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the input for placing an order.
type CreateOrderRequest struct {
	RestaurantID uuid.UUID
	CreatedBy    uuid.UUID
	TableNumber  string
	CustomerName string
	Items        []CreateOrderItemRequest
}

// CreateOrderItemRequest is a single line of the order.
type CreateOrderItemRequest struct {
	MenuItemID string
	Quantity   int32
}

// OrderResult is an order with its line items.
type OrderResult struct {
	Order database.Order
	Items []database.OrderItem
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// CreateOrder resolves each menu item inside the restaurant, snapshots its
// name and price onto the order line, and inserts the order atomically.
// The total is always computed server-side.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error) {
	if strings.TrimSpace(req.TableNumber) == "" || strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrMissingOrderInfo
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	menuItemIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		id, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidMenuItemID)
		}
		menuItemIDs[i] = id
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	total := decimal.Zero
	lines := make([]database.CreateOrderItemParams, len(req.Items))
	for i, item := range req.Items {
		mi, err := store.GetMenuItem(ctx, database.GetMenuItemParams{
			ID:           menuItemIDs[i],
			RestaurantID: req.RestaurantID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrMenuItemNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get menu item: %w", i, err)
		}

		price := numericToDecimal(mi.Price)
		total = total.Add(billing.LineTotal(price, item.Quantity))
		lines[i] = database.CreateOrderItemParams{
			MenuItemID: pgtype.UUID{Bytes: mi.ID, Valid: true},
			Name:       mi.Name,
			Price:      decimalToNumeric(price),
			Quantity:   item.Quantity,
		}
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		RestaurantID: req.RestaurantID,
		TableNumber:  strings.TrimSpace(req.TableNumber),
		CustomerName: strings.TrimSpace(req.CustomerName),
		TotalAmount:  decimalToNumeric(total),
		CreatedBy:    req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	items := make([]database.OrderItem, 0, len(lines))
	for _, line := range lines {
		line.OrderID = order.ID
		item, err := store.CreateOrderItem(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &OrderResult{Order: order, Items: items}, nil
}
