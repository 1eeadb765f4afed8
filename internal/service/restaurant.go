package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/database"
	"github.com/shopspring/decimal"
)

// Errors returned by the restaurant service.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrAlreadyHasRestaurant  = errors.New("user already has a registered restaurant")
	ErrMissingRestaurantInfo = errors.New("name, address and phone are required")
	ErrInvalidMenuItem       = errors.New("menu items need a name and a non-negative price")
)

// restaurantOwnerKey is the unique constraint on restaurants(owner_id).
const restaurantOwnerKey = "restaurants_owner_id_key"

// RestaurantStore defines the DB methods needed to register a restaurant.
// Satisfied by *database.Queries (and its WithTx variant).
type RestaurantStore interface {
	GetUserForUpdate(ctx context.Context, id uuid.UUID) (database.User, error)
	CreateRestaurant(ctx context.Context, arg database.CreateRestaurantParams) (database.Restaurant, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	UpdateUserRole(ctx context.Context, arg database.UpdateUserRoleParams) (database.User, error)
}

// NewRestaurantStore creates a RestaurantStore from a DBTX (pool or tx).
type NewRestaurantStore func(db database.DBTX) RestaurantStore

// RegisterRestaurantRequest is the input for registering a restaurant.
type RegisterRestaurantRequest struct {
	OwnerID   uuid.UUID
	Name      string
	Address   string
	Phone     string
	GST       string
	MenuItems []NewMenuItem
}

// NewMenuItem is an initial menu entry supplied at registration.
type NewMenuItem struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Photo       string
}

// RegisterResult holds the created restaurant and the elevated owner.
type RegisterResult struct {
	Restaurant database.Restaurant
	MenuItems  []database.MenuItem
	Owner      database.User
}

// RestaurantService handles restaurant registration.
type RestaurantService struct {
	pool     TxBeginner
	newStore NewRestaurantStore
}

func NewRestaurantService(pool TxBeginner, newStore NewRestaurantStore) *RestaurantService {
	return &RestaurantService{pool: pool, newStore: newStore}
}

// Register creates a restaurant owned by the caller, seeds its menu and
// promotes the caller to admin of it, all in one transaction. The user row
// is locked first so two concurrent registrations by the same user
// serialize; restaurants.owner_id is unique as the storage-level backstop.
func (s *RestaurantService) Register(ctx context.Context, req RegisterRestaurantRequest) (*RegisterResult, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || address == "" || phone == "" {
		return nil, ErrMissingRestaurantInfo
	}
	for i, mi := range req.MenuItems {
		if strings.TrimSpace(mi.Name) == "" || mi.Price.IsNegative() {
			return nil, fmt.Errorf("menuItems[%d]: %w", i, ErrInvalidMenuItem)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	user, err := store.GetUserForUpdate(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}
	if user.Role == database.UserRoleAdmin || user.RestaurantID.Valid {
		return nil, ErrAlreadyHasRestaurant
	}

	restaurant, err := store.CreateRestaurant(ctx, database.CreateRestaurantParams{
		Name:    name,
		Address: address,
		Phone:   phone,
		Gst:     optionalText(strings.TrimSpace(req.GST)),
		OwnerID: user.ID,
	})
	if err != nil {
		if isUniqueViolation(err, restaurantOwnerKey) {
			return nil, ErrAlreadyHasRestaurant
		}
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	menuItems := make([]database.MenuItem, 0, len(req.MenuItems))
	for _, mi := range req.MenuItems {
		created, err := store.CreateMenuItem(ctx, database.CreateMenuItemParams{
			RestaurantID: restaurant.ID,
			Name:         strings.TrimSpace(mi.Name),
			Price:        decimalToNumeric(mi.Price),
			Description:  optionalText(mi.Description),
			Photo:        optionalText(mi.Photo),
		})
		if err != nil {
			return nil, fmt.Errorf("create menu item: %w", err)
		}
		menuItems = append(menuItems, created)
	}

	owner, err := store.UpdateUserRole(ctx, database.UpdateUserRoleParams{
		ID:           user.ID,
		Role:         database.UserRoleAdmin,
		RestaurantID: pgtype.UUID{Bytes: restaurant.ID, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("promote owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &RegisterResult{Restaurant: restaurant, MenuItems: menuItems, Owner: owner}, nil
}
