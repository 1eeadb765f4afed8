package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/menu"
	"github.com/restrohub/api/internal/middleware"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuStore interface {
	GetRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	ListMenuItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.MenuItem, error)
	GetMenuItem(ctx context.Context, arg database.GetMenuItemParams) (database.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	UpdateMenuItem(ctx context.Context, arg database.UpdateMenuItemParams) (database.MenuItem, error)
	DeleteMenuItem(ctx context.Context, arg database.DeleteMenuItemParams) (int64, error)
}

// MenuHandler handles a restaurant's menu catalog.
type MenuHandler struct {
	store MenuStore
}

func NewMenuHandler(store MenuStore) *MenuHandler {
	return &MenuHandler{store: store}
}

// RegisterPublicRoutes registers the unauthenticated menu listing.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/menu/{restaurantId}", h.List)
}

// RegisterRoutes registers menu mutations. Expects an authenticated router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleAdmin))
		r.Use(middleware.RequireRestaurant("restaurantId"))
		r.Post("/menu/{restaurantId}/add", h.Create)
		r.Put("/menu/{restaurantId}/{itemId}", h.Update)
		r.Delete("/menu/{restaurantId}/{itemId}", h.Delete)
	})
}

// --- Response types ---

type menuItemResponse struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurantId"`
	Name         string      `json:"name"`
	Price        json.Number `json:"price"`
	Description  *string     `json:"description"`
	Photo        *string     `json:"photo"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func toMenuItemResponse(mi database.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           mi.ID,
		RestaurantID: mi.RestaurantID,
		Name:         mi.Name,
		Price:        money(mi.Price),
		Description:  textPtr(mi.Description),
		Photo:        textPtr(mi.Photo),
		CreatedAt:    mi.CreatedAt,
		UpdatedAt:    mi.UpdatedAt,
	}
}

// --- Handlers ---

// List returns the restaurant's menu. With ?q= only matching items are
// returned, best match first.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := urlUUID(r, "restaurantId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	if _, err := h.store.GetRestaurant(r.Context(), restaurantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		serverError(w, "get restaurant", err)
		return
	}

	items, err := h.store.ListMenuItemsByRestaurant(r.Context(), restaurantID)
	if err != nil {
		serverError(w, "list menu items", err)
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		items = searchMenu(items, q)
	}

	resp := make([]menuItemResponse, len(items))
	for i, mi := range items {
		resp[i] = toMenuItemResponse(mi)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateMenuItem(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        decimalToNumeric(req.Price),
		Description:  optionalText(req.Description),
		Photo:        optionalText(req.Photo),
	})
	if err != nil {
		serverError(w, "create menu item", err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")
	itemID, err := urlUUID(r, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateMenuItem(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.UpdateMenuItem(r.Context(), database.UpdateMenuItemParams{
		ID:           itemID,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        decimalToNumeric(req.Price),
		Description:  optionalText(req.Description),
		Photo:        optionalText(req.Photo),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		serverError(w, "update menu item", err)
		return
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")
	itemID, err := urlUUID(r, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	n, err := h.store.DeleteMenuItem(r.Context(), database.DeleteMenuItemParams{
		ID:           itemID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		serverError(w, "delete menu item", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item removed"})
}

// --- Helpers ---

// validateMenuItem trims req in place and returns a message when invalid.
func validateMenuItem(req *menuItemRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Photo = strings.TrimSpace(req.Photo)
	if req.Name == "" {
		return "name is required"
	}
	if req.Price.IsNegative() {
		return "price must not be negative"
	}
	return ""
}

func searchMenu(items []database.MenuItem, q string) []database.MenuItem {
	docs := make([]menu.Document, len(items))
	byID := make(map[uuid.UUID]database.MenuItem, len(items))
	for i, mi := range items {
		docs[i] = menu.Document{ID: mi.ID, Name: mi.Name, Description: mi.Description.String}
		byID[mi.ID] = mi
	}

	results := menu.NewIndex(docs).Search(q)
	matched := make([]database.MenuItem, len(results))
	for i, res := range results {
		matched[i] = byID[res.ID]
	}
	return matched
}
