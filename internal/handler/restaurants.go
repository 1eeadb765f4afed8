package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/middleware"
	"github.com/restrohub/api/internal/service"
	"github.com/shopspring/decimal"
)

// RestaurantRegistrar defines the service method needed to register a
// restaurant. Satisfied by *service.RestaurantService.
type RestaurantRegistrar interface {
	Register(ctx context.Context, req service.RegisterRestaurantRequest) (*service.RegisterResult, error)
}

// RestaurantStore defines the database methods needed by restaurant handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type RestaurantStore interface {
	ListRestaurants(ctx context.Context) ([]database.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	UpdateRestaurant(ctx context.Context, arg database.UpdateRestaurantParams) (database.Restaurant, error)
}

// RestaurantHandler handles the restaurant directory.
type RestaurantHandler struct {
	svc       RestaurantRegistrar
	store     RestaurantStore
	jwtSecret string
}

func NewRestaurantHandler(svc RestaurantRegistrar, store RestaurantStore, jwtSecret string) *RestaurantHandler {
	return &RestaurantHandler{svc: svc, store: store, jwtSecret: jwtSecret}
}

// RegisterPublicRoutes registers the unauthenticated directory endpoints.
func (h *RestaurantHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/restaurants", h.List)
	r.Get("/restaurants/{restaurantId}", h.Get)
}

// RegisterRoutes registers restaurant endpoints. Expects an authenticated router.
func (h *RestaurantHandler) RegisterRoutes(r chi.Router) {
	r.Post("/restaurants/register", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleAdmin))
		r.Get("/restaurants/admin/{userId}", h.GetByOwner)
		r.With(middleware.RequireRestaurant("restaurantId")).Put("/restaurants/{restaurantId}", h.Update)
	})
}

// --- Request / Response types ---

type registerRestaurantRequest struct {
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	GST       string            `json:"gst"`
	MenuItems []menuItemRequest `json:"menuItems"`
}

type updateRestaurantRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	GST     *string `json:"gst"`
}

type restaurantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GST       *string   `json:"gst"`
	OwnerID   uuid.UUID `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type registerRestaurantResponse struct {
	Restaurant   restaurantResponse `json:"restaurant"`
	MenuItems    []menuItemResponse `json:"menuItems"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	User         userResponse       `json:"user"`
}

func toRestaurantResponse(rest database.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:        rest.ID,
		Name:      rest.Name,
		Address:   rest.Address,
		Phone:     rest.Phone,
		GST:       textPtr(rest.Gst),
		OwnerID:   rest.OwnerID,
		CreatedAt: rest.CreatedAt,
		UpdatedAt: rest.UpdatedAt,
	}
}

// --- Handlers ---

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.store.ListRestaurants(r.Context())
	if err != nil {
		serverError(w, "list restaurants", err)
		return
	}

	resp := make([]restaurantResponse, len(restaurants))
	for i, rest := range restaurants {
		resp[i] = toRestaurantResponse(rest)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := urlUUID(r, "restaurantId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	rest, err := h.store.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		serverError(w, "get restaurant", err)
		return
	}

	writeJSON(w, http.StatusOK, toRestaurantResponse(rest))
}

// Register creates a restaurant owned by the caller and answers with a new
// token pair carrying the admin role.
func (h *RestaurantHandler) Register(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req registerRestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	menuItems := make([]service.NewMenuItem, len(req.MenuItems))
	for i, mi := range req.MenuItems {
		menuItems[i] = service.NewMenuItem{
			Name:        mi.Name,
			Price:       mi.Price,
			Description: strings.TrimSpace(mi.Description),
			Photo:       strings.TrimSpace(mi.Photo),
		}
	}

	result, err := h.svc.Register(r.Context(), service.RegisterRestaurantRequest{
		OwnerID:   claims.UserID,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		GST:       req.GST,
		MenuItems: menuItems,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrAlreadyHasRestaurant):
			writeError(w, http.StatusBadRequest, "You already have a registered restaurant")
		case errors.Is(err, service.ErrMissingRestaurantInfo),
			errors.Is(err, service.ErrInvalidMenuItem):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			serverError(w, "register restaurant", err)
		}
		return
	}

	tokens, err := issueTokens(h.jwtSecret, result.Owner)
	if err != nil {
		serverError(w, "issue tokens", err)
		return
	}

	items := make([]menuItemResponse, len(result.MenuItems))
	for i, mi := range result.MenuItems {
		items[i] = toMenuItemResponse(mi)
	}

	writeJSON(w, http.StatusCreated, registerRestaurantResponse{
		Restaurant:   toRestaurantResponse(result.Restaurant),
		MenuItems:    items,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         tokens.User,
	})
}

// GetByOwner returns the restaurant owned by the given user. Admins may
// only look up themselves.
func (h *RestaurantHandler) GetByOwner(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	userID, err := urlUUID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if userID != claims.UserID {
		writeError(w, http.StatusForbidden, "Not authorized to view this restaurant")
		return
	}

	rest, err := h.store.GetRestaurantByOwner(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		serverError(w, "get restaurant by owner", err)
		return
	}

	writeJSON(w, http.StatusOK, toRestaurantResponse(rest))
}

func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	var req updateRestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rest, err := h.store.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		serverError(w, "get restaurant", err)
		return
	}

	params := database.UpdateRestaurantParams{
		ID:      rest.ID,
		Name:    rest.Name,
		Address: rest.Address,
		Phone:   rest.Phone,
		Gst:     rest.Gst,
	}
	for _, f := range []struct {
		in  *string
		out *string
	}{
		{req.Name, &params.Name},
		{req.Address, &params.Address},
		{req.Phone, &params.Phone},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			writeError(w, http.StatusBadRequest, "name, address and phone cannot be empty")
			return
		}
		*f.out = v
	}
	if req.GST != nil {
		params.Gst = optionalText(strings.TrimSpace(*req.GST))
	}

	updated, err := h.store.UpdateRestaurant(r.Context(), params)
	if err != nil {
		serverError(w, "update restaurant", err)
		return
	}

	writeJSON(w, http.StatusOK, toRestaurantResponse(updated))
}

// menuItemRequest is shared by restaurant registration and the menu endpoints.
type menuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Photo       string          `json:"photo"`
}
