package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/middleware"
)

// UserStore defines the database methods needed by user handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	UpdateUserProfile(ctx context.Context, arg database.UpdateUserProfileParams) (database.User, error)
	UpdateUserRole(ctx context.Context, arg database.UpdateUserRoleParams) (database.User, error)
	EmployeeExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

// UserHandler handles the caller's own account and staff role assignment.
type UserHandler struct {
	store UserStore
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// RegisterRoutes registers user endpoints. Expects an authenticated router.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.Me)
	r.Put("/users/profile", h.UpdateProfile)
	r.With(middleware.RequireRole(enum.UserRoleAdmin)).Put("/users/update-role", h.UpdateRole)
}

// --- Request types ---

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type updateRoleRequest struct {
	Email        string `json:"email"`
	NewRole      string `json:"newRole"`
	RestaurantID string `json:"restaurantId"`
}

// --- Handlers ---

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfile changes the caller's name and phone. Omitted fields keep
// their current value; an empty phone clears it.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, "get user", err)
		return
	}

	params := database.UpdateUserProfileParams{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		params.Name = name
	}
	if req.Phone != nil {
		params.Phone = optionalText(strings.TrimSpace(*req.Phone))
	}

	updated, err := h.store.UpdateUserProfile(r.Context(), params)
	if err != nil {
		serverError(w, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// UpdateRole assigns a staff role in the admin's restaurant to an existing
// account.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req updateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.NewRole == "" || req.RestaurantID == "" {
		writeError(w, http.StatusBadRequest, "email, newRole and restaurantId are required")
		return
	}
	if !enum.IsStaffRole(req.NewRole) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}
	if restaurantID != claims.RestaurantID {
		writeError(w, http.StatusForbidden, "Not authorized for this restaurant")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, "get user by email", err)
		return
	}

	if user.Role == database.UserRoleAdmin {
		writeError(w, http.StatusBadRequest, "Cannot change the role of an admin")
		return
	}
	if user.RestaurantID.Valid && uuid.UUID(user.RestaurantID.Bytes) != restaurantID {
		writeError(w, http.StatusBadRequest, "User belongs to another restaurant")
		return
	}
	// Employee accounts carry their role on the employee record too.
	isEmployee, err := h.store.EmployeeExistsForUser(r.Context(), user.ID)
	if err != nil {
		serverError(w, "check employee", err)
		return
	}
	if isEmployee {
		writeError(w, http.StatusBadRequest, "User is an employee; change the role through the employee record")
		return
	}

	updated, err := h.store.UpdateUserRole(r.Context(), database.UpdateUserRoleParams{
		ID:           user.ID,
		Role:         database.UserRole(req.NewRole),
		RestaurantID: pgtype.UUID{Bytes: restaurantID, Valid: true},
	})
	if err != nil {
		serverError(w, "update user role", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
