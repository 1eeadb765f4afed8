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
	"github.com/shopspring/decimal"
)

// EmployeeServicer defines the service methods needed by employee handlers.
// Satisfied by *service.EmployeeService; narrow interface for testability.
type EmployeeServicer interface {
	Create(ctx context.Context, req service.CreateEmployeeRequest) (database.Employee, error)
	Update(ctx context.Context, restaurantID, employeeID uuid.UUID, in service.EmployeeInput) (database.Employee, error)
	Delete(ctx context.Context, restaurantID, employeeID uuid.UUID) error
}

// EmployeeStore defines the database methods needed by employee reads.
// Satisfied by *database.Queries.
type EmployeeStore interface {
	ListEmployeesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.Employee, error)
	GetEmployee(ctx context.Context, arg database.GetEmployeeParams) (database.Employee, error)
}

// EmployeeHandler handles a restaurant's employee registry.
type EmployeeHandler struct {
	svc   EmployeeServicer
	store EmployeeStore
}

func NewEmployeeHandler(svc EmployeeServicer, store EmployeeStore) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, store: store}
}

// RegisterRoutes registers employee endpoints. Expects an authenticated router.
func (h *EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleAdmin))
		r.Use(middleware.RequireRestaurant("restaurantId"))
		r.Get("/employees/{restaurantId}", h.List)
		r.Post("/employees/{restaurantId}/add", h.Create)
		r.Get("/employees/{restaurantId}/{employeeId}", h.Get)
		r.Put("/employees/{restaurantId}/{employeeId}", h.Update)
		r.Delete("/employees/{restaurantId}/{employeeId}", h.Delete)
	})
}

// --- Request / Response types ---

type employeeRequest struct {
	Name     string          `json:"name"`
	Age      *int32          `json:"age"`
	Role     string          `json:"role"`
	Salary   decimal.Decimal `json:"salary"`
	Bonus    decimal.Decimal `json:"bonus"`
	Image    string          `json:"image"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
}

func (req employeeRequest) input() service.EmployeeInput {
	return service.EmployeeInput{
		Name:   req.Name,
		Age:    req.Age,
		Role:   req.Role,
		Salary: req.Salary,
		Bonus:  req.Bonus,
		Image:  req.Image,
	}
}

type employeeResponse struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurantId"`
	UserID       uuid.UUID   `json:"userId"`
	Name         string      `json:"name"`
	Age          *int32      `json:"age"`
	Role         string      `json:"role"`
	Salary       json.Number `json:"salary"`
	Bonus        json.Number `json:"bonus"`
	Image        *string     `json:"image"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func toEmployeeResponse(e database.Employee) employeeResponse {
	resp := employeeResponse{
		ID:           e.ID,
		RestaurantID: e.RestaurantID,
		UserID:       e.UserID,
		Name:         e.Name,
		Role:         string(e.Role),
		Salary:       money(e.Salary),
		Bonus:        money(e.Bonus),
		Image:        textPtr(e.Image),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Age.Valid {
		age := e.Age.Int32
		resp.Age = &age
	}
	return resp
}

// --- Handlers ---

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	employees, err := h.store.ListEmployeesByRestaurant(r.Context(), restaurantID)
	if err != nil {
		serverError(w, "list employees", err)
		return
	}

	resp := make([]employeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = toEmployeeResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")
	employeeID, err := urlUUID(r, "employeeId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	e, err := h.store.GetEmployee(r.Context(), database.GetEmployeeParams{
		ID:           employeeID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Employee not found")
			return
		}
		serverError(w, "get employee", err)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeResponse(e))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := h.svc.Create(r.Context(), service.CreateEmployeeRequest{
		RestaurantID:  restaurantID,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		EmployeeInput: req.input(),
	})
	if err != nil {
		writeEmployeeError(w, "create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeResponse(e))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")
	employeeID, err := urlUUID(r, "employeeId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := h.svc.Update(r.Context(), restaurantID, employeeID, req.input())
	if err != nil {
		writeEmployeeError(w, "update employee", err)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeResponse(e))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")
	employeeID, err := urlUUID(r, "employeeId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := h.svc.Delete(r.Context(), restaurantID, employeeID); err != nil {
		writeEmployeeError(w, "delete employee", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee removed"})
}

func writeEmployeeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
	case errors.Is(err, service.ErrMissingEmployeeInfo),
		errors.Is(err, service.ErrInvalidEmployeeRole),
		errors.Is(err, service.ErrInvalidEmployeePay),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrUserInOtherRole),
		errors.Is(err, service.ErrAlreadyEmployee):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		serverError(w, op, err)
	}
}
