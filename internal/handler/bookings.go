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
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/middleware"
)

// BookingStore defines the database methods needed by booking handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type BookingStore interface {
	GetRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	CreateBooking(ctx context.Context, arg database.CreateBookingParams) (database.TableBooking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (database.TableBooking, error)
	ListBookingsByCustomer(ctx context.Context, customerID uuid.UUID) ([]database.ListBookingsByCustomerRow, error)
	ListBookingsByRestaurant(ctx context.Context, arg database.ListBookingsByRestaurantParams) ([]database.ListBookingsByRestaurantRow, error)
	UpdateBookingStatus(ctx context.Context, arg database.UpdateBookingStatusParams) (database.TableBooking, error)
}

// BookingHandler handles table bookings.
type BookingHandler struct {
	store   BookingStore
	events  EventPublisher
	metrics Recorder
	loc     *time.Location
	now     func() time.Time
}

// NewBookingHandler creates a BookingHandler. "Today" for the upcoming/past
// filter is taken in loc.
func NewBookingHandler(store BookingStore, events EventPublisher, rec Recorder, loc *time.Location) *BookingHandler {
	if events == nil {
		events = noopPublisher{}
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BookingHandler{store: store, events: events, metrics: rec, loc: loc, now: time.Now}
}

// RegisterRoutes registers booking endpoints. Expects an authenticated router.
func (h *BookingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enum.UserRoleCustomer))
			r.Post("/", h.Create)
			r.Get("/customer/{customerId}", h.ListByCustomer)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enum.UserRoleAdmin))
			r.Get("/restaurant/{restaurantId}", h.ListByRestaurant)
			r.Put("/{bookingId}/update-status", h.UpdateStatus)
		})
	})
}

// --- Request / Response types ---

type createBookingRequest struct {
	RestaurantID string `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Guests       int32  `json:"guests"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

type bookingResponse struct {
	ID           uuid.UUID                  `json:"id"`
	RestaurantID uuid.UUID                  `json:"restaurantId"`
	CustomerID   uuid.UUID                  `json:"customerId"`
	Date         string                     `json:"date"`
	Time         string                     `json:"time"`
	Guests       int32                      `json:"guests"`
	Status       string                     `json:"status"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
	Restaurant   *bookingRestaurantResponse `json:"restaurant,omitempty"`
	Customer     *bookingCustomerResponse   `json:"customer,omitempty"`
}

type bookingRestaurantResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type bookingCustomerResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func toBookingResponse(b database.TableBooking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		RestaurantID: b.RestaurantID,
		CustomerID:   b.CustomerID,
		Date:         formatDate(b.Date),
		Time:         b.Time,
		Guests:       b.Guests,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// --- Handlers ---

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Time = strings.TrimSpace(req.Time)
	if req.RestaurantID == "" || req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "restaurantId, date and time are required")
		return
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}
	date, err := parseBookingDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.Guests < 1 {
		writeError(w, http.StatusBadRequest, "guests must be at least 1")
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

	booking, err := h.store.CreateBooking(r.Context(), database.CreateBookingParams{
		RestaurantID: rest.ID,
		CustomerID:   claims.UserID,
		Date:         date,
		Time:         req.Time,
		Guests:       req.Guests,
	})
	if err != nil {
		serverError(w, "create booking", err)
		return
	}

	resp := toBookingResponse(booking)
	resp.Restaurant = &bookingRestaurantResponse{ID: rest.ID, Name: rest.Name}

	h.metrics.BookingCreated()
	h.events.Publish(rest.ID, enum.EventBookingCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// ListByCustomer returns the caller's own bookings.
func (h *BookingHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	customerID, err := urlUUID(r, "customerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	if customerID != claims.UserID {
		writeError(w, http.StatusForbidden, "Not authorized to view these bookings")
		return
	}

	rows, err := h.store.ListBookingsByCustomer(r.Context(), customerID)
	if err != nil {
		serverError(w, "list customer bookings", err)
		return
	}

	resp := make([]bookingResponse, len(rows))
	for i, row := range rows {
		resp[i] = bookingResponse{
			ID:           row.ID,
			RestaurantID: row.RestaurantID,
			CustomerID:   row.CustomerID,
			Date:         formatDate(row.Date),
			Time:         row.Time,
			Guests:       row.Guests,
			Status:       string(row.Status),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
			Restaurant:   &bookingRestaurantResponse{ID: row.RestaurantID, Name: row.RestaurantName},
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListByRestaurant returns bookings for the caller's own restaurant sorted
// by date and time. ?filter=upcoming keeps today onwards, ?filter=past keeps
// earlier days.
func (h *BookingHandler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

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
	if rest.OwnerID != claims.UserID {
		writeError(w, http.StatusForbidden, "Not authorized to view bookings for this restaurant")
		return
	}

	params := database.ListBookingsByRestaurantParams{RestaurantID: rest.ID}
	switch r.URL.Query().Get("filter") {
	case enum.BookingFilterUpcoming:
		params.OnOrAfter = today(h.now(), h.loc)
	case enum.BookingFilterPast:
		params.Before = today(h.now(), h.loc)
	}

	rows, err := h.store.ListBookingsByRestaurant(r.Context(), params)
	if err != nil {
		serverError(w, "list restaurant bookings", err)
		return
	}

	resp := make([]bookingResponse, len(rows))
	for i, row := range rows {
		resp[i] = bookingResponse{
			ID:           row.ID,
			RestaurantID: row.RestaurantID,
			CustomerID:   row.CustomerID,
			Date:         formatDate(row.Date),
			Time:         row.Time,
			Guests:       row.Guests,
			Status:       string(row.Status),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
			Customer:     &bookingCustomerResponse{ID: row.CustomerID, Name: row.CustomerName, Email: row.CustomerEmail},
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus lets the restaurant owner confirm, cancel or complete a
// booking. Any of the three may follow any status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	bookingID, err := urlUUID(r, "bookingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req updateBookingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	status := database.BookingStatus(req.Status)
	switch status {
	case database.BookingStatusConfirmed, database.BookingStatusCancelled, database.BookingStatusCompleted:
	default:
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	booking, err := h.store.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		serverError(w, "get booking", err)
		return
	}

	rest, err := h.store.GetRestaurant(r.Context(), booking.RestaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		serverError(w, "get restaurant", err)
		return
	}
	if rest.OwnerID != claims.UserID {
		writeError(w, http.StatusForbidden, "Not authorized to update this booking")
		return
	}

	updated, err := h.store.UpdateBookingStatus(r.Context(), database.UpdateBookingStatusParams{
		ID:     booking.ID,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		serverError(w, "update booking status", err)
		return
	}

	resp := toBookingResponse(updated)
	h.metrics.BookingStatusChanged(req.Status)
	h.events.Publish(rest.ID, enum.EventBookingStatusUpdated, resp)
	writeJSON(w, http.StatusOK, resp)
}

// parseBookingDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping
// only the calendar date as written.
func parseBookingDate(s string) (pgtype.Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return pgtype.Date{}, err
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}
