package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/restrohub/api/internal/billing"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/restrohub/api/internal/middleware"
)

const (
	defaultTopItems   = 10
	maxTopItems       = 100
	defaultReportDays = 30
)

// ReportsStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportsStore interface {
	GetDailySales(ctx context.Context, arg database.GetDailySalesParams) ([]database.GetDailySalesRow, error)
	GetTopItems(ctx context.Context, arg database.GetTopItemsParams) ([]database.GetTopItemsRow, error)
}

// ReportsHandler handles the admin sales dashboard.
type ReportsHandler struct {
	store ReportsStore
	loc   *time.Location
	now   func() time.Time
}

// NewReportsHandler creates a new ReportsHandler. Days are bucketed in loc.
func NewReportsHandler(store ReportsStore, loc *time.Location) *ReportsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportsHandler{store: store, loc: loc, now: time.Now}
}

// RegisterRoutes registers report endpoints. Expects an authenticated router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/reports/restaurant/{restaurantId}", func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleAdmin))
		r.Use(middleware.RequireRestaurant("restaurantId"))
		r.Get("/daily-sales", h.DailySales)
		r.Get("/top-items", h.TopItems)
	})
}

// --- Response types ---

type dailySalesResponse struct {
	Date            string      `json:"date"`
	BillCount       int64       `json:"billCount"`
	TotalWithoutTax json.Number `json:"totalWithoutTax"`
	TotalTax        json.Number `json:"totalTax"`
	TotalAmount     json.Number `json:"totalAmount"`
}

type topItemResponse struct {
	Name         string      `json:"name"`
	QuantitySold int64       `json:"quantitySold"`
	Revenue      json.Number `json:"revenue"`
}

// --- Handlers ---

// DailySales returns per-day bill totals for a date range.
func (h *ReportsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	startDate, endDate, err := h.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.store.GetDailySales(r.Context(), database.GetDailySalesParams{
		Tz:           pgTimeZone(h.loc, startDate),
		RestaurantID: restaurantID,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		serverError(w, "get daily sales", err)
		return
	}

	resp := make([]dailySalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = dailySalesResponse{
			Date:            formatDate(row.SaleDate),
			BillCount:       row.BillCount,
			TotalWithoutTax: money(row.TotalWithoutTax),
			TotalTax:        money(row.TotalTax),
			TotalAmount:     money(row.TotalAmount),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// TopItems returns the best selling items by quantity.
func (h *ReportsHandler) TopItems(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := urlUUID(r, "restaurantId")

	startDate, endDate, err := h.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultTopItems
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxTopItems {
		limit = maxTopItems
	}

	rows, err := h.store.GetTopItems(r.Context(), database.GetTopItemsParams{
		RestaurantID: restaurantID,
		StartDate:    startDate,
		EndDate:      endDate,
		RowLimit:     int32(limit),
	})
	if err != nil {
		serverError(w, "get top items", err)
		return
	}

	resp := make([]topItemResponse, len(rows))
	for i, row := range rows {
		resp[i] = topItemResponse{
			Name:         row.Name,
			QuantitySold: row.QuantitySold,
			Revenue:      money(row.Revenue),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseDateRange reads start_date and end_date (YYYY-MM-DD, inclusive) in
// the restaurant time zone and returns a half-open [start, end) range.
// Defaults to the last 30 days including today.
func (h *ReportsHandler) parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	today := billing.StartOfDay(h.now().In(h.loc))
	startDate := today.AddDate(0, 0, -defaultReportDays)
	endDate := today.AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid start_date format")
		}
		startDate = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid end_date format")
		}
		endDate = t.AddDate(0, 0, 1)
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, errors.New("start_date must not be after end_date")
	}

	return startDate, endDate, nil
}

// pgTimeZone names loc for Postgres AT TIME ZONE. Zones Go can resolve by
// name are passed through. Anything else (a fixed zone such as "IST",
// which Postgres reads as Israel time) becomes a POSIX offset, where the
// sign counts hours west of UTC.
func pgTimeZone(loc *time.Location, at time.Time) string {
	name := loc.String()
	_, offset := at.In(loc).Zone()
	if name != "Local" {
		if named, err := time.LoadLocation(name); err == nil {
			if _, namedOffset := at.In(named).Zone(); namedOffset == offset {
				return name
			}
		}
	}
	sign := "-"
	if offset < 0 {
		sign = "+"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offset/3600, offset%3600/60)
}
