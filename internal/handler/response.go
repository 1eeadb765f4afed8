package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// EventPublisher pushes restaurant events to live dashboards.
// Satisfied by *ws.Hub.
type EventPublisher interface {
	Publish(restaurantID uuid.UUID, eventType string, payload any)
}

// Recorder counts domain events. Satisfied by *metrics.Metrics.
type Recorder interface {
	OrderCreated()
	OrderStatusChanged(status string)
	BillGenerated(source string)
	BookingCreated()
	BookingStatusChanged(status string)
}

type noopPublisher struct{}

func (noopPublisher) Publish(uuid.UUID, string, any) {}

type noopRecorder struct{}

func (noopRecorder) OrderCreated()               {}
func (noopRecorder) OrderStatusChanged(string)   {}
func (noopRecorder) BillGenerated(string)        {}
func (noopRecorder) BookingCreated()             {}
func (noopRecorder) BookingStatusChanged(string) {}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// serverError logs err and answers with a generic 500.
func serverError(w http.ResponseWriter, op string, err error) {
	log.Printf("ERROR: %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "Server error")
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// urlUUID parses a chi URL parameter as a UUID.
func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

// money renders a NUMERIC as a JSON number with two decimals.
func money(n pgtype.Numeric) json.Number {
	return json.Number(numericToDecimal(n).StringFixed(2))
}

// percent renders a percentage without trailing zeros.
func percent(n pgtype.Numeric) json.Number {
	return json.Number(numericToDecimal(n).String())
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func uuidPtr(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}

func formatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// today returns the current calendar date in loc as a UTC-midnight pgtype.Date.
func today(now time.Time, loc *time.Location) pgtype.Date {
	y, m, d := now.In(loc).Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}
