package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/auth"
	"github.com/restrohub/api/internal/middleware"
)

const testSecret = "test-secret"

// newTestRouter mounts public routes as-is and protected routes behind
// Authenticate, the way the real router does.
func newTestRouter(public, protected func(r chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	if public != nil {
		public(r)
	}
	if protected != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(testSecret))
			protected(r)
		})
	}
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, router, method, path, body, "")
}

func doAuthRequest(t *testing.T, router http.Handler, method, path string, body interface{}, claims *auth.Claims) *httptest.ResponseRecorder {
	t.Helper()

	// Generate a real JWT token from claims
	token, err := auth.GenerateToken(testSecret, claims.UserID, claims.RestaurantID, claims.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return serve(t, router, method, path, body, token)
}

func serve(t *testing.T, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, want, rr.Body.String())
	}
}

func expectMessage(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	resp := decodeResponse(t, rr)
	if resp["message"] != want {
		t.Errorf("message: got %v, want %q", resp["message"], want)
	}
}

func staffClaims(role string, restaurantID uuid.UUID) *auth.Claims {
	return &auth.Claims{
		UserID:       uuid.New(),
		RestaurantID: restaurantID,
		Role:         role,
	}
}

func makeNumeric(s string) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		panic("invalid numeric: " + s)
	}
	return n
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// --- Recording fakes for events and metrics ---

type publishedEvent struct {
	RestaurantID uuid.UUID
	Type         string
	Payload      interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) Publish(restaurantID uuid.UUID, eventType string, payload any) {
	f.events = append(f.events, publishedEvent{RestaurantID: restaurantID, Type: eventType, Payload: payload})
}

type fakeRecorder struct {
	ordersCreated   int
	orderStatuses   []string
	billSources     []string
	bookingsCreated int
	bookingStatuses []string
}

func (f *fakeRecorder) OrderCreated()               { f.ordersCreated++ }
func (f *fakeRecorder) OrderStatusChanged(s string) { f.orderStatuses = append(f.orderStatuses, s) }
func (f *fakeRecorder) BillGenerated(source string) { f.billSources = append(f.billSources, source) }
func (f *fakeRecorder) BookingCreated()             { f.bookingsCreated++ }
func (f *fakeRecorder) BookingStatusChanged(s string) {
	f.bookingStatuses = append(f.bookingStatuses, s)
}
