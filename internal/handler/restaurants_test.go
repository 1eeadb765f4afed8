package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/restrohub/api/internal/auth"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/handler"
	"github.com/restrohub/api/internal/service"
)

// --- Mocks ---

type mockRegistrar struct {
	registerFn func(ctx context.Context, req service.RegisterRestaurantRequest) (*service.RegisterResult, error)
}

func (m *mockRegistrar) Register(ctx context.Context, req service.RegisterRestaurantRequest) (*service.RegisterResult, error) {
	return m.registerFn(ctx, req)
}

type mockRestaurantStore struct {
	restaurants map[uuid.UUID]database.Restaurant
}

func newMockRestaurantStore(rs ...database.Restaurant) *mockRestaurantStore {
	m := &mockRestaurantStore{restaurants: make(map[uuid.UUID]database.Restaurant)}
	for _, r := range rs {
		m.restaurants[r.ID] = r
	}
	return m
}

func (m *mockRestaurantStore) ListRestaurants(_ context.Context) ([]database.Restaurant, error) {
	var out []database.Restaurant
	for _, r := range m.restaurants {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRestaurantStore) GetRestaurant(_ context.Context, id uuid.UUID) (database.Restaurant, error) {
	r, ok := m.restaurants[id]
	if !ok {
		return database.Restaurant{}, pgx.ErrNoRows
	}
	return r, nil
}

func (m *mockRestaurantStore) GetRestaurantByOwner(_ context.Context, ownerID uuid.UUID) (database.Restaurant, error) {
	for _, r := range m.restaurants {
		if r.OwnerID == ownerID {
			return r, nil
		}
	}
	return database.Restaurant{}, pgx.ErrNoRows
}

func (m *mockRestaurantStore) UpdateRestaurant(_ context.Context, arg database.UpdateRestaurantParams) (database.Restaurant, error) {
	r, ok := m.restaurants[arg.ID]
	if !ok {
		return database.Restaurant{}, pgx.ErrNoRows
	}
	r.Name, r.Address, r.Phone, r.Gst = arg.Name, arg.Address, arg.Phone, arg.Gst
	m.restaurants[r.ID] = r
	return r, nil
}

func setupRestaurantRouter(svc *mockRegistrar, store *mockRestaurantStore) http.Handler {
	h := handler.NewRestaurantHandler(svc, store, testSecret)
	return newTestRouter(h.RegisterPublicRoutes, h.RegisterRoutes)
}

func testRestaurant(ownerID uuid.UUID) database.Restaurant {
	return database.Restaurant{
		ID:      uuid.New(),
		Name:    "Spice Route",
		Address: "12 MG Road",
		Phone:   "080-1234",
		OwnerID: ownerID,
	}
}

// --- Tests ---

func TestRestaurantList_Public(t *testing.T) {
	router := setupRestaurantRouter(&mockRegistrar{}, newMockRestaurantStore(testRestaurant(uuid.New())))

	rr := doRequest(t, router, "GET", "/restaurants", nil)
	expectStatus(t, rr, http.StatusOK)

	list := decodeList(t, rr)
	if len(list) != 1 || list[0]["name"] != "Spice Route" {
		t.Errorf("unexpected list: %v", list)
	}
}

func TestRestaurantGet_NotFound(t *testing.T) {
	router := setupRestaurantRouter(&mockRegistrar{}, newMockRestaurantStore())

	rr := doRequest(t, router, "GET", "/restaurants/"+uuid.New().String(), nil)
	expectStatus(t, rr, http.StatusNotFound)
	expectMessage(t, rr, "Restaurant not found")
}

func TestRestaurantRegister_ReturnsAdminTokens(t *testing.T) {
	userID := uuid.New()
	restaurant := testRestaurant(userID)

	svc := &mockRegistrar{
		registerFn: func(_ context.Context, req service.RegisterRestaurantRequest) (*service.RegisterResult, error) {
			if req.OwnerID != userID {
				t.Errorf("owner: got %v, want %v", req.OwnerID, userID)
			}
			if len(req.MenuItems) != 1 || req.MenuItems[0].Price.String() != "120.5" {
				t.Errorf("menu items: got %+v", req.MenuItems)
			}
			return &service.RegisterResult{
				Restaurant: restaurant,
				MenuItems: []database.MenuItem{{
					ID: uuid.New(), RestaurantID: restaurant.ID, Name: "Dosa", Price: makeNumeric("120.50"),
				}},
				Owner: database.User{
					ID:           userID,
					Name:         "Owner",
					Role:         database.UserRoleAdmin,
					RestaurantID: pgUUID(restaurant.ID),
				},
			}, nil
		},
	}
	router := setupRestaurantRouter(svc, newMockRestaurantStore())

	claims := &auth.Claims{UserID: userID, Role: "customer"}
	rr := doAuthRequest(t, router, "POST", "/restaurants/register", map[string]interface{}{
		"name":    "Spice Route",
		"address": "12 MG Road",
		"phone":   "080-1234",
		"menuItems": []map[string]interface{}{
			{"name": "Dosa", "price": 120.5},
		},
	}, claims)
	expectStatus(t, rr, http.StatusCreated)

	resp := decodeResponse(t, rr)
	newClaims, err := auth.ValidateToken(testSecret, resp["accessToken"].(string))
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if newClaims.Role != "admin" || newClaims.RestaurantID != restaurant.ID {
		t.Errorf("claims: got role=%s restaurant=%v", newClaims.Role, newClaims.RestaurantID)
	}
	items := resp["menuItems"].([]interface{})
	if items[0].(map[string]interface{})["price"] != 120.5 {
		t.Errorf("price: got %v, want 120.5", items[0].(map[string]interface{})["price"])
	}
}

func TestRestaurantRegister_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"already has restaurant", service.ErrAlreadyHasRestaurant, http.StatusBadRequest},
		{"missing info", service.ErrMissingRestaurantInfo, http.StatusBadRequest},
		{"bad menu item", service.ErrInvalidMenuItem, http.StatusBadRequest},
		{"user gone", service.ErrUserNotFound, http.StatusNotFound},
		{"db failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRegistrar{
				registerFn: func(context.Context, service.RegisterRestaurantRequest) (*service.RegisterResult, error) {
					return nil, tt.err
				},
			}
			router := setupRestaurantRouter(svc, newMockRestaurantStore())
			rr := doAuthRequest(t, router, "POST", "/restaurants/register", map[string]string{"name": "X"},
				&auth.Claims{UserID: uuid.New(), Role: "customer"})
			expectStatus(t, rr, tt.status)
		})
	}
}

func TestRestaurantGetByOwner_SelfOnly(t *testing.T) {
	ownerID := uuid.New()
	restaurant := testRestaurant(ownerID)
	router := setupRestaurantRouter(&mockRegistrar{}, newMockRestaurantStore(restaurant))
	claims := &auth.Claims{UserID: ownerID, RestaurantID: restaurant.ID, Role: "admin"}

	rr := doAuthRequest(t, router, "GET", "/restaurants/admin/"+ownerID.String(), nil, claims)
	expectStatus(t, rr, http.StatusOK)

	rr = doAuthRequest(t, router, "GET", "/restaurants/admin/"+uuid.New().String(), nil, claims)
	expectStatus(t, rr, http.StatusForbidden)
}

func TestRestaurantUpdate(t *testing.T) {
	ownerID := uuid.New()
	restaurant := testRestaurant(ownerID)
	store := newMockRestaurantStore(restaurant)
	router := setupRestaurantRouter(&mockRegistrar{}, store)
	claims := &auth.Claims{UserID: ownerID, RestaurantID: restaurant.ID, Role: "admin"}

	rr := doAuthRequest(t, router, "PUT", "/restaurants/"+restaurant.ID.String(), map[string]string{
		"name": "Spice Route Express",
		"gst":  "29ABCDE1234F1Z5",
	}, claims)
	expectStatus(t, rr, http.StatusOK)

	got := store.restaurants[restaurant.ID]
	if got.Name != "Spice Route Express" || got.Address != "12 MG Road" {
		t.Errorf("unexpected restaurant: %+v", got)
	}
	if got.Gst.String != "29ABCDE1234F1Z5" {
		t.Errorf("gst: got %q", got.Gst.String)
	}
}

func TestRestaurantUpdate_OtherRestaurant(t *testing.T) {
	restaurant := testRestaurant(uuid.New())
	router := setupRestaurantRouter(&mockRegistrar{}, newMockRestaurantStore(restaurant))
	claims := staffClaims("admin", uuid.New())

	rr := doAuthRequest(t, router, "PUT", "/restaurants/"+restaurant.ID.String(), map[string]string{"name": "Mine"}, claims)
	expectStatus(t, rr, http.StatusForbidden)
	expectMessage(t, rr, "Not authorized for this restaurant")
}
