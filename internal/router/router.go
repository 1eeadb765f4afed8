package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/restrohub/api/internal/config"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/handler"
	"github.com/restrohub/api/internal/metrics"
	mw "github.com/restrohub/api/internal/middleware"
	"github.com/restrohub/api/internal/service"
	"github.com/restrohub/api/internal/ws"
	"github.com/shopspring/decimal"
)

// New creates a Chi router with all application routes wired up.
// Each handler applies its own role and restaurant gates; New only
// separates public routes from authenticated ones. m may be nil.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	if cfg.Metrics.Enabled && m != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/restaurants/{restaurantId}/events", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	loc := cfg.Location()
	defaultGST := decimal.NewFromFloat(cfg.DefaultGSTPercentage)

	// Services
	restaurantService := service.NewRestaurantService(pool, func(db database.DBTX) service.RestaurantStore {
		return database.New(db)
	})
	employeeService := service.NewEmployeeService(pool, func(db database.DBTX) service.EmployeeStore {
		return database.New(db)
	})
	orderService := service.NewOrderService(pool, func(db database.DBTX) service.OrderStore {
		return database.New(db)
	})
	billingService := service.NewBillingService(pool, func(db database.DBTX) service.BillingStore {
		return database.New(db)
	}, defaultGST)

	// Handlers
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	userHandler := handler.NewUserHandler(queries)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, queries, cfg.JWTSecret)
	menuHandler := handler.NewMenuHandler(queries)
	employeeHandler := handler.NewEmployeeHandler(employeeService, queries)
	orderHandler := handler.NewOrderHandler(orderService, queries, m)
	billHandler := handler.NewBillHandler(billingService, queries, hub, m, loc)
	bookingHandler := handler.NewBookingHandler(queries, hub, m, loc)
	reportsHandler := handler.NewReportsHandler(queries, loc)

	// Public routes
	authHandler.RegisterRoutes(r)
	restaurantHandler.RegisterPublicRoutes(r)
	menuHandler.RegisterPublicRoutes(r)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		userHandler.RegisterRoutes(r)
		restaurantHandler.RegisterRoutes(r)
		menuHandler.RegisterRoutes(r)
		employeeHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
		billHandler.RegisterRoutes(r)
		bookingHandler.RegisterRoutes(r)
		reportsHandler.RegisterRoutes(r)
	})

	log.Println("Router initialized with all handlers")
	return r
}
