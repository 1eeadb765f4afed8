package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/restrohub/api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

type seedMenuItem struct {
	name        string
	price       string
	description string
}

var demoMenu = []seedMenuItem{
	{"Masala Dosa", "120.00", "Crisp rice crepe with spiced potato"},
	{"Paneer Butter Masala", "240.00", "Cottage cheese in tomato butter gravy"},
	{"Veg Biryani", "210.00", "Basmati rice with vegetables and whole spices"},
	{"Butter Naan", "45.00", ""},
	{"Filter Coffee", "40.00", "South Indian decoction with milk"},
}

var demoStaff = []struct {
	name string
	role string
}{
	{"Ravi Waiter", "waiter"},
	{"Meena Chef", "chef"},
	{"Arjun Cashier", "cashier"},
}

func main() {
	// CLI flags
	email := flag.String("email", "", "Admin email address")
	password := flag.String("password", "", "Password for the admin and demo staff")
	name := flag.String("name", "", "Admin full name")
	restaurantName := flag.String("restaurant", "", "Restaurant name")
	flag.Parse()

	// Fall back to environment variables
	if *email == "" {
		*email = os.Getenv("SEED_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *name == "" {
		*name = os.Getenv("SEED_NAME")
	}

	// Fall back to defaults
	if *email == "" {
		*email = "admin@restrohub.local"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}
	if *name == "" {
		*name = "Demo Admin"
	}
	if *restaurantName == "" {
		*restaurantName = "Spice Route"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Seed in a transaction: restaurant, admin, menu and staff, or nothing
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	adminID, err := seedUser(ctx, tx, *name, *email, string(hashed), "admin")
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	restaurantID, created, err := seedRestaurant(ctx, tx, adminID, *restaurantName)
	if err != nil {
		log.Fatalf("Failed to seed restaurant: %v", err)
	}

	if created {
		if err := seedMenu(ctx, tx, restaurantID); err != nil {
			log.Fatalf("Failed to seed menu: %v", err)
		}
		if err := seedStaff(ctx, tx, restaurantID, string(hashed)); err != nil {
			log.Fatalf("Failed to seed staff: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Restaurant ID: %s", restaurantID)
	log.Printf("Admin ID: %s", adminID)
}

// seedUser creates a user if the email is not taken and returns its ID.
func seedUser(ctx context.Context, tx pgx.Tx, name, email, hashedPassword, role string) (uuid.UUID, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&existingID)
	if err == nil {
		log.Printf("User '%s' already exists (ID: %s), skipping", email, existingID)
		return existingID, nil
	}
	if err != pgx.ErrNoRows {
		return uuid.Nil, fmt.Errorf("check user: %w", err)
	}

	insertSQL := `
		INSERT INTO users (name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var newID uuid.UUID
	if err := tx.QueryRow(ctx, insertSQL, name, email, hashedPassword, role).Scan(&newID); err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}

	log.Printf("Created %s '%s' (ID: %s)", role, email, newID)
	return newID, nil
}

// seedRestaurant creates the admin's restaurant unless they already own
// one. created reports whether a new row was inserted.
func seedRestaurant(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, name string) (uuid.UUID, bool, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM restaurants WHERE owner_id = $1`, ownerID).Scan(&existingID)
	if err == nil {
		log.Printf("Admin already owns restaurant %s, skipping", existingID)
		return existingID, false, nil
	}
	if err != pgx.ErrNoRows {
		return uuid.Nil, false, fmt.Errorf("check restaurant: %w", err)
	}

	insertSQL := `
		INSERT INTO restaurants (name, address, phone, gst, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var newID uuid.UUID
	err = tx.QueryRow(ctx, insertSQL, name, "12 MG Road, Bengaluru", "080-4000-1234", "29ABCDE1234F1Z5", ownerID).Scan(&newID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("insert restaurant: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET restaurant_id = $1, role = 'admin', updated_at = now() WHERE id = $2`, newID, ownerID); err != nil {
		return uuid.Nil, false, fmt.Errorf("link admin: %w", err)
	}

	log.Printf("Created restaurant '%s' (ID: %s)", name, newID)
	return newID, true, nil
}

func seedMenu(ctx context.Context, tx pgx.Tx, restaurantID uuid.UUID) error {
	insertSQL := `
		INSERT INTO menu_items (restaurant_id, name, price, description)
		VALUES ($1, $2, $3::numeric, NULLIF($4, ''))
	`
	for _, item := range demoMenu {
		if _, err := tx.Exec(ctx, insertSQL, restaurantID, item.name, item.price, item.description); err != nil {
			return fmt.Errorf("insert menu item %q: %w", item.name, err)
		}
	}
	log.Printf("Created %d menu items", len(demoMenu))
	return nil
}

// seedStaff creates one login and employee record per staff role.
func seedStaff(ctx context.Context, tx pgx.Tx, restaurantID uuid.UUID, hashedPassword string) error {
	for _, s := range demoStaff {
		email := fmt.Sprintf("%s@restrohub.local", s.role)
		userID, err := seedUser(ctx, tx, s.name, email, hashedPassword, s.role)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET restaurant_id = $1, role = $2, updated_at = now() WHERE id = $3`,
			restaurantID, s.role, userID); err != nil {
			return fmt.Errorf("link %s: %w", email, err)
		}
		insertSQL := `
			INSERT INTO employees (restaurant_id, user_id, name, role, salary)
			VALUES ($1, $2, $3, $4, 20000)
			ON CONFLICT (user_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, insertSQL, restaurantID, userID, s.name, s.role); err != nil {
			return fmt.Errorf("insert employee %s: %w", s.name, err)
		}
	}
	log.Printf("Created %d staff accounts", len(demoStaff))
	return nil
}
