package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/enum"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Errors returned by the employee service.
var (
	ErrMissingEmployeeInfo = errors.New("name, email and role are required")
	ErrInvalidEmployeeRole = errors.New("role must be waiter, chef or cashier")
	ErrInvalidEmployeePay  = errors.New("age, salary and bonus must not be negative")
	ErrPasswordRequired    = errors.New("password of at least 6 characters is required for a new account")
	ErrUserInOtherRole     = errors.New("user already belongs to a restaurant")
	ErrAlreadyEmployee     = errors.New("user is already an employee")
	ErrEmployeeNotFound    = errors.New("employee not found")
)

const (
	employeeUserKey   = "employees_user_id_key"
	minPasswordLength = 6
)

// EmployeeStore defines the DB methods needed to manage employees and
// their linked accounts. Satisfied by *database.Queries (and its WithTx variant).
type EmployeeStore interface {
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	UpdateUserRole(ctx context.Context, arg database.UpdateUserRoleParams) (database.User, error)
	CreateEmployee(ctx context.Context, arg database.CreateEmployeeParams) (database.Employee, error)
	UpdateEmployee(ctx context.Context, arg database.UpdateEmployeeParams) (database.Employee, error)
	DeleteEmployee(ctx context.Context, arg database.DeleteEmployeeParams) (database.Employee, error)
}

// NewEmployeeStore creates an EmployeeStore from a DBTX (pool or tx).
type NewEmployeeStore func(db database.DBTX) EmployeeStore

// EmployeeInput carries the editable employee fields.
type EmployeeInput struct {
	Name   string
	Age    *int32
	Role   string
	Salary decimal.Decimal
	Bonus  decimal.Decimal
	Image  string
}

// CreateEmployeeRequest adds an employee. The account is found by Email or
// created with Password when none exists.
type CreateEmployeeRequest struct {
	RestaurantID uuid.UUID
	Email        string
	Password     string
	Phone        string
	EmployeeInput
}

// EmployeeService manages employees and keeps their accounts in sync.
type EmployeeService struct {
	pool     TxBeginner
	newStore NewEmployeeStore
}

func NewEmployeeService(pool TxBeginner, newStore NewEmployeeStore) *EmployeeService {
	return &EmployeeService{pool: pool, newStore: newStore}
}

func (in EmployeeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || in.Role == "" {
		return ErrMissingEmployeeInfo
	}
	if !enum.IsStaffRole(in.Role) {
		return ErrInvalidEmployeeRole
	}
	if (in.Age != nil && *in.Age < 0) || in.Salary.IsNegative() || in.Bonus.IsNegative() {
		return ErrInvalidEmployeePay
	}
	return nil
}

func (in EmployeeInput) age() pgtype.Int4 {
	if in.Age == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *in.Age, Valid: true}
}

// Create links an existing account (by email) or creates a new one, gives
// it the employee role within the restaurant and inserts the employee row.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (database.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return database.Employee{}, ErrMissingEmployeeInfo
	}
	if err := req.validate(); err != nil {
		return database.Employee{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Employee{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	restaurantRef := pgtype.UUID{Bytes: req.RestaurantID, Valid: true}
	role := database.UserRole(req.Role)

	user, err := store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == database.UserRoleAdmin ||
			(user.RestaurantID.Valid && uuid.UUID(user.RestaurantID.Bytes) != req.RestaurantID) {
			return database.Employee{}, ErrUserInOtherRole
		}
		user, err = store.UpdateUserRole(ctx, database.UpdateUserRoleParams{
			ID:           user.ID,
			Role:         role,
			RestaurantID: restaurantRef,
		})
		if err != nil {
			return database.Employee{}, fmt.Errorf("update user role: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		if len(req.Password) < minPasswordLength {
			return database.Employee{}, ErrPasswordRequired
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return database.Employee{}, fmt.Errorf("hash password: %w", err)
		}
		user, err = store.CreateUser(ctx, database.CreateUserParams{
			Name:           strings.TrimSpace(req.Name),
			Email:          email,
			HashedPassword: string(hashed),
			Phone:          optionalText(strings.TrimSpace(req.Phone)),
			Role:           role,
			RestaurantID:   restaurantRef,
		})
		if err != nil {
			return database.Employee{}, fmt.Errorf("create user: %w", err)
		}
	default:
		return database.Employee{}, fmt.Errorf("get user by email: %w", err)
	}

	emp, err := store.CreateEmployee(ctx, database.CreateEmployeeParams{
		RestaurantID: req.RestaurantID,
		UserID:       user.ID,
		Name:         strings.TrimSpace(req.Name),
		Age:          req.age(),
		Role:         role,
		Salary:       decimalToNumeric(req.Salary),
		Bonus:        decimalToNumeric(req.Bonus),
		Image:        optionalText(req.Image),
	})
	if err != nil {
		if isUniqueViolation(err, employeeUserKey) {
			return database.Employee{}, ErrAlreadyEmployee
		}
		return database.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Employee{}, fmt.Errorf("commit tx: %w", err)
	}
	return emp, nil
}

// Update edits an employee and syncs the linked account's role.
func (s *EmployeeService) Update(ctx context.Context, restaurantID, employeeID uuid.UUID, in EmployeeInput) (database.Employee, error) {
	if err := in.validate(); err != nil {
		return database.Employee{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Employee{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	emp, err := store.UpdateEmployee(ctx, database.UpdateEmployeeParams{
		ID:           employeeID,
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(in.Name),
		Age:          in.age(),
		Role:         database.UserRole(in.Role),
		Salary:       decimalToNumeric(in.Salary),
		Bonus:        decimalToNumeric(in.Bonus),
		Image:        optionalText(in.Image),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Employee{}, ErrEmployeeNotFound
		}
		return database.Employee{}, fmt.Errorf("update employee: %w", err)
	}

	if _, err := store.UpdateUserRole(ctx, database.UpdateUserRoleParams{
		ID:           emp.UserID,
		Role:         emp.Role,
		RestaurantID: pgtype.UUID{Bytes: restaurantID, Valid: true},
	}); err != nil {
		return database.Employee{}, fmt.Errorf("sync user role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Employee{}, fmt.Errorf("commit tx: %w", err)
	}
	return emp, nil
}

// Delete removes an employee and demotes the linked account to a customer
// with no restaurant.
func (s *EmployeeService) Delete(ctx context.Context, restaurantID, employeeID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	emp, err := store.DeleteEmployee(ctx, database.DeleteEmployeeParams{
		ID:           employeeID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("delete employee: %w", err)
	}

	if _, err := store.UpdateUserRole(ctx, database.UpdateUserRoleParams{
		ID:   emp.UserID,
		Role: database.UserRoleCustomer,
	}); err != nil {
		return fmt.Errorf("demote user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
